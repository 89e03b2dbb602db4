package service

import (
	"context"
	"time"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// ReviewService maps review operations directly onto document store
// operations. Every mutation returns the full review list for the book.
type ReviewService struct {
	store ports.ReviewStore
}

// NewReviewService creates a new review service.
func NewReviewService(store ports.ReviewStore) *ReviewService {
	return &ReviewService{store: store}
}

// Save persists a new review with zeroed counters and an ISO-8601 timestamp.
func (s *ReviewService) Save(ctx context.Context, bookID, userID, text string, rating *int) ([]core.Review, error) {
	switch {
	case bookID == "":
		return nil, core.NewValidationError("bookId", "is required")
	case userID == "":
		return nil, core.NewValidationError("userId", "is required")
	case text == "":
		return nil, core.NewValidationError("text", "is required")
	case rating == nil:
		return nil, core.NewValidationError("rating", "is required")
	}

	review := core.Review{
		BookID: bookID,
		UserID: userID,
		Text:   text,
		Rating: *rating,
		Date:   time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := s.store.Insert(ctx, review); err != nil {
		return nil, err
	}

	return s.store.FindByBook(ctx, bookID)
}

// List returns all reviews for a book in store order. No pagination.
func (s *ReviewService) List(ctx context.Context, bookID string) ([]core.Review, error) {
	if bookID == "" {
		return nil, core.NewValidationError("bookId", "is required")
	}
	return s.store.FindByBook(ctx, bookID)
}

// Vote increments the like or dislike counter of a review by exactly one.
// Votes are unbounded: a user may vote any number of times. Voting on a
// review that does not exist returns core.ErrReviewNotFound.
func (s *ReviewService) Vote(ctx context.Context, bookID, reviewID string, kind core.VoteKind) ([]core.Review, error) {
	if bookID == "" {
		return nil, core.NewValidationError("bookId", "is required")
	}
	if reviewID == "" {
		return nil, core.NewValidationError("reviewId", "is required")
	}
	if !kind.Valid() {
		return nil, core.NewValidationError("kind", "must be like or dislike")
	}

	if err := s.store.IncrementVote(ctx, reviewID, kind); err != nil {
		return nil, err
	}
	return s.store.FindByBook(ctx, bookID)
}
