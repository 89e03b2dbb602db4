package ports

import (
	"context"

	"github.com/uaplabs/minidapps/core"
)

// ReviewStore maps review operations onto database document operations.
type ReviewStore interface {
	// Insert persists a new review document and returns it with its
	// assigned id.
	Insert(ctx context.Context, review core.Review) (core.Review, error)

	// FindByBook returns all reviews for a book in store order.
	FindByBook(ctx context.Context, bookID string) ([]core.Review, error)

	// IncrementVote bumps the like or dislike counter of a review by one.
	// It returns core.ErrReviewNotFound when no such review exists.
	IncrementVote(ctx context.Context, reviewID string, kind core.VoteKind) error
}
