package reviews

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// MemoryStore is an in-memory implementation of the ReviewStore interface,
// primarily for tests and local development without a database.
type MemoryStore struct {
	mu      sync.Mutex
	reviews []core.Review
}

// NewMemoryStore creates a new in-memory review store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ ports.ReviewStore = (*MemoryStore)(nil)

// Insert persists a review and assigns it an id.
func (s *MemoryStore) Insert(ctx context.Context, review core.Review) (core.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ID = uuid.New().String()
	s.reviews = append(s.reviews, review)
	return review, nil
}

// FindByBook returns all reviews for a book in insertion order.
func (s *MemoryStore) FindByBook(ctx context.Context, bookID string) ([]core.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []core.Review
	for _, review := range s.reviews {
		if review.BookID == bookID {
			result = append(result, review)
		}
	}
	return result, nil
}

// IncrementVote bumps a counter on the identified review.
func (s *MemoryStore) IncrementVote(ctx context.Context, reviewID string, kind core.VoteKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].ID != reviewID {
			continue
		}
		if kind == core.VoteDislike {
			s.reviews[i].Dislikes++
		} else {
			s.reviews[i].Likes++
		}
		return nil
	}
	return core.ErrReviewNotFound
}
