// Package reviews adapts the review document collection behind the
// ReviewStore port.
package reviews

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

const collectionName = "reviews"

type reviewDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	BookID   string             `bson:"bookId"`
	UserID   string             `bson:"userId"`
	Text     string             `bson:"text"`
	Rating   int                `bson:"rating"`
	Likes    int                `bson:"likes"`
	Dislikes int                `bson:"dislikes"`
	Date     string             `bson:"date"`
}

// MongoStore is a MongoDB implementation of the ReviewStore interface. The
// connection is established lazily on first use; concurrent first callers
// share the same in-flight connection attempt.
type MongoStore struct {
	uri      string
	database string

	once    sync.Once
	client  *mongo.Client
	connErr error
}

// NewMongoStore creates a Mongo-backed review store. It does not dial yet.
func NewMongoStore(uri, database string) *MongoStore {
	return &MongoStore{uri: uri, database: database}
}

var _ ports.ReviewStore = (*MongoStore)(nil)

func (s *MongoStore) collection(ctx context.Context) (*mongo.Collection, error) {
	s.once.Do(func() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
		if err != nil {
			s.connErr = fmt.Errorf("failed to connect to mongodb: %w", err)
			return
		}
		s.client = client
	})
	if s.connErr != nil {
		return nil, &core.UpstreamError{Op: "mongo connect", Err: s.connErr}
	}
	return s.client.Database(s.database).Collection(collectionName), nil
}

// Insert persists a new review document and returns it with its assigned id.
func (s *MongoStore) Insert(ctx context.Context, review core.Review) (core.Review, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return core.Review{}, err
	}

	doc := reviewDoc{
		BookID:   review.BookID,
		UserID:   review.UserID,
		Text:     review.Text,
		Rating:   review.Rating,
		Likes:    review.Likes,
		Dislikes: review.Dislikes,
		Date:     review.Date,
	}

	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return core.Review{}, &core.UpstreamError{Op: "insert review", Err: err}
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}
	return review, nil
}

// FindByBook returns all reviews for a book in insertion order as returned
// by the store. No pagination.
func (s *MongoStore) FindByBook(ctx context.Context, bookID string) ([]core.Review, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"bookId": bookID})
	if err != nil {
		return nil, &core.UpstreamError{Op: "find reviews", Err: err}
	}
	defer cursor.Close(ctx)

	var docs []reviewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &core.UpstreamError{Op: "decode reviews", Err: err}
	}

	result := make([]core.Review, len(docs))
	for i, doc := range docs {
		result[i] = core.Review{
			ID:       doc.ID.Hex(),
			BookID:   doc.BookID,
			UserID:   doc.UserID,
			Text:     doc.Text,
			Rating:   doc.Rating,
			Likes:    doc.Likes,
			Dislikes: doc.Dislikes,
			Date:     doc.Date,
		}
	}
	return result, nil
}

// IncrementVote bumps the like or dislike counter of a review by one.
func (s *MongoStore) IncrementVote(ctx context.Context, reviewID string, kind core.VoteKind) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return core.ErrReviewNotFound
	}

	field := "likes"
	if kind == core.VoteDislike {
		field = "dislikes"
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return &core.UpstreamError{Op: "update review", Err: err}
	}
	if result.MatchedCount == 0 {
		return core.ErrReviewNotFound
	}
	return nil
}

// Close disconnects the client if a connection was ever established.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
