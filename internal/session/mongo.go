package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore persists sessions in a MongoDB collection, keyed by token.
// Expired records are removed by the Manager's sweep; lookups check expiry
// lazily so a stale record never authenticates.
type MongoStore struct {
	coll *mongo.Collection
}

// sessionDoc is the BSON shape of a stored session.
type sessionDoc struct {
	Token       string    `bson:"_id"`
	PrincipalID string    `bson:"principal_id"`
	ExpiresAt   time.Time `bson:"expires_at"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// NewMongoStore creates a session store over the given database, using the
// "sessions" collection. An index on expires_at keeps the sweep cheap.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection("sessions")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "expires_at", Value: 1}},
	})
	if err != nil {
		return nil, err
	}

	return &MongoStore{coll: coll}, nil
}

// GetByToken returns the session for the token, or ErrNotFound.
func (s *MongoStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	var doc sessionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	principalID, err := uuid.Parse(doc.PrincipalID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:       doc.Token,
		PrincipalID: principalID,
		ExpiresAt:   doc.ExpiresAt,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// Save upserts the session keyed by its token.
func (s *MongoStore) Save(ctx context.Context, sess *Session) error {
	doc := sessionDoc{
		Token:       sess.Token,
		PrincipalID: sess.PrincipalID.String(),
		ExpiresAt:   sess.ExpiresAt,
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.UpdatedAt,
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.Token}, doc,
		options.Replace().SetUpsert(true))
	return err
}

// Delete removes the session idempotently.
func (s *MongoStore) Delete(ctx context.Context, token string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": token})
	return err
}

// DeleteExpired removes all sessions whose expiry is in the past.
func (s *MongoStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ Store = (*MongoStore)(nil)
