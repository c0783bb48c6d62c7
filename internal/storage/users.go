package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/taskdeck/internal/auth"
)

// userDoc is the BSON shape of a stored principal.
type userDoc struct {
	ID           string `bson:"_id"`
	Username     string `bson:"username"`
	PasswordHash []byte `bson:"password_hash"`
}

// MongoUserRepository persists principals in the "users" collection with a
// unique index on username, making duplicate detection atomic with insert.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates the repository and ensures the unique
// username index exists.
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (*MongoUserRepository, error) {
	coll := db.Collection("users")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &MongoUserRepository{coll: coll}, nil
}

// Create inserts a principal. The unique index turns concurrent duplicate
// registrations into auth.ErrUsernameTaken rather than racing.
func (r *MongoUserRepository) Create(ctx context.Context, p auth.Principal) error {
	doc := userDoc{
		ID:           p.ID.String(),
		Username:     p.Username,
		PasswordHash: p.PasswordHash,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// FindByUsername returns the principal for the username.
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (auth.Principal, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByID returns the principal for the ID.
func (r *MongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.Principal, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (auth.Principal, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.Principal{}, auth.ErrPrincipalNotFound
		}
		return auth.Principal{}, err
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return auth.Principal{}, err
	}

	return auth.Principal{
		ID:           id,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
	}, nil
}

var _ auth.Store = (*MongoUserRepository)(nil)
