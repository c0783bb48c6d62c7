package storage

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoAccountRepository persists accounts in the "accounts" collection.
type MongoAccountRepository struct {
	coll *mongo.Collection
}

// NewMongoAccountRepository creates the repository.
func NewMongoAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection("accounts")}
}

// List returns all accounts.
func (r *MongoAccountRepository) List(ctx context.Context) ([]Account, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := []Account{}
	var docs []accountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		account, err := doc.toAccount()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Create inserts an account.
func (r *MongoAccountRepository) Create(ctx context.Context, account Account) error {
	_, err := r.coll.InsertOne(ctx, newAccountDoc(account))
	return err
}

// Delete removes the account, or fails with ErrNotFound when the id is absent.
func (r *MongoAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// accountDoc is the BSON shape of a stored account; UUIDs are stored as strings.
type accountDoc struct {
	ID           string `bson:"_id"`
	UserID       string `bson:"user_id"`
	UserName     string `bson:"user_name"`
	Report       string `bson:"report,omitempty"`
	AccountClass string `bson:"account_class,omitempty"`
	Caption      string `bson:"caption,omitempty"`
	FSLine       string `bson:"fs_line,omitempty"`
	Currency     string `bson:"currency,omitempty"`
}

func newAccountDoc(account Account) accountDoc {
	return accountDoc{
		ID:           account.ID.String(),
		UserID:       account.UserID.String(),
		UserName:     account.UserName,
		Report:       account.Report,
		AccountClass: account.AccountClass,
		Caption:      account.Caption,
		FSLine:       account.FSLine,
		Currency:     account.Currency,
	}
}

func (d accountDoc) toAccount() (Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Account{}, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return Account{}, err
	}

	return Account{
		ID:           id,
		UserID:       userID,
		UserName:     d.UserName,
		Report:       d.Report,
		AccountClass: d.AccountClass,
		Caption:      d.Caption,
		FSLine:       d.FSLine,
		Currency:     d.Currency,
	}, nil
}
