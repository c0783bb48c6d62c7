package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoTaskRepository persists tasks in the "tasks" collection.
type MongoTaskRepository struct {
	coll *mongo.Collection
}

// NewMongoTaskRepository creates the repository and ensures the owner index
// used by per-user listing.
func NewMongoTaskRepository(ctx context.Context, db *mongo.Database) (*MongoTaskRepository, error) {
	coll := db.Collection("tasks")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return nil, err
	}

	return &MongoTaskRepository{coll: coll}, nil
}

// ListByUser returns all tasks owned by the given principal.
func (r *MongoTaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []Task{}
	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		task, err := doc.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Create inserts a task.
func (r *MongoTaskRepository) Create(ctx context.Context, task Task) error {
	_, err := r.coll.InsertOne(ctx, newTaskDoc(task))
	return err
}

// Update applies the mutable fields to the task and returns the updated
// document, or ErrNotFound when the id is absent.
func (r *MongoTaskRepository) Update(ctx context.Context, id uuid.UUID, upd TaskUpdate) (Task, error) {
	var doc taskDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": upd},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return doc.toTask()
}

// Delete removes the task idempotently: deleting an absent id is not an error.
func (r *MongoTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

// taskDoc is the BSON shape of a stored task; UUIDs are stored as strings.
type taskDoc struct {
	ID               string     `bson:"_id"`
	UserID           string     `bson:"user_id"`
	UserName         string     `bson:"user_name"`
	ListNumber       int        `bson:"list_number,omitempty"`
	ShortDescription string     `bson:"short_description"`
	LongDescription  string     `bson:"long_description,omitempty"`
	Deadline         *time.Time `bson:"deadline,omitempty"`
	Priority         string     `bson:"priority,omitempty"`
	AssignedBy       string     `bson:"assigned_by,omitempty"`
}

func newTaskDoc(task Task) taskDoc {
	return taskDoc{
		ID:               task.ID.String(),
		UserID:           task.UserID.String(),
		UserName:         task.UserName,
		ListNumber:       task.ListNumber,
		ShortDescription: task.ShortDescription,
		LongDescription:  task.LongDescription,
		Deadline:         task.Deadline,
		Priority:         task.Priority,
		AssignedBy:       task.AssignedBy,
	}
}

func (d taskDoc) toTask() (Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Task{}, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:               id,
		UserID:           userID,
		UserName:         d.UserName,
		ListNumber:       d.ListNumber,
		ShortDescription: d.ShortDescription,
		LongDescription:  d.LongDescription,
		Deadline:         d.Deadline,
		Priority:         d.Priority,
		AssignedBy:       d.AssignedBy,
	}, nil
}
