package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Task is a work item owned by a principal. The owner's id and username are
// denormalized onto the record so lists render without joins.
type Task struct {
	ID               uuid.UUID  `json:"id" bson:"_id"`
	UserID           uuid.UUID  `json:"userId" bson:"user_id"`
	UserName         string     `json:"userName" bson:"user_name"`
	ListNumber       int        `json:"listNumber,omitempty" bson:"list_number,omitempty"`
	ShortDescription string     `json:"shortDescription" bson:"short_description"`
	LongDescription  string     `json:"longDescription,omitempty" bson:"long_description,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Priority         string     `json:"priority,omitempty" bson:"priority,omitempty"`
	AssignedBy       string     `json:"assignedBy,omitempty" bson:"assigned_by,omitempty"`
}

// TaskUpdate carries the mutable fields of a task.
type TaskUpdate struct {
	ShortDescription string     `json:"shortDescription" bson:"short_description"`
	LongDescription  string     `json:"longDescription,omitempty" bson:"long_description,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Priority         string     `json:"priority,omitempty" bson:"priority,omitempty"`
	AssignedBy       string     `json:"assignedBy,omitempty" bson:"assigned_by,omitempty"`
}

// Account is a financial-statement line item owned by a principal.
type Account struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	UserID       uuid.UUID `json:"userId" bson:"user_id"`
	UserName     string    `json:"userName" bson:"user_name"`
	Report       string    `json:"report,omitempty" bson:"report,omitempty"`
	AccountClass string    `json:"accountClass,omitempty" bson:"account_class,omitempty"`
	Caption      string    `json:"caption,omitempty" bson:"caption,omitempty"`
	FSLine       string    `json:"fsLine,omitempty" bson:"fs_line,omitempty"`
	Currency     string    `json:"currency,omitempty" bson:"currency,omitempty"`
}
