// Package structs defines the tracker's domain models and the request and
// response shapes of the HTTP surface.
package structs

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state shared by projects and tasks. Transitions
// are unconstrained: any value is reachable from any other.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency marker shared by projects and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// User is the stored user record. The password field holds only the bcrypt
// verifier and is never serialized.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	IsAdmin   bool               `bson:"is_admin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Project is the stored project aggregate. Owner is fixed at creation and
// never appears in Members.
type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Status      Status               `bson:"status"`
	Priority    Priority             `bson:"priority"`
	StartDate   time.Time            `bson:"start_date"`
	EndDate     *time.Time           `bson:"end_date,omitempty"`
	Owner       primitive.ObjectID   `bson:"user"`
	Members     []primitive.ObjectID `bson:"members"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

// HasMember reports whether id appears in the members set. The owner is not
// counted as a member.
func (p *Project) HasMember(id primitive.ObjectID) bool {
	for _, m := range p.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Task is a stored task bound to its project. Project and CreatedBy are
// immutable after creation; comments are append-only.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	Description string              `bson:"description"`
	Status      Status              `bson:"status"`
	Priority    Priority            `bson:"priority"`
	DueDate     *time.Time          `bson:"due_date,omitempty"`
	Project     primitive.ObjectID  `bson:"project"`
	AssignedTo  *primitive.ObjectID `bson:"assigned_to,omitempty"`
	CreatedBy   primitive.ObjectID  `bson:"created_by"`
	Comments    []Comment           `bson:"comments"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

// Comment is an embedded task comment. Comments carry no identifier of
// their own and are addressed by position.
type Comment struct {
	Text      string             `bson:"text"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`
}
