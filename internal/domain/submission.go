package domain

import (
	"context"
	"time"
)

// Submission is one interview experience. UserID references the author;
// UserEmail is filled only on list reads.
type Submission struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Country   string    `json:"country" bson:"country"`
	Company   string    `json:"company" bson:"company"`
	Questions []string  `json:"questions" bson:"questions"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserEmail string    `json:"user_email,omitempty" bson:"user_email,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SubmissionFields are the editable fields, replaced as a whole on update.
type SubmissionFields struct {
	Name      string   `json:"name" binding:"required,notblank"`
	Country   string   `json:"country" binding:"required,notblank"`
	Company   string   `json:"company" binding:"required,notblank"`
	Questions []string `json:"questions"`
}

// SubmissionRepository is the submission store. Every *Owned method matches
// on id and owner in a single statement and returns ErrNotFound when nothing matched.
type SubmissionRepository interface {
	Create(ctx context.Context, s *Submission) error
	FindAll(ctx context.Context, company string) ([]Submission, error)
	FindOneOwned(ctx context.Context, id, userID string) (*Submission, error)
	UpdateOwned(ctx context.Context, id, userID string, fields SubmissionFields, updatedAt time.Time) (*Submission, error)
	DeleteOwned(ctx context.Context, id, userID string) (*Submission, error)
}

type SubmissionUsecase interface {
	Create(ctx context.Context, userID string, fields SubmissionFields) (*Submission, error)
	List(ctx context.Context, company string) ([]Submission, error)
	Get(ctx context.Context, id, userID string) (*Submission, error)
	Update(ctx context.Context, id, userID string, fields SubmissionFields) (*Submission, error)
	Delete(ctx context.Context, id, userID string) error
}
