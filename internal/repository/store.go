package repository

import (
	"context"
	"errors"

	"github.com/valdisnipers-collab/immuno-survey/internal/model"
)

// Common store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateDevice = errors.New("device already submitted")
)

// QuestionStore persists the question set. List returns questions ordered by
// their display order.
type QuestionStore interface {
	List(ctx context.Context) ([]model.Question, error)
	Get(ctx context.Context, id string) (*model.Question, error)
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id string) error
	UpsertBatch(ctx context.Context, questions []model.Question) error
}

// SubmissionStore persists completed surveys. Insert must reject a device id
// that already holds a record when the backing store enforces uniqueness;
// callers still run their own existence check first.
type SubmissionStore interface {
	Insert(ctx context.Context, sub *model.Submission) error
	ExistsByDevice(ctx context.Context, deviceID string) (bool, error)
	List(ctx context.Context) ([]model.Submission, error)
	Count(ctx context.Context) (int, error)
}

// AdminStore looks up administrator accounts for configured-mode login.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
}

// VotedFlagStore is the durable "this device already voted" flag, injected so
// handlers and tests never touch ambient global state.
type VotedFlagStore interface {
	Get(ctx context.Context, deviceID string) (bool, error)
	Set(ctx context.Context, deviceID string) error
}
