package store

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Reference validation is not the store's job: the service layer resolves the
// user, category and priority before calling Create or Update. The schema's
// foreign keys are a backstop, not the primary check.
type TaskStore interface {
	// Create saves a new task to the store, assigning its ID, CreatedAt and
	// UpdatedAt.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves all tasks ordered by ID.
	List(ctx context.Context) ([]*domain.Task, error)

	// ExistsByID reports whether a task with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Update replaces the mutable fields of an existing task and refreshes
	// UpdatedAt. CreatedAt is never touched.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
