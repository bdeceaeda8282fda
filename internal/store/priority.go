package store

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// PriorityStore defines the interface for priority data persistence.
type PriorityStore interface {
	// Create saves a new priority to the store, assigning its ID.
	// Returns ErrDuplicate if the name is already taken.
	Create(ctx context.Context, priority *domain.Priority) error

	// GetByID retrieves a priority by its unique ID.
	// Returns ErrPriorityNotFound if the priority does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Priority, error)

	// List retrieves all priorities ordered by ID.
	List(ctx context.Context) ([]*domain.Priority, error)

	// ExistsByID reports whether a priority with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Update replaces the mutable fields of an existing priority.
	// Returns ErrPriorityNotFound if the priority does not exist.
	Update(ctx context.Context, priority *domain.Priority) error

	// Delete removes a priority from the store by its ID.
	// Returns ErrPriorityNotFound if the priority does not exist and
	// ErrRowReferenced if tasks still point at it.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new PriorityStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) PriorityStore
}
