package store

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category to the store, assigning its ID.
	// Returns ErrDuplicate if the name is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// List retrieves all categories ordered by ID.
	List(ctx context.Context) ([]*domain.Category, error)

	// ExistsByID reports whether a category with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Update replaces the mutable fields of an existing category.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category from the store by its ID.
	// Returns ErrCategoryNotFound if the category does not exist and
	// ErrRowReferenced if tasks still point at it.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new CategoryStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
