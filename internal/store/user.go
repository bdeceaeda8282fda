package store

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store, assigning its ID and CreatedAt.
	// Returns ErrDuplicate if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List retrieves all users. Results are ordered by ID for determinism;
	// the ordering is not part of the contract.
	List(ctx context.Context) ([]*domain.User, error)

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Update replaces the mutable fields of an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist and ErrRowReferenced
	// if tasks still point at the user.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
