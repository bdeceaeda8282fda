package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/store"
)

// CategoryStore implements the store.CategoryStore interface using a
// PostgreSQL database as the storage backend.
type CategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewCategoryStore(db store.DBTX, logger *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *CategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &CategoryStore{db: tx, logger: s.logger}
}

// Create implements store.CategoryStore.Create
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, category.Name, category.Description).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category name %q is already taken", store.ErrDuplicate, category.Name)
		}
		log.Error("failed to create category", slog.String("error", err.Error()))
		return store.NewStoreError("category", "create", "insert failed", err)
	}

	log.Info("category created", slog.Int64("category_id", category.ID))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description
		FROM categories
		WHERE id = $1
	`

	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, store.NewStoreError("category", "get", "query failed", err)
	}

	return &category, nil
}

// List implements store.CategoryStore.List
func (s *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "list", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("category", "list", "scan failed", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "list", "row iteration failed", err)
	}

	if categories == nil {
		categories = []*domain.Category{}
	}

	return categories, nil
}

// ExistsByID implements store.CategoryStore.ExistsByID
func (s *CategoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("category", "exists", "query failed", err)
	}
	return exists, nil
}

// Update implements store.CategoryStore.Update
func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, description = $2
		WHERE id = $3
	`, category.Name, category.Description, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category name %q is already taken", store.ErrDuplicate, category.Name)
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return store.NewStoreError("category", "update", "update failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("category", "update", "failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrCategoryNotFound
	}

	log.Info("category updated", slog.Int64("category_id", category.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("attempted to delete referenced category", slog.Int64("category_id", id))
			return fmt.Errorf("%w: category %d", store.ErrRowReferenced, id)
		}
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return store.NewStoreError("category", "delete", "delete failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("category", "delete", "failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrCategoryNotFound
	}

	log.Info("category deleted", slog.Int64("category_id", id))
	return nil
}
