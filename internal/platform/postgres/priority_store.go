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

// PriorityStore implements the store.PriorityStore interface using a
// PostgreSQL database as the storage backend.
type PriorityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPriorityStore creates a new PostgreSQL implementation of the
// PriorityStore interface.
func NewPriorityStore(db store.DBTX, logger *slog.Logger) *PriorityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PriorityStore{
		db:     db,
		logger: logger.With(slog.String("component", "priority_store")),
	}
}

var _ store.PriorityStore = (*PriorityStore)(nil)

// WithTx implements store.PriorityStore.WithTx
func (s *PriorityStore) WithTx(tx *sql.Tx) store.PriorityStore {
	return &PriorityStore{db: tx, logger: s.logger}
}

// Create implements store.PriorityStore.Create
func (s *PriorityStore) Create(ctx context.Context, priority *domain.Priority) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := priority.Validate(); err != nil {
		log.Warn("priority validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO priorities (name, level)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, priority.Name, priority.Level).Scan(&priority.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: priority name %q is already taken", store.ErrDuplicate, priority.Name)
		}
		log.Error("failed to create priority", slog.String("error", err.Error()))
		return store.NewStoreError("priority", "create", "insert failed", err)
	}

	log.Info("priority created", slog.Int64("priority_id", priority.ID))
	return nil
}

// GetByID implements store.PriorityStore.GetByID
func (s *PriorityStore) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, level
		FROM priorities
		WHERE id = $1
	`

	var priority domain.Priority
	err := s.db.QueryRowContext(ctx, query, id).Scan(&priority.ID, &priority.Name, &priority.Level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("priority not found", slog.Int64("priority_id", id))
			return nil, store.ErrPriorityNotFound
		}
		log.Error("failed to get priority by ID",
			slog.String("error", err.Error()),
			slog.Int64("priority_id", id))
		return nil, store.NewStoreError("priority", "get", "query failed", err)
	}

	return &priority, nil
}

// List implements store.PriorityStore.List
func (s *PriorityStore) List(ctx context.Context) ([]*domain.Priority, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, level
		FROM priorities
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to list priorities", slog.String("error", err.Error()))
		return nil, store.NewStoreError("priority", "list", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var priorities []*domain.Priority
	for rows.Next() {
		var priority domain.Priority
		if err := rows.Scan(&priority.ID, &priority.Name, &priority.Level); err != nil {
			log.Error("failed to scan priority row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("priority", "list", "scan failed", err)
		}
		priorities = append(priorities, &priority)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("priority", "list", "row iteration failed", err)
	}

	if priorities == nil {
		priorities = []*domain.Priority{}
	}

	return priorities, nil
}

// ExistsByID implements store.PriorityStore.ExistsByID
func (s *PriorityStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM priorities WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("priority", "exists", "query failed", err)
	}
	return exists, nil
}

// Update implements store.PriorityStore.Update
func (s *PriorityStore) Update(ctx context.Context, priority *domain.Priority) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := priority.Validate(); err != nil {
		log.Warn("priority validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("priority_id", priority.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE priorities
		SET name = $1, level = $2
		WHERE id = $3
	`, priority.Name, priority.Level, priority.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: priority name %q is already taken", store.ErrDuplicate, priority.Name)
		}
		log.Error("failed to update priority",
			slog.String("error", err.Error()),
			slog.Int64("priority_id", priority.ID))
		return store.NewStoreError("priority", "update", "update failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("priority", "update", "failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrPriorityNotFound
	}

	log.Info("priority updated", slog.Int64("priority_id", priority.ID))
	return nil
}

// Delete implements store.PriorityStore.Delete
func (s *PriorityStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM priorities WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("attempted to delete referenced priority", slog.Int64("priority_id", id))
			return fmt.Errorf("%w: priority %d", store.ErrRowReferenced, id)
		}
		log.Error("failed to delete priority",
			slog.String("error", err.Error()),
			slog.Int64("priority_id", id))
		return store.NewStoreError("priority", "delete", "delete failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("priority", "delete", "failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrPriorityNotFound
	}

	log.Info("priority deleted", slog.Int64("priority_id", id))
	return nil
}
