package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// PriorityService provides priority-related operations.
type PriorityService interface {
	// Create registers a new priority level.
	Create(ctx context.Context, name string, level int) (*domain.Priority, error)

	// Get retrieves a priority by ID.
	Get(ctx context.Context, id int64) (*domain.Priority, error)

	// List retrieves all priorities ordered by ID.
	List(ctx context.Context) ([]*domain.Priority, error)

	// Update replaces the name and level of an existing priority.
	Update(ctx context.Context, id int64, name string, level int) (*domain.Priority, error)

	// Delete removes a priority. Fails if any task still references it.
	Delete(ctx context.Context, id int64) error
}

type priorityServiceImpl struct {
	priorities store.PriorityStore
	logger     *slog.Logger
}

// NewPriorityService creates a new PriorityService.
// It returns an error if the priority store is nil.
func NewPriorityService(priorities store.PriorityStore, logger *slog.Logger) (PriorityService, error) {
	if priorities == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "priorities store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &priorityServiceImpl{
		priorities: priorities,
		logger:     logger.With(slog.String("component", "priority_service")),
	}, nil
}

func (s *priorityServiceImpl) Create(ctx context.Context, name string, level int) (*domain.Priority, error) {
	priority, err := domain.NewPriority(name, level)
	if err != nil {
		return nil, NewServiceError("create_priority", "invalid priority data", err)
	}

	if err := s.priorities.Create(ctx, priority); err != nil {
		s.logger.Error("failed to create priority",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, NewServiceError("create_priority", "failed to save priority", err)
	}

	s.logger.Info("priority created", slog.Int64("priority_id", priority.ID))
	return priority, nil
}

func (s *priorityServiceImpl) Get(ctx context.Context, id int64) (*domain.Priority, error) {
	priority, err := s.priorities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPriorityNotFound) {
			return nil, NewPriorityNotFoundError(id)
		}
		return nil, NewServiceError("get_priority", "failed to retrieve priority", err)
	}
	return priority, nil
}

func (s *priorityServiceImpl) List(ctx context.Context) ([]*domain.Priority, error) {
	priorities, err := s.priorities.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_priorities", "failed to list priorities", err)
	}
	return priorities, nil
}

func (s *priorityServiceImpl) Update(ctx context.Context, id int64, name string, level int) (*domain.Priority, error) {
	priority, err := s.priorities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPriorityNotFound) {
			return nil, NewPriorityNotFoundError(id)
		}
		return nil, NewServiceError("update_priority", "failed to retrieve priority", err)
	}

	priority.Name = name
	priority.Level = level

	if err := priority.Validate(); err != nil {
		return nil, NewServiceError("update_priority", "invalid priority data", err)
	}

	if err := s.priorities.Update(ctx, priority); err != nil {
		if errors.Is(err, store.ErrPriorityNotFound) {
			return nil, NewPriorityNotFoundError(id)
		}
		s.logger.Error("failed to update priority",
			slog.String("error", err.Error()),
			slog.Int64("priority_id", id))
		return nil, NewServiceError("update_priority", "failed to save priority", err)
	}

	s.logger.Info("priority updated", slog.Int64("priority_id", id))
	return priority, nil
}

func (s *priorityServiceImpl) Delete(ctx context.Context, id int64) error {
	exists, err := s.priorities.ExistsByID(ctx, id)
	if err != nil {
		return NewServiceError("delete_priority", "failed to check priority existence", err)
	}
	if !exists {
		return NewPriorityNotFoundError(id)
	}

	if err := s.priorities.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrPriorityNotFound) {
			return NewPriorityNotFoundError(id)
		}
		s.logger.Error("failed to delete priority",
			slog.String("error", err.Error()),
			slog.Int64("priority_id", id))
		return NewServiceError("delete_priority", "failed to delete priority", err)
	}

	s.logger.Info("priority deleted", slog.Int64("priority_id", id))
	return nil
}
