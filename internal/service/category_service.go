package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// CategoryService provides category-related operations.
type CategoryService interface {
	// Create registers a new category.
	Create(ctx context.Context, name, description string) (*domain.Category, error)

	// Get retrieves a category by ID.
	Get(ctx context.Context, id int64) (*domain.Category, error)

	// List retrieves all categories ordered by ID.
	List(ctx context.Context) ([]*domain.Category, error)

	// Update replaces the name and description of an existing category.
	Update(ctx context.Context, id int64, name, description string) (*domain.Category, error)

	// Delete removes a category. Fails if any task still references it.
	Delete(ctx context.Context, id int64) error
}

type categoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService.
// It returns an error if the category store is nil.
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categories == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "categories store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_service")),
	}, nil
}

func (s *categoryServiceImpl) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	category, err := domain.NewCategory(name, description)
	if err != nil {
		return nil, NewServiceError("create_category", "invalid category data", err)
	}

	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, NewServiceError("create_category", "failed to save category", err)
	}

	s.logger.Info("category created", slog.Int64("category_id", category.ID))
	return category, nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, NewCategoryNotFoundError(id)
		}
		return nil, NewServiceError("get_category", "failed to retrieve category", err)
	}
	return category, nil
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_categories", "failed to list categories", err)
	}
	return categories, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, NewCategoryNotFoundError(id)
		}
		return nil, NewServiceError("update_category", "failed to retrieve category", err)
	}

	category.Name = name
	category.Description = description

	if err := category.Validate(); err != nil {
		return nil, NewServiceError("update_category", "invalid category data", err)
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, NewCategoryNotFoundError(id)
		}
		s.logger.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, NewServiceError("update_category", "failed to save category", err)
	}

	s.logger.Info("category updated", slog.Int64("category_id", id))
	return category, nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id int64) error {
	exists, err := s.categories.ExistsByID(ctx, id)
	if err != nil {
		return NewServiceError("delete_category", "failed to check category existence", err)
	}
	if !exists {
		return NewCategoryNotFoundError(id)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return NewCategoryNotFoundError(id)
		}
		s.logger.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return NewServiceError("delete_category", "failed to delete category", err)
	}

	s.logger.Info("category deleted", slog.Int64("category_id", id))
	return nil
}
