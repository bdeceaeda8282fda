package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// Create registers a new user.
	Create(ctx context.Context, name, email string) (*domain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// List retrieves all users ordered by ID.
	List(ctx context.Context) ([]*domain.User, error)

	// Update replaces the name and email of an existing user.
	Update(ctx context.Context, id int64, name, email string) (*domain.User, error)

	// Delete removes a user. Fails if any task still references the user.
	Delete(ctx context.Context, id int64) error
}

type userServiceImpl struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if the user store is nil.
func NewUserService(users store.UserStore, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "users store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) Create(ctx context.Context, name, email string) (*domain.User, error) {
	user, err := domain.NewUser(name, email)
	if err != nil {
		return nil, NewServiceError("create_user", "invalid user data", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return nil, NewServiceError("create_user", "failed to save user", err)
	}

	s.logger.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *userServiceImpl) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

func (s *userServiceImpl) Update(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, NewServiceError("update_user", "failed to retrieve user", err)
	}

	user.Name = name
	user.Email = email

	if err := user.Validate(); err != nil {
		return nil, NewServiceError("update_user", "invalid user data", err)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewUserNotFoundError(id)
		}
		s.logger.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, NewServiceError("update_user", "failed to save user", err)
	}

	s.logger.Info("user updated", slog.Int64("user_id", id))
	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return NewServiceError("delete_user", "failed to check user existence", err)
	}
	if !exists {
		return NewUserNotFoundError(id)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return NewUserNotFoundError(id)
		}
		s.logger.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return NewServiceError("delete_user", "failed to delete user", err)
	}

	s.logger.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
