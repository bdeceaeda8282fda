package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// CreateTaskInput carries the fields needed to create a task. The status is
// not part of the input: every new task starts as PENDING.
type CreateTaskInput struct {
	Title       string
	Description string
	UserID      int64
	CategoryID  int64
	PriorityID  int64
}

// UpdateTaskInput carries the replacement state for an existing task. The
// status is deliberately absent: Update never touches it, only UpdateStatus
// does.
type UpdateTaskInput struct {
	Title       string
	Description string
	UserID      int64
	CategoryID  int64
	PriorityID  int64
}

// TaskDetail is the aggregate returned by task reads and writes: the task
// plus its resolved user, category and priority.
type TaskDetail struct {
	Task     *domain.Task
	User     *domain.User
	Category *domain.Category
	Priority *domain.Priority
}

// TaskService provides task-related operations.
//
// Every write resolves the task's user, category and priority references in
// that fixed order inside a single transaction, short-circuiting on the first
// missing reference. Either all checks pass and the task row is written, or
// nothing is.
type TaskService interface {
	// Create validates the three references and persists a new PENDING task.
	Create(ctx context.Context, input CreateTaskInput) (*TaskDetail, error)

	// Get retrieves a task with its resolved references.
	Get(ctx context.Context, id int64) (*TaskDetail, error)

	// List retrieves all tasks with their resolved references, ordered by ID.
	List(ctx context.Context) ([]*TaskDetail, error)

	// Update replaces the fields of an existing task except its status,
	// re-validating the references.
	Update(ctx context.Context, id int64, input UpdateTaskInput) (*TaskDetail, error)

	// UpdateStatus changes only the status of an existing task.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*TaskDetail, error)

	// Delete removes a task.
	Delete(ctx context.Context, id int64) error
}

type taskServiceImpl struct {
	db         *sql.DB
	tasks      store.TaskStore
	users      store.UserStore
	categories store.CategoryStore
	priorities store.PriorityStore
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	tasks store.TaskStore,
	users store.UserStore,
	categories store.CategoryStore,
	priorities store.PriorityStore,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if tasks == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "tasks store cannot be nil"}
	}
	if users == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "users store cannot be nil"}
	}
	if categories == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "categories store cannot be nil"}
	}
	if priorities == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "priorities store cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:         db,
		tasks:      tasks,
		users:      users,
		categories: categories,
		priorities: priorities,
		logger:     logger.With(slog.String("component", "task_service")),
	}, nil
}

// resolveReferences loads the user, category and priority in that order,
// returning on the first missing one. The order is observable through which
// not-found message the caller receives when several references are bad.
func (s *taskServiceImpl) resolveReferences(
	ctx context.Context,
	users store.UserStore,
	categories store.CategoryStore,
	priorities store.PriorityStore,
	userID, categoryID, priorityID int64,
) (*domain.User, *domain.Category, *domain.Priority, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, nil, NewUserNotFoundError(userID)
		}
		return nil, nil, nil, NewServiceError("resolve_references", "failed to resolve user", err)
	}

	category, err := categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, nil, nil, NewCategoryNotFoundError(categoryID)
		}
		return nil, nil, nil, NewServiceError("resolve_references", "failed to resolve category", err)
	}

	priority, err := priorities.GetByID(ctx, priorityID)
	if err != nil {
		if errors.Is(err, store.ErrPriorityNotFound) {
			return nil, nil, nil, NewPriorityNotFoundError(priorityID)
		}
		return nil, nil, nil, NewServiceError("resolve_references", "failed to resolve priority", err)
	}

	return user, category, priority, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, input CreateTaskInput) (*TaskDetail, error) {
	var detail *TaskDetail

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		user, category, priority, err := s.resolveReferences(ctx,
			s.users.WithTx(tx), s.categories.WithTx(tx), s.priorities.WithTx(tx),
			input.UserID, input.CategoryID, input.PriorityID)
		if err != nil {
			return err
		}

		task, err := domain.NewTask(input.Title, input.Description, input.UserID, input.CategoryID, input.PriorityID)
		if err != nil {
			return NewServiceError("create_task", "invalid task data", err)
		}

		if err := s.tasks.WithTx(tx).Create(ctx, task); err != nil {
			s.logger.Error("failed to create task in transaction",
				slog.String("error", err.Error()),
				slog.Int64("user_id", input.UserID))
			return NewServiceError("create_task", "failed to save task", err)
		}

		detail = &TaskDetail{Task: task, User: user, Category: category, Priority: priority}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		slog.Int64("task_id", detail.Task.ID),
		slog.Int64("user_id", detail.User.ID))
	return detail, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*TaskDetail, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, NewTaskNotFoundError(id)
		}
		return nil, NewServiceError("get_task", "failed to retrieve task", err)
	}

	// The schema's foreign keys guarantee these resolve for a stored task.
	user, category, priority, err := s.resolveReferences(ctx,
		s.users, s.categories, s.priorities,
		task.UserID, task.CategoryID, task.PriorityID)
	if err != nil {
		return nil, err
	}

	return &TaskDetail{Task: task, User: user, Category: category, Priority: priority}, nil
}

func (s *taskServiceImpl) List(ctx context.Context) ([]*TaskDetail, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}

	// Load each relation table once and join in memory rather than issuing
	// three lookups per task.
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to list users", err)
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to list categories", err)
	}
	priorities, err := s.priorities.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to list priorities", err)
	}

	usersByID := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	categoriesByID := make(map[int64]*domain.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}
	prioritiesByID := make(map[int64]*domain.Priority, len(priorities))
	for _, p := range priorities {
		prioritiesByID[p.ID] = p
	}

	details := make([]*TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		detail := &TaskDetail{
			Task:     task,
			User:     usersByID[task.UserID],
			Category: categoriesByID[task.CategoryID],
			Priority: prioritiesByID[task.PriorityID],
		}
		if detail.User == nil || detail.Category == nil || detail.Priority == nil {
			s.logger.Error("task references a missing record",
				slog.Int64("task_id", task.ID),
				slog.Int64("user_id", task.UserID),
				slog.Int64("category_id", task.CategoryID),
				slog.Int64("priority_id", task.PriorityID))
			return nil, &ServiceError{
				Operation: "list_tasks",
				Message:   "task references a missing record",
			}
		}
		details = append(details, detail)
	}

	return details, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, id int64, input UpdateTaskInput) (*TaskDetail, error) {
	var detail *TaskDetail

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return NewTaskNotFoundError(id)
			}
			return NewServiceError("update_task", "failed to retrieve task", err)
		}

		user, category, priority, err := s.resolveReferences(ctx,
			s.users.WithTx(tx), s.categories.WithTx(tx), s.priorities.WithTx(tx),
			input.UserID, input.CategoryID, input.PriorityID)
		if err != nil {
			return err
		}

		// Status is preserved as stored; only UpdateStatus changes it.
		task.Title = input.Title
		task.Description = input.Description
		task.UserID = input.UserID
		task.CategoryID = input.CategoryID
		task.PriorityID = input.PriorityID

		if err := txTasks.Update(ctx, task); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return NewTaskNotFoundError(id)
			}
			s.logger.Error("failed to update task in transaction",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
			return NewServiceError("update_task", "failed to save task", err)
		}

		detail = &TaskDetail{Task: task, User: user, Category: category, Priority: priority}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated",
		slog.Int64("task_id", id),
		slog.String("status", string(detail.Task.Status)))
	return detail, nil
}

func (s *taskServiceImpl) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*TaskDetail, error) {
	var detail *TaskDetail

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return NewTaskNotFoundError(id)
			}
			return NewServiceError("update_task_status", "failed to retrieve task", err)
		}

		if err := task.UpdateStatus(status); err != nil {
			return NewServiceError("update_task_status", "invalid task status", err)
		}

		if err := txTasks.Update(ctx, task); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return NewTaskNotFoundError(id)
			}
			return NewServiceError("update_task_status", "failed to save task", err)
		}

		user, category, priority, err := s.resolveReferences(ctx,
			s.users.WithTx(tx), s.categories.WithTx(tx), s.priorities.WithTx(tx),
			task.UserID, task.CategoryID, task.PriorityID)
		if err != nil {
			return err
		}

		detail = &TaskDetail{Task: task, User: user, Category: category, Priority: priority}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task status updated",
		slog.Int64("task_id", id),
		slog.String("status", string(status)))
	return detail, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	exists, err := s.tasks.ExistsByID(ctx, id)
	if err != nil {
		return NewServiceError("delete_task", "failed to check task existence", err)
	}
	if !exists {
		return NewTaskNotFoundError(id)
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return NewTaskNotFoundError(id)
		}
		s.logger.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
