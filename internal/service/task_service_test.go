package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// The fakes below keep everything in memory and ignore the transaction: WithTx
// returns the same instance, so a sqlmock database provides the Begin/Commit
// expectations while the fakes provide the data.

type fakeUserStore struct {
	users   map[int64]*domain.User
	nextID  int64
	getByID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.getByID++
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore { return f }

type fakeCategoryStore struct {
	categories map[int64]*domain.Category
	nextID     int64
	getByID    int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[int64]*domain.Category), nextID: 1}
}

func (f *fakeCategoryStore) Create(_ context.Context, category *domain.Category) error {
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	f.getByID++
	category, ok := f.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryStore) List(_ context.Context) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (f *fakeCategoryStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *domain.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryStore) WithTx(_ *sql.Tx) store.CategoryStore { return f }

type fakePriorityStore struct {
	priorities map[int64]*domain.Priority
	nextID     int64
	getByID    int
}

func newFakePriorityStore() *fakePriorityStore {
	return &fakePriorityStore{priorities: make(map[int64]*domain.Priority), nextID: 1}
}

func (f *fakePriorityStore) Create(_ context.Context, priority *domain.Priority) error {
	priority.ID = f.nextID
	f.nextID++
	f.priorities[priority.ID] = priority
	return nil
}

func (f *fakePriorityStore) GetByID(_ context.Context, id int64) (*domain.Priority, error) {
	f.getByID++
	priority, ok := f.priorities[id]
	if !ok {
		return nil, store.ErrPriorityNotFound
	}
	copied := *priority
	return &copied, nil
}

func (f *fakePriorityStore) List(_ context.Context) ([]*domain.Priority, error) {
	priorities := make([]*domain.Priority, 0, len(f.priorities))
	for _, p := range f.priorities {
		priorities = append(priorities, p)
	}
	return priorities, nil
}

func (f *fakePriorityStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.priorities[id]
	return ok, nil
}

func (f *fakePriorityStore) Update(_ context.Context, priority *domain.Priority) error {
	if _, ok := f.priorities[priority.ID]; !ok {
		return store.ErrPriorityNotFound
	}
	f.priorities[priority.ID] = priority
	return nil
}

func (f *fakePriorityStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.priorities[id]; !ok {
		return store.ErrPriorityNotFound
	}
	delete(f.priorities, id)
	return nil
}

func (f *fakePriorityStore) WithTx(_ *sql.Tx) store.PriorityStore { return f }

type fakeTaskStore struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func (f *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	task.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskStore) List(_ context.Context) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (f *fakeTaskStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.tasks[id]
	return ok, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) WithTx(_ *sql.Tx) store.TaskStore { return f }

type taskServiceFixture struct {
	service    TaskService
	mock       sqlmock.Sqlmock
	tasks      *fakeTaskStore
	users      *fakeUserStore
	categories *fakeCategoryStore
	priorities *fakePriorityStore
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &taskServiceFixture{
		mock:       mock,
		tasks:      newFakeTaskStore(),
		users:      newFakeUserStore(),
		categories: newFakeCategoryStore(),
		priorities: newFakePriorityStore(),
	}

	svc, err := NewTaskService(db, f.tasks, f.users, f.categories, f.priorities, nil)
	require.NoError(t, err)
	f.service = svc

	return f
}

// seed inserts one user, category and priority and returns their IDs.
func (f *taskServiceFixture) seed(t *testing.T) (int64, int64, int64) {
	t.Helper()

	ctx := context.Background()
	user := &domain.User{Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, f.users.Create(ctx, user))
	category := &domain.Category{Name: "Work", Description: "Office tasks"}
	require.NoError(t, f.categories.Create(ctx, category))
	priority := &domain.Priority{Name: "High", Level: 3}
	require.NoError(t, f.priorities.Create(ctx, priority))

	return user.ID, category.ID, priority.ID
}

func TestTaskServiceCreate(t *testing.T) {
	t.Run("persists a pending task with resolved references", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, categoryID, priorityID := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		detail, err := f.service.Create(context.Background(), CreateTaskInput{
			Title:       "Write report",
			Description: "Quarterly numbers",
			UserID:      userID,
			CategoryID:  categoryID,
			PriorityID:  priorityID,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, detail.Task.Status, "new tasks always start as PENDING")
		assert.NotZero(t, detail.Task.ID)
		assert.Equal(t, "Ada Lovelace", detail.User.Name)
		assert.Equal(t, "Work", detail.Category.Name)
		assert.Equal(t, 3, detail.Priority.Level)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("reports the missing user first when several references are bad", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.service.Create(context.Background(), CreateTaskInput{
			Title:      "Write report",
			UserID:     99,
			CategoryID: 88,
			PriorityID: 77,
		})

		require.Error(t, err)
		assert.Equal(t, "User not found with id: 99", err.Error())
		assert.True(t, store.IsNotFoundError(err))
		assert.Zero(t, f.categories.getByID, "category must not be resolved after the user check fails")
		assert.Zero(t, f.priorities.getByID)
		assert.Empty(t, f.tasks.tasks, "nothing is persisted when a reference is missing")
	})

	t.Run("reports the missing category when the user resolves", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, _, _ := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.service.Create(context.Background(), CreateTaskInput{
			Title:      "Write report",
			UserID:     userID,
			CategoryID: 88,
			PriorityID: 77,
		})

		require.Error(t, err)
		assert.Equal(t, "Category not found with id: 88", err.Error())
		assert.Zero(t, f.priorities.getByID, "priority must not be resolved after the category check fails")
	})

	t.Run("reports the missing priority last", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, categoryID, _ := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.service.Create(context.Background(), CreateTaskInput{
			Title:      "Write report",
			UserID:     userID,
			CategoryID: categoryID,
			PriorityID: 77,
		})

		require.Error(t, err)
		assert.Equal(t, "Priority not found with id: 77", err.Error())
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Run("replaces fields and revalidates references", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, categoryID, priorityID := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		created, err := f.service.Create(context.Background(), CreateTaskInput{
			Title: "Write report", UserID: userID, CategoryID: categoryID, PriorityID: priorityID,
		})
		require.NoError(t, err)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		detail, err := f.service.Update(context.Background(), created.Task.ID, UpdateTaskInput{
			Title:       "Write final report",
			Description: "With charts",
			UserID:      userID,
			CategoryID:  categoryID,
			PriorityID:  priorityID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Write final report", detail.Task.Title)
		assert.Equal(t, domain.TaskStatusPending, detail.Task.Status, "Update must not change the status")
	})

	t.Run("preserves a status set through UpdateStatus", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, categoryID, priorityID := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		created, err := f.service.Create(context.Background(), CreateTaskInput{
			Title: "Write report", UserID: userID, CategoryID: categoryID, PriorityID: priorityID,
		})
		require.NoError(t, err)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		_, err = f.service.UpdateStatus(context.Background(), created.Task.ID, domain.TaskStatusDone)
		require.NoError(t, err)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		detail, err := f.service.Update(context.Background(), created.Task.ID, UpdateTaskInput{
			Title:      "Write final report",
			UserID:     userID,
			CategoryID: categoryID,
			PriorityID: priorityID,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, detail.Task.Status, "status set to DONE must survive a field update")
	})

	t.Run("unknown task yields the task not-found message", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
		_, err := f.service.Update(context.Background(), 404, UpdateTaskInput{
			Title: "x", UserID: 1, CategoryID: 1, PriorityID: 1,
		})

		require.Error(t, err)
		assert.Equal(t, "Task not found with id: 404", err.Error())
	})
}

func TestTaskServiceUpdateStatus(t *testing.T) {
	f := newTaskServiceFixture(t)
	userID, categoryID, priorityID := f.seed(t)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	created, err := f.service.Create(context.Background(), CreateTaskInput{
		Title: "Write report", UserID: userID, CategoryID: categoryID, PriorityID: priorityID,
	})
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	detail, err := f.service.UpdateStatus(context.Background(), created.Task.ID, domain.TaskStatusDone)

	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, detail.Task.Status)

	stored, err := f.tasks.GetByID(context.Background(), created.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, stored.Status)
}

func TestTaskServiceGet(t *testing.T) {
	t.Run("returns the aggregate", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, categoryID, priorityID := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		created, err := f.service.Create(context.Background(), CreateTaskInput{
			Title: "Write report", UserID: userID, CategoryID: categoryID, PriorityID: priorityID,
		})
		require.NoError(t, err)

		detail, err := f.service.Get(context.Background(), created.Task.ID)

		require.NoError(t, err)
		assert.Equal(t, created.Task.ID, detail.Task.ID)
		assert.Equal(t, "ada@example.com", detail.User.Email)
	})

	t.Run("unknown id yields the task not-found message", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		_, err := f.service.Get(context.Background(), 404)

		require.Error(t, err)
		assert.Equal(t, "Task not found with id: 404", err.Error())
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestTaskServiceList(t *testing.T) {
	f := newTaskServiceFixture(t)
	userID, categoryID, priorityID := f.seed(t)

	for i := 0; i < 2; i++ {
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		_, err := f.service.Create(context.Background(), CreateTaskInput{
			Title: "Write report", UserID: userID, CategoryID: categoryID, PriorityID: priorityID,
		})
		require.NoError(t, err)
	}

	details, err := f.service.List(context.Background())

	require.NoError(t, err)
	require.Len(t, details, 2)
	for _, detail := range details {
		assert.NotNil(t, detail.User)
		assert.NotNil(t, detail.Category)
		assert.NotNil(t, detail.Priority)
	}
}

func TestTaskServiceDelete(t *testing.T) {
	t.Run("removes an existing task", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		userID, categoryID, priorityID := f.seed(t)

		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		created, err := f.service.Create(context.Background(), CreateTaskInput{
			Title: "Write report", UserID: userID, CategoryID: categoryID, PriorityID: priorityID,
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(context.Background(), created.Task.ID))
		assert.Empty(t, f.tasks.tasks)
	})

	t.Run("unknown id yields the task not-found message", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		err := f.service.Delete(context.Background(), 5)

		require.Error(t, err)
		assert.Equal(t, "Task not found with id: 5", err.Error())
	})
}
