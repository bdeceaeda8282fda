package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

func newMockTaskStore(t *testing.T) (*TaskStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewTaskStore(db, nil), mock
}

func validTask() *domain.Task {
	return &domain.Task{
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      domain.TaskStatusPending,
		UserID:      1,
		CategoryID:  2,
		PriorityID:  3,
	}
}

func TestTaskStoreCreate(t *testing.T) {
	t.Run("assigns id and both timestamps", func(t *testing.T) {
		taskStore, mock := newMockTaskStore(t)

		mock.ExpectQuery("INSERT INTO tasks").
			WithArgs("Write report", "Quarterly numbers", domain.TaskStatusPending,
				int64(1), int64(2), int64(3), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		task := validTask()
		err := taskStore.Create(context.Background(), task)

		require.NoError(t, err)
		assert.Equal(t, int64(42), task.ID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt, "creation sets both timestamps to the same instant")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces foreign key violation", func(t *testing.T) {
		taskStore, mock := newMockTaskStore(t)

		mock.ExpectQuery("INSERT INTO tasks").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_user_id_fkey"})

		err := taskStore.Create(context.Background(), validTask())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing record")
	})
}

func TestTaskStoreGetByID(t *testing.T) {
	taskStore, mock := newMockTaskStore(t)
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)

	mock.ExpectQuery("SELECT id, title, description, status, user_id, category_id, priority_id, created_at, updated_at").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "status", "user_id", "category_id", "priority_id", "created_at", "updated_at",
		}).AddRow(int64(42), "Write report", "Quarterly numbers", "IN_PROGRESS", int64(1), int64(2), int64(3), createdAt, updatedAt))

	task, err := taskStore.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)
	assert.Equal(t, int64(1), task.UserID)
	assert.True(t, task.UpdatedAt.After(task.CreatedAt))
}

func TestTaskStoreGetByIDNotFound(t *testing.T) {
	taskStore, mock := newMockTaskStore(t)

	mock.ExpectQuery("SELECT id, title, description, status, user_id, category_id, priority_id, created_at, updated_at").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := taskStore.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreUpdate(t *testing.T) {
	t.Run("refreshes updated_at only", func(t *testing.T) {
		taskStore, mock := newMockTaskStore(t)

		task := validTask()
		task.ID = 42
		task.CreatedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		originalCreatedAt := task.CreatedAt

		mock.ExpectExec("UPDATE tasks").
			WithArgs("Write report", "Quarterly numbers", domain.TaskStatusPending,
				int64(1), int64(2), int64(3), sqlmock.AnyArg(), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := taskStore.Update(context.Background(), task)

		require.NoError(t, err)
		assert.Equal(t, originalCreatedAt, task.CreatedAt, "Update must never touch CreatedAt")
		assert.True(t, task.UpdatedAt.After(originalCreatedAt))
	})

	t.Run("zero rows affected means not found", func(t *testing.T) {
		taskStore, mock := newMockTaskStore(t)

		task := validTask()
		task.ID = 404

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := taskStore.Update(context.Background(), task)

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskStoreExistsByID(t *testing.T) {
	taskStore, mock := newMockTaskStore(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := taskStore.ExistsByID(context.Background(), 42)

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTaskStoreDelete(t *testing.T) {
	taskStore, mock := newMockTaskStore(t)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := taskStore.Delete(context.Background(), 404)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
