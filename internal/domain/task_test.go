package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("valid task starts as pending", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("Write report", "Quarterly numbers", 1, 2, 3)
		require.NoError(t, err)

		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, int64(1), task.UserID)
		assert.Equal(t, int64(2), task.CategoryID)
		assert.Equal(t, int64(3), task.PriorityID)
		assert.Zero(t, task.ID, "ID is assigned by the store, not the constructor")
		assert.True(t, task.CreatedAt.IsZero(), "CreatedAt is assigned by the store")
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			title      string
			userID     int64
			categoryID int64
			priorityID int64
			wantErr    error
		}{
			{"empty title", "", 1, 1, 1, domain.ErrEmptyTaskTitle},
			{"missing user", "t", 0, 1, 1, domain.ErrEmptyTaskUser},
			{"missing category", "t", 1, 0, 1, domain.ErrEmptyTaskCategory},
			{"missing priority", "t", 1, 1, -5, domain.ErrEmptyTaskPriority},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := domain.NewTask(tt.title, "", tt.userID, tt.categoryID, tt.priorityID)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestTaskUpdateStatus(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask("Ship release", "", 1, 1, 1)
	require.NoError(t, err)

	require.NoError(t, task.UpdateStatus(domain.TaskStatusInProgress))
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)

	err = task.UpdateStatus(domain.TaskStatus("ARCHIVED"))
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status, "failed update must not change status")
}

func TestIsValidTaskStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.IsValidTaskStatus(domain.TaskStatusPending))
	assert.True(t, domain.IsValidTaskStatus(domain.TaskStatusInProgress))
	assert.True(t, domain.IsValidTaskStatus(domain.TaskStatusDone))
	assert.False(t, domain.IsValidTaskStatus("pending"), "status values are case sensitive")
	assert.False(t, domain.IsValidTaskStatus(""))
}
