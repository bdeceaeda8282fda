package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the progress state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrEmptyTaskUser     = errors.New("task user ID cannot be empty")
	ErrEmptyTaskCategory = errors.New("task category ID cannot be empty")
	ErrEmptyTaskPriority = errors.New("task priority ID cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task is the central entity of the tracker. Every task references exactly
// one User, one Category and one Priority by ID; the service layer confirms
// all three exist before a task is written.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      int64      `json:"userId"`
	CategoryID  int64      `json:"categoryId"`
	PriorityID  int64      `json:"priorityId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task referencing the given user, category and
// priority. The status always starts as PENDING regardless of caller input;
// ID and timestamps are assigned by the store on Create.
// Returns an error if validation fails.
func NewTask(title, description string, userID, categoryID, priorityID int64) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		UserID:      userID,
		CategoryID:  categoryID,
		PriorityID:  priorityID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.UserID <= 0 {
		return ErrEmptyTaskUser
	}

	if t.CategoryID <= 0 {
		return ErrEmptyTaskCategory
	}

	if t.PriorityID <= 0 {
		return ErrEmptyTaskPriority
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// UpdateStatus sets the task's status.
// Returns an error if the new status is not one of the defined values.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !IsValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}
