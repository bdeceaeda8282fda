// Package service contains the business logic of the tracker. Services sit
// between the HTTP handlers and the stores: they resolve references, enforce
// cross-entity rules and decide transaction boundaries.
package service

import (
	"errors"
	"fmt"

	"github.com/taskboard/taskboard-api/internal/store"
)

// NotFoundError reports that a referenced resource does not exist. The
// message format is part of the API contract and surfaces verbatim in error
// responses.
type NotFoundError struct {
	// Resource is the kind of record that was missing (e.g., "User", "Task").
	Resource string
	// ID is the identifier that failed to resolve.
	ID int64
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

// Unwrap ties NotFoundError into the store's not-found hierarchy so callers
// can classify it with store.IsNotFoundError.
func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}

// NewUserNotFoundError creates a NotFoundError for a missing user.
func NewUserNotFoundError(id int64) error {
	return &NotFoundError{Resource: "User", ID: id}
}

// NewCategoryNotFoundError creates a NotFoundError for a missing category.
func NewCategoryNotFoundError(id int64) error {
	return &NotFoundError{Resource: "Category", ID: id}
}

// NewPriorityNotFoundError creates a NotFoundError for a missing priority.
func NewPriorityNotFoundError(id int64) error {
	return &NotFoundError{Resource: "Priority", ID: id}
}

// NewTaskNotFoundError creates a NotFoundError for a missing task.
func NewTaskNotFoundError(id int64) error {
	return &NotFoundError{Resource: "Task", ID: id}
}

// ServiceError wraps errors from the service layer with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with operation context. Not-found errors pass
// through untouched so their messages reach the API boundary verbatim.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
