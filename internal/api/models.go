// Package api contains the HTTP handlers for the tracker's REST surface.
package api

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
)

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryResponse represents the response data for a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PriorityResponse represents the response data for a priority.
type PriorityResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// TaskResponse represents the response data for a task. The referenced user,
// category and priority are embedded in full rather than as bare IDs.
type TaskResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	User        UserResponse     `json:"user"`
	Category    CategoryResponse `json:"category"`
	Priority    PriorityResponse `json:"priority"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func categoryToResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

func priorityToResponse(priority *domain.Priority) PriorityResponse {
	return PriorityResponse{
		ID:    priority.ID,
		Name:  priority.Name,
		Level: priority.Level,
	}
}

func taskDetailToResponse(detail *service.TaskDetail) TaskResponse {
	return TaskResponse{
		ID:          detail.Task.ID,
		Title:       detail.Task.Title,
		Description: detail.Task.Description,
		Status:      string(detail.Task.Status),
		User:        userToResponse(detail.User),
		Category:    categoryToResponse(detail.Category),
		Priority:    priorityToResponse(detail.Priority),
		CreatedAt:   detail.Task.CreatedAt,
		UpdatedAt:   detail.Task.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userToResponse(user))
	}
	return responses
}

func categoriesToResponse(categories []*domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, categoryToResponse(category))
	}
	return responses
}

func prioritiesToResponse(priorities []*domain.Priority) []PriorityResponse {
	responses := make([]PriorityResponse, 0, len(priorities))
	for _, priority := range priorities {
		responses = append(responses, priorityToResponse(priority))
	}
	return responses
}

func taskDetailsToResponse(details []*service.TaskDetail) []TaskResponse {
	responses := make([]TaskResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, taskDetailToResponse(detail))
	}
	return responses
}
