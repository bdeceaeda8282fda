package api

import (
	"net/http"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
)

// CreateTaskRequest represents the request body for creating a task. Status
// is deliberately absent: every new task starts as PENDING.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	UserID      int64  `json:"userId" validate:"required,gt=0"`
	CategoryID  int64  `json:"categoryId" validate:"required,gt=0"`
	PriorityID  int64  `json:"priorityId" validate:"required,gt=0"`
}

// UpdateTaskRequest represents the request body for replacing a task's
// fields. The status is managed exclusively through the status endpoint.
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	UserID      int64  `json:"userId" validate:"required,gt=0"`
	CategoryID  int64  `json:"categoryId" validate:"required,gt=0"`
	PriorityID  int64  `json:"priorityId" validate:"required,gt=0"`
}

// UpdateTaskStatusRequest represents the request body for changing only a
// task's status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS DONE"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles POST /api/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.taskService.Create(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskDetailToResponse(detail))
}

// Get handles GET /api/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskDetailToResponse(detail))
}

// List handles GET /api/tasks requests.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.taskService.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskDetailsToResponse(details))
}

// Update handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.taskService.Update(r.Context(), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskDetailToResponse(detail))
}

// UpdateStatus handles PUT /api/tasks/{id}/status requests.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.taskService.UpdateStatus(r.Context(), id, domain.TaskStatus(req.Status))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskDetailToResponse(detail))
}

// Delete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
