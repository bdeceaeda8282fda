package api

import (
	"net/http"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/service"
)

// PriorityRequest represents the request body for creating or updating a
// priority.
type PriorityRequest struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"required,gt=0"`
}

// PriorityHandler handles priority-related HTTP requests.
type PriorityHandler struct {
	priorityService service.PriorityService
}

// NewPriorityHandler creates a new PriorityHandler.
func NewPriorityHandler(priorityService service.PriorityService) *PriorityHandler {
	return &PriorityHandler{priorityService: priorityService}
}

// Create handles POST /api/priorities requests.
func (h *PriorityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PriorityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	priority, err := h.priorityService.Create(r.Context(), req.Name, req.Level)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, priorityToResponse(priority))
}

// Get handles GET /api/priorities/{id} requests.
func (h *PriorityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	priority, err := h.priorityService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, priorityToResponse(priority))
}

// List handles GET /api/priorities requests.
func (h *PriorityHandler) List(w http.ResponseWriter, r *http.Request) {
	priorities, err := h.priorityService.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prioritiesToResponse(priorities))
}

// Update handles PUT /api/priorities/{id} requests.
func (h *PriorityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req PriorityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	priority, err := h.priorityService.Update(r.Context(), id, req.Name, req.Level)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, priorityToResponse(priority))
}

// Delete handles DELETE /api/priorities/{id} requests.
func (h *PriorityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.priorityService.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
