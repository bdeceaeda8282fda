package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
)

// stubTaskService returns canned values so handler behavior can be tested in
// isolation from the service layer.
type stubTaskService struct {
	detail  *service.TaskDetail
	details []*service.TaskDetail
	err     error
}

func (s *stubTaskService) Create(_ context.Context, _ service.CreateTaskInput) (*service.TaskDetail, error) {
	return s.detail, s.err
}

func (s *stubTaskService) Get(_ context.Context, _ int64) (*service.TaskDetail, error) {
	return s.detail, s.err
}

func (s *stubTaskService) List(_ context.Context) ([]*service.TaskDetail, error) {
	return s.details, s.err
}

func (s *stubTaskService) Update(_ context.Context, _ int64, _ service.UpdateTaskInput) (*service.TaskDetail, error) {
	return s.detail, s.err
}

func (s *stubTaskService) UpdateStatus(_ context.Context, _ int64, _ domain.TaskStatus) (*service.TaskDetail, error) {
	return s.detail, s.err
}

func (s *stubTaskService) Delete(_ context.Context, _ int64) error {
	return s.err
}

func newTaskRouter(svc service.TaskService) http.Handler {
	handler := NewTaskHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Put("/{id}/status", handler.UpdateStatus)
		r.Delete("/{id}", handler.Delete)
	})

	return r
}

func sampleDetail() *service.TaskDetail {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &service.TaskDetail{
		Task: &domain.Task{
			ID:         42,
			Title:      "Write report",
			Status:     domain.TaskStatusPending,
			UserID:     1,
			CategoryID: 2,
			PriorityID: 3,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		User:     &domain.User{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", CreatedAt: now},
		Category: &domain.Category{ID: 2, Name: "Work"},
		Priority: &domain.Priority{ID: 3, Name: "High", Level: 3},
	}
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Run("returns 201 with the nested aggregate", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{detail: sampleDetail()})

		body := bytes.NewBufferString(`{"title":"Write report","userId":1,"categoryId":2,"priorityId":3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "Ada Lovelace", resp.User.Name)
		assert.Equal(t, 3, resp.Priority.Level)
	})

	t.Run("returns 404 with the verbatim message for a missing reference", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{err: service.NewUserNotFoundError(99)})

		body := bytes.NewBufferString(`{"title":"Write report","userId":99,"categoryId":2,"priorityId":3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "Not Found", resp.Error)
		assert.Equal(t, "User not found with id: 99", resp.Message)
		assert.Equal(t, "/api/tasks", resp.Path)
		assert.False(t, resp.Timestamp.IsZero())
	})

	t.Run("returns 400 for a body without a title", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{detail: sampleDetail()})

		body := bytes.NewBufferString(`{"userId":1,"categoryId":2,"priorityId":3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 500 for unexpected service errors", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{err: errors.New("connection refused")})

		body := bytes.NewBufferString(`{"title":"Write report","userId":1,"categoryId":2,"priorityId":3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Internal Server Error", resp.Error)
		assert.Equal(t, "connection refused", resp.Message)
	})
}

func TestTaskHandlerGet(t *testing.T) {
	t.Run("returns 400 for a non-numeric id", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{detail: sampleDetail()})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 404 for a missing task", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{err: service.NewTaskNotFoundError(404)})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/404", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Task not found with id: 404", resp.Message)
	})
}

func TestTaskHandlerList(t *testing.T) {
	router := newTaskRouter(&stubTaskService{details: []*service.TaskDetail{sampleDetail()}})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(42), resp[0].ID)
}

func TestTaskHandlerUpdateStatus(t *testing.T) {
	t.Run("returns 200 with the updated task", func(t *testing.T) {
		detail := sampleDetail()
		detail.Task.Status = domain.TaskStatusDone
		router := newTaskRouter(&stubTaskService{detail: detail})

		body := bytes.NewBufferString(`{"status":"DONE"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/42/status", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "DONE", resp.Status)
	})

	t.Run("rejects an unknown status before calling the service", func(t *testing.T) {
		router := newTaskRouter(&stubTaskService{err: errors.New("must not be called")})

		body := bytes.NewBufferString(`{"status":"ARCHIVED"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/42/status", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	router := newTaskRouter(&stubTaskService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
