package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// MockTaskService is a mock implementation of TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, actor *model.Actor) ([]model.Task, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, actor *model.Actor, input service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, actor *model.Actor, id uuid.UUID, input service.UpdateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, actor *model.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func newTestContext(t *testing.T, method, target, body string, actor *model.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(ActorContextKey, actor)
	}
	return c, rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestTaskHandler_List(t *testing.T) {
	actor := &model.Actor{ID: uuid.New(), Role: model.RoleUser}
	tasks := []model.Task{{ID: uuid.New(), Title: "A", OwnerID: actor.ID}}

	t.Run("ok", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("List", mock.Anything, actor).Return(tasks, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(t, http.MethodGet, "/api/v1/tasks", "", actor)
		err := h.List(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got []model.Task
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("List", mock.Anything, (*model.Actor)(nil)).Return(nil, errors.ErrUnauthenticated)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodGet, "/api/v1/tasks", "", nil)
		err := h.List(c)

		assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
	})
}

func TestTaskHandler_Create(t *testing.T) {
	actor := &model.Actor{ID: uuid.New(), Role: model.RoleUser}

	t.Run("created", func(t *testing.T) {
		created := &model.Task{ID: uuid.New(), Title: "Buy milk", Status: model.TaskStatusTodo, OwnerID: actor.ID}
		mockSvc := new(MockTaskService)
		mockSvc.On("Create", mock.Anything, actor, service.CreateTaskInput{Title: "Buy milk"}).Return(created, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(t, http.MethodPost, "/api/v1/tasks", `{"title":"Buy milk"}`, actor)
		err := h.Create(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Create", mock.Anything, actor, service.CreateTaskInput{}).
			Return(nil, &errors.ValidationError{Fields: map[string]string{"title": "is required"}})
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodPost, "/api/v1/tasks", `{"title":""}`, actor)
		err := h.Create(c)

		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)

		resp, ok := he.Message.(errors.ErrorResponse)
		assert.True(t, ok)
		assert.Equal(t, "Validation failed", resp.Message)
		assert.Contains(t, resp.Errors, "title")
	})

	t.Run("malformed body", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodPost, "/api/v1/tasks", `{"title":`, actor)
		err := h.Create(c)

		assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	actor := &model.Actor{ID: uuid.New(), Role: model.RoleUser}
	taskID := uuid.New()

	setParam := func(c echo.Context, id string) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}

	t.Run("ok", func(t *testing.T) {
		title := "new title"
		updated := &model.Task{ID: taskID, Title: title, OwnerID: actor.ID}
		mockSvc := new(MockTaskService)
		mockSvc.On("Update", mock.Anything, actor, taskID, service.UpdateTaskInput{Title: &title}).Return(updated, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(t, http.MethodPatch, "/api/v1/tasks/"+taskID.String(), `{"title":"new title"}`, actor)
		setParam(c, taskID.String())
		err := h.Update(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Update", mock.Anything, actor, taskID, mock.Anything).Return(nil, errors.ErrForbidden)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodPatch, "/api/v1/tasks/"+taskID.String(), `{"status":"done"}`, actor)
		setParam(c, taskID.String())
		err := h.Update(c)

		assert.Equal(t, http.StatusForbidden, httpErrorCode(t, err))
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Update", mock.Anything, actor, taskID, mock.Anything).Return(nil, errors.ErrTaskNotFound)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodPatch, "/api/v1/tasks/"+taskID.String(), `{"status":"done"}`, actor)
		setParam(c, taskID.String())
		err := h.Update(c)

		assert.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
	})

	t.Run("malformed id", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodPatch, "/api/v1/tasks/not-a-uuid", `{"status":"done"}`, actor)
		setParam(c, "not-a-uuid")
		err := h.Update(c)

		assert.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
		mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	actor := &model.Actor{ID: uuid.New(), Role: model.RoleUser}
	taskID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Delete", mock.Anything, actor, taskID).Return(nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(t, http.MethodDelete, "/api/v1/tasks/"+taskID.String(), "", actor)
		c.SetParamNames("id")
		c.SetParamValues(taskID.String())
		err := h.Delete(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Task deleted successfully", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("repeat delete reports not found", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Delete", mock.Anything, actor, taskID).Return(errors.ErrTaskNotFound)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodDelete, "/api/v1/tasks/"+taskID.String(), "", actor)
		c.SetParamNames("id")
		c.SetParamValues(taskID.String())
		err := h.Delete(c)

		assert.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Delete", mock.Anything, actor, taskID).Return(errors.ErrForbidden)
		h := NewTaskHandler(mockSvc)

		c, _ := newTestContext(t, http.MethodDelete, "/api/v1/tasks/"+taskID.String(), "", actor)
		c.SetParamNames("id")
		c.SetParamValues(taskID.String())
		err := h.Delete(c)

		assert.Equal(t, http.StatusForbidden, httpErrorCode(t, err))
	})
}
