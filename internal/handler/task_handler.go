package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
	"taskboard/internal/service"
)

// TaskHandler handles task CRUD endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List godoc
// @Summary List tasks
// @Description Admins see every task; other users only their own. Newest first.
// @Tags tasks
// @Produce json
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor := ActorFromContext(c)

	tasks, err := h.taskService.List(c.Request().Context(), actor)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary Create a task
// @Description The created task is owned by the caller; any owner supplied in the body is ignored.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body service.CreateTaskInput true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor := ActorFromContext(c)

	var input service.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}

	task, err := h.taskService.Create(c.Request().Context(), actor, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary Update a task
// @Description Partial update; only provided fields change. Owner-or-admin only.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body service.UpdateTaskInput true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	actor := ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrTaskNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var input service.UpdateTaskInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}

	task, err := h.taskService.Update(c.Request().Context(), actor, id, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Description Permanently removes a task. Owner-or-admin only; a repeated delete reports 404.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor := ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrTaskNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.taskService.Delete(c.Request().Context(), actor, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Task deleted successfully",
	})
}
