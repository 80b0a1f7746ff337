package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CreateTaskInput is the request body for creating a task. The owner is
// never part of the payload: it is always taken from the acting identity.
type CreateTaskInput struct {
	Title       string           `json:"title" validate:"required,max=120"`
	Description string           `json:"description" validate:"omitempty,max=2000"`
	Status      model.TaskStatus `json:"status" validate:"omitempty,oneof=todo in_progress done"`
}

// UpdateTaskInput is the request body for a partial update. Nil fields are
// left untouched; id, owner and created_at can never be changed.
type UpdateTaskInput struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string           `json:"description" validate:"omitempty,max=2000"`
	Status      *model.TaskStatus `json:"status" validate:"omitempty,oneof=todo in_progress done"`
}

// TaskService exposes authorization-gated task operations. Every operation
// requires a resolved actor; each one validates, then authorizes, then
// mutates, so a failure at any step leaves the store untouched.
type TaskService interface {
	List(ctx context.Context, actor *model.Actor) ([]model.Task, error)
	Create(ctx context.Context, actor *model.Actor, input CreateTaskInput) (*model.Task, error)
	Update(ctx context.Context, actor *model.Actor, id uuid.UUID, input UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, actor *model.Actor, id uuid.UUID) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	validate *validator.Validate
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository, validate *validator.Validate) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		validate: validate,
	}
}

// List returns all tasks for admins, or the actor's own tasks otherwise,
// newest first.
func (s *taskService) List(ctx context.Context, actor *model.Actor) ([]model.Task, error) {
	if actor == nil {
		return nil, errors.ErrUnauthenticated
	}
	if actor.IsAdmin() {
		return s.taskRepo.ListAll(ctx)
	}
	return s.taskRepo.ListByOwner(ctx, actor.ID)
}

// Create validates the payload and persists a new task owned by the actor.
func (s *taskService) Create(ctx context.Context, actor *model.Actor, input CreateTaskInput) (*model.Task, error) {
	if actor == nil {
		return nil, errors.ErrUnauthenticated
	}

	if err := s.validate.Struct(&input); err != nil {
		return nil, errors.NewValidationError(err)
	}

	status := input.Status
	if status == "" {
		status = model.TaskStatusTodo
	}

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		OwnerID:     actor.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies a partial update to a task the actor may modify. Only the
// fields present in the payload are merged into the stored record.
func (s *taskService) Update(ctx context.Context, actor *model.Actor, id uuid.UUID, input UpdateTaskInput) (*model.Task, error) {
	if actor == nil {
		return nil, errors.ErrUnauthenticated
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if !CanAccess(actor, task, OpUpdate) {
		return nil, errors.ErrForbidden
	}

	if err := s.validate.Struct(&input); err != nil {
		return nil, errors.NewValidationError(err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete permanently removes a task the actor may delete. Deleting an id
// that no longer exists reports not-found, never silent success.
func (s *taskService) Delete(ctx context.Context, actor *model.Actor, id uuid.UUID) error {
	if actor == nil {
		return errors.ErrUnauthenticated
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}

	if !CanAccess(actor, task, OpDelete) {
		return errors.ErrForbidden
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
