package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task represents a task record owned by a single identity.
// OwnerID is set once at creation and never changed by any update.
// Tasks are hard-deleted: no soft-delete column.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:120;not null"`
	Description string     `json:"description" gorm:"size:2000;not null"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'todo';index"`
	OwnerID     uuid.UUID  `json:"owner_id" gorm:"type:char(36);not null;index:idx_tasks_owner_created,priority:1"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index:idx_tasks_owner_created,priority:2,sort:desc"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
