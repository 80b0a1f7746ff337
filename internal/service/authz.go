package service

import "taskboard/internal/model"

// Operation is an access-controlled action on an existing task.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// CanAccess is the single authorization rule for existing tasks: admins may
// do anything, everyone else only touches their own records. Pure function,
// no side effects; creation has no target task and is gated solely by
// authentication.
func CanAccess(actor *model.Actor, task *model.Task, op Operation) bool {
	if actor == nil || task == nil {
		return false
	}
	switch op {
	case OpRead, OpUpdate, OpDelete:
		return actor.IsAdmin() || task.OwnerID == actor.ID
	}
	return false
}
