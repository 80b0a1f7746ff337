package model

import "github.com/google/uuid"

// Actor is the authenticated identity plus resolved role for one request.
// It is built fresh per request and never persisted or cached.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Role  Role      `json:"role"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
