package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization tier of an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile maps an authenticated identity to its role.
// Exactly one record exists per identity; it is created lazily with the
// default role on first resolution.
type UserProfile struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AuthUserID uuid.UUID `json:"auth_user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Role       Role      `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
