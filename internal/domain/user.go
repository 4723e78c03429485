package domain

import (
	"time"

	"github.com/google/uuid"
)

// SystemRole represents the account-wide permission tier of a user,
// independent of any workspace membership.
type SystemRole string

const (
	SystemRoleAdmin       SystemRole = "admin"
	SystemRoleCreator     SystemRole = "creator"
	SystemRoleParticipant SystemRole = "participant"
)

// Valid reports whether the role is one of the known system roles.
func (r SystemRole) Valid() bool {
	switch r {
	case SystemRoleAdmin, SystemRoleCreator, SystemRoleParticipant:
		return true
	}
	return false
}

// User represents an account
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"userId"`
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	Name       string     `gorm:"not null;default:''" json:"name"`
	SystemRole SystemRole `gorm:"type:varchar(20);not null;default:'participant'" json:"systemRole"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`
	CreatedAt  time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updatedAt"`

	// Relations
	Memberships []WorkspaceMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserResponse represents the user response
type UserResponse struct {
	UserID     uuid.UUID  `json:"userId"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	SystemRole SystemRole `json:"systemRole"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		SystemRole: u.SystemRole,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}
