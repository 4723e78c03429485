package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace represents a collaboration container.
// A workspace with at least one member must always retain at least one
// membership with the owner role; the leave service enforces this.
type Workspace struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workspaceId"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"ownerId"`
	Name        string     `gorm:"not null" json:"name"`
	Description *string    `json:"description,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	// Relations
	Owner   *User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceResponse represents the workspace response
type WorkspaceResponse struct {
	WorkspaceID uuid.UUID `json:"workspaceId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse converts Workspace to WorkspaceResponse
func (w *Workspace) ToResponse() WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID: w.ID,
		OwnerID:     w.OwnerID,
		Name:        w.Name,
		Description: w.Description,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
	}
}
