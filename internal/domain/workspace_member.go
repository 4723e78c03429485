package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkspaceRole represents the permission tier of a member inside one workspace
type WorkspaceRole string

const (
	RoleOwner        WorkspaceRole = "owner"
	RoleCollaborator WorkspaceRole = "collaborator"
	RoleMember       WorkspaceRole = "member"
	RoleViewer       WorkspaceRole = "viewer"
)

// Valid reports whether the role is one of the known workspace roles.
func (r WorkspaceRole) Valid() bool {
	switch r {
	case RoleOwner, RoleCollaborator, RoleMember, RoleViewer:
		return true
	}
	return false
}

// WorkspaceMember represents a (user, workspace) membership edge.
// Unique per (userId, workspaceId); removed entirely when the user leaves.
type WorkspaceMember struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workspaceMemberId"`
	WorkspaceID uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:idx_member_user_workspace" json:"workspaceId"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:idx_member_user_workspace" json:"userId"`
	Role        WorkspaceRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt    time.Time     `gorm:"not null" json:"joinedAt"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updatedAt"`

	// Relations
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for WorkspaceMember
func (WorkspaceMember) TableName() string {
	return "workspace_members"
}

// MemberFilter narrows membership listings by role sets. Empty slices match all.
type MemberFilter struct {
	SystemRoles    []SystemRole
	WorkspaceRoles []WorkspaceRole
	ExcludeUserID  *uuid.UUID
}

// TransferOwnershipRequest represents the request to transfer workspace ownership
type TransferOwnershipRequest struct {
	NewOwnerID uuid.UUID `json:"newOwnerId" binding:"required"`
}

// RemoveMemberRequest represents the request to remove (kick) a member
type RemoveMemberRequest struct {
	Reason string `json:"reason,omitempty"`
}

// WorkspaceMemberResponse represents the workspace member response
type WorkspaceMemberResponse struct {
	WorkspaceMemberID uuid.UUID     `json:"workspaceMemberId"`
	WorkspaceID       uuid.UUID     `json:"workspaceId"`
	UserID            uuid.UUID     `json:"userId"`
	Role              WorkspaceRole `json:"role"`
	JoinedAt          time.Time     `json:"joinedAt"`
	UserName          string        `json:"userName,omitempty"`
	UserEmail         string        `json:"userEmail,omitempty"`
	SystemRole        SystemRole    `json:"systemRole,omitempty"`
}

// ToResponse converts WorkspaceMember to WorkspaceMemberResponse
func (m *WorkspaceMember) ToResponse() WorkspaceMemberResponse {
	resp := WorkspaceMemberResponse{
		WorkspaceMemberID: m.ID,
		WorkspaceID:       m.WorkspaceID,
		UserID:            m.UserID,
		Role:              m.Role,
		JoinedAt:          m.JoinedAt,
	}
	if m.User != nil {
		resp.UserName = m.User.Name
		resp.UserEmail = m.User.Email
		resp.SystemRole = m.User.SystemRole
	}
	return resp
}
