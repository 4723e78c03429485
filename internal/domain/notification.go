package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationType is the persisted type discriminator of a notification row
type NotificationType string

const (
	TypeWorkspaceInvite    NotificationType = "workspace_invite"
	TypeSurveyResponse     NotificationType = "survey_response"
	TypeAnalysisCompleted  NotificationType = "analysis_completed"
	TypeRoleRequest        NotificationType = "role_request"
	TypeSystemAlert        NotificationType = "system_alert"
	TypeDeadlineReminder   NotificationType = "deadline_reminder"
	TypeRoleChangeApproved NotificationType = "role_change_approved"
)

// Priority of a notification
type Priority string

const (
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Notification represents a delivered or queued message for one user.
// Once IsArchived is set the row is terminal and no further mutation is applied.
type Notification struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notificationId"`
	UserID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	Type               NotificationType  `gorm:"type:varchar(40);not null" json:"type"`
	Title              string            `gorm:"not null" json:"title"`
	Message            string            `json:"message"`
	ActionURL          string            `json:"actionUrl"`
	Priority           Priority          `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	IsRead             bool              `gorm:"default:false;index" json:"isRead"`
	IsArchived         bool              `gorm:"default:false" json:"isArchived"`
	ReadAt             *time.Time        `json:"readAt,omitempty"`
	ActorID            *uuid.UUID        `gorm:"type:uuid" json:"actorId,omitempty"`
	RelatedWorkspaceID *uuid.UUID        `gorm:"type:uuid;index" json:"relatedWorkspaceId,omitempty"`
	RelatedSurveyID    *uuid.UUID        `gorm:"type:uuid;index" json:"relatedSurveyId,omitempty"`
	Metadata           datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt          time.Time         `gorm:"not null;index" json:"createdAt"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// NotificationFilter narrows notification listings
type NotificationFilter struct {
	Type            *NotificationType
	UnreadOnly      bool
	IncludeArchived bool
}

// PaginatedNotifications is a page of notifications plus counts
type PaginatedNotifications struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	UnreadCount   int64          `json:"unreadCount"`
}

// ActionRequest is the body of the interactive notification action endpoint
type ActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// ActionResult is the outcome of an interactive notification action
type ActionResult struct {
	Approved *bool          `json:"approved,omitempty"`
	Accepted *bool          `json:"accepted,omitempty"`
	NewRole  *WorkspaceRole `json:"newRole,omitempty"`
}
