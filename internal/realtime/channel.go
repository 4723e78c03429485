package realtime

import (
	"context"

	"github.com/google/uuid"

	"workspace-service/internal/domain"
)

// Envelope kinds pushed over realtime channels.
const (
	KindNotification  = "notification"
	KindAccessRevoked = "access_revoked"
	KindForceRedirect = "force_redirect"
)

// Envelope wraps every realtime message with a kind so clients can route
// control messages apart from plain notifications.
type Envelope struct {
	Kind          string               `json:"kind"`
	Notification  *domain.Notification `json:"notification,omitempty"`
	WorkspaceID   *uuid.UUID           `json:"workspaceId,omitempty"`
	RedirectURL   string               `json:"redirectUrl,omitempty"`
	Reason        string               `json:"reason,omitempty"`
	ExcludeUserID *uuid.UUID           `json:"excludeUserId,omitempty"`
}

// DeliveryChannel pushes realtime messages to connected clients. Delivery is
// best-effort: callers log failures and continue, persisted notifications
// remain the source of truth.
type DeliveryChannel interface {
	Push(ctx context.Context, userID uuid.UUID, notification *domain.Notification) error
	Broadcast(ctx context.Context, workspaceID uuid.UUID, notification *domain.Notification, excludeUserID *uuid.UUID) error
	RevokeAccess(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID, reason string) error
	ForceRedirect(ctx context.Context, userID uuid.UUID, url string) error
}
