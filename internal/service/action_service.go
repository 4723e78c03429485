package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-service/internal/domain"
	"workspace-service/internal/repository"
)

// ActionService executes the interactive actions carried by notifications:
// role request approval and workspace invite acceptance.
type ActionService struct {
	notifRepo  repository.NotificationRepository
	memberRepo repository.WorkspaceMemberRepository
	dispatcher *DispatchService
	logger     *zap.Logger
}

func NewActionService(
	notifRepo repository.NotificationRepository,
	memberRepo repository.WorkspaceMemberRepository,
	dispatcher *DispatchService,
	logger *zap.Logger,
) *ActionService {
	return &ActionService{
		notifRepo:  notifRepo,
		memberRepo: memberRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// HandleAction runs the requested action and records it on the notification.
// The notification is marked read with the action stamped into metadata.
func (s *ActionService) HandleAction(ctx context.Context, notificationID, userID uuid.UUID, action string) (*domain.ActionResult, error) {
	notification, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotificationNotFoundError{NotificationID: notificationID}
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, &domain.UnauthorizedActionError{NotificationID: notificationID, UserID: userID}
	}

	var result *domain.ActionResult
	switch notification.Type {
	case domain.TypeRoleRequest:
		result, err = s.handleRoleRequest(ctx, notification, action, userID)
	case domain.TypeWorkspaceInvite:
		result, err = s.handleWorkspaceInvite(ctx, notification, action, userID)
	default:
		return nil, &domain.UnsupportedActionForTypeError{Type: notification.Type, Action: action}
	}
	if err != nil {
		return nil, err
	}

	s.recordAction(ctx, notification, action, userID)
	return result, nil
}

func (s *ActionService) handleRoleRequest(ctx context.Context, notification *domain.Notification, action string, actorID uuid.UUID) (*domain.ActionResult, error) {
	if notification.RelatedWorkspaceID == nil {
		return nil, fmt.Errorf("role request notification %s has no workspace", notification.ID)
	}
	workspaceID := *notification.RelatedWorkspaceID

	// Only a current owner may decide a role request.
	actor, err := s.memberRepo.FindMembership(ctx, workspaceID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.UnauthorizedActionError{NotificationID: notification.ID, UserID: actorID}
		}
		return nil, err
	}
	if actor.Role != domain.RoleOwner {
		return nil, &domain.UnauthorizedActionError{NotificationID: notification.ID, UserID: actorID}
	}

	switch action {
	case domain.ActionApproveRoleRequest:
		requesterID, err := metadataUUID(notification, "requesterId")
		if err != nil {
			return nil, err
		}
		requestedRole, err := metadataRole(notification, "requestedRole")
		if err != nil {
			return nil, err
		}

		if err := s.memberRepo.UpdateRole(ctx, workspaceID, requesterID, requestedRole); err != nil {
			return nil, err
		}

		if _, err := s.dispatcher.Dispatch(ctx, domain.DispatchInput{
			EventType:    domain.EventRoleChangeApproved,
			WorkspaceID:  &workspaceID,
			TargetUserID: &requesterID,
			ActorID:      &actorID,
			Title:        "Role change approved",
			Message:      fmt.Sprintf("Your role change to %s has been approved", requestedRole),
			Metadata:     map[string]any{"newRole": string(requestedRole)},
		}); err != nil {
			s.logger.Error("failed to dispatch role change confirmation",
				zap.String("requesterId", requesterID.String()),
				zap.Error(err),
			)
		}

		s.logger.Info("role request approved",
			zap.String("workspaceId", workspaceID.String()),
			zap.String("requesterId", requesterID.String()),
			zap.String("newRole", string(requestedRole)),
		)

		approved := true
		return &domain.ActionResult{Approved: &approved, NewRole: &requestedRole}, nil

	case domain.ActionRejectRoleRequest:
		approved := false
		return &domain.ActionResult{Approved: &approved}, nil

	default:
		return nil, &domain.UnsupportedActionForTypeError{Type: notification.Type, Action: action}
	}
}

func (s *ActionService) handleWorkspaceInvite(ctx context.Context, notification *domain.Notification, action string, userID uuid.UUID) (*domain.ActionResult, error) {
	if notification.RelatedWorkspaceID == nil {
		return nil, fmt.Errorf("invite notification %s has no workspace", notification.ID)
	}
	workspaceID := *notification.RelatedWorkspaceID

	switch action {
	case domain.ActionAcceptInvite:
		role := domain.RoleMember
		if r, err := metadataRole(notification, "role"); err == nil {
			role = r
		}

		if err := s.memberRepo.Create(ctx, &domain.WorkspaceMember{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			UserID:      userID,
			Role:        role,
			JoinedAt:    time.Now(),
		}); err != nil {
			return nil, err
		}

		s.logger.Info("workspace invitation accepted",
			zap.String("workspaceId", workspaceID.String()),
			zap.String("userId", userID.String()),
			zap.String("role", string(role)),
		)

		accepted := true
		return &domain.ActionResult{Accepted: &accepted, NewRole: &role}, nil

	case domain.ActionRejectInvite:
		accepted := false
		return &domain.ActionResult{Accepted: &accepted}, nil

	default:
		return nil, &domain.UnsupportedActionForTypeError{Type: notification.Type, Action: action}
	}
}

// recordAction marks the notification read and stamps the taken action into
// metadata. Best-effort: the action itself already succeeded.
func (s *ActionService) recordAction(ctx context.Context, notification *domain.Notification, action string, userID uuid.UUID) {
	metadata := notification.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["actionTaken"] = action
	metadata["actionTimestamp"] = time.Now().Format(time.RFC3339)

	if err := s.notifRepo.UpdateMetadata(ctx, notification.ID, metadata); err != nil {
		s.logger.Warn("failed to record notification action",
			zap.String("notificationId", notification.ID.String()),
			zap.Error(err),
		)
	}
	if _, err := s.notifRepo.MarkAsRead(ctx, notification.ID, userID); err != nil {
		s.logger.Warn("failed to mark actioned notification read",
			zap.String("notificationId", notification.ID.String()),
			zap.Error(err),
		)
	}
}

func metadataUUID(notification *domain.Notification, key string) (uuid.UUID, error) {
	raw, ok := notification.Metadata[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("notification %s metadata missing %q", notification.ID, key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("notification %s metadata %q: %w", notification.ID, key, err)
	}
	return id, nil
}

func metadataRole(notification *domain.Notification, key string) (domain.WorkspaceRole, error) {
	raw, ok := notification.Metadata[key].(string)
	if !ok {
		return "", fmt.Errorf("notification %s metadata missing %q", notification.ID, key)
	}
	role := domain.WorkspaceRole(raw)
	if !role.Valid() {
		return "", fmt.Errorf("notification %s metadata %q: invalid role %q", notification.ID, key, raw)
	}
	return role, nil
}
