package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-service/internal/domain"
	"workspace-service/internal/repository"
)

// LeaveService implements the membership lifecycle: role-aware leave,
// ownership transfer and member removal. Survey data is never touched;
// only memberships and notifications change.
type LeaveService struct {
	memberRepo    repository.WorkspaceMemberRepository
	workspaceRepo repository.WorkspaceRepository
	surveyRepo    repository.SurveyRepository
	notifRepo     repository.NotificationRepository
	dispatcher    *DispatchService
	logger        *zap.Logger
}

func NewLeaveService(
	memberRepo repository.WorkspaceMemberRepository,
	workspaceRepo repository.WorkspaceRepository,
	surveyRepo repository.SurveyRepository,
	notifRepo repository.NotificationRepository,
	dispatcher *DispatchService,
	logger *zap.Logger,
) *LeaveService {
	return &LeaveService{
		memberRepo:    memberRepo,
		workspaceRepo: workspaceRepo,
		surveyRepo:    surveyRepo,
		notifRepo:     notifRepo,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// Leave removes the user from the workspace according to their scenario.
func (s *LeaveService) Leave(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.LeaveResult, error) {
	membership, err := s.memberRepo.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotMemberError{UserID: userID, WorkspaceID: workspaceID}
		}
		return nil, err
	}

	systemRole := membership.User.SystemRole
	workspaceRole := membership.Role

	scenario, err := domain.ScenarioFor(systemRole, workspaceRole)
	if err != nil {
		return nil, err
	}

	var promotedUserID *uuid.UUID
	if workspaceRole == domain.RoleOwner {
		promotedUserID, err = s.removeOwner(ctx, userID, workspaceID, systemRole)
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.memberRepo.Delete(ctx, workspaceID, userID); err != nil {
			return nil, err
		}
	}

	s.cleanupUnreadNotifications(ctx, userID, workspaceID)

	result := &domain.LeaveResult{
		Success:        true,
		Message:        scenario.Message,
		DataIntegrity:  s.formatDataIntegrity(ctx, scenario, userID, workspaceID),
		AccessChanges:  scenario.AccessChange,
		NextAction:     scenario.NextAction,
		PromotedUserID: promotedUserID,
	}

	s.logger.Info("user left workspace",
		zap.String("userId", userID.String()),
		zap.String("workspaceId", workspaceID.String()),
		zap.String("scenario", domain.ScenarioKey{SystemRole: systemRole, WorkspaceRole: workspaceRole}.String()),
	)

	return result, nil
}

// removeOwner handles the owner-specific leave paths. Admins auto-promote
// the longest-tenured collaborator when they are the sole owner; everyone
// else must transfer ownership explicitly first.
func (s *LeaveService) removeOwner(ctx context.Context, userID, workspaceID uuid.UUID, systemRole domain.SystemRole) (*uuid.UUID, error) {
	otherOwners, err := s.memberRepo.CountOtherOwners(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	if otherOwners > 0 {
		return nil, s.memberRepo.Delete(ctx, workspaceID, userID)
	}

	if systemRole == domain.SystemRoleAdmin {
		successor, err := s.memberRepo.FindOldestCollaborator(ctx, workspaceID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &domain.NoSuccessorError{WorkspaceID: workspaceID}
			}
			return nil, err
		}
		if err := s.memberRepo.RemoveWithPromotion(ctx, workspaceID, userID, successor.UserID); err != nil {
			return nil, err
		}
		s.logger.Info("promoted collaborator to owner",
			zap.String("workspaceId", workspaceID.String()),
			zap.String("promotedUserId", successor.UserID.String()),
		)
		promoted := successor.UserID
		return &promoted, nil
	}

	candidates, err := s.memberRepo.FindSuccessorCandidates(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	successors := make([]domain.WorkspaceMemberResponse, 0, len(candidates))
	for _, c := range candidates {
		successors = append(successors, c.ToResponse())
	}
	return nil, &domain.OwnershipTransferRequiredError{
		WorkspaceID: workspaceID,
		Successors:  successors,
	}
}

// Preview describes the consequences of leaving without changing anything.
func (s *LeaveService) Preview(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.LeavePreview, error) {
	membership, err := s.memberRepo.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotMemberError{UserID: userID, WorkspaceID: workspaceID}
		}
		return nil, err
	}

	systemRole := membership.User.SystemRole
	workspaceRole := membership.Role
	key := domain.ScenarioKey{SystemRole: systemRole, WorkspaceRole: workspaceRole}

	scenario, err := domain.ScenarioFor(systemRole, workspaceRole)
	if err != nil {
		return nil, err
	}

	surveysCreated, err := s.surveyRepo.CountByCreator(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	responsesGiven, err := s.surveyRepo.CountResponsesByRespondent(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	// canLeave mirrors the decision Leave would make: false exactly when
	// it would fail with OwnershipTransferRequiredError or NoSuccessorError.
	canLeave := true
	warning := ""
	if workspaceRole == domain.RoleOwner {
		otherOwners, err := s.memberRepo.CountOtherOwners(ctx, workspaceID, userID)
		if err != nil {
			return nil, err
		}
		if otherOwners == 0 {
			if systemRole == domain.SystemRoleAdmin {
				if _, err := s.memberRepo.FindOldestCollaborator(ctx, workspaceID, userID); err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, err
					}
					canLeave = false
					warning = "You are the only owner and no collaborator can take over ownership."
				}
			} else {
				canLeave = false
				warning = scenario.Warning
			}
		}
	}

	return &domain.LeavePreview{
		Scenario:      key.String(),
		SystemRole:    systemRole,
		WorkspaceRole: workspaceRole,
		DataImpact: domain.DataImpact{
			SurveysCreated: surveysCreated,
			ResponsesGiven: responsesGiven,
		},
		DataIntegrity: formatCounted(scenario, surveysCreated, responsesGiven),
		AccessChanges: scenario.AccessChange,
		CanLeave:      canLeave,
		Warning:       warning,
	}, nil
}

// TransferOwnership promotes another member to owner. The current owner
// keeps their role and can leave freely afterwards.
func (s *LeaveService) TransferOwnership(ctx context.Context, currentOwnerID, workspaceID, newOwnerID uuid.UUID) error {
	current, err := s.memberRepo.FindMembership(ctx, workspaceID, currentOwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotMemberError{UserID: currentOwnerID, WorkspaceID: workspaceID}
		}
		return err
	}
	if current.Role != domain.RoleOwner {
		return &domain.NotWorkspaceOwnerError{UserID: currentOwnerID, WorkspaceID: workspaceID}
	}

	if _, err := s.memberRepo.FindMembership(ctx, workspaceID, newOwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotMemberError{UserID: newOwnerID, WorkspaceID: workspaceID}
		}
		return err
	}

	if err := s.memberRepo.UpdateRole(ctx, workspaceID, newOwnerID, domain.RoleOwner); err != nil {
		return err
	}
	if err := s.workspaceRepo.UpdateOwner(ctx, workspaceID, newOwnerID); err != nil {
		return err
	}

	s.logger.Info("ownership transferred",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("from", currentOwnerID.String()),
		zap.String("to", newOwnerID.String()),
	)
	return nil
}

// RemoveMember kicks a non-owner member out of the workspace and notifies
// them with a critical system alert.
func (s *LeaveService) RemoveMember(ctx context.Context, actorID, workspaceID, targetUserID uuid.UUID, reason string) error {
	actor, err := s.memberRepo.FindMembership(ctx, workspaceID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotMemberError{UserID: actorID, WorkspaceID: workspaceID}
		}
		return err
	}
	if actor.Role != domain.RoleOwner {
		return &domain.NotWorkspaceOwnerError{UserID: actorID, WorkspaceID: workspaceID}
	}

	target, err := s.memberRepo.FindMembership(ctx, workspaceID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotMemberError{UserID: targetUserID, WorkspaceID: workspaceID}
		}
		return err
	}
	if target.Role == domain.RoleOwner {
		return &domain.CannotRemoveOwnerError{UserID: targetUserID, WorkspaceID: workspaceID}
	}

	if err := s.memberRepo.Delete(ctx, workspaceID, targetUserID); err != nil {
		return err
	}

	s.cleanupUnreadNotifications(ctx, targetUserID, workspaceID)

	message := "You have been removed from the workspace."
	if reason != "" {
		message = fmt.Sprintf("You have been removed from the workspace. %s", reason)
	}
	if _, err := s.dispatcher.Dispatch(ctx, domain.DispatchInput{
		EventType:    domain.EventSystemAlert,
		WorkspaceID:  &workspaceID,
		TargetUserID: &targetUserID,
		ActorID:      &actorID,
		Title:        "System alert",
		Message:      message,
		Metadata:     map[string]any{"reason": reason},
	}); err != nil {
		s.logger.Error("failed to dispatch removal alert",
			zap.String("userId", targetUserID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("member removed from workspace",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("removedUserId", targetUserID.String()),
		zap.String("actorId", actorID.String()),
	)
	return nil
}

// cleanupUnreadNotifications drops the leaver's unread notifications scoped
// to the workspace. Failures never abort the leave.
func (s *LeaveService) cleanupUnreadNotifications(ctx context.Context, userID, workspaceID uuid.UUID) {
	deleted, err := s.notifRepo.DeleteUnreadByWorkspace(ctx, userID, workspaceID)
	if err != nil {
		s.logger.Warn("notification cleanup failed",
			zap.String("userId", userID.String()),
			zap.String("workspaceId", workspaceID.String()),
			zap.Error(err),
		)
		return
	}
	if deleted > 0 {
		s.logger.Info("cleaned up unread notifications",
			zap.Int64("deleted", deleted),
			zap.String("userId", userID.String()),
		)
	}
}

func (s *LeaveService) formatDataIntegrity(ctx context.Context, scenario domain.LeaveScenario, userID, workspaceID uuid.UUID) string {
	if !scenario.CountSurveys && !scenario.CountResponses {
		return scenario.DataIntegrity
	}

	var surveys, responses int64
	var err error
	if scenario.CountSurveys {
		if surveys, err = s.surveyRepo.CountByCreator(ctx, workspaceID, userID); err != nil {
			s.logger.Warn("survey count failed", zap.Error(err))
		}
	}
	if scenario.CountResponses {
		if responses, err = s.surveyRepo.CountResponsesByRespondent(ctx, workspaceID, userID); err != nil {
			s.logger.Warn("response count failed", zap.Error(err))
		}
	}
	return formatCounted(scenario, surveys, responses)
}

func formatCounted(scenario domain.LeaveScenario, surveys, responses int64) string {
	switch {
	case scenario.CountSurveys:
		return fmt.Sprintf(scenario.DataIntegrity, surveys)
	case scenario.CountResponses:
		return fmt.Sprintf(scenario.DataIntegrity, responses)
	default:
		return scenario.DataIntegrity
	}
}
