package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"workspace-service/internal/domain"
	"workspace-service/internal/realtime"
	"workspace-service/internal/repository"
)

// DispatchService routes events to recipients according to the event table,
// persists notifications and hands realtime delivery to the channel.
type DispatchService struct {
	notifRepo  repository.NotificationRepository
	memberRepo repository.WorkspaceMemberRepository
	userRepo   repository.UserRepository
	buffer     *GroupBuffer
	channel    realtime.DeliveryChannel
	redis      *redis.Client
	logger     *zap.Logger
}

func NewDispatchService(
	notifRepo repository.NotificationRepository,
	memberRepo repository.WorkspaceMemberRepository,
	userRepo repository.UserRepository,
	buffer *GroupBuffer,
	channel realtime.DeliveryChannel,
	redisClient *redis.Client,
	logger *zap.Logger,
) *DispatchService {
	return &DispatchService{
		notifRepo:  notifRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		buffer:     buffer,
		channel:    channel,
		redis:      redisClient,
		logger:     logger,
	}
}

// Dispatch processes one event end to end. Persistence failures are returned;
// realtime delivery is best-effort and only logged.
func (s *DispatchService) Dispatch(ctx context.Context, input domain.DispatchInput) (*domain.DispatchResult, error) {
	eventCfg, err := domain.ConfigForEvent(input.EventType)
	if err != nil {
		return nil, err
	}

	recipients, err := s.resolveRecipients(ctx, eventCfg, input)
	if err != nil {
		return nil, err
	}

	actionURL := domain.BuildActionURL(eventCfg.URLTemplate, urlParams(input))

	s.logger.Info("processing notification event",
		zap.String("eventType", string(input.EventType)),
		zap.Int("recipients", len(recipients)),
	)

	if eventCfg.Groupable {
		outcome := s.buffer.Add(groupKey(input), GroupItem{
			Input:      input,
			Recipients: recipients,
			ActionURL:  actionURL,
			At:         time.Now(),
		})
		if outcome.Decision == DecisionBuffered {
			return &domain.DispatchResult{
				EventType:  input.EventType,
				Recipients: len(recipients),
				Buffered:   1,
			}, nil
		}
		created, err := s.deliverGrouped(ctx, outcome.Items)
		if err != nil {
			return nil, err
		}
		return &domain.DispatchResult{
			EventType:  input.EventType,
			Recipients: len(recipients),
			Created:    created,
		}, nil
	}

	created, err := s.deliver(ctx, eventCfg, input, recipients, actionURL)
	if err != nil {
		return nil, err
	}

	return &domain.DispatchResult{
		EventType:  input.EventType,
		Recipients: len(recipients),
		Created:    created,
	}, nil
}

// FlushStaleGroups sweeps grouping windows whose interval elapsed before
// they filled, delivering each as a summary. Returns the number of
// notifications created.
func (s *DispatchService) FlushStaleGroups(ctx context.Context) int {
	total := 0
	for _, stale := range s.buffer.FlushStale() {
		created, err := s.deliverGrouped(ctx, stale.Items)
		if err != nil {
			s.logger.Error("failed to flush stale notification group",
				zap.String("groupKey", stale.Key),
				zap.Error(err),
			)
			continue
		}
		total += created
	}
	return total
}

func (s *DispatchService) resolveRecipients(ctx context.Context, eventCfg domain.EventConfig, input domain.DispatchInput) ([]uuid.UUID, error) {
	if eventCfg.DirectTarget {
		if input.TargetUserID == nil {
			return nil, fmt.Errorf("event %s requires a target user", input.EventType)
		}
		return []uuid.UUID{*input.TargetUserID}, nil
	}

	if input.WorkspaceID == nil {
		return nil, fmt.Errorf("event %s requires a workspace", input.EventType)
	}

	filter := domain.MemberFilter{
		WorkspaceRoles: eventCfg.RecipientWorkspaceRoles,
		SystemRoles:    eventCfg.RecipientSystemRoles,
		ExcludeUserID:  input.ActorID,
	}

	members, err := s.memberRepo.ListMembers(ctx, *input.WorkspaceID, filter)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("no eligible recipients for event %s in workspace %s", input.EventType, input.WorkspaceID)
	}

	recipients := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		recipients = append(recipients, m.UserID)
	}
	return recipients, nil
}

func (s *DispatchService) deliver(ctx context.Context, eventCfg domain.EventConfig, input domain.DispatchInput, recipients []uuid.UUID, actionURL string) (int, error) {
	metadata := buildMetadata(eventCfg, input.Metadata)

	// Invited participants gain workspace UI they could not see before;
	// the client uses this hint to unlock the workspace menu.
	if input.EventType == domain.EventWorkspaceInvite && input.TargetUserID != nil {
		if target, err := s.userRepo.FindByID(ctx, *input.TargetUserID); err == nil {
			metadata["unlockWorkspaceMenu"] = target.SystemRole == domain.SystemRoleParticipant
		} else {
			s.logger.Warn("failed to load invite target",
				zap.String("userId", input.TargetUserID.String()),
				zap.Error(err),
			)
		}
	}

	notifications := make([]domain.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, domain.Notification{
			ID:                 uuid.New(),
			UserID:             userID,
			Type:               eventCfg.Type,
			Title:              input.Title,
			Message:            input.Message,
			ActionURL:          actionURL,
			Priority:           eventCfg.Priority,
			ActorID:            input.ActorID,
			RelatedWorkspaceID: input.WorkspaceID,
			RelatedSurveyID:    input.SurveyID,
			Metadata:           metadata,
			CreatedAt:          time.Now(),
		})
	}

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, err
	}

	for i := range notifications {
		n := &notifications[i]
		invalidateUnreadCache(ctx, s.redis, n.UserID)

		if eventCfg.RealTime && s.channel != nil {
			if err := s.channel.Push(ctx, n.UserID, n); err != nil {
				s.logger.Warn("realtime push failed",
					zap.String("userId", n.UserID.String()),
					zap.Error(err),
				)
			}
		}
		if eventCfg.RevokeAccess && s.channel != nil {
			if err := s.channel.RevokeAccess(ctx, n.UserID, input.WorkspaceID, input.Message); err != nil {
				s.logger.Warn("access revocation push failed",
					zap.String("userId", n.UserID.String()),
					zap.Error(err),
				)
			}
		}
		if eventCfg.ForceRedirect && s.channel != nil {
			if err := s.channel.ForceRedirect(ctx, n.UserID, "/dashboard"); err != nil {
				s.logger.Warn("force redirect push failed",
					zap.String("userId", n.UserID.String()),
					zap.Error(err),
				)
			}
		}
	}

	return len(notifications), nil
}

// deliverGrouped condenses buffered events into one summary notification per
// recipient of the window's first event.
func (s *DispatchService) deliverGrouped(ctx context.Context, items []GroupItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	first := items[0]
	eventCfg, err := domain.ConfigForEvent(first.Input.EventType)
	if err != nil {
		return 0, err
	}

	// A window the sweep drained with a single event in it is not a
	// burst; deliver it as the plain notification it would have been.
	if len(items) == 1 {
		return s.deliver(ctx, eventCfg, first.Input, first.Recipients, first.ActionURL)
	}

	count := len(items)
	metadata := buildMetadata(eventCfg, first.Input.Metadata)
	metadata["grouped"] = true
	metadata["count"] = count

	notifications := make([]domain.Notification, 0, len(first.Recipients))
	for _, userID := range first.Recipients {
		notifications = append(notifications, domain.Notification{
			ID:                 uuid.New(),
			UserID:             userID,
			Type:               eventCfg.Type,
			Title:              "New survey responses",
			Message:            fmt.Sprintf("%d new responses", count),
			ActionURL:          first.ActionURL,
			Priority:           eventCfg.Priority,
			RelatedWorkspaceID: first.Input.WorkspaceID,
			RelatedSurveyID:    first.Input.SurveyID,
			Metadata:           metadata,
			CreatedAt:          time.Now(),
		})
	}

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, err
	}

	for i := range notifications {
		n := &notifications[i]
		invalidateUnreadCache(ctx, s.redis, n.UserID)
		if eventCfg.RealTime && s.channel != nil {
			if err := s.channel.Push(ctx, n.UserID, n); err != nil {
				s.logger.Warn("realtime push failed",
					zap.String("userId", n.UserID.String()),
					zap.Error(err),
				)
			}
		}
	}

	return len(notifications), nil
}

func buildMetadata(eventCfg domain.EventConfig, extra map[string]any) datatypes.JSONMap {
	metadata := datatypes.JSONMap{}
	for k, v := range extra {
		metadata[k] = v
	}

	actions := map[string]any{}
	if eventCfg.PrimaryAction != nil {
		actions["primary"] = map[string]any{
			"action": eventCfg.PrimaryAction.ID,
			"label":  eventCfg.PrimaryAction.Label,
		}
	}
	if eventCfg.SecondaryAction != nil {
		actions["secondary"] = map[string]any{
			"action": eventCfg.SecondaryAction.ID,
			"label":  eventCfg.SecondaryAction.Label,
		}
	}
	if len(actions) > 0 {
		metadata["actions"] = actions
	}

	if eventCfg.RevokeAccess {
		metadata["revokeAccess"] = true
	}
	if eventCfg.ForceRedirect {
		metadata["forceRedirect"] = true
	}
	return metadata
}

func urlParams(input domain.DispatchInput) map[string]string {
	params := map[string]string{}
	if input.WorkspaceID != nil {
		params["workspaceId"] = input.WorkspaceID.String()
	}
	if input.SurveyID != nil {
		params["surveyId"] = input.SurveyID.String()
	}
	return params
}

func groupKey(input domain.DispatchInput) string {
	key := string(input.EventType)
	if input.SurveyID != nil {
		key += ":" + input.SurveyID.String()
	} else if input.WorkspaceID != nil {
		key += ":" + input.WorkspaceID.String()
	}
	return key
}
