package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"workspace-service/internal/domain"
)

type dispatchFixture struct {
	notifRepo  *MockNotificationRepository
	memberRepo *MockWorkspaceMemberRepository
	userRepo   *MockUserRepository
	channel    *MockDeliveryChannel
	buffer     *GroupBuffer
	svc        *DispatchService
}

func newDispatchFixture(window time.Duration, maxSize int) *dispatchFixture {
	f := &dispatchFixture{
		notifRepo:  new(MockNotificationRepository),
		memberRepo: new(MockWorkspaceMemberRepository),
		userRepo:   new(MockUserRepository),
		channel:    new(MockDeliveryChannel),
		buffer:     NewGroupBuffer(window, maxSize),
	}
	f.svc = NewDispatchService(f.notifRepo, f.memberRepo, f.userRepo, f.buffer, f.channel, nil, zap.NewNop())
	return f
}

func TestDispatch_UnknownEventType(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)

	_, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
		EventType: "SOMETHING_ELSE",
		Title:     "t",
		Message:   "m",
	})

	var unknown *domain.UnknownEventTypeError
	assert.ErrorAs(t, err, &unknown)
	f.notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestDispatch_WorkspaceInviteRequiresTarget(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()

	_, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
		EventType:   domain.EventWorkspaceInvite,
		WorkspaceID: &workspaceID,
		Title:       "Invitation",
		Message:     "join us",
	})

	assert.Error(t, err)
}

func TestDispatch_WorkspaceInviteToParticipant(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()
	targetID := uuid.New()
	actorID := uuid.New()

	f.userRepo.On("FindByID", mock.Anything, targetID).Return(&domain.User{
		ID:         targetID,
		SystemRole: domain.SystemRoleParticipant,
	}, nil)
	f.notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.Notification) bool {
		if len(batch) != 1 {
			return false
		}
		n := batch[0]
		unlock, _ := n.Metadata["unlockWorkspaceMenu"].(bool)
		return n.UserID == targetID &&
			n.Type == domain.TypeWorkspaceInvite &&
			n.ActionURL == fmt.Sprintf("/workspaces/%s/invite", workspaceID) &&
			unlock
	})).Return(nil)
	f.channel.On("Push", mock.Anything, targetID, mock.Anything).Return(nil)

	result, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
		EventType:    domain.EventWorkspaceInvite,
		WorkspaceID:  &workspaceID,
		TargetUserID: &targetID,
		ActorID:      &actorID,
		Title:        "Workspace invitation",
		Message:      "You have been invited",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Recipients)
	assert.Equal(t, 1, result.Created)
	assert.Zero(t, result.Buffered)
	f.notifRepo.AssertExpectations(t)
	f.channel.AssertExpectations(t)
}

func TestDispatch_RoleRequestRecipientFilter(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()
	actorID := uuid.New()
	ownerID := uuid.New()

	expectedFilter := domain.MemberFilter{
		WorkspaceRoles: []domain.WorkspaceRole{domain.RoleOwner},
		SystemRoles:    []domain.SystemRole{domain.SystemRoleCreator},
		ExcludeUserID:  &actorID,
	}
	f.memberRepo.On("ListMembers", mock.Anything, workspaceID, expectedFilter).
		Return([]*domain.WorkspaceMember{
			membership(workspaceID, ownerID, domain.SystemRoleCreator, domain.RoleOwner),
		}, nil)
	f.notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.Notification) bool {
		return len(batch) == 1 && batch[0].UserID == ownerID && batch[0].Type == domain.TypeRoleRequest
	})).Return(nil)
	f.channel.On("Push", mock.Anything, ownerID, mock.Anything).Return(nil)

	result, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
		EventType:   domain.EventRoleRequest,
		WorkspaceID: &workspaceID,
		ActorID:     &actorID,
		Title:       "Role change requested",
		Message:     "A participant requested collaborator access",
		Metadata: map[string]any{
			"requesterId":   actorID.String(),
			"requestedRole": string(domain.RoleCollaborator),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	f.memberRepo.AssertExpectations(t)
}

func TestDispatch_NoEligibleRecipients(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()
	actorID := uuid.New()

	f.memberRepo.On("ListMembers", mock.Anything, workspaceID, mock.Anything).
		Return([]*domain.WorkspaceMember{}, nil)

	_, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
		EventType:   domain.EventRoleRequest,
		WorkspaceID: &workspaceID,
		ActorID:     &actorID,
		Title:       "Role change requested",
		Message:     "m",
	})

	assert.Error(t, err)
	f.notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestDispatch_SurveyResponseGrouping(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 3)
	workspaceID := uuid.New()
	surveyID := uuid.New()
	ownerID := uuid.New()

	f.memberRepo.On("ListMembers", mock.Anything, workspaceID, mock.Anything).
		Return([]*domain.WorkspaceMember{
			membership(workspaceID, ownerID, domain.SystemRoleCreator, domain.RoleOwner),
		}, nil)
	f.notifRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.channel.On("Push", mock.Anything, ownerID, mock.Anything).Return(nil)

	dispatch := func(respondent uuid.UUID) *domain.DispatchResult {
		result, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
			EventType:   domain.EventSurveyResponse,
			WorkspaceID: &workspaceID,
			SurveyID:    &surveyID,
			ActorID:     &respondent,
			Title:       "New survey response",
			Message:     "Someone responded",
		})
		assert.NoError(t, err)
		return result
	}

	// The first event opens the window silently; nothing is delivered.
	first := dispatch(uuid.New())
	assert.Zero(t, first.Created)
	assert.Equal(t, 1, first.Buffered)

	second := dispatch(uuid.New())
	assert.Zero(t, second.Created)
	assert.Equal(t, 1, second.Buffered)

	// The event that fills the window flushes it as one summary.
	third := dispatch(uuid.New())
	assert.Equal(t, 1, third.Created)
	assert.Zero(t, third.Buffered)

	// The flushed window is gone; the next event opens a fresh one.
	fourth := dispatch(uuid.New())
	assert.Equal(t, 1, fourth.Buffered)

	f.notifRepo.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestDispatch_SurveyResponseGroupingThreshold(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()
	surveyID := uuid.New()
	ownerID := uuid.New()

	f.memberRepo.On("ListMembers", mock.Anything, workspaceID, mock.Anything).
		Return([]*domain.WorkspaceMember{
			membership(workspaceID, ownerID, domain.SystemRoleCreator, domain.RoleOwner),
		}, nil)
	f.notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.Notification) bool {
		return len(batch) == 1 &&
			batch[0].UserID == ownerID &&
			batch[0].Message == "10 new responses" &&
			batch[0].Metadata["count"] == 10
	})).Return(nil)
	f.channel.On("Push", mock.Anything, ownerID, mock.Anything).Return(nil)

	input := domain.DispatchInput{
		EventType:   domain.EventSurveyResponse,
		WorkspaceID: &workspaceID,
		SurveyID:    &surveyID,
		Title:       "New survey response",
		Message:     "Someone responded",
	}

	// Nine responses within the window produce no notifications at all.
	for i := 0; i < 9; i++ {
		result, err := f.svc.Dispatch(context.Background(), input)
		assert.NoError(t, err)
		assert.Zero(t, result.Created)
	}
	f.notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)

	// The tenth flushes one summary per recipient and drops the window.
	result, err := f.svc.Dispatch(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Zero(t, f.buffer.Len())
	f.notifRepo.AssertExpectations(t)
}

func TestDispatch_GroupedSummaryMessage(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 2)
	workspaceID := uuid.New()
	surveyID := uuid.New()
	ownerID := uuid.New()

	f.memberRepo.On("ListMembers", mock.Anything, workspaceID, mock.Anything).
		Return([]*domain.WorkspaceMember{
			membership(workspaceID, ownerID, domain.SystemRoleCreator, domain.RoleOwner),
		}, nil)

	var batches [][]domain.Notification
	f.notifRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batches = append(batches, args.Get(1).([]domain.Notification))
		}).Return(nil)
	f.channel.On("Push", mock.Anything, ownerID, mock.Anything).Return(nil)

	input := domain.DispatchInput{
		EventType:   domain.EventSurveyResponse,
		WorkspaceID: &workspaceID,
		SurveyID:    &surveyID,
		Title:       "New survey response",
		Message:     "Someone responded",
	}
	for i := 0; i < 3; i++ {
		_, err := f.svc.Dispatch(context.Background(), input)
		assert.NoError(t, err)
	}

	// Two events fill the window; the third opens a new one silently.
	assert.Len(t, batches, 1)
	summary := batches[0][0]
	assert.Equal(t, "2 new responses", summary.Message)
	assert.Equal(t, true, summary.Metadata["grouped"])
	assert.Equal(t, 2, summary.Metadata["count"])
	assert.Equal(t, ownerID, summary.UserID)
}

func TestDispatch_SystemAlertDeliveryIsBestEffort(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()
	targetID := uuid.New()

	f.notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.Notification) bool {
		if len(batch) != 1 {
			return false
		}
		n := batch[0]
		revoke, _ := n.Metadata["revokeAccess"].(bool)
		redirect, _ := n.Metadata["forceRedirect"].(bool)
		return n.UserID == targetID && revoke && redirect
	})).Return(nil)
	f.channel.On("Push", mock.Anything, targetID, mock.Anything).Return(errors.New("socket closed"))
	f.channel.On("RevokeAccess", mock.Anything, targetID, &workspaceID, mock.Anything).Return(errors.New("socket closed"))
	f.channel.On("ForceRedirect", mock.Anything, targetID, "/dashboard").Return(errors.New("socket closed"))

	result, err := f.svc.Dispatch(context.Background(), domain.DispatchInput{
		EventType:    domain.EventSystemAlert,
		WorkspaceID:  &workspaceID,
		TargetUserID: &targetID,
		Title:        "System alert",
		Message:      "You have been removed",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	f.channel.AssertExpectations(t)
}

func TestFlushStaleGroups(t *testing.T) {
	f := newDispatchFixture(5*time.Minute, 10)
	workspaceID := uuid.New()
	surveyID := uuid.New()
	ownerID := uuid.New()

	f.memberRepo.On("ListMembers", mock.Anything, workspaceID, mock.Anything).
		Return([]*domain.WorkspaceMember{
			membership(workspaceID, ownerID, domain.SystemRoleCreator, domain.RoleOwner),
		}, nil)
	f.notifRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.channel.On("Push", mock.Anything, ownerID, mock.Anything).Return(nil)

	base := time.Now()
	current := base
	f.buffer.now = func() time.Time { return current }

	input := domain.DispatchInput{
		EventType:   domain.EventSurveyResponse,
		WorkspaceID: &workspaceID,
		SurveyID:    &surveyID,
		Title:       "New survey response",
		Message:     "Someone responded",
	}
	for i := 0; i < 3; i++ {
		_, err := f.svc.Dispatch(context.Background(), input)
		assert.NoError(t, err)
	}

	// Nothing stale while the window is open.
	assert.Zero(t, f.svc.FlushStaleGroups(context.Background()))

	current = base.Add(6 * time.Minute)
	created := f.svc.FlushStaleGroups(context.Background())

	assert.Equal(t, 1, created)
	assert.Zero(t, f.buffer.Len())
}
