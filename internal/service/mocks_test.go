package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"workspace-service/internal/domain"
)

// MockWorkspaceMemberRepository is a mock implementation of WorkspaceMemberRepository
type MockWorkspaceMemberRepository struct {
	mock.Mock
}

func (m *MockWorkspaceMemberRepository) FindMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID, filter domain.MemberFilter) ([]*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) CountOtherOwners(ctx context.Context, workspaceID, excludeUserID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, excludeUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) FindOldestCollaborator(ctx context.Context, workspaceID, excludeUserID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) FindSuccessorCandidates(ctx context.Context, workspaceID, excludeUserID uuid.UUID) ([]*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) Create(ctx context.Context, member *domain.WorkspaceMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockWorkspaceMemberRepository) UpdateRole(ctx context.Context, workspaceID, userID uuid.UUID, role domain.WorkspaceRole) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

func (m *MockWorkspaceMemberRepository) Delete(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockWorkspaceMemberRepository) RemoveWithPromotion(ctx context.Context, workspaceID, leavingUserID, successorUserID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, leavingUserID, successorUserID)
	return args.Error(0)
}

// MockWorkspaceRepository is a mock implementation of WorkspaceRepository
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// MockSurveyRepository is a mock implementation of SurveyRepository
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) CountByCreator(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSurveyRepository) CountResponsesByRespondent(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, page, limit int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Archive(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata datatypes.JSONMap) error {
	args := m.Called(ctx, id, metadata)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteUnreadByWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, workspaceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CleanupOld(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockDeliveryChannel is a mock implementation of realtime.DeliveryChannel
type MockDeliveryChannel struct {
	mock.Mock
}

func (m *MockDeliveryChannel) Push(ctx context.Context, userID uuid.UUID, notification *domain.Notification) error {
	args := m.Called(ctx, userID, notification)
	return args.Error(0)
}

func (m *MockDeliveryChannel) Broadcast(ctx context.Context, workspaceID uuid.UUID, notification *domain.Notification, excludeUserID *uuid.UUID) error {
	args := m.Called(ctx, workspaceID, notification, excludeUserID)
	return args.Error(0)
}

func (m *MockDeliveryChannel) RevokeAccess(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID, reason string) error {
	args := m.Called(ctx, userID, workspaceID, reason)
	return args.Error(0)
}

func (m *MockDeliveryChannel) ForceRedirect(ctx context.Context, userID uuid.UUID, url string) error {
	args := m.Called(ctx, userID, url)
	return args.Error(0)
}
