package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-service/internal/domain"
)

// WorkspaceMemberRepository defines the interface for membership data access
type WorkspaceMemberRepository interface {
	FindMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error)
	ListMembers(ctx context.Context, workspaceID uuid.UUID, filter domain.MemberFilter) ([]*domain.WorkspaceMember, error)
	CountOtherOwners(ctx context.Context, workspaceID, excludeUserID uuid.UUID) (int64, error)
	FindOldestCollaborator(ctx context.Context, workspaceID, excludeUserID uuid.UUID) (*domain.WorkspaceMember, error)
	FindSuccessorCandidates(ctx context.Context, workspaceID, excludeUserID uuid.UUID) ([]*domain.WorkspaceMember, error)
	Create(ctx context.Context, member *domain.WorkspaceMember) error
	UpdateRole(ctx context.Context, workspaceID, userID uuid.UUID, role domain.WorkspaceRole) error
	Delete(ctx context.Context, workspaceID, userID uuid.UUID) error
	RemoveWithPromotion(ctx context.Context, workspaceID, leavingUserID, successorUserID uuid.UUID) error
}

type workspaceMemberRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceMemberRepository creates a new instance of WorkspaceMemberRepository
func NewWorkspaceMemberRepository(db *gorm.DB) WorkspaceMemberRepository {
	return &workspaceMemberRepositoryImpl{db: db}
}

func (r *workspaceMemberRepositoryImpl) FindMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	var member domain.WorkspaceMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&member, "workspace_id = ? AND user_id = ?", workspaceID, userID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *workspaceMemberRepositoryImpl) ListMembers(ctx context.Context, workspaceID uuid.UUID, filter domain.MemberFilter) ([]*domain.WorkspaceMember, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.WorkspaceMember{}).
		Preload("User").
		Where("workspace_members.workspace_id = ?", workspaceID)

	if len(filter.WorkspaceRoles) > 0 {
		query = query.Where("workspace_members.role IN ?", filter.WorkspaceRoles)
	}
	if len(filter.SystemRoles) > 0 {
		query = query.
			Joins("JOIN users ON users.id = workspace_members.user_id").
			Where("users.system_role IN ?", filter.SystemRoles)
	}
	if filter.ExcludeUserID != nil {
		query = query.Where("workspace_members.user_id <> ?", *filter.ExcludeUserID)
	}

	var members []*domain.WorkspaceMember
	if err := query.Order("workspace_members.joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *workspaceMemberRepositoryImpl) CountOtherOwners(ctx context.Context, workspaceID, excludeUserID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.WorkspaceMember{}).
		Where("workspace_id = ? AND role = ? AND user_id <> ?", workspaceID, domain.RoleOwner, excludeUserID).
		Count(&count).Error
	return count, err
}

// FindOldestCollaborator returns the longest-tenured collaborator other than
// the excluded user, or gorm.ErrRecordNotFound when none exists.
func (r *workspaceMemberRepositoryImpl) FindOldestCollaborator(ctx context.Context, workspaceID, excludeUserID uuid.UUID) (*domain.WorkspaceMember, error) {
	var member domain.WorkspaceMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ? AND role = ? AND user_id <> ?", workspaceID, domain.RoleCollaborator, excludeUserID).
		Order("joined_at ASC").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindSuccessorCandidates lists the members eligible to take over ownership,
// longest tenure first.
func (r *workspaceMemberRepositoryImpl) FindSuccessorCandidates(ctx context.Context, workspaceID, excludeUserID uuid.UUID) ([]*domain.WorkspaceMember, error) {
	var members []*domain.WorkspaceMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ? AND user_id <> ? AND role IN ?",
			workspaceID, excludeUserID,
			[]domain.WorkspaceRole{domain.RoleOwner, domain.RoleCollaborator}).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *workspaceMemberRepositoryImpl) Create(ctx context.Context, member *domain.WorkspaceMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *workspaceMemberRepositoryImpl) UpdateRole(ctx context.Context, workspaceID, userID uuid.UUID, role domain.WorkspaceRole) error {
	result := r.db.WithContext(ctx).
		Model(&domain.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *workspaceMemberRepositoryImpl) Delete(ctx context.Context, workspaceID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&domain.WorkspaceMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveWithPromotion promotes the successor to owner, points the workspace
// at the new owner and deletes the leaving membership in one transaction.
// A workspace is never left without an owner mid-way.
func (r *workspaceMemberRepositoryImpl) RemoveWithPromotion(ctx context.Context, workspaceID, leavingUserID, successorUserID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		promote := tx.Model(&domain.WorkspaceMember{}).
			Where("workspace_id = ? AND user_id = ?", workspaceID, successorUserID).
			Update("role", domain.RoleOwner)
		if promote.Error != nil {
			return promote.Error
		}
		if promote.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&domain.Workspace{}).
			Where("id = ?", workspaceID).
			Update("owner_id", successorUserID).Error; err != nil {
			return err
		}

		remove := tx.Where("workspace_id = ? AND user_id = ?", workspaceID, leavingUserID).
			Delete(&domain.WorkspaceMember{})
		if remove.Error != nil {
			return remove.Error
		}
		if remove.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
