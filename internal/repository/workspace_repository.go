package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-service/internal/domain"
)

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	Create(ctx context.Context, workspace *domain.Workspace) error
	UpdateOwner(ctx context.Context, id, ownerID uuid.UUID) error
}

type workspaceRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new instance of WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepositoryImpl{db: db}
}

func (r *workspaceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	var workspace domain.Workspace
	if err := r.db.WithContext(ctx).First(&workspace, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepositoryImpl) Create(ctx context.Context, workspace *domain.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *workspaceRepositoryImpl) UpdateOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Workspace{}).
		Where("id = ?", id).
		Update("owner_id", ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
