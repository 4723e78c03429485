package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workspace-service/internal/domain"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	CreateBatch(ctx context.Context, notifications []domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, page, limit int) ([]domain.Notification, int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Archive(ctx context.Context, id, userID uuid.UUID) error
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata datatypes.JSONMap) error
	DeleteUnreadByWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error)
	CleanupOld(ctx context.Context, days int) (int64, error)
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	if err := r.db.WithContext(ctx).
		First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepositoryImpl) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	if err := r.db.WithContext(ctx).
		First(&notification, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepositoryImpl) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, page, limit int) ([]domain.Notification, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ?", userID)

	if !filter.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepositoryImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_archived = ?", userID, false, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead updates an unarchived notification. Archived rows are terminal
// and fall through to ErrRecordNotFound.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ? AND is_archived = ?", id, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByIDAndUserID(ctx, id, userID)
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_archived = ?", userID, false, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *notificationRepositoryImpl) Archive(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ? AND is_archived = ?", id, userID, false).
		Update("is_archived", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepositoryImpl) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata datatypes.JSONMap) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND is_archived = ?", id, false).
		Update("metadata", metadata).Error
}

// DeleteUnreadByWorkspace removes a leaver's unread notifications scoped to
// the workspace they just left. Read notifications stay as history.
func (r *notificationRepositoryImpl) DeleteUnreadByWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND related_workspace_id = ? AND is_read = ?", userID, workspaceID, false).
		Delete(&domain.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepositoryImpl) CleanupOld(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("created_at < ? AND is_read = ?", cutoff, true).
		Delete(&domain.Notification{})
	return result.RowsAffected, result.Error
}
