package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workspace-service/internal/config"
	"workspace-service/internal/domain"
	"workspace-service/internal/repository"
)

// NotificationService covers the read side of the notification store:
// listing, read state, archival and the cached unread badge count.
type NotificationService struct {
	repo   repository.NotificationRepository
	redis  *redis.Client
	config *config.Config
	logger *zap.Logger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:   repo,
		redis:  redisClient,
		config: cfg,
		logger: logger,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, page, limit int) (*domain.PaginatedNotifications, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := s.repo.List(ctx, userID, filter, page, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedNotifications{
		Notifications: notifications,
		Total:         total,
		Page:          page,
		Limit:         limit,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	notification, err := s.repo.MarkAsRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotificationNotFoundError{NotificationID: id}
		}
		return nil, err
	}

	invalidateUnreadCache(ctx, s.redis, userID)
	return notification, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	invalidateUnreadCache(ctx, s.redis, userID)
	return count, nil
}

// Archive makes a notification terminal. Archived rows never mutate again.
func (s *NotificationService) Archive(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Archive(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotificationNotFoundError{NotificationID: id}
		}
		return err
	}

	invalidateUnreadCache(ctx, s.redis, userID)
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCacheKey(userID)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Int64()
		if err == nil {
			return cached, nil
		}
	}

	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		ttl := time.Duration(s.config.App.CacheUnreadTTL) * time.Second
		s.redis.Set(ctx, cacheKey, count, ttl)
	}

	return count, nil
}

// CleanupOld removes read notifications older than the retention window.
func (s *NotificationService) CleanupOld(ctx context.Context) (int64, error) {
	return s.repo.CleanupOld(ctx, s.config.App.CleanupDays)
}
