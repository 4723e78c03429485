package job

import (
	"context"

	"go.uber.org/zap"

	"workspace-service/internal/service"
)

// CleanupJob removes read notifications past the retention window.
type CleanupJob struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(notifications *service.NotificationService, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		notifications: notifications,
		logger:        logger,
	}
}

// Run executes the cleanup job
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting notification retention cleanup")

	deleted, err := j.notifications.CleanupOld(ctx)
	if err != nil {
		j.logger.Error("Failed to clean up old notifications", zap.Error(err))
		return
	}

	j.logger.Info("Notification retention cleanup completed",
		zap.Int64("deleted", deleted),
	)
}
