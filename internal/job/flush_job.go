package job

import (
	"context"

	"go.uber.org/zap"

	"workspace-service/internal/service"
)

// FlushJob sweeps stale notification grouping windows so buffered responses
// never sit past their interval just because no new event arrived.
type FlushJob struct {
	dispatcher *service.DispatchService
	logger     *zap.Logger
}

// NewFlushJob creates a new FlushJob instance
func NewFlushJob(dispatcher *service.DispatchService, logger *zap.Logger) *FlushJob {
	return &FlushJob{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run executes one sweep
func (j *FlushJob) Run() {
	ctx := context.Background()

	created := j.dispatcher.FlushStaleGroups(ctx)
	if created > 0 {
		j.logger.Info("Flushed stale notification groups",
			zap.Int("notifications_created", created),
		)
	}
}
