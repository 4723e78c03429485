package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"workspace-service/internal/domain"
)

// UserChannel is the pub/sub channel carrying one user's realtime stream.
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:user:%s", userID.String())
}

// WorkspaceChannel is the pub/sub channel carrying workspace-wide messages.
func WorkspaceChannel(workspaceID uuid.UUID) string {
	return fmt.Sprintf("notifications:workspace:%s", workspaceID.String())
}

// RedisChannel delivers realtime messages over Redis pub/sub. The websocket
// layer subscribes to the per-user channels and forwards to sockets.
type RedisChannel struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisChannel(client *redis.Client, logger *zap.Logger) *RedisChannel {
	return &RedisChannel{client: client, logger: logger}
}

func (c *RedisChannel) Push(ctx context.Context, userID uuid.UUID, notification *domain.Notification) error {
	return c.publish(ctx, UserChannel(userID), &Envelope{
		Kind:         KindNotification,
		Notification: notification,
	})
}

// Broadcast fans one notification out to every subscriber of the workspace
// channel. Subscribers drop the envelope when they match excludeUserID.
func (c *RedisChannel) Broadcast(ctx context.Context, workspaceID uuid.UUID, notification *domain.Notification, excludeUserID *uuid.UUID) error {
	return c.publish(ctx, WorkspaceChannel(workspaceID), &Envelope{
		Kind:          KindNotification,
		Notification:  notification,
		WorkspaceID:   &workspaceID,
		ExcludeUserID: excludeUserID,
	})
}

func (c *RedisChannel) RevokeAccess(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID, reason string) error {
	return c.publish(ctx, UserChannel(userID), &Envelope{
		Kind:        KindAccessRevoked,
		WorkspaceID: workspaceID,
		Reason:      reason,
	})
}

func (c *RedisChannel) ForceRedirect(ctx context.Context, userID uuid.UUID, url string) error {
	return c.publish(ctx, UserChannel(userID), &Envelope{
		Kind:        KindForceRedirect,
		RedirectURL: url,
	})
}

func (c *RedisChannel) publish(ctx context.Context, channel string, envelope *Envelope) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		c.logger.Error("failed to marshal realtime envelope", zap.Error(err))
		return err
	}

	if err := c.client.Publish(ctx, channel, data).Err(); err != nil {
		c.logger.Error("failed to publish realtime envelope",
			zap.String("channel", channel),
			zap.String("kind", envelope.Kind),
			zap.Error(err),
		)
		return err
	}
	return nil
}
