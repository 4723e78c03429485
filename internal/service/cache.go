package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func unreadCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("unread:%s", userID.String())
}

// invalidateUnreadCache drops the cached unread count. Failures are ignored;
// the cache entry expires on its own TTL.
func invalidateUnreadCache(ctx context.Context, client *redis.Client, userID uuid.UUID) {
	if client == nil {
		return
	}
	client.Del(ctx, unreadCacheKey(userID))
}
