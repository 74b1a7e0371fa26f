package notify

import (
	"context"
	"fmt"

	"francoggm/wiinpay-pix-relay/internal/models"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Publisher fans out acknowledged webhook notifications.
type Publisher interface {
	Publish(ctx context.Context, notification *models.WebhookNotification) error
}

type RedisPublisher struct {
	cache   *redis.Client
	channel string
}

func NewRedisPublisher(cache *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{
		cache:   cache,
		channel: channel,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, notification *models.WebhookNotification) error {
	payload, err := sonic.ConfigFastest.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook notification: %w", err)
	}

	if err := p.cache.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook notification on %s: %w", p.channel, err)
	}

	return nil
}
