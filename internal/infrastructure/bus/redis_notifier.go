package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/config"
)

const (
	notifyChannelPrefix = "notify:user:"
	publishTimeout      = 2 * time.Second
)

// RedisNotifier publishes notifications on a per-user Redis channel so a
// UI gateway can push them to the initiating user in real time.
type RedisNotifier struct {
	client     *redis.Client
	ownsClient bool
	logger     *zap.Logger
}

// NewRedisNotifier connects to Redis and returns a notifier
func NewRedisNotifier(cfg config.RedisConfig, logger *zap.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	notifier := NewRedisNotifierWithClient(client, logger)
	notifier.ownsClient = true
	return notifier, nil
}

// NewRedisNotifierWithClient wraps an existing Redis client. The caller
// retains ownership of the client and is responsible for closing it.
func NewRedisNotifierWithClient(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNotifier{
		client: client,
		logger: logger.Named("notify"),
	}
}

// Notify publishes the notification. Failures are logged and swallowed;
// the workflow that triggered the notification never depends on delivery.
func (n *RedisNotifier) Notify(ctx context.Context, userID uuid.UUID, notification shared.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		n.logger.Error("failed to encode notification", zap.Error(err))
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	channel := ChannelFor(userID)
	if err := n.client.Publish(publishCtx, channel, payload).Err(); err != nil {
		n.logger.Warn("failed to publish notification",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

// Close releases the Redis connection if this notifier created it
func (n *RedisNotifier) Close() error {
	if !n.ownsClient {
		return nil
	}
	return n.client.Close()
}

// ChannelFor returns the Redis channel carrying a user's notifications
func ChannelFor(userID uuid.UUID) string {
	return notifyChannelPrefix + userID.String()
}

// Ensure RedisNotifier implements Notifier
var _ shared.Notifier = (*RedisNotifier)(nil)
