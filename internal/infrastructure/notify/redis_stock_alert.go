// Package notify delivers stock alerts to channels outside the process.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	appinv "github.com/bizpulse/backend/internal/application/inventory"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher is the subset of the Redis client used for alerts
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisStockAlertNotifier publishes stock alerts as JSON on a Redis channel,
// where dashboards or messaging bridges subscribe to them
type RedisStockAlertNotifier struct {
	client  Publisher
	channel string
	logger  *zap.Logger
}

// NewRedisStockAlertNotifier creates a notifier publishing on channel
func NewRedisStockAlertNotifier(client Publisher, channel string, logger *zap.Logger) *RedisStockAlertNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStockAlertNotifier{client: client, channel: channel, logger: logger}
}

// SendAlert publishes the alert
func (n *RedisStockAlertNotifier) SendAlert(ctx context.Context, alert appinv.StockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode stock alert: %w", err)
	}
	receivers, err := n.client.Publish(ctx, n.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish stock alert: %w", err)
	}
	n.logger.Debug("stock alert published",
		zap.String("channel", n.channel),
		zap.String("product_id", alert.ProductID),
		zap.Int64("receivers", receivers),
	)
	return nil
}

var _ appinv.StockAlertNotifier = (*RedisStockAlertNotifier)(nil)
