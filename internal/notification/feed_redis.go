package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const feedKey = "inspekt:notifications"

// RedisFeed shares the notification feed across instances. LPUSH plus LTRIM
// gives the capacity bound atomically on the Redis side.
type RedisFeed struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisFeed creates a Redis-backed feed. The client lifecycle is managed
// by the caller.
func NewRedisFeed(client *redis.Client, logger *slog.Logger) *RedisFeed {
	return &RedisFeed{client: client, logger: logger}
}

func (f *RedisFeed) Append(ctx context.Context, level Level, message string) {
	entry := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		f.logger.Error("marshal notification", "error", err)
		return
	}

	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, feedKey, payload)
	pipe.LTrim(ctx, feedKey, 0, FeedCapacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		// The feed is advisory; a backend hiccup must not fail the
		// caller's workflow.
		f.logger.Error("append notification", "error", err)
	}
}

func (f *RedisFeed) Recent(ctx context.Context) ([]Notification, error) {
	raw, err := f.client.LRange(ctx, feedKey, 0, FeedCapacity-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			f.logger.Warn("skip malformed notification", "error", err)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
