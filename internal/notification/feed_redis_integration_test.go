//go:build integration

package notification_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspekt/internal/notification"
	"inspekt/pkg/testutil/containers"
)

func TestRedisFeedBound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	feed := notification.NewRedisFeed(rc.Client, logger)
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		feed.Append(ctx, notification.LevelInfo, fmt.Sprintf("message %d", i))
	}

	entries, err := feed.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, entries, notification.FeedCapacity)
	assert.Equal(t, "message 8", entries[0].Message)
	assert.Equal(t, "message 4", entries[4].Message)
}
