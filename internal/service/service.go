package service

import (
	"context"
	"time"

	"github.com/samrambhak/community-server-go/internal/sse"
)

// EventPublisher delivers realtime events to a user's connected clients.
// *sse.Broker implements it.
type EventPublisher interface {
	Publish(ctx context.Context, userID string, event sse.Event) error
}

var _ EventPublisher = (*sse.Broker)(nil)

// nowFunc is swapped in tests.
type nowFunc func() time.Time
