package messaging

import (
	"context"
	"sync/atomic"
	"time"
)

// Noop discards messages. It still honors context cancellation and Close so
// callers observe the same contract as with a real broker.
type Noop struct {
	closed atomic.Bool
}

// NewNoop returns a Noop publisher.
func NewNoop() *Noop {
	return &Noop{}
}

// Publish discards msg.
func (n *Noop) Publish(ctx context.Context, destination string, _ OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if n.closed.Load() {
		return PublishResult{}, ErrClosed
	}
	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Close marks the publisher closed.
func (n *Noop) Close() error {
	n.closed.Store(true)
	return nil
}
