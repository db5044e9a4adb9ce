package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrClosed is returned when publishing on a closed client.
var ErrClosed = errors.New("messaging: client is closed")

// Messaging is a closable Publisher.
type Messaging interface {
	io.Closer
	Publisher
}

// Publisher publishes messages to a destination (topic or subject).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte
	// Key is used by Kafka for partitioning. NATS ignores it.
	Key []byte
	// Headers may repeat keys. Headers with an empty key are skipped.
	Headers []Header
}

// Header is a key/value pair attached to a message.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries what the broker reported about an accepted message.
type PublishResult struct {
	Topic     string
	Timestamp time.Time
}
