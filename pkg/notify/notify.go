// Package notify fans out short admin notifications (record created,
// updated, deleted) to connected subscribers. Delivery is delegated to Redis
// pub/sub when enabled and to an in-process broker otherwise.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/JaimeStill/storefront/pkg/lifecycle"
)

// ErrClosed is returned when publishing to or subscribing on a closed broker.
var ErrClosed = errors.New("broker closed")

// Kind classifies a notification.
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
	KindInfo    Kind = "info"
)

// Message is a single notification.
type Message struct {
	Kind     Kind      `json:"kind"`
	Resource string    `json:"resource"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// NewMessage stamps a message with the current time.
func NewMessage(kind Kind, resource, text string) Message {
	return Message{
		Kind:     kind,
		Resource: resource,
		Text:     text,
		At:       time.Now().UTC(),
	}
}

// Publisher sends notifications.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Announce publishes a message and logs, rather than returns, any failure.
// A nil publisher is a no-op.
func Announce(ctx context.Context, p Publisher, logger *slog.Logger, kind Kind, resource, text string) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, NewMessage(kind, resource, text)); err != nil {
		logger.Warn("notification not published", "resource", resource, "kind", kind, "error", err)
	}
}

// Broker publishes notifications and hands out subscriptions. The returned
// channel is closed when ctx is cancelled or the broker closes.
type Broker interface {
	Publisher
	Subscribe(ctx context.Context) (<-chan Message, error)
	Close() error
}

// System is a Broker that participates in the application lifecycle.
type System interface {
	Broker
	Start(lc *lifecycle.Coordinator) error
}
