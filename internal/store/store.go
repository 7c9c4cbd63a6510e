package store

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateSubscriber is returned when an email is already subscribed.
var ErrDuplicateSubscriber = errors.New("subscriber already exists")

// Message represents a persisted chat message. Messages are append-only:
// once written they are never updated or deleted.
type Message struct {
	ID        int64
	Sender    string
	Receiver  string
	Text      string
	CreatedAt time.Time
}

// Subscriber represents a captured newsletter email.
type Subscriber struct {
	ID    int64
	Email string
}

// MessageStore handles message persistence.
type MessageStore interface {
	// Append persists a new message with a store-assigned timestamp and
	// auto-increment id. The id preserves insertion order for records
	// sharing the same timestamp.
	Append(ctx context.Context, sender, receiver, text string) (*Message, error)

	// History returns every message exchanged between the given user and
	// the operator, ascending by timestamp, ties broken by id.
	History(ctx context.Context, user string) ([]*Message, error)

	// DistinctSenders returns the identifiers of all users that have sent
	// at least one message to the operator.
	DistinctSenders(ctx context.Context) ([]string, error)

	// RecentMessages returns up to limit messages, newest first.
	RecentMessages(ctx context.Context, limit int) ([]*Message, error)
}

// SubscriberStore handles newsletter subscription persistence.
type SubscriberStore interface {
	// AddSubscriber stores a new email address. Returns
	// ErrDuplicateSubscriber if the email is already present.
	AddSubscriber(ctx context.Context, email string) (*Subscriber, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	MessageStore
	SubscriberStore

	// Close closes the underlying database connection.
	Close() error
}
