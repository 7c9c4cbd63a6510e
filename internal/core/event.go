package core

import "time"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMessage carries one chat message to a room's subscribers.
	EventMessage EventKind = iota
	// EventHistory delivers a conversation's message history to a single
	// requesting client.
	EventHistory
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind EventKind

	// Message fields.
	User      string // display name of the sender
	To        string // receiver identifier as sent
	Text      string // message text, or resource URL for images
	Timestamp time.Time
	IsImage   bool

	// History entries, set for EventHistory.
	History []HistoryEntry
}

// HistoryEntry is one replayed message of a conversation.
type HistoryEntry struct {
	User    string
	Text    string
	IsImage bool
}
