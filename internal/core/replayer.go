package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmarkelov/supportchat-server/internal/store"
)

// Replayer reconstructs a conversation's ordered history and delivers it to
// a single requesting client. It never broadcasts to a room and has no side
// effects on the store.
type Replayer struct {
	store        store.MessageStore
	op           Operator
	uploadPrefix string
	log          *zerolog.Logger
}

// NewReplayer builds a history replayer over a message store.
func NewReplayer(st store.MessageStore, op Operator, uploadPrefix string, logger *zerolog.Logger) *Replayer {
	return &Replayer{
		store:        st,
		op:           op,
		uploadPrefix: uploadPrefix,
		log:          logger,
	}
}

// Replay emits a single history event to the requesting client, containing
// the user's full conversation with the operator in insertion order.
func (r *Replayer) Replay(ctx context.Context, c *Client, username string) error {
	if strings.TrimSpace(username) == "" {
		return validationError("username is required")
	}

	messages, err := r.store.History(ctx, username)
	if err != nil {
		r.log.Error().Err(err).Str("username", username).Msg("load history")
		return storageError("load history", err)
	}

	entries := make([]HistoryEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, HistoryEntry{
			User:    r.op.DisplayName(msg.Sender),
			Text:    msg.Text,
			IsImage: r.uploadPrefix != "" && strings.HasPrefix(msg.Text, r.uploadPrefix),
		})
	}

	// Point-to-point delivery: only the requester sees the replay.
	select {
	case c.Events <- &Event{Kind: EventHistory, History: entries}:
	default:
		r.log.Warn().Str("client_id", c.ID).Msg("history dropped, slow consumer")
	}
	return nil
}
