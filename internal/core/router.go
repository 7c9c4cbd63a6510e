package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmarkelov/supportchat-server/internal/store"
)

// Router validates, persists, and forwards exactly one inbound event per
// invocation. It holds no state between events and is safe for concurrent
// use from multiple connections.
type Router struct {
	store        store.MessageStore
	registry     *Registry
	op           Operator
	uploadPrefix string
	log          *zerolog.Logger
}

// NewRouter builds a router on top of a message store and a room registry.
// uploadPrefix is the resource-path prefix that marks a message as an image.
func NewRouter(st store.MessageStore, registry *Registry, op Operator, uploadPrefix string, logger *zerolog.Logger) *Router {
	return &Router{
		store:        st,
		registry:     registry,
		op:           op,
		uploadPrefix: uploadPrefix,
		log:          logger,
	}
}

// RouteText persists a text message and broadcasts it to the target room.
func (r *Router) RouteText(ctx context.Context, sender, receiver, text string) error {
	return r.route(ctx, sender, receiver, text)
}

// RouteAdminReply persists an operator reply addressed to one user and
// broadcasts it to that user's room.
func (r *Router) RouteAdminReply(ctx context.Context, to, text string) error {
	return r.route(ctx, r.op.Name, to, text)
}

// RouteImage persists an image message. The resource URL is stored in place
// of the text; whether it displays as an image follows the upload-path
// prefix convention, same as on replay.
func (r *Router) RouteImage(ctx context.Context, sender, receiver, url string) error {
	return r.route(ctx, sender, receiver, url)
}

func (r *Router) route(ctx context.Context, sender, receiver, payload string) error {
	if isBlank(sender) || isBlank(receiver) || isBlank(payload) {
		return validationError("sender, receiver and payload are required")
	}

	// Persist first: a message must never be broadcast unless it was
	// durably recorded.
	msg, err := r.store.Append(ctx, sender, receiver, payload)
	if err != nil {
		r.log.Error().Err(err).Str("sender", sender).Str("receiver", receiver).Msg("append message")
		return storageError("persist message", err)
	}

	// The target room is always the non-operator party: operator replies
	// go to the addressed user's room, user messages go to the sending
	// user's own room (where the operator listens by having joined it).
	target := receiver
	if r.op.Is(receiver) {
		target = sender
	}

	r.registry.Broadcast(target, &Event{
		Kind:      EventMessage,
		User:      r.op.DisplayName(sender),
		To:        receiver,
		Text:      payload,
		Timestamp: msg.CreatedAt,
		IsImage:   r.IsImage(payload),
	})
	return nil
}

// IsImage reports whether a stored text is an image resource locator,
// discriminated by the upload-path prefix convention.
func (r *Router) IsImage(text string) bool {
	return r.uploadPrefix != "" && strings.HasPrefix(text, r.uploadPrefix)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
