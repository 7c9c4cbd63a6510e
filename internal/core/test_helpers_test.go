package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmarkelov/supportchat-server/internal/store"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// fakeStore is an in-memory store.MessageStore for router/replayer tests.
type fakeStore struct {
	mu        sync.Mutex
	operator  string
	messages  []*store.Message
	appendErr error
}

func newFakeStore(operator string) *fakeStore {
	return &fakeStore{operator: operator}
}

func (f *fakeStore) Append(_ context.Context, sender, receiver, text string) (*store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.appendErr != nil {
		return nil, f.appendErr
	}
	msg := &store.Message{
		ID:        int64(len(f.messages) + 1),
		Sender:    sender,
		Receiver:  receiver,
		Text:      text,
		CreatedAt: time.Now(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeStore) History(_ context.Context, user string) ([]*store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*store.Message
	for _, msg := range f.messages {
		if (msg.Sender == user && msg.Receiver == f.operator) ||
			(msg.Sender == f.operator && msg.Receiver == user) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeStore) DistinctSenders(context.Context) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) RecentMessages(context.Context, int) ([]*store.Message, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
