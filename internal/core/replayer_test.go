package core

import (
	"context"
	"errors"
	"testing"
)

func newTestReplayer(st *fakeStore) *Replayer {
	return NewReplayer(st, NewOperator("admin"), uploadPrefix, nopLogger())
}

func seedConversation(t *testing.T, st *fakeStore) {
	t.Helper()
	ctx := context.Background()

	for _, m := range []struct{ sender, receiver, text string }{
		{"alice", "admin", "hi"},
		{"admin", "alice", "hello"},
		{"alice", "admin", "/static/uploads/pic.png"},
		{"bob", "admin", "unrelated"},
	} {
		if _, err := st.Append(ctx, m.sender, m.receiver, m.text); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestReplayDeliversOrderedHistoryToRequesterOnly(t *testing.T) {
	st := newFakeStore("admin")
	seedConversation(t, st)
	replayer := newTestReplayer(st)

	requester := NewClient("r")
	other := NewClient("o")

	if err := replayer.Replay(context.Background(), requester, "alice"); err != nil {
		t.Fatalf("replay: %v", err)
	}

	ev := mustEvent(t, requester.Events, EventHistory)
	want := []HistoryEntry{
		{User: "alice", Text: "hi", IsImage: false},
		{User: "Admin", Text: "hello", IsImage: false},
		{User: "alice", Text: "/static/uploads/pic.png", IsImage: true},
	}
	if len(ev.History) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(ev.History), ev.History)
	}
	for i, entry := range ev.History {
		if entry != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], entry)
		}
	}

	mustNoEvent(t, other.Events)
}

func TestReplayIsIdempotent(t *testing.T) {
	st := newFakeStore("admin")
	seedConversation(t, st)
	replayer := newTestReplayer(st)

	requester := NewClient("r")
	ctx := context.Background()

	if err := replayer.Replay(ctx, requester, "alice"); err != nil {
		t.Fatalf("first replay: %v", err)
	}
	first := mustEvent(t, requester.Events, EventHistory)

	if err := replayer.Replay(ctx, requester, "alice"); err != nil {
		t.Fatalf("second replay: %v", err)
	}
	second := mustEvent(t, requester.Events, EventHistory)

	if len(first.History) != len(second.History) {
		t.Fatalf("replay must return the same data: %d vs %d entries", len(first.History), len(second.History))
	}
	if st.count() != 4 {
		t.Fatalf("replay must not write to the store")
	}
}

func TestReplayRejectsBlankUsername(t *testing.T) {
	st := newFakeStore("admin")
	replayer := newTestReplayer(st)

	requester := NewClient("r")
	if err := replayer.Replay(context.Background(), requester, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	mustNoEvent(t, requester.Events)
}

func TestReplayEmptyConversation(t *testing.T) {
	st := newFakeStore("admin")
	replayer := newTestReplayer(st)

	requester := NewClient("r")
	if err := replayer.Replay(context.Background(), requester, "nobody"); err != nil {
		t.Fatalf("replay: %v", err)
	}

	ev := mustEvent(t, requester.Events, EventHistory)
	if len(ev.History) != 0 {
		t.Fatalf("expected empty history, got %+v", ev.History)
	}
}
