package core

import "sync"

// Registry tracks which clients are subscribed to which rooms. A room is
// created implicitly on first join and pruned once its last member leaves.
// Membership is runtime-only state and does not survive a restart.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	members map[*Client]map[string]struct{}
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]map[*Client]struct{}),
		members: make(map[*Client]map[string]struct{}),
	}
}

// Join subscribes a client to a room. Idempotent: joining twice has no
// additional effect. Joining a new room never removes the client from
// rooms it already belongs to. Returns true if the client was newly added.
func (r *Registry) Join(c *Client, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, ok := r.rooms[room]
	if !ok {
		clients = make(map[*Client]struct{})
		r.rooms[room] = clients
	}
	if _, exists := clients[c]; exists {
		return false
	}
	clients[c] = struct{}{}

	rooms, ok := r.members[c]
	if !ok {
		rooms = make(map[string]struct{})
		r.members[c] = rooms
	}
	rooms[room] = struct{}{}
	return true
}

// Leave removes a client from every room it belongs to, pruning rooms
// that become empty. Must be called on every transport disconnect.
func (r *Registry) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.members[c] {
		delete(r.rooms[room], c)
		if len(r.rooms[room]) == 0 {
			delete(r.rooms, room)
		}
	}
	delete(r.members, c)
}

// Subscribers returns a point-in-time snapshot of a room's members.
// The returned slice is safe to iterate while the registry mutates.
func (r *Registry) Subscribers(room string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.rooms[room]))
	for c := range r.rooms[room] {
		clients = append(clients, c)
	}
	return clients
}

// Broadcast sends an event to every current subscriber of a room.
// Slow consumers are skipped rather than blocked on.
func (r *Registry) Broadcast(room string, event *Event) {
	for _, c := range r.Subscribers(room) {
		select {
		case c.Events <- event:
		default:
			// Drop if slow consumer.
		}
	}
}
