// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"sync"

	"livepoll/models"
)

// EventResultsUpdated is the type tag on every snapshot event pushed to
// subscribers.
const EventResultsUpdated = "results_updated"

// Event is one broadcast delivery: the fresh aggregate snapshot for a poll.
type Event struct {
	Type    string         `json:"type"`
	PollID  string         `json:"poll_id"`
	Results models.Results `json:"results"`
}

// Hub is the per-poll publish/subscribe registry. It is an owned instance
// passed to whatever accepts connections - there is no package-level room
// state. All state is in-process; fanning out across multiple server
// processes would need a shared backplane and is out of scope.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// room holds the connections subscribed to one poll. Its mutex is held for
// the whole of a publish, so deliveries within a room are observed in
// publish order. Rooms lock independently: publishing to one poll never
// waits on another.
type room struct {
	mu      sync.Mutex
	members map[string]chan<- Event
}

func New() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

// Subscribe adds a connection's sink to a poll's room. Idempotent: calling
// again for the same connection replaces the sink, so the transport layer
// must re-subscribe after every reconnect. There is no backlog - a
// subscriber only sees snapshots published after this call.
func (h *Hub) Subscribe(pollID, connID string, sink chan<- Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[pollID]
	if !ok {
		r = &room{members: make(map[string]chan<- Event)}
		h.rooms[pollID] = r
	}

	r.mu.Lock()
	r.members[connID] = sink
	r.mu.Unlock()
}

// Unsubscribe removes a connection from one poll's room. Unknown rooms and
// unknown connections are no-ops.
func (h *Hub) Unsubscribe(pollID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[pollID]
	if !ok {
		return
	}

	r.mu.Lock()
	delete(r.members, connID)
	empty := len(r.members) == 0
	r.mu.Unlock()

	if empty {
		delete(h.rooms, pollID)
	}
}

// UnsubscribeAll removes a connection from every room it joined. Called by
// the transport on disconnect.
func (h *Hub) UnsubscribeAll(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for pollID, r := range h.rooms {
		r.mu.Lock()
		delete(r.members, connID)
		empty := len(r.members) == 0
		r.mu.Unlock()

		if empty {
			delete(h.rooms, pollID)
		}
	}
}

// Publish delivers the snapshot to every connection currently in the
// poll's room, at most once each. Sends never block: a sink whose buffer
// is full (a stalled or dying connection) is skipped, and that never fails
// the originating vote. Publishing to an empty or nonexistent room is a
// no-op.
func (h *Hub) Publish(pollID string, results models.Results) {
	h.mu.RLock()
	r, ok := h.rooms[pollID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	ev := Event{Type: EventResultsUpdated, PollID: pollID, Results: results}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sink := range r.members {
		select {
		case sink <- ev:
		default:
		}
	}
}

// RoomSize returns how many connections are subscribed to a poll.
func (h *Hub) RoomSize(pollID string) int {
	h.mu.RLock()
	r, ok := h.rooms[pollID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
