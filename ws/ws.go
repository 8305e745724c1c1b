// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"livepoll/hub"
)

// sinkBuffer bounds how many undelivered snapshots a connection may queue
// before the hub starts skipping it.
const sinkBuffer = 16

// Client message types
const (
	msgJoinPoll  = "join_poll"
	msgLeavePoll = "leave_poll"
)

type clientFrame struct {
	Type   string `json:"type"`
	PollID string `json:"poll_id"`
}

// Handler upgrades HTTP requests to websockets and bridges them to the
// broadcast hub.
type Handler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewHandler(h *hub.Hub) *Handler {
	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			// Poll viewing is anonymous and the frontend is served from
			// arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws. The client joins poll rooms by sending
//
//	{"type":"join_poll","poll_id":"..."}
//
// and must re-join after every reconnect - no membership survives the
// socket. The server pushes results_updated events for every successful
// vote in a joined poll. Disconnecting, at any time, unsubscribes the
// connection from all rooms; nothing else is cancelled on its behalf.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	connID := uuid.NewString()
	sink := make(chan hub.Event, sinkBuffer)
	done := make(chan struct{})

	go writePump(conn, sink, done)

	for {
		// Only transport errors end the connection. A frame that fails to
		// decode is dropped and the socket stays up.
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			slog.Debug("dropping undecodable websocket frame", "error", err)
			continue
		}

		switch frame.Type {
		case msgJoinPoll:
			if frame.PollID != "" {
				h.hub.Subscribe(frame.PollID, connID, sink)
			}
		case msgLeavePoll:
			if frame.PollID != "" {
				h.hub.Unsubscribe(frame.PollID, connID)
			}
		default:
			// Unknown frames are ignored, never fatal to the socket.
			slog.Debug("ignoring websocket frame", "type", frame.Type)
		}
	}

	h.hub.UnsubscribeAll(connID)
	close(done)
	conn.Close()
}

// writePump is the single writer for a connection. Gorilla connections
// allow one concurrent writer, so all sends funnel through the sink.
func writePump(conn *websocket.Conn, sink <-chan hub.Event, done <-chan struct{}) {
	for {
		select {
		case ev := <-sink:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
