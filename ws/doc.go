// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ws is the websocket transport for live poll results.

One Handler serves GET /ws. Each connection gets a random id, a buffered
event sink registered with the hub on join_poll, and a dedicated writer
goroutine. Frames:

	client → server  {"type":"join_poll","poll_id":"..."}
	client → server  {"type":"leave_poll","poll_id":"..."}
	server → client  {"type":"results_updated","poll_id":"...","results":[...]}

The transport owns reconnect semantics: since the hub keeps no state for a
dead connection, clients must send join_poll again on every reconnect.
*/
package ws
