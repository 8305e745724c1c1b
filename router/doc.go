// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

NewRouter wires handlers to paths using Go 1.22+ method routing:

	GET  /health      → liveness probe
	POST /polls       → create a poll
	GET  /polls/{id}  → poll with current counts
	POST /vote        → cast a vote (rate limited)
	GET  /ws          → live results websocket

The returned handler is the mux wrapped in middleware.CORS, so every
endpoint (preflights included) is reachable from the browser frontend's
origin.

The router constructs the ledger itself but receives the hub and rate
guard from main, since both carry process-lifetime state (room membership,
rate windows, the pruning goroutine).
*/
package router
