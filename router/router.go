// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"livepoll/handlers"
	"livepoll/hub"
	"livepoll/ledger"
	"livepoll/middleware"
	"livepoll/rateguard"
	"livepoll/ws"
)

// NewRouter returns the full handler chain: the route table wrapped in
// app-wide CORS, since the browser frontend is served from a different
// origin than the API.
func NewRouter(db *sql.DB, broadcast *hub.Hub, guard *rateguard.Guard) http.Handler {
	mux := http.NewServeMux()

	voteLedger := ledger.New(db)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, voteLedger)
	voteHandler := handlers.NewVoteHandler(voteLedger, broadcast)
	wsHandler := ws.NewHandler(broadcast)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Polls (public)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting (public, rate limited per source IP)
	mux.HandleFunc("POST /vote", middleware.WithLogging(
		middleware.WithRateLimit(guard, voteHandler.CastVote)))

	// Live results channel. Not wrapped in logging - the connection is
	// hijacked and lives until disconnect.
	mux.HandleFunc("GET /ws", wsHandler.Serve)

	return middleware.CORS(mux)
}
