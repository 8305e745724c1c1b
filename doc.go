// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll server.

Livepoll is a live polling service: an operator creates a poll with a
question and a few options, shares the link, and anonymous participants
each cast one vote while watching results update in real time over a
websocket.

# Starting the Server

The server requires a database URL via environment variables or CLI flags:

	DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 4000 -t sqlite -d "file:livepoll.db"

# Configuration

  - DATABASE_URL (-d): connection string, required
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - PORT (-p): server port (default: 4000)
  - RATE_LIMIT / RATE_WINDOW_MINUTES: vote throttle (default 10 per 15 min)

# Architecture

One-vote-per-voter is enforced by a database unique constraint on
(poll_id, voter_token) - never by application-level checks - so dedup is
exact even under concurrent identical requests. Components:

  - ledger: vote ingestion, dedup, and aggregation core
  - hub: per-poll rooms broadcasting fresh snapshots to live viewers
  - rateguard: fixed-window per-IP throttle in front of the vote endpoint
  - ws: websocket transport (join_poll / results_updated)
  - handlers, router, middleware: HTTP surface
  - db, models, cliparse: storage, types, configuration

See package documentation for each component.
*/
package main
