// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the livepoll API.

# Handler Types

Each handler is a struct created via a constructor taking its dependencies:

  - PollHandler: poll creation and retrieval (db + ledger)
  - VoteHandler: vote ingestion + live broadcast (ledger + hub)

# Vote Flow

A vote attempt moves through: rate check (middleware) → field validation →
ledger.CastVote (atomic dedup insert + in-transaction aggregate) →
hub.Publish → response. Status mapping:

	201  vote committed, body carries {success, results}
	400  missing/malformed fields
	404  poll unknown, or option not owned by the poll
	409  duplicate vote (terminal for this voter token)
	429  rate limited (set by middleware before the handler runs)
	500  transient storage failure

Broadcast happens only on the 201 path; a failed insert never changes what
viewers see.

# Poll Flow

	POST /polls      → CreatePoll (question + 2..20 options, one transaction)
	GET  /polls/{id} → GetPoll (poll + per-option counts, text order)

Polls are immutable once created; there is no update or delete surface.
*/
package handlers
