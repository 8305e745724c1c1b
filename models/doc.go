// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and HTTP request/response types
shared across the livepoll server.

# Domain Types

  - Poll: a question with a fixed set of options, immutable after creation
  - Option: one selectable choice belonging to exactly one poll
  - Vote: one immutable record linking a poll, an option, and a voter token
  - OptionCount / Results: the derived per-option vote counts for a poll

Votes are append-only. The voter token is an opaque dedup key supplied by
the client; it is never exposed in JSON and never interpreted beyond
equality comparison.

# Request/Response Types

Handlers decode request bodies into the *Request types and encode the
*Response types. Errors use ErrorResponse with a status text and an
optional human-readable message.
*/
package models
