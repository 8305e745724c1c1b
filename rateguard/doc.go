// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rateguard throttles vote attempts per source before they reach the
ledger.

The Guard is a fixed-window counter: each source key may have at most N
accepted actions per window (default 10 per 15 minutes), after which
attempts are rejected until the window elapses and the count resets. Keys
are independent. Window reset is purely time-based - rejected attempts
neither extend the window nor count against the quota.

	guard := rateguard.New(cfg.RateLimit, cfg.RateWindow)
	go guard.Run(ctx) // prune idle keys
	if !guard.Allow(clientIP) {
		// 429, attempt never reaches the ledger
	}
*/
package rateguard
