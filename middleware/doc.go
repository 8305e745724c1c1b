// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

  - WithLogging: structured request/completion logs via slog
  - WithRateLimit: per-IP vote throttle in front of a handler
  - CORS: permissive cross-origin headers for the browser frontend
  - JSONResponse / ErrorResponse: JSON encoding with the shared error envelope
  - ParseJSONBody: request body decoding
  - GetClientIP: X-Forwarded-For / X-Real-IP / RemoteAddr resolution

WithRateLimit keys the guard on GetClientIP, so deployments behind a proxy
must set the usual forwarding headers for per-client limits to be
meaningful.
*/
package middleware
