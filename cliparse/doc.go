// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags with
environment variable fallback. A .env file is honored when present.

Settings:

  - PORT (-p): listen port (default 4000)
  - DATABASE_URL (-d): connection string, required
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - RATE_LIMIT (-rate-limit): accepted vote attempts per source per window (default 10)
  - RATE_WINDOW_MINUTES (-rate-window): window length (default 15)
*/
package cliparse
