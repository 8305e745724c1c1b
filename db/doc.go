// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver by database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite).
Production deployments use PostgreSQL; sqlite covers local development and
the test suite.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - polls: Poll question and creation time
  - options: Voting options per poll
  - votes: One vote per voter token per poll

# Relationships

	polls 1──* options
	polls 1──* votes
	options 1──* votes

All foreign keys use ON DELETE CASCADE.

# The Dedup Constraint

votes carries UNIQUE (poll_id, voter_token). This is the only mechanism
enforcing one-vote-per-voter: concurrent duplicate inserts are resolved by
the database, so exactly one wins no matter how many server processes share
the store. IsUniqueViolation translates both drivers' constraint errors
into a single answer so callers branch on a typed check rather than error
text.
*/
package db
