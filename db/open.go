// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// uniqueViolationPg is the PostgreSQL SQLSTATE for unique constraint
// violations.
const uniqueViolationPg = "23505"

// Open connects to the database identified by dbType ("postgres" or
// "sqlite"). The caller is responsible for pinging and closing.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		return sql.Open("sqlite", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", dbType)
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation
// from either supported driver. Detection is by driver error code, never by
// matching error message text.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationPg
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
