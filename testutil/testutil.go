// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"livepoll/db"
)

// dbSeq gives each test database a distinct shared-cache name so parallel
// tests never see each other's tables.
var dbSeq atomic.Int64

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. The pool is capped at one connection: shared-cache in-memory
// sqlite does not tolerate concurrent writers, and serializing at the pool
// keeps the unique-constraint race observable without lock errors.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:livepoll_test_%d?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		dbSeq.Add(1),
	)

	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestPoll inserts a poll and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, question string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO polls (id, question, created_at)
		VALUES ($1, $2, $3)
	`, pollID, question, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO options (id, poll_id, text)
		VALUES ($1, $2, $3)
	`, optionID, pollID, text)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CastTestVote inserts a vote directly, bypassing the ledger
func CastTestVote(t *testing.T, conn *sql.DB, pollID, optionID, voterToken string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (id, poll_id, option_id, voter_token, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), pollID, optionID, voterToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// CountVotes returns the number of committed votes for a poll
func CountVotes(t *testing.T, conn *sql.DB, pollID string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
