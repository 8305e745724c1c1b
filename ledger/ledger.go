// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"livepoll/db"
	"livepoll/models"
)

// Ledger records votes and answers aggregate queries. It holds no mutable
// state of its own: deduplication rests entirely on the votes table's
// UNIQUE (poll_id, voter_token) constraint, so the ledger is safe to share
// across goroutines and across server processes backed by the same store.
type Ledger struct {
	db *sql.DB
}

func New(database *sql.DB) *Ledger {
	return &Ledger{db: database}
}

// CastVote inserts exactly one vote for (pollID, voterToken) and returns
// the aggregate recomputed within the same transaction, so the snapshot is
// guaranteed to include the just-inserted vote.
//
// Among any number of concurrent calls with the same (pollID, voterToken),
// exactly one receives the snapshot; the rest receive ErrDuplicateVote.
// Other returns: ErrPollNotFound, ErrOptionMismatch, or a wrapped storage
// error (transient; the ledger never retries internally).
func (l *Ledger) CastVote(ctx context.Context, pollID, optionID, voterToken string) (models.Results, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)
	`, pollID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check poll: %w", err)
	}
	if !exists {
		return nil, ErrPollNotFound
	}

	var ownerID string
	err = tx.QueryRowContext(ctx, `
		SELECT poll_id FROM options WHERE id = $1
	`, optionID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("check option: %w", err)
	}
	if ownerID != pollID {
		return nil, ErrOptionMismatch
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, poll_id, option_id, voter_token, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), pollID, optionID, voterToken, time.Now().UTC())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("insert vote: %w", err)
	}

	results, err := aggregate(ctx, tx, pollID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit vote: %w", err)
	}

	return results, nil
}

// GetAggregate returns the current vote count per option for a poll,
// ordered by option text. Only committed votes are visible. A poll with no
// options (or an unknown poll id) yields an empty result; existence checks
// belong to the caller.
func (l *Ledger) GetAggregate(ctx context.Context, pollID string) (models.Results, error) {
	return aggregate(ctx, l.db, pollID)
}

// querier is satisfied by both *sql.DB and *sql.Tx so the aggregate can be
// computed inside the voting transaction or standalone.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func aggregate(ctx context.Context, q querier, pollID string) (models.Results, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT o.id, o.text, COUNT(v.id)
		FROM options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.text
		ORDER BY o.text
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query aggregate: %w", err)
	}
	defer rows.Close()

	results := models.Results{}
	for rows.Next() {
		var oc models.OptionCount
		if err := rows.Scan(&oc.OptionID, &oc.Text, &oc.Votes); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		results = append(results, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read aggregate rows: %w", err)
	}

	return results, nil
}
