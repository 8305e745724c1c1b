// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"livepoll/models"
	"livepoll/testutil"
)

// TestCastVoteScenario walks the canonical flow: first vote succeeds, a
// second attempt with the same token fails without changing counts, a
// different token succeeds.
func TestCastVoteScenario(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	l := New(conn)
	ctx := context.Background()

	pollID := testutil.CreateTestPoll(t, conn, "Coffee or tea?")
	coffee := testutil.AddTestOption(t, conn, pollID, "Coffee")
	tea := testutil.AddTestOption(t, conn, pollID, "Tea")

	results, err := l.CastVote(ctx, pollID, coffee, "abc")
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	assertCounts(t, results, map[string]int{"Coffee": 1, "Tea": 0})

	// Same token, different option: duplicate, counts unchanged
	_, err = l.CastVote(ctx, pollID, tea, "abc")
	if !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	results, err = l.GetAggregate(ctx, pollID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	assertCounts(t, results, map[string]int{"Coffee": 1, "Tea": 0})

	// Fresh token succeeds
	results, err = l.CastVote(ctx, pollID, tea, "xyz")
	if err != nil {
		t.Fatalf("second voter failed: %v", err)
	}
	assertCounts(t, results, map[string]int{"Coffee": 1, "Tea": 1})
}

func TestCastVotePollNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	l := New(conn)

	_, err := l.CastVote(context.Background(), "no-such-poll", "no-such-option", "abc")
	if !errors.Is(err, ErrPollNotFound) {
		t.Errorf("expected ErrPollNotFound, got %v", err)
	}
}

func TestCastVoteOptionMismatch(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	l := New(conn)
	ctx := context.Background()

	pollA := testutil.CreateTestPoll(t, conn, "Poll A")
	testutil.AddTestOption(t, conn, pollA, "A1")

	pollB := testutil.CreateTestPoll(t, conn, "Poll B")
	optB := testutil.AddTestOption(t, conn, pollB, "B1")

	// Unknown option id
	_, err := l.CastVote(ctx, pollA, "no-such-option", "abc")
	if !errors.Is(err, ErrOptionMismatch) {
		t.Errorf("unknown option: expected ErrOptionMismatch, got %v", err)
	}

	// Option owned by a different poll
	_, err = l.CastVote(ctx, pollA, optB, "abc")
	if !errors.Is(err, ErrOptionMismatch) {
		t.Errorf("foreign option: expected ErrOptionMismatch, got %v", err)
	}

	// Neither attempt may leave a vote behind
	if n := testutil.CountVotes(t, conn, pollA); n != 0 {
		t.Errorf("expected 0 votes after failed casts, got %d", n)
	}
}

// TestConcurrentDuplicateVotes verifies dedup exactness: N concurrent
// casts with the same (poll, token) pair yield exactly 1 success and N-1
// ErrDuplicateVote, decided by the unique constraint rather than arrival
// order.
func TestConcurrentDuplicateVotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	l := New(conn)

	pollID := testutil.CreateTestPoll(t, conn, "Race poll")
	optionID := testutil.AddTestOption(t, conn, pollID, "Only option A")
	testutil.AddTestOption(t, conn, pollID, "Only option B")

	const attempts = 8
	var successCount, duplicateCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := l.CastVote(context.Background(), pollID, optionID, "contested-token")
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrDuplicateVote):
				duplicateCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successCount.Load())
	}
	if duplicateCount.Load() != attempts-1 {
		t.Errorf("expected %d duplicates, got %d", attempts-1, duplicateCount.Load())
	}
	if n := testutil.CountVotes(t, conn, pollID); n != 1 {
		t.Errorf("expected 1 vote row, got %d", n)
	}
}

// TestConservationAndMonotonicity: after every cast, the sum of aggregate
// counts equals the committed vote rows, and no per-option count ever
// decreases.
func TestConservationAndMonotonicity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	l := New(conn)
	ctx := context.Background()

	pollID := testutil.CreateTestPoll(t, conn, "Lunch?")
	options := []string{
		testutil.AddTestOption(t, conn, pollID, "Pizza"),
		testutil.AddTestOption(t, conn, pollID, "Ramen"),
		testutil.AddTestOption(t, conn, pollID, "Salad"),
	}

	prev := map[string]int{}
	tokens := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	for i, token := range tokens {
		results, err := l.CastVote(ctx, pollID, options[i%len(options)], token)
		if err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}

		sum := 0
		for _, oc := range results {
			sum += oc.Votes
			if oc.Votes < prev[oc.OptionID] {
				t.Errorf("count for %s decreased: %d -> %d", oc.Text, prev[oc.OptionID], oc.Votes)
			}
			prev[oc.OptionID] = oc.Votes
		}

		if committed := testutil.CountVotes(t, conn, pollID); sum != committed {
			t.Errorf("after vote %d: aggregate sum %d != committed votes %d", i, sum, committed)
		}
	}
}

func TestGetAggregateOrderedWithZeroCounts(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	l := New(conn)

	pollID := testutil.CreateTestPoll(t, conn, "Ordering")
	testutil.AddTestOption(t, conn, pollID, "Zebra")
	testutil.AddTestOption(t, conn, pollID, "Apple")
	testutil.AddTestOption(t, conn, pollID, "Mango")

	results, err := l.GetAggregate(context.Background(), pollID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	want := []string{"Apple", "Mango", "Zebra"}
	if len(results) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(results))
	}
	for i, text := range want {
		if results[i].Text != text {
			t.Errorf("row %d: expected %q, got %q", i, text, results[i].Text)
		}
		if results[i].Votes != 0 {
			t.Errorf("row %d: expected 0 votes, got %d", i, results[i].Votes)
		}
	}
}

func assertCounts(t *testing.T, results models.Results, want map[string]int) {
	t.Helper()

	if len(results) != len(want) {
		t.Fatalf("expected %d options, got %d: %+v", len(want), len(results), results)
	}
	for _, oc := range results {
		if oc.Votes != want[oc.Text] {
			t.Errorf("option %q: expected %d votes, got %d", oc.Text, want[oc.Text], oc.Votes)
		}
	}
}
