// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the vote ingestion and aggregation core.

# Casting Votes

CastVote runs a single transaction: validate the poll, validate the option
belongs to it, insert the vote, and recompute the aggregate before commit:

	results, err := voteLedger.CastVote(ctx, pollID, optionID, voterToken)

The returned snapshot always includes the vote just cast. Deduplication is
delegated to the votes table's unique constraint; the ledger does not
check-then-insert, so N concurrent casts with the same voter token yield
exactly 1 success and N-1 ErrDuplicateVote regardless of arrival order.

# Errors

	ErrPollNotFound   poll id unknown
	ErrOptionMismatch option missing or owned by a different poll
	ErrDuplicateVote  (poll, voter token) already voted; terminal

Anything else is a wrapped storage error. The ledger never retries and
never swallows one; retry policy belongs to the caller.

# Aggregates

GetAggregate returns (option id, text, count) rows ordered by option text,
counting only committed votes. The same query runs inside CastVote's
transaction, which keeps a failed insert from ever influencing a returned
or broadcast snapshot.
*/
package ledger
