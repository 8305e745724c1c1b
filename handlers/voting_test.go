// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livepoll/hub"
	"livepoll/ledger"
	"livepoll/middleware"
	"livepoll/models"
	"livepoll/rateguard"
	"livepoll/testutil"
)

func newVoteFixture(t *testing.T) (*VoteHandler, *hub.Hub, string, string, string) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	broadcast := hub.New()
	h := NewVoteHandler(ledger.New(conn), broadcast)

	pollID := testutil.CreateTestPoll(t, conn, "Coffee or tea?")
	coffee := testutil.AddTestOption(t, conn, pollID, "Coffee")
	tea := testutil.AddTestOption(t, conn, pollID, "Tea")
	return h, broadcast, pollID, coffee, tea
}

func TestCastVoteSuccess(t *testing.T) {
	h, _, pollID, coffee, _ := newVoteFixture(t)

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		PollID: pollID, OptionID: coffee, VoterToken: "abc",
	}, nil)
	w := httptest.NewRecorder()
	h.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success {
		t.Error("expected success true")
	}
	if len(resp.Results) != 2 || resp.Results[0].Text != "Coffee" || resp.Results[0].Votes != 1 {
		t.Errorf("unexpected results %+v", resp.Results)
	}
}

func TestCastVoteDuplicate(t *testing.T) {
	h, _, pollID, coffee, tea := newVoteFixture(t)

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		PollID: pollID, OptionID: coffee, VoterToken: "abc",
	}, nil)
	w := httptest.NewRecorder()
	h.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Same token again, even for another option
	req = testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		PollID: pollID, OptionID: tea, VoterToken: "abc",
	}, nil)
	w = httptest.NewRecorder()
	h.CastVote(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestCastVoteValidation(t *testing.T) {
	h, _, pollID, coffee, _ := newVoteFixture(t)

	cases := []struct {
		name string
		req  models.CastVoteRequest
		want int
	}{
		{"missing poll", models.CastVoteRequest{OptionID: coffee, VoterToken: "abc"}, http.StatusBadRequest},
		{"missing option", models.CastVoteRequest{PollID: pollID, VoterToken: "abc"}, http.StatusBadRequest},
		{"missing token", models.CastVoteRequest{PollID: pollID, OptionID: coffee}, http.StatusBadRequest},
		{"unknown poll", models.CastVoteRequest{PollID: "nope", OptionID: coffee, VoterToken: "abc"}, http.StatusNotFound},
		{"unknown option", models.CastVoteRequest{PollID: pollID, OptionID: "nope", VoterToken: "abc"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/vote", tc.req, nil)
			w := httptest.NewRecorder()
			h.CastVote(w, req)
			testutil.AssertStatus(t, w, tc.want)
		})
	}
}

// TestCastVoteBroadcasts: a subscriber present in the poll's room receives
// one snapshot per successful vote, in vote order, and nothing for failed
// attempts.
func TestCastVoteBroadcasts(t *testing.T) {
	h, broadcast, pollID, coffee, tea := newVoteFixture(t)

	sink := make(chan hub.Event, 4)
	broadcast.Subscribe(pollID, "viewer", sink)

	cast := func(optionID, token string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
			PollID: pollID, OptionID: optionID, VoterToken: token,
		}, nil)
		w := httptest.NewRecorder()
		h.CastVote(w, req)
		return w
	}

	cast(coffee, "abc") // 201
	cast(tea, "abc")    // 409, no broadcast
	cast(tea, "xyz")    // 201

	if len(sink) != 2 {
		t.Fatalf("expected 2 broadcasts, got %d", len(sink))
	}

	first := <-sink
	if first.Results[0].Votes != 1 || first.Results[1].Votes != 0 {
		t.Errorf("first broadcast: expected Coffee:1 Tea:0, got %+v", first.Results)
	}
	second := <-sink
	if second.Results[0].Votes != 1 || second.Results[1].Votes != 1 {
		t.Errorf("second broadcast: expected Coffee:1 Tea:1, got %+v", second.Results)
	}
}

// TestCastVoteSurvivesDisconnect: a vote whose requester has already gone
// away still commits and broadcasts. The request context is cancelled on
// client disconnect; the write must run to completion regardless, with
// only the response discarded.
func TestCastVoteSurvivesDisconnect(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	broadcast := hub.New()
	h := NewVoteHandler(ledger.New(conn), broadcast)

	pollID := testutil.CreateTestPoll(t, conn, "Coffee or tea?")
	coffee := testutil.AddTestOption(t, conn, pollID, "Coffee")
	testutil.AddTestOption(t, conn, pollID, "Tea")

	sink := make(chan hub.Event, 1)
	broadcast.Subscribe(pollID, "viewer", sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // requester disconnected before the write started

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		PollID: pollID, OptionID: coffee, VoterToken: "abc",
	}, nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	if n := testutil.CountVotes(t, conn, pollID); n != 1 {
		t.Errorf("expected 1 committed vote after disconnect, got %d", n)
	}
	if len(sink) != 1 {
		t.Errorf("expected 1 broadcast after disconnect, got %d", len(sink))
	}
}

// TestCastVoteRateLimited exercises the middleware wrapper in front of the
// handler: once the source's window is spent, attempts get 429 and never
// reach the ledger.
func TestCastVoteRateLimited(t *testing.T) {
	h, _, pollID, coffee, _ := newVoteFixture(t)

	guard := rateguard.New(2, 15*time.Minute)
	limited := middleware.WithRateLimit(guard, h.CastVote)

	for i, token := range []string{"t1", "t2"} {
		req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
			PollID: pollID, OptionID: coffee, VoterToken: token,
		}, nil)
		w := httptest.NewRecorder()
		limited(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("vote %d: expected 201, got %d", i, w.Code)
		}
	}

	req := testutil.MakeRequest("POST", "/vote", models.CastVoteRequest{
		PollID: pollID, OptionID: coffee, VoterToken: "t3",
	}, nil)
	w := httptest.NewRecorder()
	limited(w, req)
	testutil.AssertStatus(t, w, http.StatusTooManyRequests)
}
