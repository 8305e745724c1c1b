// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"livepoll/hub"
	"livepoll/ledger"
	"livepoll/middleware"
	"livepoll/models"
)

type VoteHandler struct {
	ledger *ledger.Ledger
	hub    *hub.Hub
}

func NewVoteHandler(l *ledger.Ledger, h *hub.Hub) *VoteHandler {
	return &VoteHandler{ledger: l, hub: h}
}

// CastVote handles POST /vote
//
// On success the fresh snapshot is broadcast to the poll's room and
// returned to the voter; every error path returns before any broadcast.
// The ledger's typed errors map onto status codes here - no branching on
// error text anywhere.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PollID == "" || req.OptionID == "" || req.VoterToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// The write runs to completion even if the requester disconnects
	// mid-flight; its result is simply discarded with the response. A
	// half-cancelled insert must never decide what gets broadcast.
	results, err := h.ledger.CastVote(context.WithoutCancel(r.Context()), req.PollID, req.OptionID, req.VoterToken)
	switch {
	case errors.Is(err, ledger.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	case errors.Is(err, ledger.ErrOptionMismatch):
		middleware.ErrorResponse(w, http.StatusNotFound, "Option not found for this poll")
		return
	case errors.Is(err, ledger.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this poll")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "poll_id", req.PollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	h.hub.Publish(req.PollID, results)

	slog.Info("vote cast", "poll_id", req.PollID, "option_id", req.OptionID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Success: true,
		Results: results,
	})
}
