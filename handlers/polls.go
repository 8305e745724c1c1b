// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"livepoll/ledger"
	"livepoll/middleware"
	"livepoll/models"
)

// MaxOptions caps how many options one poll may carry.
const MaxOptions = 20

type PollHandler struct {
	db     *sql.DB
	ledger *ledger.Ledger
}

func NewPollHandler(db *sql.DB, l *ledger.Ledger) *PollHandler {
	return &PollHandler{db: db, ledger: l}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question and at least 2 options are required")
		return
	}

	options := make([]string, 0, len(req.Options))
	for _, opt := range req.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	if len(options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question and at least 2 options are required")
		return
	}
	if len(options) > MaxOptions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Too many options")
		return
	}

	// Poll and options are created together or not at all; polls are
	// immutable after this transaction commits.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	pollID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO polls (id, question, created_at)
		VALUES ($1, $2, $3)
	`, pollID, question, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	for _, text := range options {
		_, err = tx.Exec(`
			INSERT INTO options (id, poll_id, text)
			VALUES ($1, $2, $3)
		`, uuid.NewString(), pollID, text)
		if err != nil {
			slog.Error("failed to insert option", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "options", len(options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: pollID,
	})
}

// GetPoll handles GET /polls/:id
// Returns the poll and its options with current vote counts, ordered by
// option text - the same snapshot broadcast to live viewers.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var poll models.Poll
	err := h.db.QueryRow(`
		SELECT id, question, created_at FROM polls WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Question, &poll.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	results, err := h.ledger.GetAggregate(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to query aggregate", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollDetailResponse{
		Poll:    poll,
		Options: results,
	})
}
