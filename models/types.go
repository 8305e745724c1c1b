package models

import "time"

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Text   string `json:"text"`
}

type Vote struct {
	ID         string    `json:"id"`
	PollID     string    `json:"poll_id"`
	OptionID   string    `json:"option_id"`
	VoterToken string    `json:"-"` // Never expose in JSON
	CastAt     time.Time `json:"cast_at"`
}

// OptionCount is one row of the aggregate snapshot: the current vote count
// for a single option.
type OptionCount struct {
	OptionID string `json:"id"`
	Text     string `json:"text"`
	Votes    int    `json:"votes"`
}

// Results is the aggregate snapshot for one poll, ordered by option text.
// Derived from the votes table, never stored.
type Results []OptionCount

// Request types

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type CastVoteRequest struct {
	PollID     string `json:"poll_id"`
	OptionID   string `json:"option_id"`
	VoterToken string `json:"voter_token"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type CastVoteResponse struct {
	Success bool    `json:"success"`
	Results Results `json:"results"`
}

type PollDetailResponse struct {
	Poll    Poll    `json:"poll"`
	Options Results `json:"options"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
