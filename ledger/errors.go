package ledger

import "errors"

var (
	// ErrPollNotFound means the poll id does not reference an existing poll.
	ErrPollNotFound = errors.New("poll not found")

	// ErrOptionMismatch means the option does not exist or does not belong
	// to the given poll.
	ErrOptionMismatch = errors.New("option does not belong to poll")

	// ErrDuplicateVote means a vote with the same (poll, voter token) pair
	// already exists. Terminal: retrying with the same token can never
	// succeed.
	ErrDuplicateVote = errors.New("voter has already voted in this poll")
)
