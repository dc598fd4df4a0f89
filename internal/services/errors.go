package services

import (
	"errors"

	"anonboard/internal/models"
)

var (
	// ErrNotFound means the referenced post or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means a delete was attempted by a non-moderator.
	ErrUnauthorized = errors.New("unauthorized")
)

// AlreadyVotedError is returned when a caller repeats the vote they
// already hold on a post. The redundant vote is rejected outright; it
// does not reset the vote to neutral.
type AlreadyVotedError struct {
	Value int // models.VoteLike or models.VoteDislike
}

func (e *AlreadyVotedError) Error() string {
	if e.Value == models.VoteLike {
		return "already liked"
	}
	return "already disliked"
}
