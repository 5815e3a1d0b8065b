package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation rejects a join before any state changes.
	ErrValidation   = errors.New("invalid join request")
	ErrNameRequired = fmt.Errorf("%w: name and room required", ErrValidation)
	ErrNameTooLong  = fmt.Errorf("%w: name or room too long", ErrValidation)

	// ErrConflict means the display name is already taken in the room.
	ErrConflict = errors.New("user already exists in this room")
	// ErrAlreadyJoined means the connection is already in that room under that name.
	ErrAlreadyJoined = errors.New("already joined")
	// ErrNotFound is a benign race outcome: the connection has no live member.
	ErrNotFound = errors.New("member not found")

	ErrMessageRejected = errors.New("message rejected")
	ErrRateLimited     = errors.New("rate limited")
)

// TooLongError is an ErrNameTooLong carrying the limit in force.
type TooLongError struct {
	Max int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%v: at most %d characters", ErrNameTooLong, e.Max)
}

func (e *TooLongError) Unwrap() error { return ErrNameTooLong }

// UserMessage maps a join or send error to the single string relayed to the client.
func UserMessage(err error) string {
	var tooLong *TooLongError
	switch {
	case errors.As(err, &tooLong):
		return fmt.Sprintf("Name and room must be at most %d characters", tooLong.Max)
	case errors.Is(err, ErrNameTooLong):
		return "Name and room are too long"
	case errors.Is(err, ErrValidation):
		return "Name and room required"
	case errors.Is(err, ErrConflict):
		return "User already exists in this room"
	case errors.Is(err, ErrAlreadyJoined):
		return "Already joined this room"
	case errors.Is(err, ErrNotFound):
		return "Join a room first"
	case errors.Is(err, ErrMessageRejected):
		return "Message rejected"
	case errors.Is(err, ErrRateLimited):
		return "Too many messages, slow down"
	default:
		return "Internal error"
	}
}
