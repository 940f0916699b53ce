package event

import "errors"

var (
	// ErrUnknownType is returned when an event type is outside the
	// closed taxonomy. Nothing is written in that case.
	ErrUnknownType = errors.New("unknown event type")

	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCursor is returned for a malformed pagination cursor.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidRange is returned when from is after to.
	ErrInvalidRange = errors.New("invalid time range")
)
