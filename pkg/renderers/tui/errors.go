package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyRounds is returned when the user keeps rejecting the
	// collected values.
	ErrTooManyRounds = errors.New("tui: too many edit rounds")
)
