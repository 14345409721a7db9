package schema

import "errors"

// Sentinel errors. They signal caller contract violations and are wrapped
// with context by the functions that return them; match with errors.Is.
var (
	// ErrNotFound is returned when a method name is not registered.
	ErrNotFound = errors.New("method not found")

	// ErrInvalidArgument is returned for empty factor or value lists and empty names.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidScore is returned when a method score is outside (0,1].
	ErrInvalidScore = errors.New("score must be in (0,1]")

	// ErrFactorOutOfRange is returned when a factor produces a value outside [0,1].
	ErrFactorOutOfRange = errors.New("factor value out of range [0,1]")

	// ErrInvalidLadder is returned when a ladder cannot guarantee a total, monotonic selection.
	ErrInvalidLadder = errors.New("invalid ladder")
)
