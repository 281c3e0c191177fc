package repository

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrInvalidArgument is returned when a required input is missing.
	// It is raised before any storage call is made, and it is never retried.
	ErrInvalidArgument errorkit.Error = "invalid argument"
	// ErrNotFound is only returned by adapters which declare MissingKeyNotFound.
	// Reads report absence with a found flag instead.
	ErrNotFound errorkit.Error = "not found"
)

func ErrNilModel(op string) error {
	return ErrInvalidArgument.F("%s: nil model", op)
}

func ErrNilMessage(op string) error {
	return ErrInvalidArgument.F("%s: nil update message", op)
}

func ErrMissingKey(table string, key int) error {
	return ErrNotFound.F("%s with key %d", table, key)
}
