package session

import "errors"

var (
	// ErrSuperseded is returned when a logout raced an in-flight auth
	// operation and won; the operation's result was discarded.
	ErrSuperseded = errors.New("auth operation superseded by logout")
)
