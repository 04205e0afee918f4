package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when no API key is stored.
	ErrMissingCredential = errors.New("analysis: no API key configured")

	// ErrNoSessions is returned for an empty batch. No request is made.
	ErrNoSessions = errors.New("analysis: no pending study sessions")
)

// RemoteError covers every failure of the remote call: transport errors,
// empty responses and responses that do not match the expected shape.
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analysis request failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
