package session

import "github.com/google/uuid"

// NewID returns a fresh opaque session identifier.
func NewID() string {
	return uuid.NewString()
}
