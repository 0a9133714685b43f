package utils

import "github.com/google/uuid"

// NewTimeOrderedID returns a v7 UUID string, falling back to a random v4
// when the system clock cannot produce one.
//
// Queued actions and conflicts are keyed by these IDs. Version 7 UUIDs
// are time-ordered, so the lexicographic order of IDs follows creation
// order, which keeps queue scans index-friendly.
func NewTimeOrderedID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
