package utils

import (
	"github.com/google/uuid"
)

// NewID returns a UUID v7 so freshly inserted rows sort by creation
// time. Falls back to v4 if the clock-based generator fails.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
