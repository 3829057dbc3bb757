package id

import (
	"strings"

	"github.com/google/uuid"
)

/**
 * @file: uuid.go
 * @description: id util
 */

// GetUUID generates a new UUID
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a new UUID without dashes
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewStamp generates an opaque concurrency token. The token changes on
// every persisted mutation and is only ever compared for equality.
func NewStamp() string {
	return uuid.NewString()
}
