package id

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

/**
 * @file: ulid.go
 * @description: ulid
 */

// GetULID generates a lexicographically sortable id for public identifiers.
func GetULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	ms := ulid.Timestamp(time.Now())
	uid, err := ulid.New(ms, entropy)
	if err != nil {
		return ""
	}
	return uid.String()
}
