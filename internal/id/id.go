// Package id generates identifiers for records and requests.
package id

import (
	"github.com/google/uuid"
)

// NewUUID returns a random (version 4, RFC 4122 variant) UUID in its
// lowercase 8-4-4-4-12 form. It panics if the system random source fails.
func NewUUID() string {
	return uuid.New().String()
}
