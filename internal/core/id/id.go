// Package id provides identifier types used across the report pipeline.
//
// Row keys in the catalog export are opaque tokens unique within their own
// table. Run identifiers are UUIDv7 so that log lines from successive runs
// sort chronologically.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// Key is an opaque row identifier taken verbatim from the export.
type Key string

// String implements fmt.Stringer.
func (k Key) String() string { return string(k) }

// IsZero reports whether the key is empty.
func (k Key) IsZero() bool { return strings.TrimSpace(string(k)) == "" }

// RunID identifies a single pipeline invocation.
type RunID = uuid.UUID

// NewRun generates a new UUIDv7 run identifier.
func NewRun() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New()
	}
	return id
}
