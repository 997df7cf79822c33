// Package memory implements every repository and the favorites store in
// process memory. It backs STORAGE_DRIVER=memory for local development and
// the end-to-end router tests, and mirrors the Postgres filter and sort
// semantics so both drivers return the same pages.
package memory

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Clock returns the creation timestamp for new rows
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now().UTC()
}

// newerFirst orders by creation time then id, both descending
func newerFirst(aCreated, bCreated time.Time, aID, bID uuid.UUID) int {
	if c := bCreated.Compare(aCreated); c != 0 {
		return c
	}
	return bytes.Compare(bID[:], aID[:])
}
