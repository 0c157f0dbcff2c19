// Package id mints ULID strings for transactions and pending
// confirmations. ULIDs sort lexicographically by creation time, so the
// journal's CSV rows and SQLite primary-key index stay in commit order
// without a separate sequence column.
package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Monotonic entropy keeps IDs minted within the same millisecond strictly
// increasing; the locked reader makes New safe for concurrent callers.
var entropy = &ulid.LockedMonotonicReader{
	MonotonicReader: ulid.Monotonic(rand.Reader, 0),
}

// New returns a fresh ULID string.
func New() string {
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}
