package store

import "errors"

var (
	// ErrNoSnapshot is returned when the cache slot is empty or holds a
	// snapshot belonging to a different viewer.
	ErrNoSnapshot = errors.New("no cached snapshot for viewer")
)

// stateKey is the single key under which the whole client state document is
// persisted. The layer above never sees it.
const stateKey = "recipeway"
