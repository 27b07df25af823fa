package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and upstream
// clients return these (optionally wrapped) so services can translate them
// into domain errors:
//   - ErrNotFound: no binding/entry exists for the key
//   - ErrConflict: a uniqueness rule rejected the write
//   - ErrUnavailable: backing service temporarily unavailable
//   - ErrLockHeld: a distributed lock is owned by someone else
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
	ErrLockHeld    = errors.New("lock held")
)
