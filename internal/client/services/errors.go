// Package services implements the repository layer of the client: it writes
// through to the remote document store and the local cache together, falls
// back to the remote on local read misses, and leaves whatever could not
// reach the remote queued for the sync worker.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrQueuedForSync means the change is stored locally but the remote write
	// failed; the sync worker will retry it. The remote cause is wrapped too.
	ErrQueuedForSync = errors.New("saved locally, queued for sync")
	ErrNotSignedIn   = errors.New("not signed in")
	ErrNoHousehold   = errors.New("user has no household")
	ErrInviteCodes   = errors.New("could not generate a unique invite code")
)

func queued(cause error) error {
	return fmt.Errorf("%w: %w", ErrQueuedForSync, cause)
}
