package utils

import "errors"

// Sentinel errors for the moderation workflow and admin endpoints. Services
// return these (possibly wrapped); the API layer maps each one to a distinct
// error code surfaced to the caller.
var (
	// ErrUnauthenticated means no verified caller identity was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrPermissionDenied means the caller identity resolved, but lacks the
	// admin flag required for the operation.
	ErrPermissionDenied = errors.New("permission-denied")

	// ErrNotFound means a referenced contribution or knowledge id is absent.
	ErrNotFound = errors.New("not-found")

	// ErrAlreadyModerated means the contribution already left the pending
	// state; a retried approval or rejection is refused rather than
	// re-applied, so a retry can never create a duplicate knowledge item.
	ErrAlreadyModerated = errors.New("already-moderated")
)
