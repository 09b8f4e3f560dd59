package fleet

import "errors"

// Validation errors for the fleet package. All of them fail a request
// before any player is contacted.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, fleet.ErrNoDevices) {
//	    // reject with 400, nothing was dispatched
//	}
var (
	// ErrNoDevices is returned when a mutating operation selects zero players.
	ErrNoDevices = errors.New("fleet: no devices selected")

	// ErrNoRefs is returned when a ref-based operation receives an empty list.
	ErrNoRefs = errors.New("fleet: no assets selected")

	// ErrMissingMetadata is returned when name, start date, or end date is empty.
	ErrMissingMetadata = errors.New("fleet: missing required asset metadata")

	// ErrInvalidDuration is returned when a supplied duration is not a
	// non-negative integer.
	ErrInvalidDuration = errors.New("fleet: duration must be a non-negative integer")

	// ErrNoSource is returned when metadata carries neither a file nor a URL.
	ErrNoSource = errors.New("fleet: no asset source provided")

	// ErrConflictingSources is returned when metadata carries both a file
	// and a URL. Exactly one source must be present.
	ErrConflictingSources = errors.New("fleet: both file and URL sources provided")

	// ErrMalformedRef is the per-entry error for a compound reference
	// without the "address|asset_id" separator. Unlike the sentinels above
	// it never aborts a request: it is recorded against the offending ref
	// while sibling refs proceed.
	ErrMalformedRef = errors.New("fleet: malformed asset reference")
)
