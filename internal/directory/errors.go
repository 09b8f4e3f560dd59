package directory

import "errors"

// Domain errors for the directory package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, directory.ErrSourceUnavailable) {
//	    // directory backing store unreadable - abort before any device contact
//	}
var (
	// ErrSourceUnavailable is returned when the directory backing store
	// cannot be read or parsed. Requests must fail before contacting any
	// player when the directory itself is broken.
	ErrSourceUnavailable = errors.New("directory: source unavailable")

	// ErrDeviceNotFound is returned when an address does not exist in a
	// managed (sqlite) directory.
	ErrDeviceNotFound = errors.New("directory: device not found")

	// ErrReadOnlySource is returned when attempting to modify a source
	// that does not support writes (the csv source).
	ErrReadOnlySource = errors.New("directory: source is read-only")

	// ErrInvalidAddress is returned when storing a device with an empty
	// address.
	ErrInvalidAddress = errors.New("directory: address cannot be empty")
)
