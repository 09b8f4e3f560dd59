package directory

import "context"

// Source provides the list of known signage players.
//
// Implementations re-read their backing store on every Load call: the
// directory is deliberately uncached so that edits to the device list take
// effect on the next request without a restart.
type Source interface {
	// Load returns all known devices in display order.
	// Returns ErrSourceUnavailable (wrapped) if the backing store cannot
	// be read.
	Load(ctx context.Context) ([]Device, error)
}

// Writable is implemented by sources that support managing entries.
// The csv source is read-only; the sqlite source implements this.
type Writable interface {
	Source

	// Put inserts or updates a device by address.
	Put(ctx context.Context, device Device) error

	// Remove deletes a device by address.
	// Returns ErrDeviceNotFound if the address does not exist.
	Remove(ctx context.Context, address string) error
}
