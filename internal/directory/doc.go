// Package directory provides the device directory for Sign Fleet Core.
//
// The directory is the static list of signage players the fleet operations
// fan out to: one address plus display label per player. Two sources are
// available, selected via config:
//
//   - csv: a flat "address,label" file, matching what operators already
//     maintain. Read-only.
//   - sqlite: the same list in a devices table, manageable over the API.
//
// Both sources re-read their backing store on every Load. Nothing is cached:
// the non-goal of local state reconciliation extends to the directory, so an
// edited device list is live on the next request.
//
// A broken directory is a config-level failure (ErrSourceUnavailable) and
// aborts the whole request before any player is contacted - unlike player
// failures, which are always contained per device.
package directory
