// Package anthias is the REST client for individual Anthias signage players.
//
// Each player exposes the same fixed, third-party HTTP API (Basic-Auth with
// shared fleet credentials):
//
//	GET    /api/v1/viewer_current_asset   - live playback state (probe)
//	POST   /api/v2/file_asset             - multipart file upload
//	GET    /api/v2/assets                 - list assets
//	POST   /api/v2/assets                 - create asset
//	DELETE /api/v2/assets/{id}            - delete asset
//	PATCH  /api/v2/assets/{id}            - enable/disable asset
//
// Every method performs exactly one remote call against one player and
// normalises the outcome: transport failures, non-2xx responses, and
// malformed bodies all come back as a *DeviceError value carrying whatever
// status code and body were available. Raw transport errors never escape
// this package - that total per-call isolation is what lets the fleet layer
// treat every player uniformly.
//
// The one exception is FetchField, which returns the sentinel "Offline"
// instead of an error: the probe endpoint exists purely for liveness
// display, so an unreachable player is meaningful data, not a failure.
//
// All calls carry finite timeouts. A player that never answers must not
// stall the fleet fan-out.
package anthias
