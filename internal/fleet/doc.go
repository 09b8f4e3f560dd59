// Package fleet implements the orchestration engine for Sign Fleet Core.
//
// Every operation here fans out to an arbitrary set of signage players and
// aggregates the per-player outcomes into a single mapping. The rules are
// the same for all of them:
//
//   - Validation happens before any network activity. An invalid request
//     (no devices selected, missing metadata, bad duration, no source)
//     fails the whole call with a sentinel error and zero player contact.
//   - Once dispatch starts, player failures are contained: each player's
//     outcome - success or DeviceError - lands in the result mapping, and
//     no player's failure, timeout, or panic affects its siblings.
//   - The caller blocks until every dispatched player call has completed;
//     there are no partial results.
//
// File-asset creation runs a two-step protocol per player (upload, then
// register using the upload's uri/ext); the two steps are sequential within
// a player and never pipelined across players. All other operations are a
// single call per player or per compound "address|asset_id" reference.
//
// There are no retries, no cross-player transactions, and no cached state:
// every read queries the players live.
package fleet
