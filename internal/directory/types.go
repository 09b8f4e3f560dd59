package directory

// Device is one signage player known to the fleet.
//
// Address uniquely identifies a player within the directory (typically an IP
// or hostname). Label is a display alias and defaults to the address when
// absent. Devices are immutable once loaded - sources re-read their backing
// store on every Load, so a Device never outlives the request that loaded it.
type Device struct {
	Address string `json:"address"`
	Label   string `json:"label"`
}
