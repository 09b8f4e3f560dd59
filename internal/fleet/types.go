package fleet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nerrad567/sign-fleet-core/internal/anthias"
)

// Step names for the two-phase file-asset flow. A player's result records
// which step it reached so partial failures are diagnosable.
const (
	StepUpload      = "upload"
	StepCreateAsset = "create_asset"
)

// refSeparator joins a player address and an asset ID into a compound
// reference, e.g. "10.0.0.5|42".
const refSeparator = "|"

// AssetMetadata is the caller-supplied description of an asset to create.
// Exactly one of File and URL must be set.
type AssetMetadata struct {
	Name      string
	StartDate string
	EndDate   string
	Duration  int

	File *FileSource
	URL  string
}

// FileSource carries the raw bytes of a file asset plus what the caller
// declared about them.
type FileSource struct {
	Data        []byte
	Filename    string
	ContentType string
}

// AssetRef identifies one asset on one player.
type AssetRef struct {
	Address string `json:"device_address"`
	AssetID string `json:"asset_id"`
}

// ParseAssetRef splits a compound "address|asset_id" reference.
//
// The asset ID may itself contain the separator; only the first occurrence
// splits. Returns ErrMalformedRef when the separator is absent.
func ParseAssetRef(ref string) (AssetRef, error) {
	address, assetID, found := strings.Cut(ref, refSeparator)
	if !found {
		return AssetRef{}, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	return AssetRef{Address: address, AssetID: assetID}, nil
}

// String re-joins the reference into its compound form.
func (r AssetRef) String() string {
	return r.Address + refSeparator + r.AssetID
}

// ParseDuration parses a form-supplied duration string. An empty or
// whitespace-only string defaults to 0, matching the inbound form contract.
//
// Returns ErrInvalidDuration for anything that is not a non-negative integer.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return d, nil
}

// DeviceResult is the tagged outcome of one operation on one player.
// Exactly one of Response/Error carries content; OK mirrors which.
type DeviceResult struct {
	// OK is true when the player call succeeded.
	OK bool `json:"ok"`

	// Step records how far the two-phase file flow got ("upload" or
	// "create_asset"). Empty for single-step operations.
	Step string `json:"step,omitempty"`

	// Response is the player's response body on success.
	Response json.RawMessage `json:"response,omitempty"`

	// Error describes the failure on a contained player error.
	Error *anthias.DeviceError `json:"error,omitempty"`
}

// Result maps a device key to its outcome. The key is the player address
// for device-scoped operations, or the compound ref string for ref-scoped
// ones. Every selected key has exactly one entry; no operation collapses a
// multi-player request into a single scalar.
type Result map[string]DeviceResult

// Succeeded counts entries with OK set.
func (r Result) Succeeded() int {
	n := 0
	for _, dr := range r {
		if dr.OK {
			n++
		}
	}
	return n
}

// Failed counts entries without OK set.
func (r Result) Failed() int {
	return len(r) - r.Succeeded()
}

// DeviceAssets is one player's slice of the full-fleet asset view: either
// its asset list or the error that prevented listing it.
type DeviceAssets struct {
	Label  string          `json:"label"`
	Assets []anthias.Asset `json:"assets,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusEntry is one row of the fleet status view, in directory order.
type StatusEntry struct {
	Label string `json:"label"`
	Name  string `json:"name"`
}
