package anthias

import "encoding/json"

// Upload is the result of a successful file upload to a player.
// Both fields are required: a 2xx upload response missing either is treated
// as a failure by the client.
type Upload struct {
	URI string `json:"uri"`
	Ext string `json:"ext"`
}

// CreationPayload is the device-bound body for the create-asset endpoint.
//
// For file assets, Ext and URI come from the upload step's response, never
// from the caller. For URL assets, Ext is the literal "string" and URI is
// the asset URL - that is what the player API expects.
type CreationPayload struct {
	Ext            string `json:"ext"`
	Name           string `json:"name"`
	URI            string `json:"uri"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Duration       int    `json:"duration"`
	Mimetype       string `json:"mimetype"`
	IsEnabled      bool   `json:"is_enabled"`
	IsProcessing   bool   `json:"is_processing"`
	NoCache        bool   `json:"nocache"`
	PlayOrder      int    `json:"play_order"`
	SkipAssetCheck bool   `json:"skip_asset_check"`
}

// Asset is one asset object as reported by a player.
//
// The player API's JSON shape is loose, so the full object is retained and
// re-marshalled verbatim; consumers pull out the named fields they require
// through accessors and tolerate everything else being absent.
type Asset struct {
	fields map[string]any
}

// UnmarshalJSON parses the raw asset object, keeping all fields.
func (a *Asset) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &a.fields)
}

// MarshalJSON re-emits the asset exactly as the player reported it.
func (a Asset) MarshalJSON() ([]byte, error) {
	if a.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a.fields)
}

// AssetID returns the asset's identifier, or "" when absent.
func (a Asset) AssetID() string {
	return a.stringField("asset_id")
}

// Name returns the asset's display name, or "" when absent.
func (a Asset) Name() string {
	return a.stringField("name")
}

// IsActiveFalse reports whether the asset carries the literal JSON boolean
// false for is_active. A missing field, null, or any non-false value - even
// falsy ones like 0 or "" - does not count.
//
// Note the read-side field here is is_active while the enable/disable PATCH
// writes is_enabled; the player API treats these as distinct fields.
func (a Asset) IsActiveFalse() bool {
	v, ok := a.fields["is_active"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && !b
}

// stringField returns the named field as a string, tolerating absence and
// non-string values.
func (a Asset) stringField(name string) string {
	v, ok := a.fields[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
