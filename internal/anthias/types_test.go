package anthias

import (
	"encoding/json"
	"testing"
)

// parseAsset unmarshals one asset object for accessor tests.
func parseAsset(t *testing.T, raw string) Asset {
	t.Helper()
	var a Asset
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshalling asset: %v", err)
	}
	return a
}

func TestAsset_IsActiveFalse_LiteralOnly(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"literal false", `{"is_active": false}`, true},
		{"literal true", `{"is_active": true}`, false},
		{"absent", `{"name": "x"}`, false},
		{"null", `{"is_active": null}`, false},
		{"falsy number", `{"is_active": 0}`, false},
		{"falsy string", `{"is_active": ""}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAsset(t, tt.raw).IsActiveFalse(); got != tt.want {
				t.Errorf("IsActiveFalse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsset_MarshalRoundTripPreservesFields(t *testing.T) {
	raw := `{"asset_id":"7","name":"A","play_order":3,"vendor_extension":{"x":1}}`
	a := parseAsset(t, raw)

	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshalling asset: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("re-parsing output: %v", err)
	}
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatalf("parsing input: %v", err)
	}

	if len(got) != len(want) {
		t.Errorf("field count changed: got %d, want %d", len(got), len(want))
	}
	if got["vendor_extension"] == nil {
		t.Error("unknown fields must survive the round trip")
	}
}

func TestAsset_AccessorsTolerateWrongTypes(t *testing.T) {
	a := parseAsset(t, `{"asset_id": 42, "name": ["not", "a", "string"]}`)

	if got := a.AssetID(); got != "" {
		t.Errorf("AssetID() on numeric field = %q, want empty", got)
	}
	if got := a.Name(); got != "" {
		t.Errorf("Name() on array field = %q, want empty", got)
	}
}

func TestAsset_MarshalEmpty(t *testing.T) {
	var a Asset
	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshalling zero asset: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("zero asset = %s, want {}", out)
	}
}
