package fleet

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nerrad567/sign-fleet-core/internal/anthias"
	"github.com/nerrad567/sign-fleet-core/internal/directory"
	"github.com/nerrad567/sign-fleet-core/internal/infrastructure/logging"
)

// probeField is the live-state field the status view displays.
const probeField = "name"

// Client is the per-player operation surface the orchestrator composes.
// Satisfied by *anthias.Client; tests substitute doubles.
type Client interface {
	UploadFile(ctx context.Context, address string, data []byte, filename, contentType string) (anthias.Upload, *anthias.DeviceError)
	CreateAsset(ctx context.Context, address string, payload anthias.CreationPayload) (json.RawMessage, *anthias.DeviceError)
	ListAssets(ctx context.Context, address string) ([]anthias.Asset, *anthias.DeviceError)
	DeleteAsset(ctx context.Context, address, assetID string) *anthias.DeviceError
	SetAssetEnabled(ctx context.Context, address, assetID string, enabled bool) (json.RawMessage, *anthias.DeviceError)
	FetchField(ctx context.Context, address, field string) string
}

// EventSink receives fleet operation events. Satisfied by the mqtt client;
// optional.
type EventSink interface {
	PublishEvent(topic string, payload []byte) error
}

// StatusRecorder receives per-player probe telemetry. Satisfied by the
// influxdb client; optional.
type StatusRecorder interface {
	RecordDeviceStatus(address, label string, online bool, latencyMS int64)
}

// Orchestrator implements the fleet-wide asset lifecycle operations.
//
// Thread Safety:
//   - All methods are safe for concurrent use; the orchestrator holds no
//     mutable state of its own.
type Orchestrator struct {
	client Client
	source directory.Source
	logger *logging.Logger
	events EventSink      // nil when event publishing is disabled
	status StatusRecorder // nil when telemetry is disabled
}

// New creates an orchestrator.
//
// Parameters:
//   - client: Player client
//   - source: Device directory source
//   - logger: Structured logger
//
// Returns:
//   - *Orchestrator: Ready for use
//   - error: If a required dependency is missing
func New(client Client, source directory.Source, logger *logging.Logger) (*Orchestrator, error) {
	if client == nil {
		return nil, fmt.Errorf("player client is required")
	}
	if source == nil {
		return nil, fmt.Errorf("directory source is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Orchestrator{
		client: client,
		source: source,
		logger: logger,
	}, nil
}

// SetEventSink enables fleet event publishing. Call before serving requests.
func (o *Orchestrator) SetEventSink(sink EventSink) {
	o.events = sink
}

// SetStatusRecorder enables probe telemetry. Call before serving requests.
func (o *Orchestrator) SetStatusRecorder(recorder StatusRecorder) {
	o.status = recorder
}

// ListDevices returns the current device directory.
func (o *Orchestrator) ListDevices(ctx context.Context) ([]directory.Device, error) {
	return o.source.Load(ctx)
}

// CreateFileAsset deploys a file asset to the selected players.
//
// Validation happens first and rejects the whole request before any player
// contact. Then, for each player independently: upload the file; on upload
// failure record it (step=upload) and skip the create step for that player
// only; on success register the asset (step=create_asset) using the uri and
// ext the upload returned. Player failures never affect siblings.
//
// Parameters:
//   - ctx: Context for cancellation
//   - meta: Asset metadata with a file source
//   - addresses: Selected player addresses (must be non-empty)
//
// Returns:
//   - Result: One entry per selected address
//   - error: Validation failure only; player failures are inside Result
func (o *Orchestrator) CreateFileAsset(ctx context.Context, meta AssetMetadata, addresses []string) (Result, error) {
	if err := validateSelection(addresses); err != nil {
		return nil, err
	}
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	if meta.File == nil {
		return nil, ErrNoSource
	}

	contentType := resolveContentType(meta.File)

	results := fanOut(addresses, func(address string) DeviceResult {
		upload, devErr := o.client.UploadFile(ctx, address, meta.File.Data, meta.File.Filename, contentType)
		if devErr != nil {
			return DeviceResult{Step: StepUpload, Error: devErr}
		}

		payload := buildFilePayload(meta, upload, contentType)
		response, devErr := o.client.CreateAsset(ctx, address, payload)
		if devErr != nil {
			return DeviceResult{Step: StepCreateAsset, Error: devErr}
		}
		return DeviceResult{OK: true, Step: StepCreateAsset, Response: response}
	})

	o.publishEvent("create_file_asset", results)
	return results, nil
}

// CreateURLAsset deploys a URL asset to the selected players.
//
// One payload is built and reused verbatim for every player.
func (o *Orchestrator) CreateURLAsset(ctx context.Context, meta AssetMetadata, addresses []string) (Result, error) {
	if err := validateSelection(addresses); err != nil {
		return nil, err
	}
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	if meta.URL == "" {
		return nil, ErrNoSource
	}

	payload := buildURLPayload(meta)

	results := fanOut(addresses, func(address string) DeviceResult {
		response, devErr := o.client.CreateAsset(ctx, address, payload)
		if devErr != nil {
			return DeviceResult{Error: devErr}
		}
		return DeviceResult{OK: true, Response: response}
	})

	o.publishEvent("create_url_asset", results)
	return results, nil
}

// DeleteAssets deletes the referenced assets, one compound "address|asset_id"
// ref at a time. A malformed ref yields an error entry for that ref without
// aborting the others. The result is keyed by the compound ref string.
func (o *Orchestrator) DeleteAssets(ctx context.Context, refs []string) (Result, error) {
	if len(refs) == 0 {
		return nil, ErrNoRefs
	}

	results := fanOut(refs, func(ref string) DeviceResult {
		parsed, err := ParseAssetRef(ref)
		if err != nil {
			return DeviceResult{Error: &anthias.DeviceError{Message: err.Error()}}
		}
		if devErr := o.client.DeleteAsset(ctx, parsed.Address, parsed.AssetID); devErr != nil {
			return DeviceResult{Error: devErr}
		}
		return DeviceResult{OK: true}
	})

	o.publishEvent("delete_assets", results)
	return results, nil
}

// SetAssetsEnabled enables or disables the referenced assets, with the same
// per-ref independent-parse pattern as DeleteAssets.
func (o *Orchestrator) SetAssetsEnabled(ctx context.Context, refs []string, enabled bool) (Result, error) {
	if len(refs) == 0 {
		return nil, ErrNoRefs
	}

	results := fanOut(refs, func(ref string) DeviceResult {
		parsed, err := ParseAssetRef(ref)
		if err != nil {
			return DeviceResult{Error: &anthias.DeviceError{Message: err.Error()}}
		}
		response, devErr := o.client.SetAssetEnabled(ctx, parsed.Address, parsed.AssetID, enabled)
		if devErr != nil {
			return DeviceResult{Error: devErr}
		}
		return DeviceResult{OK: true, Response: response}
	})

	operation := "disable_assets"
	if enabled {
		operation = "enable_assets"
	}
	o.publishEvent(operation, results)
	return results, nil
}

// ListAllAssets fetches the asset list from every directory device - the
// full-fleet view, not a caller-selected subset.
//
// Returns:
//   - map[string]DeviceAssets: Keyed by player address; each entry carries
//     either the asset list or that player's error
//   - error: Directory failure only (aborts before any player contact)
func (o *Orchestrator) ListAllAssets(ctx context.Context) (map[string]DeviceAssets, error) {
	devices, err := o.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	return o.listAssets(ctx, devices, false), nil
}

// ListInactiveAssets is ListAllAssets filtered to assets whose is_active
// field is the literal JSON false - not merely falsy or absent.
func (o *Orchestrator) ListInactiveAssets(ctx context.Context) (map[string]DeviceAssets, error) {
	devices, err := o.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	return o.listAssets(ctx, devices, true), nil
}

// listAssets fans a ListAssets call across devices, optionally filtering
// each successful list down to inactive assets. One entry per device,
// failures contained per device.
func (o *Orchestrator) listAssets(ctx context.Context, devices []directory.Device, inactiveOnly bool) map[string]DeviceAssets {
	// Each goroutine owns one slot; the collector merges after the join,
	// so no lock is needed on the slice itself.
	entries := make([]DeviceAssets, len(devices))

	var wg sync.WaitGroup
	for i, device := range devices {
		i, device := i, device
		wg.Add(1)
		go func() {
			defer wg.Done()

			assets, devErr := o.client.ListAssets(ctx, device.Address)
			if devErr != nil {
				entries[i] = DeviceAssets{Label: device.Label, Error: devErr.Message}
				return
			}

			if inactiveOnly {
				filtered := make([]anthias.Asset, 0, len(assets))
				for _, a := range assets {
					if a.IsActiveFalse() {
						filtered = append(filtered, a)
					}
				}
				assets = filtered
			}
			if assets == nil {
				assets = []anthias.Asset{}
			}

			entries[i] = DeviceAssets{Label: device.Label, Assets: assets}
		}()
	}
	wg.Wait()

	view := make(map[string]DeviceAssets, len(devices))
	for i, device := range devices {
		view[device.Address] = entries[i]
	}
	return view
}
