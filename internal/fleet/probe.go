package fleet

import (
	"context"
	"sync"
	"time"

	"github.com/nerrad567/sign-fleet-core/internal/anthias"
)

// ProbeStatus reads the currently playing asset name from every directory
// device, concurrently.
//
// The returned slice preserves the directory's display order - unlike the
// address-keyed mappings elsewhere, the status view is positional. An
// unreachable player contributes an "Offline" entry; no entry is ever
// dropped, and the total wall time is bounded by the slowest single probe,
// not the sum of all of them.
//
// Returns:
//   - []StatusEntry: One per directory device, in directory order
//   - error: Directory failure only
func (o *Orchestrator) ProbeStatus(ctx context.Context) ([]StatusEntry, error) {
	devices, err := o.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Indexed slots: each goroutine writes only its own, so the join
	// barrier is the only synchronisation needed.
	entries := make([]StatusEntry, len(devices))

	var wg sync.WaitGroup
	for i, device := range devices {
		i, device := i, device
		wg.Add(1)
		go func() {
			defer wg.Done()

			start := time.Now()
			name := o.client.FetchField(ctx, device.Address, probeField)
			latency := time.Since(start)

			entries[i] = StatusEntry{Label: device.Label, Name: name}

			if o.status != nil {
				online := name != anthias.OfflineSentinel
				o.status.RecordDeviceStatus(device.Address, device.Label, online, latency.Milliseconds())
			}
		}()
	}
	wg.Wait()

	return entries, nil
}
