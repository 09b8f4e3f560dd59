package fleet

import (
	"fmt"
	"sync"

	"github.com/nerrad567/sign-fleet-core/internal/anthias"
)

// fanOut runs fn once per key, concurrently, and joins on all of them.
//
// Guarantees:
//   - Exactly one entry per distinct input key, regardless of timing.
//   - A failing or panicking fn for one key never disturbs the others; a
//     panic is recovered into that key's DeviceResult.
//   - The call is synchronous: the returned map is complete, never partial.
//
// No completion-order guarantee is made, and none is needed - the result
// is keyed, not ordered. Keys appearing twice in the input execute twice
// but keep a single (last-written) entry, which is harmless because fn is
// expected to be idempotent per key within one request.
func fanOut[K comparable](keys []K, fn func(K) DeviceResult) map[K]DeviceResult {
	results := make(map[K]DeviceResult, len(keys))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, key := range keys {
		key := key
		wg.Add(1)
		go func() {
			defer wg.Done()

			result := runContained(key, fn)

			mu.Lock()
			results[key] = result
			mu.Unlock()
		}()
	}

	wg.Wait()
	return results
}

// runContained invokes fn, converting a panic into a DeviceResult so the
// sibling goroutines and the join barrier are unaffected.
func runContained[K comparable](key K, fn func(K) DeviceResult) (result DeviceResult) {
	defer func() {
		if r := recover(); r != nil {
			result = DeviceResult{
				Error: &anthias.DeviceError{
					Message: fmt.Sprintf("internal panic during device operation: %v", r),
				},
			}
		}
	}()
	return fn(key)
}
