// Package influxdb provides time-series storage for probe telemetry.
//
// Each fleet status probe records one device_status point per player, tagged
// with the player's address and label, carrying its online state and probe
// latency. Writes are batched and non-blocking; telemetry never slows a
// probe down. The package is optional: when disabled in config, the engine
// simply probes without recording.
package influxdb
