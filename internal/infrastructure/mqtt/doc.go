// Package mqtt provides the broker client for fleet event publishing.
//
// After every mutating fleet operation the engine publishes a summary event
// under signfleet/fleet/<operation>, and it announces its own lifecycle on
// signfleet/system/status (retained, with a Last Will for crash detection).
// The client is publish-only; nothing commands the engine over MQTT.
package mqtt
