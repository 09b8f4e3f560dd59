package anthias

import "fmt"

// DeviceError is the uniform failure value for one player call.
//
// It is a value, not a control-flow exception: the fleet layer stores it
// inside the per-device result mapping so one player's failure never aborts
// its siblings. StatusCode and Body are zero/empty when the failure happened
// below HTTP (connection refused, timeout).
type DeviceError struct {
	Message    string `json:"error"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"response_body,omitempty"`
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("anthias: %s (status %d)", e.Message, e.StatusCode)
	}
	return "anthias: " + e.Message
}

// transportError wraps a below-HTTP failure (dial, timeout, TLS).
func transportError(err error) *DeviceError {
	return &DeviceError{Message: err.Error()}
}

// httpError wraps a non-2xx response, keeping the status and body for
// diagnostics.
func httpError(status int, body []byte) *DeviceError {
	return &DeviceError{
		Message:    fmt.Sprintf("unexpected status %d", status),
		StatusCode: status,
		Body:       string(body),
	}
}
