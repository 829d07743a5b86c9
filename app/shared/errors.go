package shared

import (
	"errors"
	"fmt"
)

// Error classes shared by every module. Module level errors wrap one of these
// so callers can branch with errors.Is without importing the module.
var (
	// ErrConfiguration is fatal during setup, e.g. the production system is unreachable.
	ErrConfiguration = errors.New("configuration error")

	// ErrData covers unexpected remote payloads and unknown players, divisions or groups.
	ErrData = errors.New("data error")

	// ErrIndex is returned when a focus, card or queue index is out of range.
	ErrIndex = errors.New("index error")

	// ErrProtocol is a negative reply from the production system.
	ErrProtocol = errors.New("protocol error")

	// ErrNetwork indicates the remote scoring API or production host could not be reached.
	ErrNetwork = errors.New("network error")
)

// DataErrorf builds an error wrapping ErrData.
func DataErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrData, fmt.Sprintf(format, args...))
}

// IndexErrorf builds an error wrapping ErrIndex.
func IndexErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIndex, fmt.Sprintf(format, args...))
}

// ConfigurationError wraps a setup failure with the component that caused it.
type ConfigurationError struct {
	Component string
	Err       error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Component, e.Err)
	}
	return "configuration error: " + e.Component
}

func (e *ConfigurationError) Unwrap() []error { return []error{ErrConfiguration, e.Err} }

// NetworkError wraps a transport failure against a remote endpoint.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("network error: %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }
