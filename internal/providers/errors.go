package providers

import (
	"errors"
	"fmt"

	"linguahub-backend/internal/models"
)

// ErrUnknownProvider is returned when a provider identifier has no
// registered adapter.
var ErrUnknownProvider = errors.New("unknown provider")

// ConfigError reports a missing credential or endpoint. It is raised
// synchronously before any network call is attempted.
type ConfigError struct {
	Credential string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing credential: %s is not configured", e.Credential)
}

// NewConfigError creates a ConfigError naming the missing credential.
func NewConfigError(credential string) error {
	return &ConfigError{Credential: credential}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ProviderError reports an upstream-semantic failure: a transport-level
// non-2xx, or an application-level error code carried inside a 200
// response (e.g. DeepLX's own code field). Message carries the upstream
// message when one was provided.
type ProviderError struct {
	Provider models.Provider
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: API Error %d", e.Provider, e.Status)
}
