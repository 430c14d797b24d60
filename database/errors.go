package database

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by every ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupportedDialect is returned when a dialect outside sqlite, mysql
	// and postgres reaches the registry.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrUnsupportedAction is returned for an unknown foreign key action.
	ErrUnsupportedAction = errors.New("unsupported foreign key action")

	// ErrNotConnected is returned by adapters used before Connect.
	ErrNotConnected = errors.New("adapter is not connected")
)

// ConfigurationError reports a violated precondition such as an empty table
// name, an empty column name or a missing connection parameter.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfiguration, e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func newConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}
