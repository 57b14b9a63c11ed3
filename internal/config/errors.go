package config

import "fmt"

// ConfigurationError represents an invalid or missing setup value such as a directory,
// keyword file or output selection
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("config error: %s", e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
