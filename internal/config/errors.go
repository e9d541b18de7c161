package config

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ConfigurationError represents missing or invalid configuration.
// It is fatal at startup and never produced per request.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Field != "" {
		msg = fmt.Sprintf("configuration error in %s", e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// Kind returns types.KindConfiguration
func (e *ConfigurationError) Kind() types.ErrorKind {
	return types.KindConfiguration
}
