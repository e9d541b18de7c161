package embedding

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// EmbeddingUnavailableError means the provider could not be reached or returned
// malformed output. Analysis must abort; a zero vector is never substituted.
type EmbeddingUnavailableError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *EmbeddingUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding unavailable (%s): %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding unavailable (%s): %s", e.Provider, e.Message)
}

func (e *EmbeddingUnavailableError) Unwrap() error {
	return e.Cause
}

// Kind returns types.KindEmbeddingUnavailable
func (e *EmbeddingUnavailableError) Kind() types.ErrorKind {
	return types.KindEmbeddingUnavailable
}
