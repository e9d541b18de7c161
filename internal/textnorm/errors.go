package textnorm

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Reasons reported by EmptyInputError
const (
	ReasonEmptyText = "text is empty"
	ReasonNoTokens  = "no usable tokens after filtering"
)

// EmptyInputError means a text produced no usable tokens.
// Callers must treat it as "cannot analyze", not as a zero score.
type EmptyInputError struct {
	Input  string // which input failed, e.g. "resume" or "job description"
	Reason string
}

func (e *EmptyInputError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("empty input: %s: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("empty input: %s", e.Reason)
}

// Kind returns types.KindEmptyInput
func (e *EmptyInputError) Kind() types.ErrorKind {
	return types.KindEmptyInput
}

// WithInput labels an EmptyInputError with the input it came from.
// Other errors are returned unchanged.
func WithInput(err error, input string) error {
	var emptyErr *EmptyInputError
	if errors.As(err, &emptyErr) {
		return &EmptyInputError{Input: input, Reason: emptyErr.Reason}
	}
	return err
}
