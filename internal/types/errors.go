package types

import "errors"

// ErrorKind classifies the structured errors produced by the matching engine.
type ErrorKind string

const (
	// KindEmptyInput means a document had no usable tokens
	KindEmptyInput ErrorKind = "empty_input"
	// KindEmbeddingUnavailable means the embedding provider failed or returned malformed output
	KindEmbeddingUnavailable ErrorKind = "embedding_unavailable"
	// KindConfiguration means configuration assets were missing or invalid
	KindConfiguration ErrorKind = "configuration"
	// KindUnknown is returned by KindOf for errors without a kind
	KindUnknown ErrorKind = "unknown"
)

// KindedError is implemented by errors that carry an ErrorKind.
type KindedError interface {
	error
	Kind() ErrorKind
}

// KindOf returns the kind of the first KindedError in err's chain.
func KindOf(err error) ErrorKind {
	var ke KindedError
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return KindUnknown
}
