// Package embedding maps texts to fixed-dimension dense vectors.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Provider produces embedding vectors for text.
type Provider interface {
	// Embed returns the vector for text
	Embed(ctx context.Context, text string) (types.EmbeddingVector, error)
	// Dimension returns the configured vector length D
	Dimension() int
	// Name identifies the provider in logs and errors
	Name() string
	// Close releases any resources held by the provider
	Close() error
}

// NewProvider creates the provider named by cfg, wrapped with Validated.
// apiKey is only used by the gemini provider.
func NewProvider(ctx context.Context, cfg config.EmbeddingConfig, apiKey string) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch cfg.Provider {
	case config.ProviderGemini:
		p, err = NewGemini(ctx, GeminiConfig{APIKey: apiKey, Model: cfg.Model, Dimension: cfg.Dimension})
	case config.ProviderOllama:
		p = NewOllama(OllamaConfig{BaseURL: cfg.BaseURL, Model: cfg.Model, Dimension: cfg.Dimension})
	case config.ProviderHashing:
		p = NewHashing(cfg.Dimension)
	default:
		return nil, &config.ConfigurationError{
			Field:   "embedding.provider",
			Message: fmt.Sprintf("unknown embedding provider %q", cfg.Provider),
		}
	}
	if err != nil {
		return nil, err
	}

	return Validated(p, cfg.Timeout()), nil
}

// validated enforces the output contract of an inner provider.
type validated struct {
	inner   Provider
	timeout time.Duration
}

// Validated wraps p so that every call is bounded by timeout (when > 0) and every
// failure or malformed vector (wrong dimension, NaN/Inf, zero norm) surfaces as
// *EmbeddingUnavailableError.
func Validated(p Provider, timeout time.Duration) Provider {
	if v, ok := p.(*validated); ok {
		return &validated{inner: v.inner, timeout: timeout}
	}
	return &validated{inner: p, timeout: timeout}
}

func (v *validated) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	vec, err := v.inner.Embed(ctx, text)
	if err != nil {
		var unavailable *EmbeddingUnavailableError
		if errors.As(err, &unavailable) {
			return nil, err
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, v.fail(fmt.Sprintf("timed out after %s", v.timeout), err)
		}
		return nil, v.fail("request failed", err)
	}

	if err := checkVector(vec, v.inner.Dimension()); err != nil {
		return nil, v.fail(err.Error(), nil)
	}
	return vec, nil
}

func (v *validated) Dimension() int { return v.inner.Dimension() }

func (v *validated) Name() string { return v.inner.Name() }

func (v *validated) Close() error { return v.inner.Close() }

func (v *validated) fail(message string, cause error) error {
	return &EmbeddingUnavailableError{Provider: v.inner.Name(), Message: message, Cause: cause}
}

// checkVector rejects vectors that would corrupt cosine similarity.
func checkVector(vec types.EmbeddingVector, dimension int) error {
	if len(vec) != dimension {
		return fmt.Errorf("malformed output: got dimension %d, want %d", len(vec), dimension)
	}

	var sumSquares float64
	for i, x := range vec {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("malformed output: non-finite value at index %d", i)
		}
		sumSquares += f * f
	}
	if sumSquares == 0 {
		return fmt.Errorf("malformed output: zero vector")
	}
	return nil
}
