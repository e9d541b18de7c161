package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the job page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// FetchJobText fetches a job posting page and returns its cleaned visible text.
// Platform-specific selectors are used for known job boards.
func FetchJobText(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	platform := fetch.DetectPlatform(urlStr)

	var text string
	if strings.HasPrefix(strings.ToLower(result.ContentType), "text/plain") {
		text = result.HTML
	} else {
		text, err = fetch.ExtractMainText(result.HTML, fetch.ContentSelectors(platform), fetch.NoiseSelectors(platform)...)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s has no visible text", ErrContentExtractionFailed, urlStr)
	}

	meta := NewMetadata(cleaned, urlStr)
	meta.Format = string(FormatHTML)
	meta.Platform = string(platform)
	return cleaned, meta, nil
}
