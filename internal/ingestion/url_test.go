package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body>
<nav>Nav</nav>
<main>
<h1>Data Engineer</h1>
<ul><li>Python</li><li>SQL</li></ul>
<form>Apply here</form>
</main>
<footer>Footer</footer>
</body></html>`))
	}))
	defer server.Close()

	text, meta, err := FetchJobText(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer\nPython\nSQL", text)
	assert.Equal(t, server.URL, meta.Source)
	assert.Equal(t, string(fetch.PlatformUnknown), meta.Platform)
	assert.Equal(t, string(FormatHTML), meta.Format)
}

func TestFetchJobText_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Go   developer\n\n\n\nKubernetes"))
	}))
	defer server.Close()

	text, _, err := FetchJobText(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n\nKubernetes", text)
}

func TestFetchJobText_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>app()</script></body></html>`))
	}))
	defer empty.Close()

	tests := []struct {
		name   string
		url    string
		target error
	}{
		{name: "invalid url", url: "not-a-url", target: ErrHTTPRequestFailed},
		{name: "http error", url: notFound.URL, target: ErrHTTPRequestFailed},
		{name: "no visible text", url: empty.URL, target: ErrContentExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FetchJobText(context.Background(), tt.url, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}
