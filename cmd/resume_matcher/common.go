package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/suggestions"
)

// loadConfig resolves the config path (flag, then environment) and loads it with
// environment overrides applied.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	cfg, err := config.Load(path, os.Getenv)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLogger writes logs to the command's stderr
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// readText extracts the text of a local document
func readText(path, input string) (string, error) {
	text, _, err := ingestion.ExtractText(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", input, err)
	}
	return text, nil
}

// readJobText reads the job description from a file or fetches it from a URL
func readJobText(ctx context.Context, path, url string) (string, error) {
	if url == "" {
		return readText(path, "job description")
	}
	text, _, err := ingestion.FetchJobText(ctx, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job description: %w", err)
	}
	return text, nil
}

// newSuggester builds a suggestion generator backed by Gemini.
func newSuggester(ctx context.Context, cfg *config.Config) (*suggestions.Generator, llm.Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil, fmt.Errorf("suggestions require an API key (set %s)", config.EnvGeminiAPIKey)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig().WithModel(cfg.SuggestModel), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return suggestions.New(client), client, nil
}
