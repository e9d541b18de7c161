// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Embedding provider names
const (
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
	ProviderHashing = "hashing"
)

// Defaults
const (
	DefaultSemanticWeight = 0.6
	DefaultKeywordWeight  = 0.4
	DefaultMaxKeywords    = 20
	DefaultMaxInputChars  = 50000
	DefaultTimeoutSeconds = 30
)

// Environment variables read by ApplyEnv
const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvOllamaBaseURL = "OLLAMA_BASE_URL"
	EnvConfigPath    = "RESUME_MATCHER_CONFIG"
)

// GeminiKeyHint is the message returned when a Gemini-backed component has no API key
const GeminiKeyHint = "gemini provider requires an API key (set " + EnvGeminiAPIKey + ")"

// Config represents the configuration that can be loaded from a JSON file.
// Missing values are filled from DefaultConfig.
type Config struct {
	Embedding EmbeddingConfig `json:"embedding"`
	Scoring   ScoringConfig   `json:"scoring"`

	// Terms listed by the keywords command (-1 = unlimited). Analysis always uses every term.
	MaxKeywords int `json:"max_keywords,omitempty" validate:"gte=-1"`
	// Caller-side input cap in characters (-1 = unlimited)
	MaxInputChars int `json:"max_input_chars,omitempty" validate:"gte=-1"`
	// Optional JSON or TOML dictionary override; the embedded dictionary is used when empty
	DictionaryPath string `json:"dictionary_path,omitempty"`
	// Gemini API key, used by the gemini embedder and the suggestion generator
	APIKey string `json:"api_key,omitempty"`
	// Optional model override for suggestions
	SuggestModel string `json:"suggest_model,omitempty"`
	Verbose      bool   `json:"verbose,omitempty"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Provider       string `json:"provider,omitempty" validate:"omitempty,oneof=gemini ollama hashing"`
	Model          string `json:"model,omitempty"`
	Dimension      int    `json:"dimension,omitempty" validate:"gte=0,lte=8192"`
	BaseURL        string `json:"base_url,omitempty" validate:"omitempty,url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0"`
}

// ScoringConfig holds the score blend policy. Weights must sum to 1.
type ScoringConfig struct {
	SemanticWeight float64 `json:"semantic_weight,omitempty" validate:"gte=0,lte=1"`
	KeywordWeight  float64 `json:"keyword_weight,omitempty" validate:"gte=0,lte=1"`
}

// Timeout returns the per-call embedding timeout.
func (e EmbeddingConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// DefaultConfig returns the default configuration: a local Ollama all-minilm model (D=384)
// and the 60/40 semantic/keyword blend.
func DefaultConfig() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider:       ProviderOllama,
			Model:          "all-minilm",
			Dimension:      384,
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Scoring: ScoringConfig{
			SemanticWeight: DefaultSemanticWeight,
			KeywordWeight:  DefaultKeywordWeight,
		},
		MaxKeywords:   DefaultMaxKeywords,
		MaxInputChars: DefaultMaxInputChars,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file at path,
// then environment overrides. The result is validated.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, &ConfigurationError{Field: "config", Message: "cannot load config file", Cause: err}
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if getenv != nil {
		cfg.ApplyEnv(getenv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv fills secrets and endpoints from the environment when the file left them empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.APIKey == "" {
		c.APIKey = getenv(EnvGeminiAPIKey)
	}
	if url := getenv(EnvOllamaBaseURL); url != "" && c.Embedding.Provider == ProviderOllama {
		c.Embedding.BaseURL = url
	}
}

// Validate checks that the configuration has valid values.
// All failures are returned as *ConfigurationError.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ConfigurationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q validation (value %v)", fe.Tag(), fe.Value()),
			}
		}
		return &ConfigurationError{Message: "invalid configuration", Cause: err}
	}

	if c.Embedding.Provider == "" {
		return &ConfigurationError{Field: "embedding.provider", Message: "provider is required"}
	}
	if c.Embedding.Dimension <= 0 {
		return &ConfigurationError{Field: "embedding.dimension", Message: "dimension must be positive"}
	}
	if c.Embedding.Provider == ProviderGemini && c.APIKey == "" {
		return &ConfigurationError{
			Field:   "api_key",
			Message: GeminiKeyHint,
		}
	}

	sum := c.Scoring.SemanticWeight + c.Scoring.KeywordWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return &ConfigurationError{
			Field:   "scoring",
			Message: fmt.Sprintf("semantic_weight + keyword_weight must equal 1, got %g", sum),
		}
	}

	if c.DictionaryPath != "" {
		if _, err := os.Stat(c.DictionaryPath); os.IsNotExist(err) {
			return &ConfigurationError{Field: "dictionary_path", Message: "dictionary file not found: " + c.DictionaryPath}
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// Embedding: a file that names a different provider keeps its own model settings
	if result.Embedding.Provider == "" {
		result.Embedding.Provider = defaults.Embedding.Provider
	}
	sameProvider := result.Embedding.Provider == defaults.Embedding.Provider
	if result.Embedding.Model == "" && sameProvider {
		result.Embedding.Model = defaults.Embedding.Model
	}
	if result.Embedding.Dimension == 0 && sameProvider {
		result.Embedding.Dimension = defaults.Embedding.Dimension
	}
	if result.Embedding.BaseURL == "" && sameProvider {
		result.Embedding.BaseURL = defaults.Embedding.BaseURL
	}
	if result.Embedding.TimeoutSeconds == 0 {
		result.Embedding.TimeoutSeconds = defaults.Embedding.TimeoutSeconds
	}

	// Scoring weights: only fill when both are unset so a 1.0/0.0 split survives
	if result.Scoring.SemanticWeight == 0 && result.Scoring.KeywordWeight == 0 {
		result.Scoring = defaults.Scoring
	}

	if result.MaxKeywords == 0 {
		result.MaxKeywords = defaults.MaxKeywords
	}
	if result.MaxInputChars == 0 {
		result.MaxInputChars = defaults.MaxInputChars
	}
	if result.DictionaryPath == "" {
		result.DictionaryPath = defaults.DictionaryPath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SuggestModel == "" {
		result.SuggestModel = defaults.SuggestModel
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
