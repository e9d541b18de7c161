// Package llm provides the text-completion client used for improvement suggestions.
package llm

// Completion defaults
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultTemperature     = 0.3
	DefaultMaxOutputTokens = 1024
)

// Config selects the model and sampling settings for a Client.
type Config struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32 // 0 leaves the model default
}

// DefaultConfig returns the suggestion-writing configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// WithModel returns a copy of c using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}
