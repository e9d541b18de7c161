package dictionary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

//go:embed default.json
var defaultAsset []byte

// Default returns the embedded default dictionary.
func Default() (*Dictionary, error) {
	return Parse(defaultAsset, ".json", "embedded default")
}

// Load reads a dictionary from a .json or .toml file. An empty path loads the
// embedded default.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &config.ConfigurationError{
			Field:   "dictionary_path",
			Message: fmt.Sprintf("failed to read dictionary %s", path),
			Cause:   err,
		}
	}

	return Parse(data, strings.ToLower(filepath.Ext(path)), path)
}

// Parse decodes and validates dictionary content. ext selects the format.
func Parse(data []byte, ext, source string) (*Dictionary, error) {
	var asset Asset
	var document []byte

	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &asset); err != nil {
			return nil, &config.ConfigurationError{
				Field:   "dictionary",
				Message: fmt.Sprintf("failed to parse TOML dictionary %s", source),
				Cause:   err,
			}
		}
		// Re-encode so both formats go through the same schema check
		encoded, err := json.Marshal(asset)
		if err != nil {
			return nil, &config.ConfigurationError{Field: "dictionary", Message: "failed to encode dictionary", Cause: err}
		}
		document = encoded
	case ".json", "":
		document = data
	default:
		return nil, &config.ConfigurationError{
			Field:   "dictionary_path",
			Message: fmt.Sprintf("unsupported dictionary format %q (want .json or .toml)", ext),
		}
	}

	if err := schemas.Validate(schemas.DictionarySchema, document); err != nil {
		return nil, &config.ConfigurationError{
			Field:   "dictionary",
			Message: fmt.Sprintf("dictionary %s does not match schema", source),
			Cause:   err,
		}
	}

	if ext != ".toml" {
		if err := json.Unmarshal(document, &asset); err != nil {
			return nil, &config.ConfigurationError{
				Field:   "dictionary",
				Message: fmt.Sprintf("failed to parse JSON dictionary %s", source),
				Cause:   err,
			}
		}
	}

	return New(asset)
}
