package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, d.Version())
	assert.Greater(t, d.StopWordCount(), 100)
	assert.Greater(t, d.PhraseCount(), 10)
	assert.Equal(t, MaxPhraseWords, d.LongestPhrase())

	assert.True(t, d.IsStopWord("the"))
	assert.False(t, d.IsStopWord("python"))
	assert.True(t, d.IsPhrase([]string{"machine", "learning"}))
	assert.True(t, d.IsPhrase([]string{"google", "cloud", "platform"}))
	assert.False(t, d.IsPhrase([]string{"machine"}))
}

func TestAcronym_Matching(t *testing.T) {
	d, err := New(Asset{
		Version:   "test",
		StopWords: []string{"the"},
		Acronyms:  []string{"AI", "C++", ".NET"},
	})
	require.NoError(t, err)

	tests := []struct {
		raw       string
		canonical string
		ok        bool
	}{
		{raw: "AI", canonical: "ai", ok: true},
		{raw: "ai", ok: false},
		{raw: "Ai", ok: false},
		{raw: "C++", canonical: "c++", ok: true},
		{raw: "c++", canonical: "c++", ok: true},
		{raw: ".net", canonical: ".net", ok: true},
		{raw: "", ok: false},
		{raw: "Java", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			canonical, ok := d.Acronym(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.canonical, canonical)
		})
	}
}

func TestNew_InvalidAssets(t *testing.T) {
	tests := []struct {
		name    string
		asset   Asset
		field   string
		message string
	}{
		{
			name:    "missing version",
			asset:   Asset{StopWords: []string{"the"}},
			field:   "dictionary.version",
			message: "version is required",
		},
		{
			name:    "empty stop words",
			asset:   Asset{Version: "1", StopWords: []string{" "}},
			field:   "dictionary.stop_words",
			message: "empty",
		},
		{
			name:    "multi-word stop word",
			asset:   Asset{Version: "1", StopWords: []string{"as well"}},
			field:   "dictionary.stop_words",
			message: "single token",
		},
		{
			name:    "acronym collides with stop word",
			asset:   Asset{Version: "1", StopWords: []string{"it"}, Acronyms: []string{"IT"}},
			field:   "dictionary.acronyms",
			message: "collides",
		},
		{
			name:    "phrase with stop word",
			asset:   Asset{Version: "1", StopWords: []string{"of"}, SkillPhrases: []string{"quality of service"}},
			field:   "dictionary.skill_phrases",
			message: "stop words",
		},
		{
			name:    "single word phrase",
			asset:   Asset{Version: "1", StopWords: []string{"the"}, SkillPhrases: []string{"kubernetes"}},
			field:   "dictionary.skill_phrases",
			message: "2-3 words",
		},
		{
			name:    "four word phrase",
			asset:   Asset{Version: "1", StopWords: []string{"the"}, SkillPhrases: []string{"very long skill phrase"}},
			field:   "dictionary.skill_phrases",
			message: "2-3 words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.asset)
			require.Error(t, err)
			assert.Nil(t, d)

			var cfgErr *config.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, cfgErr.Message, tt.message)
		})
	}
}

func TestNew_PhrasesNormalizedLikeText(t *testing.T) {
	d, err := New(Asset{
		Version:      "1",
		StopWords:    []string{"the"},
		SkillPhrases: []string{"Machine Learning", "C++ Development", "full-stack development"},
		Acronyms:     []string{"C++"},
	})
	require.NoError(t, err)

	assert.True(t, d.IsPhrase([]string{"machine", "learning"}))
	assert.True(t, d.IsPhrase([]string{"c++", "development"}))
	assert.True(t, d.IsPhrase([]string{"full-stack", "development"}))
	assert.Equal(t, 2, d.LongestPhrase())
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "custom-1",
		"stop_words": ["the", "and"],
		"skill_phrases": ["project management"],
		"acronyms": ["ML"]
	}`), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-1", d.Version())
	assert.Equal(t, []string{"and", "the"}, d.StopWords())
	assert.True(t, d.IsPhrase([]string{"project", "management"}))
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = "toml-1"
stop_words = ["the", "a"]
skill_phrases = ["data science"]
acronyms = ["R"]
`), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "toml-1", d.Version())
	assert.True(t, d.IsPhrase([]string{"data", "science"}))

	canonical, ok := d.Acronym("R")
	assert.True(t, ok)
	assert.Equal(t, "r", canonical)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	schemaViolation := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(schemaViolation, []byte(`{"version": "1"}`), 0644))

	badTOML := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badTOML, []byte(`version = `), 0644))

	missingStopWordsTOML := filepath.Join(dir, "missing.toml")
	require.NoError(t, os.WriteFile(missingStopWordsTOML, []byte(`version = "1"`), 0644))

	yaml := filepath.Join(dir, "dict.yaml")
	require.NoError(t, os.WriteFile(yaml, []byte(`version: 1`), 0644))

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.json"), message: "failed to read dictionary"},
		{name: "schema violation", path: schemaViolation, message: "does not match schema"},
		{name: "malformed toml", path: badTOML, message: "failed to parse TOML"},
		{name: "toml without stop words", path: missingStopWordsTOML, message: "does not match schema"},
		{name: "unsupported format", path: yaml, message: "unsupported dictionary format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			var cfgErr *config.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, cfgErr.Error(), tt.message)
		})
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)

	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def.Version(), d.Version())
}
