// Package dictionary holds the stop-word set, the skill-phrase dictionary and the acronym
// allow-list. A Dictionary is loaded once at startup and is read-only afterwards.
package dictionary

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/textnorm"
)

// Phrase length bounds, in tokens
const (
	MinPhraseWords = 2
	MaxPhraseWords = 3
)

// Asset is the on-disk form of a dictionary (JSON or TOML).
type Asset struct {
	Version      string   `json:"version" toml:"version"`
	StopWords    []string `json:"stop_words" toml:"stop_words"`
	SkillPhrases []string `json:"skill_phrases,omitempty" toml:"skill_phrases"`
	Acronyms     []string `json:"acronyms,omitempty" toml:"acronyms"`
}

// Dictionary implements textnorm.Vocabulary and answers phrase lookups for the
// keyword extractor.
type Dictionary struct {
	version        string
	stopWords      map[string]bool
	phrases        map[string]bool
	longestPhrase  int
	exactAcronyms  map[string]string // letters/digits only: matched case-sensitively
	foldedAcronyms map[string]string // contain symbols: matched case-insensitively
}

var _ textnorm.Vocabulary = (*Dictionary)(nil)

// New builds a Dictionary from an asset. Invalid entries are reported as
// *config.ConfigurationError.
func New(asset Asset) (*Dictionary, error) {
	d := &Dictionary{
		version:        asset.Version,
		stopWords:      make(map[string]bool, len(asset.StopWords)),
		phrases:        make(map[string]bool, len(asset.SkillPhrases)),
		exactAcronyms:  make(map[string]string),
		foldedAcronyms: make(map[string]string),
	}

	if strings.TrimSpace(asset.Version) == "" {
		return nil, &config.ConfigurationError{Field: "dictionary.version", Message: "version is required"}
	}

	for _, word := range asset.StopWords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if strings.ContainsFunc(word, unicode.IsSpace) {
			return nil, &config.ConfigurationError{
				Field:   "dictionary.stop_words",
				Message: fmt.Sprintf("stop word %q must be a single token", word),
			}
		}
		d.stopWords[word] = true
	}
	if len(d.stopWords) == 0 {
		return nil, &config.ConfigurationError{Field: "dictionary.stop_words", Message: "stop-word set is empty"}
	}

	for _, entry := range asset.Acronyms {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		canonical := strings.ToLower(entry)
		if d.stopWords[canonical] {
			return nil, &config.ConfigurationError{
				Field:   "dictionary.acronyms",
				Message: fmt.Sprintf("acronym %q collides with stop word %q", entry, canonical),
			}
		}
		if isAlphanumeric(entry) {
			d.exactAcronyms[entry] = canonical
		} else {
			d.foldedAcronyms[canonical] = canonical
		}
	}

	// Phrases are tokenized with the same rules as input text so lookups line up
	normalizer := textnorm.New(d)
	for _, entry := range asset.SkillPhrases {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		tokens := normalizer.Tokenize(entry)
		if len(tokens) != len(fields) {
			return nil, &config.ConfigurationError{
				Field:   "dictionary.skill_phrases",
				Message: fmt.Sprintf("phrase %q contains stop words or unusable tokens", entry),
			}
		}
		if len(tokens) < MinPhraseWords || len(tokens) > MaxPhraseWords {
			return nil, &config.ConfigurationError{
				Field:   "dictionary.skill_phrases",
				Message: fmt.Sprintf("phrase %q must have %d-%d words", entry, MinPhraseWords, MaxPhraseWords),
			}
		}
		d.phrases[strings.Join(tokens, " ")] = true
		d.longestPhrase = max(d.longestPhrase, len(tokens))
	}

	return d, nil
}

// Version returns the asset version string.
func (d *Dictionary) Version() string {
	return d.version
}

// IsStopWord reports whether a lowercase token is a stop word.
func (d *Dictionary) IsStopWord(token string) bool {
	return d.stopWords[token]
}

// Acronym returns the canonical form of raw when it is on the allow-list.
func (d *Dictionary) Acronym(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if canonical, ok := d.exactAcronyms[raw]; ok {
		return canonical, true
	}
	if canonical, ok := d.foldedAcronyms[strings.ToLower(raw)]; ok {
		return canonical, true
	}
	return "", false
}

// IsPhrase reports whether the token window is a known skill phrase.
func (d *Dictionary) IsPhrase(tokens []string) bool {
	if len(tokens) < MinPhraseWords || len(tokens) > d.longestPhrase {
		return false
	}
	return d.phrases[strings.Join(tokens, " ")]
}

// LongestPhrase returns the word count of the longest known phrase (0 when none).
func (d *Dictionary) LongestPhrase() int {
	return d.longestPhrase
}

// StopWordCount returns the size of the stop-word set.
func (d *Dictionary) StopWordCount() int {
	return len(d.stopWords)
}

// PhraseCount returns the number of skill phrases.
func (d *Dictionary) PhraseCount() int {
	return len(d.phrases)
}

// StopWords returns the stop-word set as a sorted slice.
func (d *Dictionary) StopWords() []string {
	words := make([]string, 0, len(d.stopWords))
	for w := range d.stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
