// Package textnorm cleans and tokenizes raw resume and job description text.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/resume-matcher/internal/types"
)

// minTokenLen is the shortest token kept unless it is a known acronym
const minTokenLen = 2

// peelChars is the sentence punctuation removed from both ends of a raw token
// before the acronym check. Trailing periods are removed as well; leading ones are
// kept so ".NET" survives.
const peelChars = ",;:!?()[]{}<>\"'`“”‘’«»"

// Vocabulary supplies the stop-word set and the acronym allow-list.
type Vocabulary interface {
	// IsStopWord reports whether a lowercase token is a stop word.
	IsStopWord(token string) bool
	// Acronym returns the canonical lowercase form of a raw, case-preserved token
	// when it is a known acronym.
	Acronym(raw string) (string, bool)
}

// Normalizer turns raw text into normalized tokens.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	vocab Vocabulary
}

// New creates a Normalizer backed by the given vocabulary.
func New(vocab Vocabulary) *Normalizer {
	return &Normalizer{vocab: vocab}
}

// Normalize builds a Document from raw text. Keywords are left empty.
// Returns *EmptyInputError when the text is empty or yields no tokens.
func (n *Normalizer) Normalize(rawText string) (*types.Document, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &EmptyInputError{Reason: ReasonEmptyText}
	}

	tokens := n.Tokenize(rawText)
	if len(tokens) == 0 {
		return nil, &EmptyInputError{Reason: ReasonNoTokens}
	}

	return &types.Document{
		RawText: rawText,
		Tokens:  tokens,
	}, nil
}

// Tokenize returns the ordered normalized tokens of rawText.
func (n *Normalizer) Tokenize(rawText string) []string {
	tokens := make([]string, 0, len(rawText)/6)

	for _, field := range strings.Fields(rawText) {
		core := peel(field)
		if core == "" {
			continue
		}

		// Acronyms are detected on the case-preserved token, before lowercasing
		if canonical, ok := n.vocab.Acronym(core); ok {
			tokens = n.appendAcronym(tokens, canonical)
			continue
		}

		// "C++/Java" style pairs: check each half on its own
		for _, part := range strings.Split(core, "/") {
			if canonical, ok := n.vocab.Acronym(peel(part)); ok {
				tokens = n.appendAcronym(tokens, canonical)
				continue
			}
			for _, word := range Words(part) {
				if utf8.RuneCountInString(word) < minTokenLen || n.vocab.IsStopWord(word) {
					continue
				}
				tokens = append(tokens, word)
			}
		}
	}

	return tokens
}

func (n *Normalizer) appendAcronym(tokens []string, canonical string) []string {
	if n.vocab.IsStopWord(canonical) {
		return tokens
	}
	return append(tokens, canonical)
}

// peel strips surrounding sentence punctuation and trailing periods.
func peel(field string) string {
	core := strings.Trim(field, peelChars)
	core = strings.TrimRight(core, "."+peelChars)
	return core
}

// Words accent-folds and lowercases s, then splits it into words of letters and
// digits. Hyphens are kept only between two word characters ("full-stack").
// No stop-word or length filtering is applied.
func Words(s string) []string {
	text := []rune(strings.ToLower(FoldAccents(s)))

	var words []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for i, r := range text {
		switch {
		case isWordRune(r):
			word.WriteRune(r)
		case r == '-' && word.Len() > 0 && i+1 < len(text) && isWordRune(text[i+1]):
			word.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return words
}

// FoldAccents removes combining marks, so "résumé" becomes "resume".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
