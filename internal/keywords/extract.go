// Package keywords derives weighted salient terms from normalized token sequences.
package keywords

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// PhraseLookup answers skill-phrase dictionary queries.
type PhraseLookup interface {
	IsPhrase(tokens []string) bool
	LongestPhrase() int
}

// Extractor computes keyword terms with normalized frequency weights.
//
// Weighting policy: a single token contributes 1 per occurrence. A matched skill
// phrase contributes its word count per occurrence and consumes its constituent
// tokens. Weights are divided by the largest raw weight so the top term is 1.0.
type Extractor struct {
	phrases     PhraseLookup
	maxKeywords int
}

// New creates an Extractor. phrases may be nil to disable phrase detection.
// maxKeywords <= 0 keeps every term.
func New(phrases PhraseLookup, maxKeywords int) *Extractor {
	return &Extractor{phrases: phrases, maxKeywords: maxKeywords}
}

// termStats accumulates the raw weight of one term
type termStats struct {
	raw   float64
	first int
}

// Extract returns the keyword terms of tokens, ordered by first occurrence.
// An empty token sequence yields an empty result.
func (e *Extractor) Extract(tokens []string) []types.KeywordTerm {
	stats := make(map[string]*termStats)
	var order []string

	add := func(text string, raw float64, index int) {
		if s, ok := stats[text]; ok {
			s.raw += raw
			return
		}
		stats[text] = &termStats{raw: raw, first: index}
		order = append(order, text)
	}

	longest := 0
	if e.phrases != nil {
		longest = e.phrases.LongestPhrase()
	}

	for i := 0; i < len(tokens); {
		size := e.matchPhrase(tokens[i:], longest)
		if size > 0 {
			add(strings.Join(tokens[i:i+size], " "), float64(size), i)
			i += size
			continue
		}
		add(tokens[i], 1, i)
		i++
	}

	if len(order) == 0 {
		return []types.KeywordTerm{}
	}

	maxRaw := 0.0
	for _, s := range stats {
		maxRaw = max(maxRaw, s.raw)
	}

	terms := make([]types.KeywordTerm, 0, len(order))
	for _, text := range order {
		s := stats[text]
		terms = append(terms, types.KeywordTerm{
			Text:       text,
			Weight:     s.raw / maxRaw,
			FirstIndex: s.first,
		})
	}

	return e.limit(terms)
}

// matchPhrase returns the length of the longest known phrase starting at
// window[0], or 0 when none matches.
func (e *Extractor) matchPhrase(window []string, longest int) int {
	for size := min(longest, len(window)); size >= 2; size-- {
		if e.phrases.IsPhrase(window[:size]) {
			return size
		}
	}
	return 0
}

// limit keeps the top maxKeywords terms by weight (ties by first occurrence) and
// restores first-occurrence order.
func (e *Extractor) limit(terms []types.KeywordTerm) []types.KeywordTerm {
	if e.maxKeywords <= 0 || len(terms) <= e.maxKeywords {
		return terms
	}

	ranked := make([]types.KeywordTerm, len(terms))
	copy(ranked, terms)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].FirstIndex < ranked[j].FirstIndex
	})

	kept := ranked[:e.maxKeywords]
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].FirstIndex < kept[j].FirstIndex
	})
	return kept
}
