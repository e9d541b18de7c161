// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Document is the normalized representation of one input text (resume or job description).
// Documents are built once and must not be mutated afterwards.
type Document struct {
	RawText  string        `json:"-"`
	Tokens   []string      `json:"tokens"`
	Keywords []KeywordTerm `json:"keywords"`
}

// KeywordTerm is a weighted salient term extracted from a Document.
type KeywordTerm struct {
	Text       string  `json:"text"`
	Weight     float64 `json:"weight"`
	FirstIndex int     `json:"-"` // token position of the first occurrence
}

// EmbeddingVector is a dense numeric representation of a text's semantic content.
type EmbeddingVector []float32

// TermKey is the case-insensitive key used to compare keyword texts across documents.
func TermKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// KeywordSet returns the document's keyword texts as a lookup set.
// Keys are TermKey values.
func (d *Document) KeywordSet() map[string]bool {
	set := make(map[string]bool, len(d.Keywords))
	for _, kw := range d.Keywords {
		set[TermKey(kw.Text)] = true
	}
	return set
}

// TotalKeywordWeight sums the weights of all keywords in the document.
func (d *Document) TotalKeywordWeight() float64 {
	total := 0.0
	for _, kw := range d.Keywords {
		total += kw.Weight
	}
	return total
}
