// Package scoring computes the semantic, keyword and overall match scores.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Scorer blends semantic similarity and keyword overlap with fixed weights.
type Scorer struct {
	semanticWeight float64
	keywordWeight  float64
}

// New creates a Scorer. Weights must be non-negative and sum to 1.
func New(semanticWeight, keywordWeight float64) (*Scorer, error) {
	if semanticWeight < 0 || keywordWeight < 0 {
		return nil, &config.ConfigurationError{Field: "scoring", Message: "weights must be non-negative"}
	}
	if math.Abs(semanticWeight+keywordWeight-1) > 1e-9 {
		return nil, &config.ConfigurationError{
			Field:   "scoring",
			Message: fmt.Sprintf("weights must sum to 1, got %g", semanticWeight+keywordWeight),
		}
	}
	return &Scorer{semanticWeight: semanticWeight, keywordWeight: keywordWeight}, nil
}

// Default returns the 60/40 semantic/keyword Scorer.
func Default() *Scorer {
	return &Scorer{semanticWeight: config.DefaultSemanticWeight, keywordWeight: config.DefaultKeywordWeight}
}

// Score compares a resume against a job description. Display values are clamped to
// [0,100] and rounded; the overall score is blended from the unrounded sub-scores.
func (s *Scorer) Score(resumeDoc, jobDoc *types.Document, resumeVec, jobVec types.EmbeddingVector) (types.Scores, error) {
	cos, err := Cosine(resumeVec, jobVec)
	if err != nil {
		return types.Scores{}, &embedding.EmbeddingUnavailableError{Provider: "scorer", Message: err.Error()}
	}

	semantic := SemanticScore(cos)
	keyword, noJobKeywords := KeywordScore(resumeDoc, jobDoc)
	overall := clamp(s.semanticWeight*semantic+s.keywordWeight*keyword, 0, 100)

	return types.Scores{
		Overall:       math.Round(overall),
		Semantic:      math.Round(semantic),
		Keyword:       math.Round(keyword),
		Cosine:        cos,
		SemanticRaw:   semantic,
		KeywordRaw:    keyword,
		NoJobKeywords: noJobKeywords,
	}, nil
}

// SemanticScore rescales a cosine similarity from [-1,1] to [0,100].
func SemanticScore(cos float64) float64 {
	return clamp((clamp(cos, -1, 1)+1)/2*100, 0, 100)
}

// KeywordScore returns 100 times the weight of job keywords present in the resume
// over the total job keyword weight. The score is directional: the job keywords form
// the denominator. When the job has no keywords (or zero total weight) it returns
// 100 and reports true.
func KeywordScore(resumeDoc, jobDoc *types.Document) (float64, bool) {
	total := jobDoc.TotalKeywordWeight()
	if len(jobDoc.Keywords) == 0 || total == 0 {
		return 100, true
	}

	resumeSet := resumeDoc.KeywordSet()
	matched := 0.0
	for _, kw := range jobDoc.Keywords {
		if resumeSet[types.TermKey(kw.Text)] {
			matched += kw.Weight
		}
	}

	return clamp(100*matched/total, 0, 100), false
}

// Cosine returns the cosine similarity of two vectors, computed in float64.
func Cosine(a, b types.EmbeddingVector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions differ: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero vector")
	}

	return clamp(dot/(math.Sqrt(normA)*math.Sqrt(normB)), -1, 1), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
