package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// bigramWeight is the contribution of an adjacent word pair relative to a word
const bigramWeight = 0.5

// HashingEmbedder is a deterministic local embedder using signed feature hashing
// over words and word bigrams. It needs no network and is meant for offline runs
// and tests. Its vectors carry lexical, not semantic, similarity.
type HashingEmbedder struct {
	dimension int
}

// NewHashing creates a hashing embedder producing vectors of length dimension.
func NewHashing(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &HashingEmbedder{dimension: dimension}
}

// Embed returns the L2-normalized hashed feature vector of text. Text without
// words yields a zero vector, which Validated rejects.
func (e *HashingEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, e.dimension)
	words := textnorm.Words(text)
	for i, w := range words {
		e.accumulate(vec, w, 1)
		if i > 0 {
			e.accumulate(vec, words[i-1]+" "+w, bigramWeight)
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)

	out := make(types.EmbeddingVector, e.dimension)
	if norm == 0 {
		return out, nil
	}
	for i, x := range vec {
		out[i] = float32(x / norm)
	}
	return out, nil
}

func (e *HashingEmbedder) accumulate(vec []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := sum % uint64(e.dimension)
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[bucket] += weight
}

// Dimension returns the embedding dimension.
func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

// Name returns "hashing".
func (e *HashingEmbedder) Name() string {
	return "hashing"
}

// Close is a no-op.
func (e *HashingEmbedder) Close() error {
	return nil
}
