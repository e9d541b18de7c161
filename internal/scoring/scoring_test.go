package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(terms ...types.KeywordTerm) *types.Document {
	for i := range terms {
		terms[i].FirstIndex = i
	}
	return &types.Document{Tokens: []string{"x"}, Keywords: terms}
}

func kw(text string, weight float64) types.KeywordTerm {
	return types.KeywordTerm{Text: text, Weight: weight}
}

func TestScore_Scenario(t *testing.T) {
	resume := doc(kw("python", 1.0), kw("sql", 0.4))
	job := doc(kw("python", 1.0), kw("sql", 0.6), kw("aws", 0.8))
	vec := types.EmbeddingVector{1, 0, 0}

	scores, err := Default().Score(resume, job, vec, vec)
	require.NoError(t, err)

	assert.InDelta(t, 66.6667, scores.KeywordRaw, 1e-3)
	assert.Equal(t, 67.0, scores.Keyword)
	assert.Equal(t, 100.0, scores.Semantic)
	assert.InDelta(t, 1.0, scores.Cosine, 1e-9)
	// 0.6*100 + 0.4*66.667 = 86.667
	assert.Equal(t, 87.0, scores.Overall)
	assert.False(t, scores.NoJobKeywords)
}

func TestKeywordScore_Directional(t *testing.T) {
	a := doc(kw("python", 1.0), kw("sql", 0.5))
	b := doc(kw("python", 1.0), kw("sql", 0.5), kw("aws", 1.0), kw("docker", 0.5))

	aAsResume, _ := KeywordScore(a, b)
	bAsResume, _ := KeywordScore(b, a)

	assert.InDelta(t, 50.0, aAsResume, 1e-9)
	assert.InDelta(t, 100.0, bAsResume, 1e-9)
	assert.NotEqual(t, aAsResume, bAsResume)
}

func TestKeywordScore_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		resume    *types.Document
		job       *types.Document
		want      float64
		noKeyword bool
	}{
		{
			name:      "no job keywords",
			resume:    doc(kw("python", 1)),
			job:       doc(),
			want:      100,
			noKeyword: true,
		},
		{
			name:      "zero job weight",
			resume:    doc(kw("python", 1)),
			job:       doc(kw("python", 0)),
			want:      100,
			noKeyword: true,
		},
		{
			name:   "identical keyword sets",
			resume: doc(kw("go", 1), kw("rust", 0.3)),
			job:    doc(kw("go", 0.2), kw("rust", 1)),
			want:   100,
		},
		{
			name:   "no overlap is zero not error",
			resume: doc(kw("baking", 1)),
			job:    doc(kw("go", 1)),
			want:   0,
		},
		{
			name:   "case insensitive",
			resume: doc(kw("Python", 1)),
			job:    doc(kw("python", 1), kw("aws", 1)),
			want:   50,
		},
		{
			name:   "empty resume keywords",
			resume: doc(),
			job:    doc(kw("go", 1)),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, noKeywords := KeywordScore(tt.resume, tt.job)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.noKeyword, noKeywords)
		})
	}
}

func TestSemanticScore(t *testing.T) {
	tests := []struct {
		cos  float64
		want float64
	}{
		{cos: 1, want: 100},
		{cos: 0, want: 50},
		{cos: -1, want: 0},
		{cos: 0.5, want: 75},
		{cos: 1.0000001, want: 100},
		{cos: -3, want: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, SemanticScore(tt.cos), 1e-9, "cos=%v", tt.cos)
	}
}

func TestCosine(t *testing.T) {
	cos, err := Cosine(types.EmbeddingVector{1, 0}, types.EmbeddingVector{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, cos, 1e-9)

	cos, err = Cosine(types.EmbeddingVector{1, 2, 3}, types.EmbeddingVector{-1, -2, -3})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, cos, 1e-9)

	cos, err = Cosine(types.EmbeddingVector{3, 4}, types.EmbeddingVector{6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cos, 1e-9)

	_, err = Cosine(types.EmbeddingVector{1, 0}, types.EmbeddingVector{1, 0, 0})
	assert.Error(t, err)

	_, err = Cosine(types.EmbeddingVector{0, 0}, types.EmbeddingVector{1, 0})
	assert.Error(t, err)

	_, err = Cosine(nil, nil)
	assert.Error(t, err)
}

func TestScore_DimensionMismatchIsUnavailable(t *testing.T) {
	_, err := Default().Score(doc(), doc(), types.EmbeddingVector{1, 0}, types.EmbeddingVector{1})

	var unavailable *embedding.EmbeddingUnavailableError
	require.True(t, errors.As(err, &unavailable))
}

func TestScore_OverallAlwaysInRange(t *testing.T) {
	vectors := []types.EmbeddingVector{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0.3, -0.7, 0.2}, {5, 5, 5},
	}
	docs := []*types.Document{
		doc(), doc(kw("go", 1)), doc(kw("go", 1), kw("aws", 0.1)), doc(kw("pastry", 1)),
	}
	s := Default()

	for _, rv := range vectors {
		for _, jv := range vectors {
			for _, rd := range docs {
				for _, jd := range docs {
					scores, err := s.Score(rd, jd, rv, jv)
					require.NoError(t, err)
					for _, v := range []float64{scores.Overall, scores.Semantic, scores.Keyword} {
						assert.GreaterOrEqual(t, v, 0.0)
						assert.LessOrEqual(t, v, 100.0)
						assert.Equal(t, math.Round(v), v)
					}
				}
			}
		}
	}
}

func TestNew_Weights(t *testing.T) {
	tests := []struct {
		name     string
		semantic float64
		keyword  float64
		wantErr  bool
	}{
		{name: "default split", semantic: 0.6, keyword: 0.4},
		{name: "semantic only", semantic: 1, keyword: 0},
		{name: "not summing to one", semantic: 0.5, keyword: 0.4, wantErr: true},
		{name: "negative", semantic: 1.2, keyword: -0.2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.semantic, tt.keyword)
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *config.ConfigurationError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestScore_KeywordOnlyWeights(t *testing.T) {
	s, err := New(0, 1)
	require.NoError(t, err)

	resume := doc(kw("python", 1))
	job := doc(kw("python", 1), kw("aws", 1))
	scores, err := s.Score(resume, job, types.EmbeddingVector{1, 0}, types.EmbeddingVector{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 50.0, scores.Overall)
	assert.Equal(t, 50.0, scores.Semantic)
}
