package gaps

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func terms(pairs ...any) []types.KeywordTerm {
	var out []types.KeywordTerm
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, types.KeywordTerm{
			Text:       pairs[i].(string),
			Weight:     pairs[i+1].(float64),
			FirstIndex: i / 2,
		})
	}
	return out
}

func texts(ts []types.KeywordTerm) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

func TestFindGaps(t *testing.T) {
	tests := []struct {
		name   string
		resume []types.KeywordTerm
		job    []types.KeywordTerm
		want   []string
	}{
		{
			name:   "scenario",
			resume: terms("python", 1.0, "sql", 0.4),
			job:    terms("python", 1.0, "sql", 0.6, "aws", 0.8),
			want:   []string{"aws"},
		},
		{
			name:   "descending weight",
			resume: terms("go", 1.0),
			job:    terms("docker", 0.2, "go", 1.0, "aws", 0.9, "terraform", 0.5),
			want:   []string{"aws", "terraform", "docker"},
		},
		{
			name:   "ties by first occurrence",
			resume: nil,
			job:    terms("zeta", 0.5, "alpha", 0.5, "mid", 0.5),
			want:   []string{"zeta", "alpha", "mid"},
		},
		{
			name:   "identical sets have no gaps",
			resume: terms("go", 1.0, "rust", 0.5),
			job:    terms("rust", 1.0, "go", 0.3),
			want:   []string{},
		},
		{
			name:   "case insensitive",
			resume: terms("Kubernetes", 1.0),
			job:    terms("kubernetes", 1.0),
			want:   []string{},
		},
		{
			name:   "empty job",
			resume: terms("go", 1.0),
			job:    nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := &types.Document{Keywords: tt.resume}
			job := &types.Document{Keywords: tt.job}
			assert.Equal(t, tt.want, texts(FindGaps(resume, job)))
		})
	}
}

func TestFindGaps_TiesWithSameIndexUseText(t *testing.T) {
	job := &types.Document{Keywords: []types.KeywordTerm{
		{Text: "beta", Weight: 1, FirstIndex: 0},
		{Text: "alpha", Weight: 1, FirstIndex: 0},
	}}
	assert.Equal(t, []string{"alpha", "beta"}, texts(FindGaps(&types.Document{}, job)))
}

func TestFindGaps_DoesNotMutateInputs(t *testing.T) {
	job := &types.Document{Keywords: terms("docker", 0.2, "aws", 0.9, "go", 1.0)}
	resume := &types.Document{Keywords: terms("go", 1.0)}
	before := append([]types.KeywordTerm(nil), job.Keywords...)

	gaps := FindGaps(resume, job)
	gaps[0].Weight = 42

	assert.Equal(t, before, job.Keywords)
	assert.Equal(t, []string{"go"}, texts(resume.Keywords))
}
