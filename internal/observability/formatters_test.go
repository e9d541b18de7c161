package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.MatchReport{
		OverallScore:    87,
		SemanticScore:   100,
		KeywordScore:    67,
		MatchedKeywords: []string{"python", "sql"},
		MissingKeywords: []types.KeywordTerm{{Text: "aws", Weight: 0.8}},
	}

	p.PrintReport(report)
	output := buf.String()

	assert.Contains(t, output, "MATCH REPORT")
	assert.Contains(t, output, "Overall:    87 / 100")
	assert.Contains(t, output, "Keyword:    67 / 100")
	assert.Contains(t, output, "python, sql")
	assert.Contains(t, output, "aws")
	assert.Contains(t, output, "0.80")
	assert.NotContains(t, output, "SUGGESTIONS")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintReport_WarningsAndSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&types.MatchReport{
		OverallScore: 100,
		KeywordScore: 100,
		Warnings:     []types.Warning{{Code: types.WarningNoJobKeywords, Message: "job description produced no keywords"}},
		Suggestions:  "Add AWS experience.",
	})
	output := buf.String()

	assert.Contains(t, output, "⚠ job description produced no keywords")
	assert.Contains(t, output, "SUGGESTIONS")
	assert.Contains(t, output, "Add AWS experience.")
}

func TestPrintReport_TruncatesMissingList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	missing := make([]types.KeywordTerm, maxItemsToShow+3)
	for i := range missing {
		missing[i] = types.KeywordTerm{Text: strings.Repeat("k", i+1), Weight: 0.5}
	}
	p.PrintReport(&types.MatchReport{MissingKeywords: missing})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintBox_FixedWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, lines[4], "...")
}

func TestPrintKeywords(t *testing.T) {
	tests := []struct {
		name  string
		terms []types.KeywordTerm
		want  []string
	}{
		{
			name:  "terms",
			terms: []types.KeywordTerm{{Text: "machine learning", Weight: 1}, {Text: "python", Weight: 0.5}},
			want:  []string{"JOB KEYWORDS", "machine learning", "1.00", "python", "0.50"},
		},
		{
			name: "empty",
			want: []string{"JOB KEYWORDS", "no keywords"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintKeywords("JOB KEYWORDS", tt.terms)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWrapList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		width int
		want  []string
	}{
		{name: "empty", items: nil, width: 10, want: nil},
		{name: "single line", items: []string{"go", "sql"}, width: 20, want: []string{"go, sql"}},
		{name: "wraps", items: []string{"python", "kubernetes", "aws"}, width: 12, want: []string{"python,", "kubernetes,", "aws"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapList(tt.items, tt.width))
		})
	}
}
