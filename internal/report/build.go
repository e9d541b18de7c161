// Package report assembles MatchReports from scores and gaps.
package report

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Build assembles a MatchReport from the resume and job documents. MatchedKeywords
// are the job keywords not listed in gaps, in job first-occurrence order, so the
// resume document itself is not consulted.
func Build(_, jobDoc *types.Document, scores types.Scores, gaps []types.KeywordTerm) *types.MatchReport {
	missing := make(map[string]bool, len(gaps))
	for _, g := range gaps {
		missing[types.TermKey(g.Text)] = true
	}

	matched := make([]string, 0, len(jobDoc.Keywords))
	for _, kw := range jobDoc.Keywords {
		if !missing[types.TermKey(kw.Text)] {
			matched = append(matched, kw.Text)
		}
	}

	missingTerms := make([]types.KeywordTerm, len(gaps))
	copy(missingTerms, gaps)

	r := &types.MatchReport{
		OverallScore:    scores.Overall,
		SemanticScore:   scores.Semantic,
		KeywordScore:    scores.Keyword,
		MatchedKeywords: matched,
		MissingKeywords: missingTerms,
	}

	if scores.NoJobKeywords {
		r.AddWarning(types.WarningNoJobKeywords,
			fmt.Sprintf("job description produced no keywords; keyword score defaults to %.0f", scores.Keyword))
	}

	return r
}
