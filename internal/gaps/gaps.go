// Package gaps finds job keywords missing from a resume.
package gaps

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// FindGaps returns every job keyword whose text is absent from the resume keywords
// (case-insensitive). The result is ordered by descending weight, ties broken by
// first occurrence in the job description and then by text. Inputs are not modified.
func FindGaps(resumeDoc, jobDoc *types.Document) []types.KeywordTerm {
	resumeSet := resumeDoc.KeywordSet()

	missing := make([]types.KeywordTerm, 0, len(jobDoc.Keywords))
	for _, kw := range jobDoc.Keywords {
		if !resumeSet[types.TermKey(kw.Text)] {
			missing = append(missing, kw)
		}
	}

	sort.SliceStable(missing, func(i, j int) bool {
		a, b := missing[i], missing[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.FirstIndex != b.FirstIndex {
			return a.FirstIndex < b.FirstIndex
		}
		return a.Text < b.Text
	})

	return missing
}
