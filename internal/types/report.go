package types

import "time"

// Warning codes attached to a MatchReport
const (
	// WarningNoJobKeywords is set when the job description produced no keywords,
	// in which case the keyword score defaults to 100.
	WarningNoJobKeywords = "no_job_keywords"
	// WarningSuggestionsUnavailable is set when suggestions were requested but
	// could not be generated; the scores are still valid.
	WarningSuggestionsUnavailable = "suggestions_unavailable"
)

// Scores holds the output of the similarity scorer.
// Overall, Semantic and Keyword are the rounded display values; the Raw fields keep full precision.
type Scores struct {
	Overall       float64 `json:"overall"`
	Semantic      float64 `json:"semantic"`
	Keyword       float64 `json:"keyword"`
	Cosine        float64 `json:"cosine"`
	SemanticRaw   float64 `json:"semantic_raw"`
	KeywordRaw    float64 `json:"keyword_raw"`
	NoJobKeywords bool    `json:"no_job_keywords"`
}

// Warning is a non-fatal condition observed while building a report
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MatchReport is the final structured comparison result for one resume/job pair.
type MatchReport struct {
	ID              string        `json:"id,omitempty"`
	AnalyzedAt      time.Time     `json:"analyzed_at,omitempty"`
	OverallScore    float64       `json:"overall_score"`
	SemanticScore   float64       `json:"semantic_score"`
	KeywordScore    float64       `json:"keyword_score"`
	MatchedKeywords []string      `json:"matched_keywords"`
	MissingKeywords []KeywordTerm `json:"missing_keywords"`
	Warnings        []Warning     `json:"warnings,omitempty"`
	Suggestions     string        `json:"suggestions,omitempty"`
}

// AddWarning appends a warning to the report.
func (r *MatchReport) AddWarning(code, message string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: message})
}

// HasWarning reports whether the report carries a warning with the given code.
func (r *MatchReport) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
