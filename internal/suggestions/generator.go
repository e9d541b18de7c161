// Package suggestions asks an LLM for resume improvement advice based on a MatchReport.
// The returned advice is display text and is never parsed.
package suggestions

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Prompt size limits, in runes
const (
	MaxResumeRunes = 4000
	MaxJobRunes    = 3000

	// maxListedKeywords bounds the keyword lists sent in the prompt
	maxListedKeywords = 15
)

const promptFile = "suggestions.json"

// Generator produces improvement suggestions with an llm.Client.
type Generator struct {
	client llm.Client
}

// New creates a Generator.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate returns free-text improvement advice for the resume.
func (g *Generator) Generate(ctx context.Context, resumeText, jobText string, report *types.MatchReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("match report is required")
	}

	prompt, err := BuildPrompt(resumeText, jobText, report)
	if err != nil {
		return "", err
	}

	text, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate suggestions: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("failed to generate suggestions: empty response")
	}
	return text, nil
}

// BuildPrompt renders the suggestion prompt. Texts are truncated to MaxResumeRunes
// and MaxJobRunes; scores and keywords come from the report, not from the model.
func BuildPrompt(resumeText, jobText string, report *types.MatchReport) (string, error) {
	system, err := prompts.Get(promptFile, "improvement-system")
	if err != nil {
		return "", fmt.Errorf("failed to load suggestion prompt: %w", err)
	}

	user, err := prompts.Render(promptFile, "improvement-user", map[string]string{
		"ResumeText":      TruncateRunes(strings.TrimSpace(resumeText), MaxResumeRunes),
		"JobText":         TruncateRunes(strings.TrimSpace(jobText), MaxJobRunes),
		"OverallScore":    formatScore(report.OverallScore),
		"SemanticScore":   formatScore(report.SemanticScore),
		"KeywordScore":    formatScore(report.KeywordScore),
		"MatchedKeywords": listOrNone(report.MatchedKeywords),
		"MissingKeywords": listOrNone(missingList(report.MissingKeywords)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to load suggestion prompt: %w", err)
	}

	return system + "\n\n" + user, nil
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n < 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 0, 64)
}

func missingList(terms []types.KeywordTerm) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, fmt.Sprintf("%s (%.2f)", t.Text, t.Weight))
	}
	return out
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	if len(items) > maxListedKeywords {
		items = items[:maxListedKeywords]
	}
	return strings.Join(items, ", ")
}
