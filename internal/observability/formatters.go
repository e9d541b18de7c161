// Package observability provides logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the inner box width, counting runes
func pad(line string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > width {
		return string([]rune(line)[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// PrintReport outputs the scores, matched keywords and top gaps of a match report.
func (p *Printer) PrintReport(report *types.MatchReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:   %3.0f / 100\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("Semantic:  %3.0f / 100\n", report.SemanticScore))
	sb.WriteString(fmt.Sprintf("Keyword:   %3.0f / 100\n", report.KeywordScore))

	if len(report.MatchedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched (%d):\n", len(report.MatchedKeywords)))
		for _, line := range wrapList(report.MatchedKeywords, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}

	if len(report.MissingKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing (%d):\n", len(report.MissingKeywords)))
		count := min(len(report.MissingKeywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			term := report.MissingKeywords[i]
			sb.WriteString(fmt.Sprintf("  • %-36s %.2f\n", term.Text, term.Weight))
		}
		if len(report.MissingKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.MissingKeywords)-maxItemsToShow))
		}
	}

	for _, w := range report.Warnings {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", w.Message))
	}

	p.printBox("MATCH REPORT", strings.TrimSuffix(sb.String(), "\n"))

	if report.Suggestions != "" {
		p.printBox("SUGGESTIONS", report.Suggestions)
	}
}

// PrintKeywords outputs the weighted keywords extracted from one document.
func (p *Printer) PrintKeywords(title string, terms []types.KeywordTerm) {
	if len(terms) == 0 {
		p.printBox(title, "no keywords")
		return
	}

	var sb strings.Builder
	for _, term := range terms {
		sb.WriteString(fmt.Sprintf("%-44s %.2f\n", term.Text, term.Weight))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// wrapList joins items with commas, breaking lines at width runes.
func wrapList(items []string, width int) []string {
	var (
		lines   []string
		current strings.Builder
	)
	for i, item := range items {
		piece := item
		if i < len(items)-1 {
			piece += ","
		}
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(piece) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(piece)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
