// Package ingestion turns resume files and job posting pages into plain text.
package ingestion

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
	bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "}
)

// InputTooLongError is returned when a text exceeds the caller-side size cap.
type InputTooLongError struct {
	Input  string
	Length int
	Max    int
}

func (e *InputTooLongError) Error() string {
	return fmt.Sprintf("%s is too long: %d characters (max %d)", e.Input, e.Length, e.Max)
}

// CheckLength enforces the input cap in characters (runes). max < 0 disables the check.
func CheckLength(text, input string, max int) error {
	if max < 0 {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > max {
		return &InputTooLongError{Input: input, Length: n, Max: max}
	}
	return nil
}

// CleanText normalizes extracted text while keeping its line structure: line
// endings become LF, runs of spaces collapse, bullets are kept, trailing spaces are
// trimmed and more than one blank line in a row is reduced to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ToValidUTF8(content, "")
	content = strings.ReplaceAll(content, "\x00", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses whitespace in one line; bullet markers are normalized to "- ".
func cleanLine(line string) string {
	line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return "- " + strings.TrimSpace(line[len(marker):])
		}
	}
	return line
}
