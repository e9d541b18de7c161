package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// Metadata describes where an input text came from.
type Metadata struct {
	Source    string `json:"source"`             // file path or URL
	Format    string `json:"format,omitempty"`   // pdf, docx, html or text
	Platform  string `json:"platform,omitempty"` // job board platform for URLs
	Chars     int    `json:"chars"`
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Timestamp string `json:"timestamp"` // RFC3339
}

// NewMetadata creates Metadata for cleaned text from source.
func NewMetadata(text, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Chars:     utf8.RuneCountInString(text),
		Hash:      computeHash(text),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes the SHA256 hex digest of content
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
