package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// MaxFileSize is the largest resume file accepted (10 MB).
const MaxFileSize = 10 << 20

// Format is a supported input document format.
type Format string

// Supported formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

var (
	// ErrFileTooLarge is returned for files over MaxFileSize
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnsupportedFormat is returned for files that are not PDF, DOCX, HTML or text
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoText is returned when a document contains no extractable text
	ErrNoText = errors.New("no extractable text")
)

// ExtractText reads the file at path and returns its cleaned plain text.
// The path "-" reads from stdin.
func ExtractText(path string) (string, *Metadata, error) {
	if path == "-" {
		return ExtractFrom(os.Stdin, "stdin.txt")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrFileTooLarge, path, info.Size(), MaxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ExtractFrom(f, path)
}

// ExtractFrom reads a document from r. name is used for format detection and
// metadata.
func ExtractFrom(r io.Reader, name string) (string, *Metadata, error) {
	data, err := readLimited(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	format, err := DetectFormat(name, data)
	if err != nil {
		return "", nil, err
	}

	text, err := ExtractBytes(data, format)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract text from %s: %w", name, err)
	}

	meta := NewMetadata(text, name)
	meta.Format = string(format)
	return text, meta, nil
}

// DetectFormat picks the format from the file extension, sniffing the content when
// the extension is missing or unknown.
func DetectFormat(path string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".md", ".text":
		return FormatText, nil
	}

	mime := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(mime, "application/pdf"):
		return FormatPDF, nil
	case strings.HasPrefix(mime, "text/html"):
		return FormatHTML, nil
	case strings.HasPrefix(mime, "text/plain"):
		return FormatText, nil
	case strings.HasPrefix(mime, "application/zip"):
		return FormatDOCX, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, path, mime)
}

// ExtractBytes extracts cleaned text from document content in the given format.
func ExtractBytes(data []byte, format Format) (string, error) {
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(data), MaxFileSize)
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDocxText(data)
	case FormatHTML:
		text, err = fetch.ExtractMainText(string(data), nil)
	case FormatText:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText strips the WordprocessingML markup returned by the docx reader,
// ending a line at every paragraph.
func docxPlainText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", " ")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")

	var sb strings.Builder
	inTag := false
	for _, r := range xml {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return htmlUnescaper.Replace(sb.String())
}

var htmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")

// readLimited reads at most MaxFileSize bytes from r.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, MaxFileSize)
	}
	return data, nil
}
