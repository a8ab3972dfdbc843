// Package extract pulls plain text out of uploaded resume documents.
package extract

import (
	"bytes"
	"regexp"
	"strings"

	"skillproof/internal/errors"

	"github.com/ledongthuc/pdf"
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x08\x0E-\x1F\x7F]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// CleanText scrubs control characters, collapses whitespace runs and
// trims the result.
func CleanText(value string) string {
	cleaned := controlChars.ReplaceAllString(value, " ")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// TextFromPDF extracts plain text from a PDF document. Malformed or
// scanned files fall back to decoding the raw byte stream, so the only
// hard failure is a document with no recoverable text at all.
func TextFromPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume file is empty", nil)
	}

	if text := CleanText(pdfPlainText(data)); text != "" {
		return text, nil
	}

	// Fallback: decode the byte stream directly and scrub it.
	raw := strings.ToValidUTF8(string(data), " ")
	if text := CleanText(raw); text != "" {
		return text, nil
	}

	return "", errors.NewIOError(errors.ErrCodeInvalidFormat,
		"Could not extract text from PDF.", nil)
}

// pdfPlainText returns the concatenated page text, or "" when the
// document cannot be parsed. The parser panics on some malformed
// files, so recover doubles as the error path.
func pdfPlainText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String()
}
