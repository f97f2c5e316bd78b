package parser

import (
	"regexp"
	"strings"
)

// maxInputLen caps the text handed to the extractors. Go's regexp is
// linear-time, but OCR of a corrupt image can still emit megabytes of
// noise; nothing on a real receipt lives past the first few KB.
const maxInputLen = 64 * 1024

var (
	// runs of horizontal whitespace (everything except newlines)
	spaceRuns = regexp.MustCompile(`[^\S\n]+`)
	// newline runs, including any whitespace hugging them
	newlineRuns = regexp.MustCompile(`\s*\n\s*`)
)

// Normalize collapses whitespace runs to a single space and newline runs
// to a single newline, and trims the ends. Case and diacritics are
// preserved; the field patterns tolerate both spellings themselves so
// extracted values keep their original form.
func Normalize(text string) string {
	if len(text) > maxInputLen {
		text = text[:maxInputLen]
	}
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
