package ocr

import (
	"strings"
	"unicode"
)

// characters counted as "clean" OCR output beyond letters, digits and
// whitespace
const confidencePunct = `.,!?;:-()[]{}"'`

// EstimateConfidence rates OCR text quality as the fraction of runes
// that are letters, digits, whitespace or common punctuation. Garbled
// regions full of replacement characters and symbol noise drag the ratio
// down. Empty or blank text rates 0.
func EstimateConfidence(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0.0
	}

	total, valid := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(confidencePunct, r) {
			valid++
		}
	}
	return float64(valid) / float64(total)
}
