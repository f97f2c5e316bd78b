package parser

import (
	"regexp"
	"strings"

	"github.com/subservice/bill-scanner/internal/models"
)

var (
	// bank vocabulary alternation, compiled from vocab.go so the list
	// stays in one place
	bankPattern = regexp.MustCompile(`(?i)(` + strings.Join(bankNames, "|") + `)`)

	// "mã giao dịch" or the abbreviated "mã GD" label, then the code
	codeLabeled = regexp.MustCompile(
		`(?i)(?:mã|ma)\s*(?:giao\s*(?:dịch|d[iị]ch)|gd)\s*[:\-]?\s*([A-Za-z0-9]{8,20})`)
	// bare long digit run, used when no label is present
	codeBare = regexp.MustCompile(`\b([0-9]{10,20})\b`)

	// "nội dung" label followed by the memo text (newlines excluded)
	contentLabeled = regexp.MustCompile(
		`(?i)(?:nội|noi)\s*dung\s*[:\-]?\s*(.{5,100})`)
	// unlabeled memo: a caps name run, the transfer keyword, and up to
	// six trailing lower-case words
	contentPhrase = regexp.MustCompile(
		`\b([A-Z]+(?:\s+[A-Z]+){1,5}\s+(?i:chuyen|tien)(?:\s*(?i:tien))?(?:\s+[a-zà-ỹ]+){0,6})`)

	// "giao dịch thành công" in any diacritic mix
	successPhrase = regexp.MustCompile(
		`(?i)(?:giao|gd)\s*(?:dịch|d[iị]ch)\s*(?:thành|thanh)\s*(?:công|cong)`)
)

// extractBankName returns the first recognized bank token as it appears
// in the text, or nil.
func extractBankName(text string) *string {
	if m := bankPattern.FindStringSubmatch(text); m != nil {
		return &m[1]
	}
	return nil
}

// extractTransactionCode returns the labeled reference id when present,
// otherwise the longest bare 10-20 digit run.
func extractTransactionCode(text string) *string {
	if m := codeLabeled.FindStringSubmatch(text); m != nil {
		code := strings.TrimSpace(m[1])
		return &code
	}
	var candidates []string
	for _, m := range codeBare.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, m[1])
	}
	return selectLongest(candidates)
}

// selectLongest returns the longest candidate, keeping the earliest on a
// tie.
func selectLongest(candidates []string) *string {
	var best string
	for _, c := range candidates {
		if len(c) > len(best) {
			best = c
		}
	}
	if best == "" {
		return nil
	}
	return &best
}

// extractContent returns the transfer memo: the labeled "nội dung" text
// when present, otherwise a name-plus-transfer-keyword phrase.
func extractContent(text string) *string {
	if m := contentLabeled.FindStringSubmatch(text); m != nil {
		content := strings.TrimSpace(m[1])
		return &content
	}
	if m := contentPhrase.FindStringSubmatch(text); m != nil {
		content := strings.TrimSpace(m[1])
		return &content
	}
	return nil
}

// extractStatus reports success only when the receipt literally says the
// transaction succeeded.
func extractStatus(text string) string {
	if successPhrase.MatchString(text) {
		return models.StatusSuccess
	}
	return models.StatusUnknown
}
