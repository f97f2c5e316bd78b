package parser

import "regexp"

var (
	// account label (số / STK / tài khoản / account), diacritic-tolerant,
	// then an optional separator and the digit run
	accountLabeled = regexp.MustCompile(
		`(?i)(?:số|s[oố]|stk|t[àa]i\s*kho[aả]n|account)\s*[:\-]?\s*([0-9]{10,16})`)
	// bare 10-16 digit run anywhere in the text
	accountBare = regexp.MustCompile(`\b([0-9]{10,16})\b`)
)

// extractAccountNumber finds the beneficiary account number. Labeled
// matches are preferred; without any label every bare 10-16 digit run is
// a candidate.
func extractAccountNumber(text string) *string {
	var candidates []string
	for _, m := range accountLabeled.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, m[1])
	}
	if len(candidates) == 0 {
		for _, m := range accountBare.FindAllStringSubmatch(text, -1) {
			candidates = append(candidates, m[1])
		}
	}
	return selectAccountNumber(candidates)
}

// selectAccountNumber prefers a 10-13 digit candidate (the dominant VN
// account length) and otherwise takes the first one found.
func selectAccountNumber(candidates []string) *string {
	for _, c := range candidates {
		if len(c) >= 10 && len(c) <= 13 {
			return &c
		}
	}
	if len(candidates) > 0 {
		return &candidates[0]
	}
	return nil
}
