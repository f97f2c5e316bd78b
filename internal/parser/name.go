package parser

import (
	"regexp"
	"strings"
)

var (
	// name following a "tên người nhận" style label, diacritic-tolerant.
	// The capture stops at a newline so the next receipt line is never
	// swallowed into the name.
	nameLabeled = regexp.MustCompile(
		`(?i)(?:tên|ten|người|nguoi)\s*(?:nhận|nhan|nh[aậ]n)\s*[:\-]?\s*([A-Za-z ]{4,50})`)
	// 2-6 upper-case tokens; an optional trailing single letter admits
	// short given names like NGUYEN VAN A
	nameCapsRun = regexp.MustCompile(
		`\b([A-Z]{2,}(?:\s+[A-Z]{2,}){1,5}(?:\s+[A-Z])?)\b`)
	// one glued upper-case run, the LEVANNAM presentation
	nameConcatenated = regexp.MustCompile(`\b([A-Z]{6,20})\b`)
)

// extractRecipientName collects name candidates from the three OCR
// presentations (labeled, spaced capitals, glued capitals) and picks the
// most plausible one.
func extractRecipientName(text string) *string {
	var candidates []string

	if m := nameLabeled.FindStringSubmatch(text); m != nil {
		name := squashSpaces(m[1])
		if validNameTokens(strings.Fields(name)) {
			candidates = append(candidates, name)
		}
	}

	for _, m := range nameCapsRun.FindAllStringSubmatch(text, -1) {
		candidate := squashSpaces(m[1])
		tokens := strings.Fields(candidate)
		if len(tokens) < 2 || len(tokens) > 5 {
			continue
		}
		if !validNameTokens(tokens) {
			continue
		}
		if anyStopToken(tokens) || containsBankToken(candidate) {
			continue
		}
		candidates = append(candidates, candidate)
	}

	for _, m := range nameConcatenated.FindAllStringSubmatch(text, -1) {
		glued := m[1]
		if containsStopWord(glued) || containsBankToken(glued) {
			continue
		}
		if segmented, ok := segmentName(glued); ok {
			candidates = append(candidates, segmented)
		}
	}

	return selectName(candidates)
}

// selectName maximizes token count and breaks ties on total length; the
// earliest candidate wins a full tie.
func selectName(candidates []string) *string {
	var best string
	bestTokens := 0
	for _, c := range candidates {
		tokens := len(strings.Fields(c))
		if tokens > bestTokens || (tokens == bestTokens && len(c) > len(best)) {
			best = c
			bestTokens = tokens
		}
	}
	if best == "" {
		return nil
	}
	return &best
}

// segmentName splits a glued upper-case run into SURNAME MIDDLE GIVEN.
// The run must begin with a known surname; the remainder (4-12 letters)
// is split near its midpoint, trying offsets 0, +1, +2 until both parts
// have at least two letters. Runs that cannot be split are not names.
func segmentName(glued string) (string, bool) {
	if len(glued) < 6 {
		return "", false
	}
	for _, surname := range surnames {
		if !strings.HasPrefix(glued, surname) {
			continue
		}
		rest := glued[len(surname):]
		if len(rest) < 4 || len(rest) > 12 {
			continue
		}
		mid := len(rest) / 2
		for offset := 0; offset <= 2; offset++ {
			cut := mid + offset
			if cut < 2 || len(rest)-cut < 2 {
				continue
			}
			return surname + " " + rest[:cut] + " " + rest[cut:], true
		}
	}
	return "", false
}

// validNameTokens requires at least two tokens, each at least two
// letters, except that the final token may be a one-letter initial.
func validNameTokens(tokens []string) bool {
	if len(tokens) < 2 {
		return false
	}
	for i, tok := range tokens {
		if len(tok) >= 2 {
			continue
		}
		if i != len(tokens)-1 || len(tok) == 0 {
			return false
		}
	}
	return true
}

func anyStopToken(tokens []string) bool {
	for _, tok := range tokens {
		if isStopWord(tok) {
			return true
		}
	}
	return false
}

var multiSpace = regexp.MustCompile(`\s+`)

func squashSpaces(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
