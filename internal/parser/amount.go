package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount bounds in VND. Receipts below 1.000 đ don't exist and anything
// above a billion is an OCR artifact.
const (
	minAmount = 1_000
	maxAmount = 1_000_000_000
)

// How many leading lines the standalone-amount producer inspects. Banking
// apps print the big total near the top of the receipt.
const standaloneLineWindow = 5

// The amount is collected by five independent candidate producers and the
// largest surviving candidate wins: the transfer total is the largest
// currency-formatted numeric on a receipt, while account numbers carry no
// thousands separators and reference ids are rarely multiples of 1000.
var (
	// a line that is nothing but a grouped number, optionally + currency
	amountStandalone = regexp.MustCompile(
		`(?i)^([0-9]{1,3}(?:[.,\s][0-9]{3})*)\s*(?:VND|đ|dong|d)?\s*$`)
	// "giao dịch thành công" then a grouped number within 50 chars,
	// diacritic-tolerant on every word
	amountAfterSuccess = regexp.MustCompile(
		`(?is)giao\s*[dđ][iịĩỉ]ch\s*th[àaả]nh\s*c[ôo]ng[^0-9]{0,50}([0-9]{1,3}(?:[.,\s][0-9]{3})*)`)
	// grouped number followed by a currency marker
	amountWithCurrency = regexp.MustCompile(
		`(?i)([0-9]{1,3}(?:[.,\s][0-9]{3})+)\s*(?:VND|đ|vnd|dong|đồng)`)
	// any thousands-separated triplet group
	amountFormatted = regexp.MustCompile(
		`\b([0-9]{1,3}[.,][0-9]{3}(?:[.,][0-9]{3})*)\b`)
	// bare integer, 4-10 digits; only multiples of 1000 are kept
	amountBare = regexp.MustCompile(`\b([0-9]{4,10})\b`)
)

// extractAmount returns the transaction amount in VND, or nil when no
// candidate survives the range rules.
func extractAmount(text string) *int64 {
	var candidates []int64

	add := func(raw string) {
		v, ok := parseAmountDigits(raw)
		if ok && v >= minAmount && v <= maxAmount {
			candidates = append(candidates, v)
		}
	}

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines) && i < standaloneLineWindow; i++ {
		if m := amountStandalone.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			add(m[1])
		}
	}

	for _, m := range amountAfterSuccess.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range amountWithCurrency.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range amountFormatted.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range amountBare.FindAllStringSubmatch(text, -1) {
		if v, ok := parseAmountDigits(m[1]); ok && v%1000 == 0 {
			add(m[1])
		}
	}

	return selectAmount(candidates)
}

// selectAmount picks the largest candidate. Exposed as its own function
// because the max rule is the contract, not an implementation detail.
func selectAmount(candidates []int64) *int64 {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c > best {
			best = c
		}
	}
	return &best
}

// parseAmountDigits strips grouping separators and converts to an
// integer VND value.
func parseAmountDigits(s string) (int64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ' ', '\t':
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
