package parser

import "strings"

// Closed vocabularies used by the extractors. Built once here so the
// matching code never embeds word lists inline.

// bankNames is the recognized bank vocabulary, in match-priority order.
// Longer names come before their abbreviations so "vietcombank" is not
// reported as "vcb".
var bankNames = []string{
	"vietcombank", "vcb", "techcombank", "mbbank", "mb", "acb",
	"vietinbank", "bidv", "agribank", "tpbank", "vpbank", "sacombank",
	"ocb", "msb", "scb", "seabank", "vib", "shb", "hdbank",
	"lienvietpostbank", "tmcp",
}

// surnames lists common Vietnamese surnames in their diacritic-free
// upper-case OCR spelling. The segmenter takes the first prefix match,
// so order is significant (LA wins over LAM for a LAM... input).
var surnames = []string{
	"LE", "LA", "LY", "LU", "LO", "LAM", "LAI",
	"NGUYEN", "TRAN", "PHAM", "HOANG", "VU", "VO", "DANG",
	"BUI", "DO", "HO", "NGO", "DUONG", "DINH",
}

// nameStopWords are upper-case receipt vocabulary tokens that look like
// name tokens but never are (labels, currency, banking terms).
var nameStopWords = map[string]bool{
	"NGUOI": true, "NHAN": true, "TAI": true, "KHOAN": true,
	"NGAN": true, "HANG": true, "CHUYEN": true, "TIEN": true,
	"GIAO": true, "DICH": true, "VND": true, "DONG": true,
}

// bankNameTokens are upper-case bank identifiers excluded from name
// candidates. Substring match: OCR often glues them to adjacent tokens.
var bankNameTokens = []string{
	"VIETCOMBANK", "TECHCOMBANK", "BIDV", "AGRIBANK", "VIETINBANK", "TMCP",
}

func isStopWord(token string) bool {
	return nameStopWords[strings.ToUpper(token)]
}

// containsStopWord reports whether any receipt stop word appears inside
// the candidate. Used for concatenated candidates where token boundaries
// are unknown.
func containsStopWord(candidate string) bool {
	upper := strings.ToUpper(candidate)
	for word := range nameStopWords {
		if strings.Contains(upper, word) {
			return true
		}
	}
	return false
}

func containsBankToken(candidate string) bool {
	upper := strings.ToUpper(candidate)
	for _, token := range bankNameTokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}
