// Package parser turns raw, noisy OCR text from a Vietnamese
// bank-transfer receipt into a structured BillRecord.
//
// The parser is a pure function: no state survives a call, nothing is
// read or written outside the input string, and malformed input never
// produces an error, only absent fields. All patterns are compiled once
// at package init and shared by every caller.
package parser

import (
	"strings"

	"github.com/subservice/bill-scanner/internal/models"
)

// Parse extracts a BillRecord from OCR text. The confidence value is the
// OCR engine's quality estimate and is carried through untouched.
func Parse(rawText string, confidence float64) *models.BillRecord {
	text := Normalize(rawText)

	rec := &models.BillRecord{
		Amount:          extractAmount(text),
		RecipientName:   extractRecipientName(text),
		AccountNumber:   extractAccountNumber(text),
		BankName:        extractBankName(text),
		TransactionCode: extractTransactionCode(text),
		TransferContent: extractContent(text),
		Status:          extractStatus(text),
		RawText:         text,
		Confidence:      confidence,
	}

	repairRecord(rec)
	return rec
}

// repairRecord reconciles the account-number / transaction-code confusion
// OCR introduces. It runs exactly once; iterating it would re-create the
// ambiguity it resolves.
//
// Two rules, in order:
//  1. If both fields extracted the same digit run, the account number
//     wins and the code is cleared.
//  2. If the account number is missing but the code looks like an
//     account number, the code moves over.
func repairRecord(rec *models.BillRecord) {
	if rec.AccountNumber != nil && rec.TransactionCode != nil &&
		stripWhitespace(*rec.AccountNumber) == stripWhitespace(*rec.TransactionCode) {
		rec.TransactionCode = nil
	}

	if rec.AccountNumber == nil && rec.TransactionCode != nil &&
		looksLikeAccountNumber(*rec.TransactionCode) {
		rec.AccountNumber = rec.TransactionCode
		rec.TransactionCode = nil
	}
}

// looksLikeAccountNumber reports whether a captured value is more
// plausibly an account number than a reference id: all digits after
// stripping filler, 10-16 long, and not a multiple of 1000 (round
// numbers are far more likely to be currency amounts).
func looksLikeAccountNumber(value string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '.', '-':
			return -1
		}
		return r
	}, value)

	if len(cleaned) < 10 || len(cleaned) > 16 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, ok := parseAmountDigits(cleaned)
	if !ok {
		return false
	}
	return n%1000 != 0
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
