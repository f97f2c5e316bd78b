package models

// StatusSuccess and StatusUnknown are the only transaction outcomes a
// receipt can report. The success string is the literal Vietnamese phrase
// printed on the receipt.
const (
	StatusSuccess = "Thành công"
	StatusUnknown = "Unknown"
)

// BillRecord is the structured result of parsing one bank-transfer
// receipt. Fields that could not be confidently extracted are nil and
// marshal as explicit JSON nulls.
type BillRecord struct {
	// Amount is the transaction value in VND (no fractional unit).
	Amount *int64 `json:"amount"`
	// RecipientName is the beneficiary, upper-case tokens separated by
	// single spaces.
	RecipientName *string `json:"recipientName"`
	// AccountNumber is the beneficiary account, 10-16 digits.
	AccountNumber *string `json:"accountNumber"`
	// BankName is the beneficiary bank as matched from the receipt.
	BankName *string `json:"bankName"`
	// TransferContent is the free-text transfer memo.
	TransferContent *string `json:"transferContent"`
	// TransactionCode is the alphanumeric reference id, 8-20 chars.
	TransactionCode *string `json:"transactionCode"`
	// Status is StatusSuccess when the receipt reports a completed
	// transaction, StatusUnknown otherwise.
	Status string `json:"status"`

	// RawText is the normalized OCR text the record was parsed from.
	RawText string `json:"rawText,omitempty"`
	// Confidence is the OCR engine's quality estimate in [0,1].
	Confidence float64 `json:"confidence"`
}
