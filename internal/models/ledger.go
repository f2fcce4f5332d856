package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType classifies a business transaction.
type LedgerEntryType string

// PaymentStatus tracks how much of a receivable has been collected.
type PaymentStatus string

// LedgerEntry maps one row of the ledger_entries table.
type LedgerEntry struct {
	TransactionID string          `json:"transactionID"`
	CompanyID     string          `json:"companyID"`
	EntryType     LedgerEntryType `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"subCategory"`
	ClientID      string          `json:"clientID"` // nullable in the table
	Description   string          `json:"description"`
	EntryDate     time.Time       `json:"entryDate"`

	IsReceivable         bool `json:"isReceivable"`
	IsImmediatelySettled bool `json:"isImmediatelySettled"`

	TotalPaid        decimal.Decimal `json:"totalPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	AuditFields
}
