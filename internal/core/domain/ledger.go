package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType classifies a business transaction.
type LedgerEntryType string

const (
	LedgerIncome  LedgerEntryType = "INCOME"
	LedgerExpense LedgerEntryType = "EXPENSE"
	LedgerEquity  LedgerEntryType = "EQUITY"
	LedgerLoan    LedgerEntryType = "LOAN"
)

// PaymentStatus tracks how much of a receivable has been collected.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusUnpaid  PaymentStatus = "UNPAID"
	StatusPartial PaymentStatus = "PARTIAL"
)

// LedgerEntry is a business transaction (an invoice, a purchase, a capital
// contribution). Each entry maps to exactly one journal entry via
// LinkedTransactionID; a correcting reversal adds a second.
type LedgerEntry struct {
	TransactionID string          `json:"transactionID"`
	CompanyID     string          `json:"companyID"`
	EntryType     LedgerEntryType `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"subCategory"`
	ClientID      string          `json:"clientID"` // set for receivable income
	Description   string          `json:"description"`
	EntryDate     time.Time       `json:"entryDate"`

	IsReceivable         bool `json:"isReceivable"`
	IsImmediatelySettled bool `json:"isImmediatelySettled"`

	TotalPaid        decimal.Decimal `json:"totalPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	AuditFields
}

// DerivePaymentStatus maps paid/total amounts onto the three-way status.
func DerivePaymentStatus(totalPaid, amount decimal.Decimal) PaymentStatus {
	switch {
	case totalPaid.LessThanOrEqual(decimal.Zero):
		return StatusUnpaid
	case totalPaid.GreaterThanOrEqual(amount):
		return StatusPaid
	default:
		return StatusPartial
	}
}

// Event projects the ledger entry into the shape the mapping resolver takes.
func (l LedgerEntry) Event() BusinessEvent {
	kind := EventExpense
	switch l.EntryType {
	case LedgerIncome:
		kind = EventIncome
	case LedgerEquity:
		kind = EventEquityContribution
	case LedgerLoan:
		kind = EventLoanProceeds
	}
	return BusinessEvent{
		Kind:                 kind,
		Category:             l.Category,
		SubCategory:          l.SubCategory,
		IsReceivable:         l.IsReceivable,
		IsImmediatelySettled: l.IsImmediatelySettled,
	}
}
