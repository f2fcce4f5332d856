package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a client settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
)

// Payment is money received from a client, spread across that client's open
// receivables oldest-first.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	CompanyID   string          `json:"companyID"`
	ClientID    string          `json:"clientID"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate time.Time       `json:"paymentDate"`
	Notes       string          `json:"notes"`
	AuditFields
}

// PaymentAllocation is the persisted sub-record tying a slice of a payment to
// one receivable. Only non-zero allocations are persisted.
type PaymentAllocation struct {
	AllocationID           string          `json:"allocationID"`
	PaymentID              string          `json:"paymentID"`
	TransactionID          string          `json:"transactionID"`
	AllocatedAmount        decimal.Decimal `json:"allocatedAmount"`
	RemainingBalanceBefore decimal.Decimal `json:"remainingBalanceBefore"`
}

// PlannedAllocation is one row of a FIFO distribution preview. Zero-amount
// rows are kept for display and dropped at persistence time.
type PlannedAllocation struct {
	TransactionID          string          `json:"transactionID"`
	EntryDate              time.Time       `json:"entryDate"`
	AllocatedAmount        decimal.Decimal `json:"allocatedAmount"`
	RemainingBalanceBefore decimal.Decimal `json:"remainingBalanceBefore"`
}

// AllocationPlan is the outcome of distributing a payment amount across open
// receivables. TotalAllocated + RemainingPayment always equals the input
// amount.
type AllocationPlan struct {
	Allocations      []PlannedAllocation `json:"allocations"`
	TotalAllocated   decimal.Decimal     `json:"totalAllocated"`
	RemainingPayment decimal.Decimal     `json:"remainingPayment"`
}
