package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a client settled.
type PaymentMethod string

// Payment maps one row of the payments table.
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

// PaymentAllocation maps one row of the payment_allocations table. Only
// non-zero allocations are stored.
type PaymentAllocation struct {
	AllocationID           string          `json:"allocationID"`
	PaymentID              string          `json:"paymentID"`
	TransactionID          string          `json:"transactionID"`
	AllocatedAmount        decimal.Decimal `json:"allocatedAmount"`
	RemainingBalanceBefore decimal.Decimal `json:"remainingBalanceBefore"`
}
