package dto

import (
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest creates a business transaction and its balancing
// journal entry.
type RecordTransactionRequest struct {
	Type                 string          `json:"type" binding:"required,oneof=INCOME EXPENSE EQUITY LOAN"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	Category             string          `json:"category"`
	SubCategory          string          `json:"subCategory"`
	ClientID             string          `json:"clientID"`
	Description          string          `json:"description" binding:"required"`
	Date                 time.Time       `json:"date" binding:"required"`
	IsReceivable         bool            `json:"isReceivable"`
	IsImmediatelySettled bool            `json:"isImmediatelySettled"`
}

// ListTransactionsParams carries pagination for transaction listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LedgerEntryResponse is the wire shape of a business transaction.
type LedgerEntryResponse struct {
	TransactionID    string          `json:"transactionID"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory,omitempty"`
	ClientID         string          `json:"clientID,omitempty"`
	Description      string          `json:"description"`
	Date             time.Time       `json:"date"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PaymentStatus    string          `json:"paymentStatus"`

	// UsedFallbackAccount flags entries whose category had no dedicated
	// account and posted to the generic income/expense account.
	UsedFallbackAccount bool `json:"usedFallbackAccount,omitempty"`
}

// ListTransactionsResponse is one page of business transactions.
type ListTransactionsResponse struct {
	Transactions []LedgerEntryResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain ledger entry to its wire shape.
func ToLedgerEntryResponse(l *domain.LedgerEntry, usedFallback bool) LedgerEntryResponse {
	return LedgerEntryResponse{
		TransactionID:       l.TransactionID,
		Type:                string(l.EntryType),
		Amount:              l.Amount,
		Category:            l.Category,
		SubCategory:         l.SubCategory,
		ClientID:            l.ClientID,
		Description:         l.Description,
		Date:                l.EntryDate,
		TotalPaid:           l.TotalPaid,
		RemainingBalance:    l.RemainingBalance,
		PaymentStatus:       string(l.PaymentStatus),
		UsedFallbackAccount: usedFallback,
	}
}

// ToLedgerEntryResponses converts a slice of domain ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i], false)
	}
	return responses
}
