package services

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
)

// RecordedTransaction pairs the stored ledger entry with the resolution
// metadata its caller surfaces (notably the fallback-account flag).
type RecordedTransaction struct {
	Entry        domain.LedgerEntry
	JournalID    string
	UsedFallback bool
}

// LedgerSvc records business transactions and mirrors each one with a
// balanced journal entry in the same atomic write.
type LedgerSvc interface {
	// RecordTransaction resolves the event to an account pair, builds the
	// balanced lines, and persists ledger entry + journal entry together.
	RecordTransaction(ctx context.Context, companyID string, req dto.RecordTransactionRequest, userID string) (*RecordedTransaction, error)

	// GetTransaction retrieves one business transaction.
	GetTransaction(ctx context.Context, companyID, transactionID string) (*domain.LedgerEntry, error)

	// ListTransactions retrieves a page of business transactions.
	ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
