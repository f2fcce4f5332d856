package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// LedgerReader defines read operations for business transactions.
type LedgerReader interface {
	// FindTransactionByID retrieves a specific ledger entry.
	FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.LedgerEntry, error)

	// FindOpenReceivables retrieves a client's unpaid or partially paid
	// receivable entries ordered by entry date ascending.
	FindOpenReceivables(ctx context.Context, companyID, clientID string) ([]domain.LedgerEntry, error)

	// FindAllTransactions retrieves ledger entries for integrity checks,
	// bounded by limit. The bool result reports whether the cap was hit.
	FindAllTransactions(ctx context.Context, companyID string, limit int) ([]domain.LedgerEntry, bool, error)

	// ListTransactions retrieves a page of ledger entries using token-based
	// pagination.
	ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for business transactions.
type LedgerWriter interface {
	// SaveWithJournal persists a ledger entry and its balancing journal
	// entry in one transaction: both land or neither does.
	SaveWithJournal(ctx context.Context, entry domain.LedgerEntry, journal domain.JournalEntry) error
}

// LedgerRepository combines all ledger repository operations.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
