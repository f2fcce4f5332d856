package repositories

import (
	"context"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry, lines included.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByLinkedTransaction retrieves every entry linked to a
	// business transaction, matching both the current link field and the
	// legacy one.
	FindEntriesByLinkedTransaction(ctx context.Context, companyID, transactionID string) ([]domain.JournalEntry, error)

	// FindEntriesByLinkedPayment retrieves entries linked to a payment.
	FindEntriesByLinkedPayment(ctx context.Context, companyID, paymentID string) ([]domain.JournalEntry, error)

	// FindPostedEntries retrieves posted entries up to asOf, newest first,
	// bounded by limit. The bool result reports whether the cap was hit.
	FindPostedEntries(ctx context.Context, companyID string, asOf time.Time, limit int) ([]domain.JournalEntry, bool, error)

	// FindAllEntries retrieves entries of any status for integrity checks,
	// bounded by limit. The bool result reports whether the cap was hit.
	FindAllEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, bool, error)

	// ListEntries retrieves a page of entries using token-based pagination.
	ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveEntry persists a balanced entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// SaveEntryInTx persists an entry inside a caller-owned transaction so a
	// sibling document write and its journal mirror commit or fail together.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// SaveReversalEntry persists the reversing entry and flips the original
	// to REVERSED with back-links, in one transaction.
	SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, now time.Time) error

	// DeleteEntries removes entries by id. Only the orphan cleanup uses it.
	DeleteEntries(ctx context.Context, companyID string, entryIDs []string) (int, error)
}

// JournalRepository combines all journal repository operations.
type JournalRepository interface {
	JournalReader
	JournalWriter
}
