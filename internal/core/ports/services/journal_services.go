package services

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/jackc/pgx/v5"
)

// JournalSvc is the posting engine: it is the only writer of journal entries.
type JournalSvc interface {
	// PostEntry validates and persists a balanced manual entry.
	PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error)

	// PrepareEntry validates a draft and returns the entry unpersisted, for
	// callers that commit it inside their own transaction together with the
	// business document it mirrors.
	PrepareEntry(ctx context.Context, companyID string, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a mirror-image entry and marks the original
	// REVERSED. Rejects unknown, already-reversed, and reversal entries.
	ReverseEntry(ctx context.Context, companyID, entryID, reason, userID string) (*domain.JournalEntry, error)

	// GetEntry retrieves one entry with its lines.
	GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryBatchWriter is the narrow posting surface sibling repositories use to
// mirror a document write inside their own transaction.
type EntryBatchWriter interface {
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
}
