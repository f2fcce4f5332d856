package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// AssetReader defines read operations for fixed assets and run history.
type AssetReader interface {
	// FindAssetByID retrieves one fixed asset.
	FindAssetByID(ctx context.Context, companyID, assetID string) (*domain.FixedAsset, error)

	// ListAssets retrieves every fixed asset for a company.
	ListAssets(ctx context.Context, companyID string) ([]domain.FixedAsset, error)

	// FindRunByPeriod retrieves the depreciation run for a period label, or
	// apperrors.ErrNotFound when the period has not been processed.
	FindRunByPeriod(ctx context.Context, companyID, periodLabel string) (*domain.DepreciationRun, error)

	// FindRecordsByRunID retrieves the per-asset records of one run.
	FindRecordsByRunID(ctx context.Context, runID string) ([]domain.DepreciationRecord, error)
}

// AssetWriter defines write operations for fixed assets and runs.
type AssetWriter interface {
	// SaveAsset persists a new fixed asset.
	SaveAsset(ctx context.Context, asset domain.FixedAsset) error

	// CommitDepreciationRun persists one run in a single transaction: asset
	// state updates, per-asset records, the run summary, and a consolidated
	// ledger expense entry. The unique period index makes a concurrent
	// duplicate run fail this commit rather than double-book.
	CommitDepreciationRun(ctx context.Context, run domain.DepreciationRun, records []domain.DepreciationRecord, assets []domain.FixedAsset, ledgerEntry domain.LedgerEntry) error

	// SetRunJournalOutcome records the journal-mirror phase result on the
	// run: the entry id on success, the failed status otherwise.
	SetRunJournalOutcome(ctx context.Context, runID string, journalEntryID *string, status domain.RunStatus) error
}

// AssetRepository combines all asset repository operations.
type AssetRepository interface {
	AssetReader
	AssetWriter
}
