package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat-backend/internal/models"
	"github.com/hisabat-app/hisabat-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for fixed assets and
// depreciation runs.
func newPgxAssetRepository(pool *pgxpool.Pool) *PgxAssetRepository {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepository
var _ portsrepo.AssetRepository = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, company_id, name, purchase_cost, salvage_value, useful_life_months, monthly_depreciation, accumulated_depreciation, book_value, status, purchase_date, last_depreciation_date, created_at, created_by, last_updated_at, last_updated_by`

const runColumns = `run_id, company_id, period_label, year, month, asset_count, total_depreciation, status, journal_entry_id, run_date, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (models.FixedAsset, error) {
	var m models.FixedAsset
	var lastDep sql.NullTime
	err := row.Scan(
		&m.AssetID,
		&m.CompanyID,
		&m.Name,
		&m.PurchaseCost,
		&m.SalvageValue,
		&m.UsefulLifeMonths,
		&m.MonthlyDepreciation,
		&m.AccumulatedDepreciation,
		&m.BookValue,
		&m.Status,
		&m.PurchaseDate,
		&lastDep,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if lastDep.Valid {
		m.LastDepreciationDate = &lastDep.Time
	}
	return m, err
}

func scanRun(row pgx.Row) (models.DepreciationRun, error) {
	var m models.DepreciationRun
	var journalEntryID sql.NullString
	err := row.Scan(
		&m.RunID,
		&m.CompanyID,
		&m.PeriodLabel,
		&m.Year,
		&m.Month,
		&m.AssetCount,
		&m.TotalDepreciation,
		&m.Status,
		&journalEntryID,
		&m.RunDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if journalEntryID.Valid {
		m.JournalEntryID = &journalEntryID.String
	}
	return m, err
}

// SaveAsset persists a new fixed asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	m := mapping.ToModelFixedAsset(asset)
	query := `
		INSERT INTO fixed_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssetID,
		m.CompanyID,
		m.Name,
		m.PurchaseCost,
		m.SalvageValue,
		m.UsefulLifeMonths,
		m.MonthlyDepreciation,
		m.AccumulatedDepreciation,
		m.BookValue,
		m.Status,
		m.PurchaseDate,
		m.LastDepreciationDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: asset %s already exists", apperrors.ErrDuplicate, m.AssetID)
		}
		return apperrors.NewAppError(500, "failed to save asset "+m.AssetID, err)
	}
	return nil
}

// FindAssetByID retrieves one fixed asset.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, companyID, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE company_id = $1 AND asset_id = $2;`
	m, err := scanAsset(r.Pool.QueryRow(ctx, query, companyID, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find asset "+assetID, err)
	}
	d := mapping.ToDomainFixedAsset(m)
	return &d, nil
}

// ListAssets retrieves every fixed asset for a company.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, companyID string) ([]domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE company_id = $1 ORDER BY purchase_date, asset_id;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets for company "+companyID, err)
	}
	defer rows.Close()

	ms := []models.FixedAsset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset rows", err)
	}
	return mapping.ToDomainFixedAssetSlice(ms), nil
}

// FindRunByPeriod retrieves the run for a period label.
func (r *PgxAssetRepository) FindRunByPeriod(ctx context.Context, companyID, periodLabel string) (*domain.DepreciationRun, error) {
	query := `SELECT ` + runColumns + ` FROM depreciation_runs WHERE company_id = $1 AND period_label = $2;`
	m, err := scanRun(r.Pool.QueryRow(ctx, query, companyID, periodLabel))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find depreciation run for period "+periodLabel, err)
	}
	d := mapping.ToDomainDepreciationRun(m)
	return &d, nil
}

// FindRecordsByRunID retrieves the per-asset records of one run.
func (r *PgxAssetRepository) FindRecordsByRunID(ctx context.Context, runID string) ([]domain.DepreciationRecord, error) {
	query := `
		SELECT record_id, run_id, company_id, asset_id, amount, accumulated_after, book_value_after, period_label, record_date
		FROM depreciation_records
		WHERE run_id = $1
		ORDER BY asset_id;
	`
	rows, err := r.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query records for run "+runID, err)
	}
	defer rows.Close()

	records := []domain.DepreciationRecord{}
	for rows.Next() {
		var m models.DepreciationRecord
		if err := rows.Scan(&m.RecordID, &m.RunID, &m.CompanyID, &m.AssetID, &m.Amount, &m.AccumulatedAfter, &m.BookValueAfter, &m.PeriodLabel, &m.RecordDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan depreciation record row", err)
		}
		records = append(records, mapping.ToDomainDepreciationRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating depreciation record rows", err)
	}
	return records, nil
}

// lockAssetsTx re-reads asset depreciation state by id under FOR UPDATE
// inside an open transaction. Missing ids surface as ErrNotFound.
func lockAssetsTx(ctx context.Context, tx pgx.Tx, companyID string, assetIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT asset_id, accumulated_depreciation
		FROM fixed_assets
		WHERE company_id = $1 AND asset_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, companyID, assetIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock assets", err)
	}
	defer rows.Close()

	locked := make(map[string]decimal.Decimal, len(assetIDs))
	for rows.Next() {
		var assetID string
		var accumulated decimal.Decimal
		if err := rows.Scan(&assetID, &accumulated); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked asset row", err)
		}
		locked[assetID] = accumulated
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked asset rows", err)
	}
	for _, id := range assetIDs {
		if _, ok := locked[id]; !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	return locked, nil
}

// CommitDepreciationRun persists one run atomically: the run summary first
// (its unique period index turns a concurrent duplicate into ErrDuplicate),
// then asset state, per-asset records and the consolidated ledger expense.
// Asset rows are re-read under FOR UPDATE before the write; an asset whose
// accumulated depreciation moved since the run was computed aborts the whole
// transaction with ErrConflict.
func (r *PgxAssetRepository) CommitDepreciationRun(ctx context.Context, run domain.DepreciationRun, records []domain.DepreciationRecord, assets []domain.FixedAsset, ledgerEntry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mRun := mapping.ToModelDepreciationRun(run)
	runQuery := `
		INSERT INTO depreciation_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, runQuery,
		mRun.RunID,
		mRun.CompanyID,
		mRun.PeriodLabel,
		mRun.Year,
		mRun.Month,
		mRun.AssetCount,
		mRun.TotalDepreciation,
		mRun.Status,
		mRun.JournalEntryID,
		mRun.RunDate,
		mRun.CreatedAt,
		mRun.CreatedBy,
		mRun.LastUpdatedAt,
		mRun.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: depreciation already run for period %s", apperrors.ErrDuplicate, mRun.PeriodLabel)
		}
		return apperrors.NewAppError(500, "failed to insert depreciation run "+mRun.RunID, err)
	}

	amounts := make(map[string]decimal.Decimal, len(records))
	for _, record := range records {
		amounts[record.AssetID] = record.Amount
	}
	assetIDs := make([]string, len(assets))
	for i, asset := range assets {
		assetIDs[i] = asset.AssetID
	}
	locked, err := lockAssetsTx(ctx, tx, mRun.CompanyID, assetIDs)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	assetQuery := `
		UPDATE fixed_assets
		SET accumulated_depreciation = $3, book_value = $4, last_depreciation_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND asset_id = $2;
	`
	for _, asset := range assets {
		// The incoming state is post-charge; subtracting the period's charge
		// recovers the state the run computed from. A mismatch with the
		// locked row means another writer moved the asset in between.
		expectedBefore := asset.AccumulatedDepreciation.Sub(amounts[asset.AssetID])
		if !locked[asset.AssetID].Equal(expectedBefore) {
			return fmt.Errorf("%w: asset %s depreciation state changed since run was computed", apperrors.ErrConflict, asset.AssetID)
		}
		m := mapping.ToModelFixedAsset(asset)
		batch.Queue(assetQuery, m.CompanyID, m.AssetID, m.AccumulatedDepreciation, m.BookValue, m.LastDepreciationDate, m.LastUpdatedAt, m.LastUpdatedBy)
	}

	recordQuery := `
		INSERT INTO depreciation_records (record_id, run_id, company_id, asset_id, amount, accumulated_after, book_value_after, period_label, record_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, record := range records {
		m := mapping.ToModelDepreciationRecord(record)
		batch.Queue(recordQuery, m.RecordID, m.RunID, m.CompanyID, m.AssetID, m.Amount, m.AccumulatedAfter, m.BookValueAfter, m.PeriodLabel, m.RecordDate)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to write depreciation batch for run "+mRun.RunID, err)
	}

	if err := insertLedgerEntryTx(ctx, tx, ledgerEntry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SetRunJournalOutcome records the journal-mirror phase result on the run.
func (r *PgxAssetRepository) SetRunJournalOutcome(ctx context.Context, runID string, journalEntryID *string, status domain.RunStatus) error {
	query := `
		UPDATE depreciation_runs
		SET journal_entry_id = $2, status = $3
		WHERE run_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, runID, journalEntryID, models.RunStatus(status))
	if err != nil {
		return apperrors.NewAppError(500, "failed to set journal outcome on run "+runID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
