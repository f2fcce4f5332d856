package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat-backend/internal/models"
	"github.com/hisabat-app/hisabat-backend/internal/utils/mapping"
	"github.com/hisabat-app/hisabat-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	journalRepo *PgxJournalRepository
}

// newPgxLedgerRepository creates a new repository for business transactions.
// The journal repository is injected so document writes can post their mirror
// entry inside the same database transaction.
func newPgxLedgerRepository(pool *pgxpool.Pool, journalRepo *PgxJournalRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const ledgerColumns = `transaction_id, company_id, entry_type, amount, category, sub_category, client_id, description, entry_date, is_receivable, is_immediately_settled, total_paid, remaining_balance, payment_status, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var clientID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.EntryType,
		&m.Amount,
		&m.Category,
		&m.SubCategory,
		&clientID,
		&m.Description,
		&m.EntryDate,
		&m.IsReceivable,
		&m.IsImmediatelySettled,
		&m.TotalPaid,
		&m.RemainingBalance,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if clientID.Valid {
		m.ClientID = clientID.String
	}
	return m, err
}

// insertLedgerEntryTx inserts a ledger row inside an open transaction.
func insertLedgerEntryTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	var clientID sql.NullString
	if m.ClientID != "" {
		clientID = sql.NullString{String: m.ClientID, Valid: true}
	}
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.CompanyID,
		m.EntryType,
		m.Amount,
		m.Category,
		m.SubCategory,
		clientID,
		m.Description,
		m.EntryDate,
		m.IsReceivable,
		m.IsImmediatelySettled,
		m.TotalPaid,
		m.RemainingBalance,
		m.PaymentStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.TransactionID, err)
	}
	return nil
}

// SaveWithJournal persists the ledger entry and its balancing journal entry
// in one transaction: both land or neither does.
func (r *PgxLedgerRepository) SaveWithJournal(ctx context.Context, entry domain.LedgerEntry, journal domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertLedgerEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.journalRepo.SaveEntryInTx(ctx, tx, journal); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a specific ledger entry.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE company_id = $1 AND transaction_id = $2;`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, companyID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	d := mapping.ToDomainLedgerEntry(m)
	return &d, nil
}

// FindOpenReceivables retrieves a client's unpaid or partially paid
// receivable entries ordered by entry date ascending.
func (r *PgxLedgerRepository) FindOpenReceivables(ctx context.Context, companyID, clientID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND client_id = $2 AND is_receivable = TRUE
		  AND payment_status IN ('UNPAID', 'PARTIAL')
		ORDER BY entry_date, created_at;
	`
	return r.queryLedgerEntries(ctx, query, companyID, clientID)
}

// FindAllTransactions retrieves ledger entries bounded by limit; the bool
// result reports whether the cap was hit.
func (r *PgxLedgerRepository) FindAllTransactions(ctx context.Context, companyID string, limit int) ([]domain.LedgerEntry, bool, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE company_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2;
	`
	entries, err := r.queryLedgerEntries(ctx, query, companyID, limit+1)
	if err != nil {
		return nil, false, err
	}
	if len(entries) > limit {
		return entries[:limit], true, nil
	}
	return entries, false, nil
}

// ListTransactions retrieves a page of ledger entries using token-based
// pagination over (entry_date, created_at) descending.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE company_id = $1
	`
	args := []any{companyID}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3) `
		args = append(args, lastDate, lastCreatedAt)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	entries, err := r.queryLedgerEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

func (r *PgxLedgerRepository) queryLedgerEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	ms := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

// lockReceivablesTx re-reads receivables by id under FOR UPDATE inside an
// open transaction. Missing ids surface as ErrNotFound.
func lockReceivablesTx(ctx context.Context, tx pgx.Tx, companyID string, transactionIDs []string) (map[string]models.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND transaction_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, companyID, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock receivables", err)
	}
	defer rows.Close()

	locked := make(map[string]models.LedgerEntry, len(transactionIDs))
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked receivable row", err)
		}
		locked[m.TransactionID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked receivable rows", err)
	}
	for _, id := range transactionIDs {
		if _, ok := locked[id]; !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	return locked, nil
}

// updatePaidStateTx writes a receivable's collection lifecycle fields.
func updatePaidStateTx(ctx context.Context, tx pgx.Tx, companyID, transactionID string, totalPaid, remaining decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE ledger_entries
		SET total_paid = $3, remaining_balance = $4, payment_status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND transaction_id = $2;
	`
	tag, err := tx.Exec(ctx, query, companyID, transactionID, totalPaid, remaining, models.PaymentStatus(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update paid state of transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
