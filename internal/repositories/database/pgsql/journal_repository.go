package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat-backend/internal/models"
	"github.com/hisabat-app/hisabat-backend/internal/utils/mapping"
	"github.com/hisabat-app/hisabat-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_number, company_id, entry_date, description, status, linked_transaction_id, linked_payment_id, linked_document_type, legacy_transaction_ref, reverses_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var linkedTxn, linkedPayment, legacyRef, reverses, reversedBy sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.CompanyID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&linkedTxn,
		&linkedPayment,
		&m.LinkedDocumentType,
		&legacyRef,
		&reverses,
		&reversedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if linkedTxn.Valid {
		m.LinkedTransactionID = &linkedTxn.String
	}
	if linkedPayment.Valid {
		m.LinkedPaymentID = &linkedPayment.String
	}
	if legacyRef.Valid {
		m.LegacyTransactionRef = &legacyRef.String
	}
	if reverses.Valid {
		m.ReversesEntryID = &reverses.String
	}
	if reversedBy.Valid {
		m.ReversedByEntryID = &reversedBy.String
	}
	return m, err
}

// pgxQuerier lets line loading run against either the pool or an open tx.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// loadLines fetches the line rows of several entries in one query, keyed by
// entry id and ordered as input.
func loadLines(ctx context.Context, q pgxQuerier, entryIDs []string) (map[string][]models.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]models.JournalLine{}, nil
	}
	query := `
		SELECT line_id, entry_id, account_code, debit, credit, description, line_order
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_order;
	`
	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	lines := make(map[string][]models.JournalLine, len(entryIDs))
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountCode, &l.Debit, &l.Credit, &l.Description, &l.LineOrder); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		lines[l.EntryID] = append(lines[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// SaveEntry persists one entry and its lines in its own transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveEntryInTx persists an entry plus lines inside a caller-owned
// transaction, so a document write and its journal mirror land together.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.CompanyID,
		m.EntryDate,
		m.Description,
		m.Status,
		m.LinkedTransactionID,
		m.LinkedPaymentID,
		m.LinkedDocumentType,
		m.LegacyTransactionRef,
		m.ReversesEntryID,
		m.ReversedByEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	lineIDs := make([]string, len(entry.Lines))
	for i := range entry.Lines {
		lineIDs[i] = uuid.NewString()
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_code, debit, credit, description, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range mapping.ToModelJournalLines(entry.EntryID, entry.Lines, lineIDs) {
		batch.Queue(lineQuery, line.LineID, line.EntryID, line.AccountCode, line.Debit, line.Credit, line.Description, line.LineOrder)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines for entry "+m.EntryID, err)
	}
	return nil
}

// SaveReversalEntry persists the reversing entry and flips the original to
// REVERSED with back-links, in one transaction.
func (r *PgxJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveEntryInTx(ctx, tx, reversal); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, reversed_by_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery, originalEntryID, models.EntryStatus(domain.Reversed), reversal.EntryID, now, userID, models.EntryStatus(domain.Posted))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		// Lost the race: another caller reversed it between read and write.
		return apperrors.ErrConflict
	}
	return r.Commit(ctx, tx)
}

// DeleteEntries removes entries and their lines by id. Only the orphan
// cleanup calls this.
func (r *PgxJournalRepository) DeleteEntries(ctx context.Context, companyID string, entryIDs []string) (int, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = ANY($1);`, entryIDs); err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete journal lines", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE company_id = $1 AND entry_id = ANY($2);`, companyID, entryIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete journal entries", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// FindEntryByID retrieves a specific journal entry, lines included.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	lines, err := loadLines(ctx, r.Pool, []string{m.EntryID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainJournalEntry(m, lines[m.EntryID])
	return &d, nil
}

// queryEntries runs a multi-row entry query and attaches lines.
func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	ms := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	entryIDs := make([]string, len(ms))
	for i, m := range ms {
		entryIDs[i] = m.EntryID
	}
	lines, err := loadLines(ctx, r.Pool, entryIDs)
	if err != nil {
		return nil, err
	}

	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = mapping.ToDomainJournalEntry(m, lines[m.EntryID])
	}
	return ds, nil
}

// FindEntriesByLinkedTransaction matches both the current link column and
// the legacy one.
func (r *PgxJournalRepository) FindEntriesByLinkedTransaction(ctx context.Context, companyID, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND (linked_transaction_id = $2 OR legacy_transaction_ref = $2)
		ORDER BY created_at;
	`
	return r.queryEntries(ctx, query, companyID, transactionID)
}

// FindEntriesByLinkedPayment retrieves entries linked to a payment.
func (r *PgxJournalRepository) FindEntriesByLinkedPayment(ctx context.Context, companyID, paymentID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND linked_payment_id = $2
		ORDER BY created_at;
	`
	return r.queryEntries(ctx, query, companyID, paymentID)
}

// FindPostedEntries retrieves posted entries up to asOf, newest first,
// bounded by limit. The extra row probe reports whether the cap was hit.
func (r *PgxJournalRepository) FindPostedEntries(ctx context.Context, companyID string, asOf time.Time, limit int) ([]domain.JournalEntry, bool, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND status = 'POSTED' AND entry_date <= $2
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $3;
	`
	entries, err := r.queryEntries(ctx, query, companyID, asOf, limit+1)
	if err != nil {
		return nil, false, err
	}
	if len(entries) > limit {
		return entries[:limit], true, nil
	}
	return entries, false, nil
}

// FindAllEntries retrieves entries of any status, bounded by limit.
func (r *PgxJournalRepository) FindAllEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, bool, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2;
	`
	entries, err := r.queryEntries(ctx, query, companyID, limit+1)
	if err != nil {
		return nil, false, err
	}
	if len(entries) > limit {
		return entries[:limit], true, nil
	}
	return entries, false, nil
}

// ListEntries retrieves a page of entries using token-based pagination over
// (entry_date, created_at) descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1
	`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []any{companyID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3) `
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	entries, err := r.queryEntries(ctx, query, args...)
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
