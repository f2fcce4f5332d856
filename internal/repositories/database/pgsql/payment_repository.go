package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat-backend/internal/models"
	"github.com/hisabat-app/hisabat-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
	journalRepo *PgxJournalRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool, journalRepo *PgxJournalRepository) *PgxPaymentRepository {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepository
var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, company_id, client_id, amount, method, payment_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.CompanyID,
		&m.ClientID,
		&m.Amount,
		&m.Method,
		&m.PaymentDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePaymentWithAllocations persists a payment inside one transaction:
// every targeted receivable is re-read under a row lock, the paid state is
// advanced from the locked values (never the caller's snapshot), and the
// payment, allocations and journal mirror land together.
func (r *PgxPaymentRepository) SavePaymentWithAllocations(ctx context.Context, payment domain.Payment, allocations []domain.PaymentAllocation, journal domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := payment.LastUpdatedAt
	userID := payment.LastUpdatedBy

	transactionIDs := make([]string, len(allocations))
	for i, a := range allocations {
		transactionIDs[i] = a.TransactionID
	}
	locked, err := lockReceivablesTx(ctx, tx, payment.CompanyID, transactionIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	for _, a := range allocations {
		receivable := locked[a.TransactionID]
		newTotalPaid := receivable.TotalPaid.Add(a.AllocatedAmount)
		newRemaining := receivable.RemainingBalance.Sub(a.AllocatedAmount)
		if newRemaining.IsNegative() {
			// The balance moved since the plan was built.
			return apperrors.ErrConflict
		}
		status := domain.DerivePaymentStatus(newTotalPaid, receivable.Amount)
		if err := updatePaidStateTx(ctx, tx, payment.CompanyID, a.TransactionID, newTotalPaid, newRemaining, status, userID, now); err != nil {
			return err
		}
	}

	m := mapping.ToModelPayment(payment)
	paymentQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.CompanyID,
		m.ClientID,
		m.Amount,
		m.Method,
		m.PaymentDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	batch := &pgx.Batch{}
	allocationQuery := `
		INSERT INTO payment_allocations (allocation_id, payment_id, transaction_id, allocated_amount, remaining_balance_before)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, a := range allocations {
		ma := mapping.ToModelAllocation(a)
		batch.Queue(allocationQuery, ma.AllocationID, ma.PaymentID, ma.TransactionID, ma.AllocatedAmount, ma.RemainingBalanceBefore)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert allocations for payment "+m.PaymentID, err)
	}

	if err := r.journalRepo.SaveEntryInTx(ctx, tx, journal); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePaymentWithAllocations is the symmetric inverse of the save: each
// allocated receivable is re-locked, the allocation subtracted back (clamped
// at zero), and the allocations and payment removed, atomically.
func (r *PgxPaymentRepository) DeletePaymentWithAllocations(ctx context.Context, companyID, paymentID string, userID string) ([]domain.PaymentAllocation, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	allocations, err := findAllocationsTx(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	if len(allocations) > 0 {
		transactionIDs := make([]string, len(allocations))
		for i, a := range allocations {
			transactionIDs[i] = a.TransactionID
		}
		locked, err := lockReceivablesTx(ctx, tx, companyID, transactionIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range allocations {
			receivable := locked[a.TransactionID]
			newTotalPaid := receivable.TotalPaid.Sub(a.AllocatedAmount)
			if newTotalPaid.IsNegative() {
				newTotalPaid = decimal.Zero
			}
			newRemaining := receivable.Amount.Sub(newTotalPaid)
			status := domain.DerivePaymentStatus(newTotalPaid, receivable.Amount)
			if err := updatePaidStateTx(ctx, tx, companyID, a.TransactionID, newTotalPaid, newRemaining, status, userID, now); err != nil {
				return nil, err
			}
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payment_allocations WHERE payment_id = $1;`, paymentID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete allocations for payment "+paymentID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM payments WHERE company_id = $1 AND payment_id = $2;`, companyID, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindPaymentByID retrieves a payment.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE company_id = $1 AND payment_id = $2;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, companyID, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// FindAllocationsByPaymentID retrieves a payment's allocation sub-records.
func (r *PgxPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return findAllocations(ctx, r.Pool, paymentID)
}

func findAllocationsTx(ctx context.Context, tx pgx.Tx, paymentID string) ([]domain.PaymentAllocation, error) {
	return findAllocations(ctx, tx, paymentID)
}

func findAllocations(ctx context.Context, q pgxQuerier, paymentID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, payment_id, transaction_id, allocated_amount, remaining_balance_before
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY allocation_id;
	`
	rows, err := q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for payment "+paymentID, err)
	}
	defer rows.Close()

	ms := []models.PaymentAllocation{}
	for rows.Next() {
		var m models.PaymentAllocation
		if err := rows.Scan(&m.AllocationID, &m.PaymentID, &m.TransactionID, &m.AllocatedAmount, &m.RemainingBalanceBefore); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows", err)
	}
	return mapping.ToDomainAllocationSlice(ms), nil
}
