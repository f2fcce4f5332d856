package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment.
	FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)

	// FindAllocationsByPaymentID retrieves a payment's allocation sub-records.
	FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePaymentWithAllocations, inside one transaction: re-reads every
	// targeted receivable with a row lock (never trusting the caller's
	// snapshot), aborts if any is missing, persists the payment plus its
	// non-zero allocations, updates each receivable's paid state, and writes
	// the balancing journal entry. All-or-nothing.
	SavePaymentWithAllocations(ctx context.Context, payment domain.Payment, allocations []domain.PaymentAllocation, journal domain.JournalEntry) error

	// DeletePaymentWithAllocations is the symmetric inverse: re-reads each
	// allocated receivable, subtracts the allocation back (clamped at zero),
	// and removes the allocations and the payment, atomically.
	DeletePaymentWithAllocations(ctx context.Context, companyID, paymentID string, userID string) ([]domain.PaymentAllocation, error)
}

// PaymentRepository combines all payment repository operations.
type PaymentRepository interface {
	PaymentReader
	PaymentWriter
}
