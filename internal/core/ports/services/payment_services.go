package services

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
)

// RecordedPayment pairs the stored payment with the plan it was saved from.
type RecordedPayment struct {
	Payment domain.Payment
	Plan    domain.AllocationPlan
}

// PaymentSvc distributes incoming payments across open receivables.
type PaymentSvc interface {
	// PlanAllocation previews the FIFO distribution of an amount across a
	// client's open receivables; nothing is persisted.
	PlanAllocation(ctx context.Context, companyID string, req dto.PlanAllocationRequest) (*domain.AllocationPlan, error)

	// RecordPayment persists the payment, its non-zero allocations, the
	// receivable balance updates and the balancing journal entry in one
	// atomic unit.
	RecordPayment(ctx context.Context, companyID string, req dto.RecordPaymentRequest, userID string) (*RecordedPayment, error)

	// ReversePayment undoes a recorded payment: restores receivable
	// balances, removes allocations and payment, and reverses the linked
	// journal entry.
	ReversePayment(ctx context.Context, companyID, paymentID, userID string) error
}
