package dto

import (
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records an incoming client payment and distributes it
// across the client's open receivables.
type RecordPaymentRequest struct {
	ClientID string          `json:"clientID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Method   string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE"`
	Date     time.Time       `json:"date" binding:"required"`
	Notes    string          `json:"notes"`
}

// PlanAllocationRequest previews a FIFO distribution without persisting.
type PlanAllocationRequest struct {
	ClientID string          `json:"clientID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// PlannedAllocationResponse is one preview row; zero allocations are kept.
type PlannedAllocationResponse struct {
	TransactionID          string          `json:"transactionID"`
	EntryDate              time.Time       `json:"entryDate"`
	AllocatedAmount        decimal.Decimal `json:"allocatedAmount"`
	RemainingBalanceBefore decimal.Decimal `json:"remainingBalanceBefore"`
}

// AllocationPlanResponse is the preview of a FIFO distribution.
type AllocationPlanResponse struct {
	Allocations      []PlannedAllocationResponse `json:"allocations"`
	TotalAllocated   decimal.Decimal             `json:"totalAllocated"`
	RemainingPayment decimal.Decimal             `json:"remainingPayment"`
}

// PaymentResponse is the wire shape of a recorded payment.
type PaymentResponse struct {
	PaymentID      string                      `json:"paymentID"`
	ClientID       string                      `json:"clientID"`
	Amount         decimal.Decimal             `json:"amount"`
	Method         string                      `json:"method"`
	Date           time.Time                   `json:"date"`
	Notes          string                      `json:"notes,omitempty"`
	Allocations    []PlannedAllocationResponse `json:"allocations"`
	TotalAllocated decimal.Decimal             `json:"totalAllocated"`
	Unallocated    decimal.Decimal             `json:"unallocated"`
}

// ToAllocationPlanResponse converts a domain plan to its wire shape.
func ToAllocationPlanResponse(plan domain.AllocationPlan) AllocationPlanResponse {
	allocations := make([]PlannedAllocationResponse, len(plan.Allocations))
	for i, a := range plan.Allocations {
		allocations[i] = PlannedAllocationResponse{
			TransactionID:          a.TransactionID,
			EntryDate:              a.EntryDate,
			AllocatedAmount:        a.AllocatedAmount,
			RemainingBalanceBefore: a.RemainingBalanceBefore,
		}
	}
	return AllocationPlanResponse{
		Allocations:      allocations,
		TotalAllocated:   plan.TotalAllocated,
		RemainingPayment: plan.RemainingPayment,
	}
}

// ToPaymentResponse converts a payment and the plan it was saved from.
func ToPaymentResponse(p *domain.Payment, plan domain.AllocationPlan) PaymentResponse {
	planResp := ToAllocationPlanResponse(plan)
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		ClientID:       p.ClientID,
		Amount:         p.Amount,
		Method:         string(p.Method),
		Date:           p.PaymentDate,
		Notes:          p.Notes,
		Allocations:    planResp.Allocations,
		TotalAllocated: plan.TotalAllocated,
		Unallocated:    plan.RemainingPayment,
	}
}
