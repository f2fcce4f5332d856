package accounting

import (
	"sort"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DistributeFIFO spreads a payment amount across open receivables, oldest
// first. Receivables past the point of exhaustion stay in the plan with a
// zero allocation (shown to the user, never persisted). The sort is stable:
// equal dates keep their input order.
func DistributeFIFO(amount decimal.Decimal, receivables []domain.LedgerEntry) domain.AllocationPlan {
	ordered := make([]domain.LedgerEntry, len(receivables))
	copy(ordered, receivables)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EntryDate.Before(ordered[j].EntryDate)
	})

	remaining := amount
	allocations := make([]domain.PlannedAllocation, 0, len(ordered))
	totalAllocated := decimal.Zero
	for _, r := range ordered {
		allocated := decimal.Zero
		if remaining.IsPositive() {
			allocated = decimal.Min(remaining, r.RemainingBalance)
			remaining = remaining.Sub(allocated)
			totalAllocated = totalAllocated.Add(allocated)
		}
		allocations = append(allocations, domain.PlannedAllocation{
			TransactionID:          r.TransactionID,
			EntryDate:              r.EntryDate,
			AllocatedAmount:        allocated,
			RemainingBalanceBefore: r.RemainingBalance,
		})
	}

	return domain.AllocationPlan{
		Allocations:      allocations,
		TotalAllocated:   totalAllocated,
		RemainingPayment: remaining,
	}
}
