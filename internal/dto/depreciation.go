package dto

import (
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RunDepreciationRequest triggers the monthly run for one period.
type RunDepreciationRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// CreateAssetRequest registers a depreciable fixed asset.
type CreateAssetRequest struct {
	Name             string          `json:"name" binding:"required"`
	PurchaseCost     decimal.Decimal `json:"purchaseCost" binding:"required"`
	SalvageValue     decimal.Decimal `json:"salvageValue"`
	UsefulLifeMonths int             `json:"usefulLifeMonths" binding:"required,min=1"`
	PurchaseDate     time.Time       `json:"purchaseDate" binding:"required"`
}

// RecoveryInstructionsResponse tells the operator which manual entry fixes a
// failed journal mirror.
type RecoveryInstructionsResponse struct {
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
}

// DepreciationResultResponse is the tagged outcome of one run.
type DepreciationResultResponse struct {
	RunID             string                        `json:"runID"`
	PeriodLabel       string                        `json:"periodLabel"`
	ProcessedAssets   int                           `json:"processedAssets"`
	SkippedAssets     int                           `json:"skippedAssets"`
	TotalDepreciation decimal.Decimal               `json:"totalDepreciation"`
	Status            string                        `json:"status"`
	PartialFailure    bool                          `json:"partialFailure"`
	Recovery          *RecoveryInstructionsResponse `json:"recovery,omitempty"`
}

// ToDepreciationResultResponse converts a domain run result.
func ToDepreciationResultResponse(r *domain.DepreciationResult) DepreciationResultResponse {
	resp := DepreciationResultResponse{
		RunID:             r.Run.RunID,
		PeriodLabel:       r.Run.PeriodLabel,
		ProcessedAssets:   r.ProcessedAssets,
		SkippedAssets:     r.SkippedAssets,
		TotalDepreciation: r.TotalDepreciation,
		Status:            string(r.Run.Status),
		PartialFailure:    r.PartialFailure,
	}
	if r.Recovery != nil {
		resp.Recovery = &RecoveryInstructionsResponse{
			DebitAccount:  r.Recovery.DebitAccount,
			CreditAccount: r.Recovery.CreditAccount,
			Amount:        r.Recovery.Amount,
			Note:          r.Recovery.Note,
		}
	}
	return resp
}
