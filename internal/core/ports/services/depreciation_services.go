package services

import (
	"context"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
)

// DepreciationSvc runs the idempotent monthly straight-line batch.
type DepreciationSvc interface {
	// RunMonthly processes one (year, month) period: updates asset state,
	// writes records and the run summary atomically, then posts the journal
	// mirror as a separate phase. A failed mirror is reported on the result
	// (PartialFailure), never rolled back and never raised as an error.
	RunMonthly(ctx context.Context, companyID string, year int, month time.Month, userID string) (*domain.DepreciationResult, error)

	// CreateAsset registers a depreciable fixed asset.
	CreateAsset(ctx context.Context, companyID string, req dto.CreateAssetRequest, userID string) (*domain.FixedAsset, error)

	// GetRun retrieves a period's run, if it happened.
	GetRun(ctx context.Context, companyID string, year int, month time.Month) (*domain.DepreciationRun, error)

	// ListAssets retrieves the company's fixed assets.
	ListAssets(ctx context.Context, companyID string) ([]domain.FixedAsset, error)
}
