package services

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// IntegritySvc reconciles the ledger store against the journal store.
type IntegritySvc interface {
	// Verify loads both stores once and reports typed discrepancies plus the
	// current trial-balance status. Read-only.
	Verify(ctx context.Context, companyID string) (*domain.IntegrityReport, error)

	// CleanupOrphans deletes journal entries whose linked transaction no
	// longer exists. Always a separate, explicit call; dryRun lists without
	// deleting.
	CleanupOrphans(ctx context.Context, companyID string, dryRun bool, userID string) (*domain.CleanupResult, error)
}
