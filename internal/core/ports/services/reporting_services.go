package services

import (
	"context"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// ReportingSvc recomputes balances from the full posted-entry set on every
// call; nothing is materialized.
type ReportingSvc interface {
	// AccountBalance sums the posted activity of one account as of a date.
	AccountBalance(ctx context.Context, companyID, code string, asOf time.Time) (*domain.AccountBalance, error)

	// TrialBalance lists every account with activity and the system-wide
	// debit/credit totals.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// BalanceSheet groups balances by type with net income folded into
	// equity.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
