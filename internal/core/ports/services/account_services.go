package services

import (
	"context"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// AccountSvc manages the seeded chart of accounts.
type AccountSvc interface {
	// EnsureDefaultChart seeds the static default chart for a company.
	// Idempotent: codes that already exist are left untouched.
	EnsureDefaultChart(ctx context.Context, companyID string, userID string) (int, error)

	// GetAccountByCode retrieves one account.
	GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// GetAccountsByCodes retrieves several accounts keyed by code.
	GetAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the company's full chart.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// SetAccountActive flips an account's activation flag.
	SetAccountActive(ctx context.Context, companyID, code string, active bool, userID string) error
}
