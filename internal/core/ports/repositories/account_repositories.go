package repositories

import (
	"context"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode retrieves one account by its code within a company.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart for a company ordered by code.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SeedAccounts inserts the default chart, skipping codes that already
	// exist, so seeding is idempotent per company.
	SeedAccounts(ctx context.Context, accounts []domain.Account) (int, error)

	// SetAccountActive flips the only mutable field of a seeded account.
	SetAccountActive(ctx context.Context, companyID, code string, active bool, userID string, now time.Time) error
}

// AccountRepository combines all account repository operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
