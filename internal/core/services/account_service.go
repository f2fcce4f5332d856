package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvc {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

// EnsureDefaultChart seeds the static default chart for a company. Existing
// codes are skipped, so calling it again is harmless.
func (s *accountService) EnsureDefaultChart(ctx context.Context, companyID string, userID string) (int, error) {
	if err := s.RequireScope(companyID); err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	accounts := domain.DefaultChartOfAccounts()
	for i := range accounts {
		accounts[i].CompanyID = companyID
		accounts[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
	}
	created, err := s.accountRepo.SeedAccounts(ctx, accounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts", "company_id", companyID)
		return 0, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}
	if created > 0 {
		s.LogInfo(ctx, "Chart of accounts seeded", "company_id", companyID, "created", created)
	}
	return created, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) GetAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", "company_id", companyID)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) SetAccountActive(ctx context.Context, companyID, code string, active bool, userID string) error {
	if err := s.RequireScope(companyID); err != nil {
		return err
	}
	if _, err := s.accountRepo.FindAccountByCode(ctx, companyID, code); err != nil {
		return fmt.Errorf("failed to find account %s: %w", code, err)
	}
	if err := s.accountRepo.SetAccountActive(ctx, companyID, code, active, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to update account activation", "company_id", companyID, "code", code)
		return fmt.Errorf("failed to update account %s: %w", code, err)
	}
	s.LogInfo(ctx, "Account activation updated", "company_id", companyID, "code", code, "active", active)
	return nil
}
