package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
)

// reportingService recomputes every figure from posted journal entries on
// each call. Reports stay consistent with the journal by construction.
type reportingService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountReader
}

// NewReportingService creates the reporting service.
func NewReportingService(journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountReader) portssvc.ReportingSvc {
	return &reportingService{journalRepo: journalRepo, accountRepo: accountRepo}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// accountActivity is the per-account debit/credit sum over posted entries.
type accountActivity struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// sumPostedEntries aggregates posted activity per account code up to asOf.
func (s *reportingService) sumPostedEntries(ctx context.Context, companyID string, asOf time.Time) (map[string]accountActivity, bool, error) {
	entries, truncated, err := s.journalRepo.FindPostedEntries(ctx, companyID, asOf, portsrepo.DefaultReadCap)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load posted entries: %w", err)
	}
	if truncated {
		s.LogWarn(ctx, "Posted entry read hit its cap, report totals may be incomplete",
			"company_id", companyID, "cap", portsrepo.DefaultReadCap)
	}
	activity := make(map[string]accountActivity)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			a := activity[line.AccountCode]
			a.debits = a.debits.Add(line.Debit)
			a.credits = a.credits.Add(line.Credit)
			activity[line.AccountCode] = a
		}
	}
	return activity, truncated, nil
}

// normalBalanceOf nets activity onto the account's normal side.
func normalBalanceOf(account domain.Account, a accountActivity) decimal.Decimal {
	if account.NormalBalance == domain.CreditBalance {
		return a.credits.Sub(a.debits)
	}
	return a.debits.Sub(a.credits)
}

// AccountBalance sums one account's posted activity as of a date.
func (s *reportingService) AccountBalance(ctx context.Context, companyID, code string, asOf time.Time) (*domain.AccountBalance, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	activity, _, err := s.sumPostedEntries(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}
	a := activity[code]
	return &domain.AccountBalance{
		AccountCode:   account.Code,
		AccountName:   account.Name,
		AccountType:   account.AccountType,
		NormalBalance: account.NormalBalance,
		TotalDebits:   a.debits,
		TotalCredits:  a.credits,
		Balance:       normalBalanceOf(*account, a),
	}, nil
}

// TrialBalance lists every account with activity, each balance shown on the
// account's normal side, plus the system-wide debit and credit totals.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	activity, truncated, err := s.sumPostedEntries(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(activity))
	for code := range activity {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for trial balance: %w", err)
	}

	report := domain.TrialBalanceReport{
		Rows:         make([]domain.TrialBalanceRow, 0, len(codes)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		Truncated:    truncated,
		AsOf:         asOf,
	}
	for _, code := range codes {
		account, found := accounts[code]
		if !found {
			// A journal line referencing an unknown code is an integrity
			// problem, not a reporting one. Surface it as its raw code.
			account = domain.Account{Code: code, Name: code, NormalBalance: domain.DebitBalance}
		}
		a := activity[code]
		balance := normalBalanceOf(account, a)

		row := domain.TrialBalanceRow{
			AccountCode: account.Code,
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		// A negative normal balance flips to the opposite column.
		side := account.NormalBalance
		if balance.IsNegative() {
			balance = balance.Neg()
			if side == domain.DebitBalance {
				side = domain.CreditBalance
			} else {
				side = domain.DebitBalance
			}
		}
		if side == domain.DebitBalance {
			row.Debit = balance
		} else {
			row.Credit = balance
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
	}
	report.IsBalanced = report.TotalDebits.Sub(report.TotalCredits).Abs().LessThan(domain.BalanceTolerance)
	return &report, nil
}

// BalanceSheet groups balances by account type, folding the period's net
// income into equity as a synthetic row so the accounting identity holds.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	activity, truncated, err := s.sumPostedEntries(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(activity))
	for code := range activity {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for balance sheet: %w", err)
	}

	report := domain.BalanceSheetReport{
		Assets:           []domain.BalanceSheetRow{},
		Liabilities:      []domain.BalanceSheetRow{},
		Equity:           []domain.BalanceSheetRow{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		NetIncome:        decimal.Zero,
		Truncated:        truncated,
		AsOf:             asOf,
	}

	for _, code := range codes {
		account, found := accounts[code]
		if !found {
			return nil, fmt.Errorf("%w: journal references unknown account %s", apperrors.ErrInternal, code)
		}
		balance := normalBalanceOf(account, activity[code])
		row := domain.BalanceSheetRow{AccountCode: account.Code, AccountName: account.Name, Amount: balance}

		// A contra account accumulates against its section's normal side,
		// so its balance enters the section negated.
		if account.IsContra() {
			row.Amount = balance.Neg()
		}

		switch account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, row)
			report.TotalAssets = report.TotalAssets.Add(row.Amount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, row)
			report.TotalLiabilities = report.TotalLiabilities.Add(row.Amount)
		case domain.Equity:
			report.Equity = append(report.Equity, row)
			report.TotalEquity = report.TotalEquity.Add(row.Amount)
		case domain.Revenue:
			report.NetIncome = report.NetIncome.Add(row.Amount)
		case domain.Expense:
			report.NetIncome = report.NetIncome.Sub(row.Amount)
		}
	}

	report.Equity = append(report.Equity, domain.BalanceSheetRow{
		AccountCode: domain.NetIncomeCode,
		AccountName: "Net Income",
		Amount:      report.NetIncome,
	})
	report.TotalEquity = report.TotalEquity.Add(report.NetIncome)

	diff := report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	report.IsBalanced = diff.Abs().LessThan(domain.BalanceTolerance)
	return &report, nil
}
