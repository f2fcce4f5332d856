package accounting

import (
	"fmt"
	"strings"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildLines turns a resolved account mapping and an amount into the two
// balanced lines of a simple journal entry. Validation here is the pre-I/O
// gate: a non-positive amount or blank description never reaches a store.
func BuildLines(mapping domain.AccountMapping, amount decimal.Decimal, description string) ([]domain.JournalLine, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description must not be blank", apperrors.ErrValidation)
	}
	if mapping.DebitAccount == "" || mapping.CreditAccount == "" {
		return nil, fmt.Errorf("%w: mapping must name both a debit and a credit account", apperrors.ErrValidation)
	}
	return []domain.JournalLine{
		{AccountCode: mapping.DebitAccount, Debit: amount, Credit: decimal.Zero, Description: description},
		{AccountCode: mapping.CreditAccount, Debit: decimal.Zero, Credit: amount, Description: description},
	}, nil
}

// LineSplit is one component of a consolidated posting: its own description
// and share of the total.
type LineSplit struct {
	Description string
	Amount      decimal.Decimal
}

// SplitLines builds the lines of a consolidated entry: one debit line per
// split against a single balancing credit line carrying the total. Used when
// a batch posts many components as one entry, such as a period's
// depreciation across assets.
func SplitLines(mapping domain.AccountMapping, splits []LineSplit, creditDescription string) ([]domain.JournalLine, error) {
	if len(splits) == 0 {
		return nil, fmt.Errorf("%w: at least one split is required", apperrors.ErrValidation)
	}
	if mapping.DebitAccount == "" || mapping.CreditAccount == "" {
		return nil, fmt.Errorf("%w: mapping must name both a debit and a credit account", apperrors.ErrValidation)
	}
	lines := make([]domain.JournalLine, 0, len(splits)+1)
	total := decimal.Zero
	for _, split := range splits {
		if split.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: split amount must be positive, got %s", apperrors.ErrValidation, split.Amount.String())
		}
		lines = append(lines, domain.JournalLine{
			AccountCode: mapping.DebitAccount,
			Debit:       split.Amount,
			Credit:      decimal.Zero,
			Description: split.Description,
		})
		total = total.Add(split.Amount)
	}
	lines = append(lines, domain.JournalLine{
		AccountCode: mapping.CreditAccount,
		Debit:       decimal.Zero,
		Credit:      total,
		Description: creditDescription,
	})
	return lines, nil
}

// ValidateLines sums both sides of a line set. The entry is valid when the
// sides agree within the currency rounding tolerance.
func ValidateLines(lines []domain.JournalLine) domain.BalanceCheck {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, line := range lines {
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
	}
	difference := totalDebits.Sub(totalCredits)
	return domain.BalanceCheck{
		IsValid:      len(lines) >= 2 && difference.Abs().LessThan(domain.BalanceTolerance),
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Difference:   difference,
	}
}
