package accounting

import (
	"fmt"
	"strings"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// revenueByCategory and expenseByCategory refine the income/expense kinds.
// A category outside these tables falls back to the generic account with
// UsedFallback set, so the caller can flag it instead of hiding it.
var revenueByCategory = map[string]string{
	"sales":    domain.AccountSalesRevenue,
	"services": domain.AccountServiceRevenue,
	"service":  domain.AccountServiceRevenue,
}

var expenseByCategory = map[string]string{
	"cogs":      domain.AccountCOGS,
	"inventory": domain.AccountCOGS,
	"rent":      domain.AccountRentExpense,
	"salaries":  domain.AccountSalariesExpense,
	"wages":     domain.AccountSalariesExpense,
	"utilities": domain.AccountUtilities,
	"supplies":  domain.AccountSupplies,
}

// ResolveEventAccounts maps a business event onto the debit/credit account
// pair its journal entry uses. Pure and total over the event kinds: every
// known kind resolves, an unknown kind is an error (the kinds are a closed
// set, so that only happens on corrupt input).
func ResolveEventAccounts(ev domain.BusinessEvent) (domain.AccountMapping, error) {
	switch ev.Kind {
	case domain.EventIncome:
		debit := domain.AccountCash
		if ev.IsReceivable {
			debit = domain.AccountReceivable
		}
		credit, ok := revenueByCategory[normalizeCategory(ev.Category)]
		if !ok {
			return domain.AccountMapping{DebitAccount: debit, CreditAccount: domain.AccountOtherIncome, UsedFallback: true}, nil
		}
		return domain.AccountMapping{DebitAccount: debit, CreditAccount: credit}, nil

	case domain.EventExpense:
		credit := domain.AccountPayable
		if ev.IsImmediatelySettled {
			credit = domain.AccountCash
		}
		debit, ok := expenseByCategory[normalizeCategory(ev.Category)]
		if !ok {
			debit, ok = expenseByCategory[normalizeCategory(ev.SubCategory)]
		}
		if !ok {
			return domain.AccountMapping{DebitAccount: domain.AccountOtherExpense, CreditAccount: credit, UsedFallback: true}, nil
		}
		return domain.AccountMapping{DebitAccount: debit, CreditAccount: credit}, nil

	case domain.EventEquityContribution:
		return domain.AccountMapping{DebitAccount: domain.AccountCash, CreditAccount: domain.AccountOwnerCapital}, nil

	case domain.EventLoanProceeds:
		return domain.AccountMapping{DebitAccount: domain.AccountCash, CreditAccount: domain.AccountLoansPayable}, nil

	case domain.EventCOGS:
		return domain.AccountMapping{DebitAccount: domain.AccountCOGS, CreditAccount: domain.AccountInventory}, nil

	case domain.EventDepreciation:
		return domain.AccountMapping{DebitAccount: domain.AccountDepExpense, CreditAccount: domain.AccountAccumulatedDep}, nil

	case domain.EventBadDebt:
		return domain.AccountMapping{DebitAccount: domain.AccountBadDebt, CreditAccount: domain.AccountReceivable}, nil

	case domain.EventFixedAssetPurchase:
		credit := domain.AccountPayable
		if ev.IsImmediatelySettled {
			credit = domain.AccountCash
		}
		return domain.AccountMapping{DebitAccount: domain.AccountFixedAssets, CreditAccount: credit}, nil

	case domain.EventPaymentReceipt:
		return domain.AccountMapping{DebitAccount: domain.AccountCash, CreditAccount: domain.AccountReceivable}, nil

	case domain.EventPaymentDisbursement:
		return domain.AccountMapping{DebitAccount: domain.AccountPayable, CreditAccount: domain.AccountCash}, nil
	}
	return domain.AccountMapping{}, fmt.Errorf("unknown business event kind %q", ev.Kind)
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
