package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is one account's activity summary over posted entries.
type AccountBalance struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance BalanceSide     `json:"normalBalance"`
	TotalDebits   decimal.Decimal `json:"totalDebits"`
	TotalCredits  decimal.Decimal `json:"totalCredits"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceRow presents an account's net balance on its normal side.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with activity and whether the books
// balance system-wide. Truncated is set when the posted-entry read hit its
// safety cap, meaning totals may be incomplete.
type TrialBalanceReport struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
	Truncated    bool              `json:"truncated"`
	AsOf         time.Time         `json:"asOf"`
}

// BalanceSheetRow is one account (or the synthetic net-income row) in a
// balance sheet grouping.
type BalanceSheetRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetReport groups trial-balance rows by type, folding current
// period net income into equity.
type BalanceSheetReport struct {
	Assets           []BalanceSheetRow `json:"assets"`
	Liabilities      []BalanceSheetRow `json:"liabilities"`
	Equity           []BalanceSheetRow `json:"equity"`
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal   `json:"totalEquity"`
	NetIncome        decimal.Decimal   `json:"netIncome"`
	IsBalanced       bool              `json:"isBalanced"`
	Truncated        bool              `json:"truncated"`
	AsOf             time.Time         `json:"asOf"`
}

// BalanceCheck is the line validator's summary.
type BalanceCheck struct {
	IsValid      bool            `json:"isValid"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"`
}

// BalanceTolerance is the rounding slack aggregate checks accept.
var BalanceTolerance = decimal.NewFromFloat(0.01)
