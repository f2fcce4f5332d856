package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide is the side of the ledger on which an account naturally increases.
type BalanceSide string

const (
	DebitBalance  BalanceSide = "DEBIT"
	CreditBalance BalanceSide = "CREDIT"
)

// Account is one row of the chart of accounts. Identity within a company is
// the account code; accounts are seeded once and immutable afterwards except
// for the activation flag.
type Account struct {
	Code          string      `json:"code"`
	CompanyID     string      `json:"companyID"`
	Name          string      `json:"name"`
	NameAr        string      `json:"nameAr"`
	AccountType   AccountType `json:"accountType"`
	NormalBalance BalanceSide `json:"normalBalance"`
	ParentCode    string      `json:"parentCode"` // optional grouping parent
	IsActive      bool        `json:"isActive"`
	AuditFields
}

// IsContra reports whether the account carries a normal balance opposite to
// its type's usual side (e.g. accumulated depreciation: an asset account with
// a credit normal balance).
func (a Account) IsContra() bool {
	switch a.AccountType {
	case Asset, Expense:
		return a.NormalBalance == CreditBalance
	case Liability, Equity, Revenue:
		return a.NormalBalance == DebitBalance
	}
	return false
}
