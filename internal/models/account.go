package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// BalanceSide is the side on which an account naturally increases.
type BalanceSide string

// Account maps one row of the accounts table. Identity within a company is
// (company_id, code).
type Account struct {
	Code          string      `json:"code"`
	CompanyID     string      `json:"companyID"`
	Name          string      `json:"name"`
	NameAr        string      `json:"nameAr"`
	AccountType   AccountType `json:"accountType"`
	NormalBalance BalanceSide `json:"normalBalance"`
	ParentCode    string      `json:"parentCode"` // nullable in the table
	IsActive      bool        `json:"isActive"`
	AuditFields
}
