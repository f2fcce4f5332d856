package dto

import (
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

// AccountResponse is the wire shape of one chart-of-accounts row.
type AccountResponse struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	NameAr        string `json:"nameAr"`
	Type          string `json:"type"`
	NormalBalance string `json:"normalBalance"`
	ParentCode    string `json:"parentCode,omitempty"`
	IsActive      bool   `json:"isActive"`
}

// SetAccountActiveRequest flips an account's activation flag.
type SetAccountActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ToAccountResponse converts a domain account.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Code:          a.Code,
		Name:          a.Name,
		NameAr:        a.NameAr,
		Type:          string(a.AccountType),
		NormalBalance: string(a.NormalBalance),
		ParentCode:    a.ParentCode,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
