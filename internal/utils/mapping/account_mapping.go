package mapping

import (
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Code:          d.Code,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		NameAr:        d.NameAr,
		AccountType:   models.AccountType(d.AccountType),
		NormalBalance: models.BalanceSide(d.NormalBalance),
		ParentCode:    d.ParentCode,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Code:          m.Code,
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		NameAr:        m.NameAr,
		AccountType:   domain.AccountType(m.AccountType),
		NormalBalance: domain.BalanceSide(m.NormalBalance),
		ParentCode:    m.ParentCode,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
