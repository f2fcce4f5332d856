package mapping

import (
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		CompanyID:   d.CompanyID,
		ClientID:    d.ClientID,
		Amount:      d.Amount,
		Method:      models.PaymentMethod(d.Method),
		PaymentDate: d.PaymentDate,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		CompanyID:   m.CompanyID,
		ClientID:    m.ClientID,
		Amount:      m.Amount,
		Method:      domain.PaymentMethod(m.Method),
		PaymentDate: m.PaymentDate,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocation converts a domain PaymentAllocation to its model
func ToModelAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID:           d.AllocationID,
		PaymentID:              d.PaymentID,
		TransactionID:          d.TransactionID,
		AllocatedAmount:        d.AllocatedAmount,
		RemainingBalanceBefore: d.RemainingBalanceBefore,
	}
}

// ToDomainAllocation converts a model PaymentAllocation to its domain shape
func ToDomainAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID:           m.AllocationID,
		PaymentID:              m.PaymentID,
		TransactionID:          m.TransactionID,
		AllocatedAmount:        m.AllocatedAmount,
		RemainingBalanceBefore: m.RemainingBalanceBefore,
	}
}

// ToDomainAllocationSlice converts a slice of model PaymentAllocations
func ToDomainAllocationSlice(ms []models.PaymentAllocation) []domain.PaymentAllocation {
	ds := make([]domain.PaymentAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}
