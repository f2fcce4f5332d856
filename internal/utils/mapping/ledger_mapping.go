package mapping

import (
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		TransactionID:        d.TransactionID,
		CompanyID:            d.CompanyID,
		EntryType:            models.LedgerEntryType(d.EntryType),
		Amount:               d.Amount,
		Category:             d.Category,
		SubCategory:          d.SubCategory,
		ClientID:             d.ClientID,
		Description:          d.Description,
		EntryDate:            d.EntryDate,
		IsReceivable:         d.IsReceivable,
		IsImmediatelySettled: d.IsImmediatelySettled,
		TotalPaid:            d.TotalPaid,
		RemainingBalance:     d.RemainingBalance,
		PaymentStatus:        models.PaymentStatus(d.PaymentStatus),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		TransactionID:        m.TransactionID,
		CompanyID:            m.CompanyID,
		EntryType:            domain.LedgerEntryType(m.EntryType),
		Amount:               m.Amount,
		Category:             m.Category,
		SubCategory:          m.SubCategory,
		ClientID:             m.ClientID,
		Description:          m.Description,
		EntryDate:            m.EntryDate,
		IsReceivable:         m.IsReceivable,
		IsImmediatelySettled: m.IsImmediatelySettled,
		TotalPaid:            m.TotalPaid,
		RemainingBalance:     m.RemainingBalance,
		PaymentStatus:        domain.PaymentStatus(m.PaymentStatus),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
