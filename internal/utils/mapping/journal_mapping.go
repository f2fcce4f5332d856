package mapping

import (
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its model, dropping
// the lines (they persist as separate journal_lines rows).
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:              d.EntryID,
		EntryNumber:          d.EntryNumber,
		CompanyID:            d.CompanyID,
		EntryDate:            d.EntryDate,
		Description:          d.Description,
		Status:               models.EntryStatus(d.Status),
		LinkedTransactionID:  d.LinkedTransactionID,
		LinkedPaymentID:      d.LinkedPaymentID,
		LinkedDocumentType:   models.LinkedDocumentType(d.LinkedDocumentType),
		LegacyTransactionRef: d.LegacyTransactionRef,
		ReversesEntryID:      d.ReversesEntryID,
		ReversedByEntryID:    d.ReversedByEntryID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry plus its line rows to a
// domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	domainLines := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		domainLines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return domain.JournalEntry{
		EntryID:              m.EntryID,
		EntryNumber:          m.EntryNumber,
		CompanyID:            m.CompanyID,
		EntryDate:            m.EntryDate,
		Description:          m.Description,
		Lines:                domainLines,
		Status:               domain.EntryStatus(m.Status),
		LinkedTransactionID:  m.LinkedTransactionID,
		LinkedPaymentID:      m.LinkedPaymentID,
		LinkedDocumentType:   domain.LinkedDocumentType(m.LinkedDocumentType),
		LegacyTransactionRef: m.LegacyTransactionRef,
		ReversesEntryID:      m.ReversesEntryID,
		ReversedByEntryID:    m.ReversedByEntryID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLines converts a domain entry's lines into persistable rows,
// numbering them to preserve input order.
func ToModelJournalLines(entryID string, lines []domain.JournalLine, lineIDs []string) []models.JournalLine {
	ms := make([]models.JournalLine, len(lines))
	for i, l := range lines {
		ms[i] = models.JournalLine{
			LineID:      lineIDs[i],
			EntryID:     entryID,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			LineOrder:   i,
		}
	}
	return ms
}
