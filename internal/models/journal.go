package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

// LinkedDocumentType names the document kind a journal entry mirrors.
type LinkedDocumentType string

// JournalEntry maps one row of the journal_entries table. Lines live in
// journal_lines and are loaded separately.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`
	EntryNumber string      `json:"entryNumber"`
	CompanyID   string      `json:"companyID"`
	EntryDate   time.Time   `json:"entryDate"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`

	LinkedTransactionID  *string            `json:"linkedTransactionID"`
	LinkedPaymentID      *string            `json:"linkedPaymentID"`
	LinkedDocumentType   LinkedDocumentType `json:"linkedDocumentType"`
	LegacyTransactionRef *string            `json:"legacyTransactionRef"`

	ReversesEntryID   *string `json:"reversesEntryID"`
	ReversedByEntryID *string `json:"reversedByEntryID"`
	AuditFields
}

// JournalLine maps one row of the journal_lines table.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineOrder   int             `json:"lineOrder"` // preserves input ordering
}
