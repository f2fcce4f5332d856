package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// LinkedDocumentType names the kind of business document a journal entry mirrors.
type LinkedDocumentType string

const (
	DocTransaction  LinkedDocumentType = "TRANSACTION"
	DocPayment      LinkedDocumentType = "PAYMENT"
	DocDepreciation LinkedDocumentType = "DEPRECIATION"
	DocManual       LinkedDocumentType = "MANUAL"
)

// JournalLine is a single debit or credit against one account. Exactly one of
// Debit/Credit is non-zero in practice; the invariant enforced is that the
// entry balances in aggregate, not the per-line shape.
type JournalLine struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntry is a balanced set of lines mirroring one business event.
// Entries are identified by EntryID; EntryNumber is a display number
// (timestamp plus random suffix, not sequential).
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	EntryNumber string        `json:"entryNumber"`
	CompanyID   string        `json:"companyID"`
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	Status      EntryStatus   `json:"status"`

	// Linkage back to the business document this entry mirrors. Older data
	// recorded the transaction link under a different field; the integrity
	// verifier checks both.
	LinkedTransactionID  *string            `json:"linkedTransactionID,omitempty"`
	LinkedPaymentID      *string            `json:"linkedPaymentID,omitempty"`
	LinkedDocumentType   LinkedDocumentType `json:"linkedDocumentType"`
	LegacyTransactionRef *string            `json:"legacyTransactionRef,omitempty"`

	ReversesEntryID   *string `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`
	AuditFields
}

// EntryDraft is everything the posting engine needs to mint a JournalEntry.
type EntryDraft struct {
	Date                time.Time
	Description         string
	Lines               []JournalLine
	LinkedTransactionID *string
	LinkedPaymentID     *string
	LinkedDocumentType  LinkedDocumentType
}

// TotalDebits sums the debit side of the entry.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// LinkedTransaction returns the transaction id the entry points at,
// preferring the current field over the legacy one.
func (e JournalEntry) LinkedTransaction() (string, bool) {
	if e.LinkedTransactionID != nil && *e.LinkedTransactionID != "" {
		return *e.LinkedTransactionID, true
	}
	if e.LegacyTransactionRef != nil && *e.LegacyTransactionRef != "" {
		return *e.LegacyTransactionRef, true
	}
	return "", false
}
