package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus is the terminal state of a depreciation run.
type RunStatus string

const (
	// RunCompleted means records, run summary and the journal mirror all landed.
	RunCompleted RunStatus = "COMPLETED"
	// RunJournalFailed means the financial records committed but the journal
	// mirror did not; the run needs manual reconciliation.
	RunJournalFailed RunStatus = "COMPLETED_JOURNAL_FAILED"
)

// PeriodLabel formats a (year, month) pair as the run's idempotency key.
func PeriodLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// PeriodEnd is the last calendar day of the period; run output is dated to
// it, not to the run date.
func PeriodEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// DepreciationRecord is the per-asset outcome of one run.
type DepreciationRecord struct {
	RecordID         string          `json:"recordID"`
	RunID            string          `json:"runID"`
	CompanyID        string          `json:"companyID"`
	AssetID          string          `json:"assetID"`
	Amount           decimal.Decimal `json:"amount"`
	AccumulatedAfter decimal.Decimal `json:"accumulatedAfter"`
	BookValueAfter   decimal.Decimal `json:"bookValueAfter"`
	PeriodLabel      string          `json:"periodLabel"`
	RecordDate       time.Time       `json:"recordDate"`
}

// DepreciationRun is the one-per-period summary document.
type DepreciationRun struct {
	RunID             string          `json:"runID"`
	CompanyID         string          `json:"companyID"`
	PeriodLabel       string          `json:"periodLabel"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	AssetCount        int             `json:"assetCount"`
	TotalDepreciation decimal.Decimal `json:"totalDepreciation"`
	Status            RunStatus       `json:"status"`
	JournalEntryID    *string         `json:"journalEntryID,omitempty"`
	RunDate           time.Time       `json:"runDate"`
	AuditFields
}

// RecoveryInstructions tells an operator exactly which accounts to post
// manually when the journal mirror failed.
type RecoveryInstructions struct {
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
}

// DepreciationResult is the tagged outcome of a run. PartialFailure set with
// a nil error means the financial records committed but the journal mirror
// did not; committed records are never rolled back for that case.
type DepreciationResult struct {
	Run               DepreciationRun       `json:"run"`
	Records           []DepreciationRecord  `json:"records"`
	ProcessedAssets   int                   `json:"processedAssets"`
	SkippedAssets     int                   `json:"skippedAssets"`
	TotalDepreciation decimal.Decimal       `json:"totalDepreciation"`
	PartialFailure    bool                  `json:"partialFailure"`
	Recovery          *RecoveryInstructions `json:"recovery,omitempty"`
}
