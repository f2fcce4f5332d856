package domain

// DiscrepancyType classifies an integrity finding.
type DiscrepancyType string

const (
	MissingJournal    DiscrepancyType = "MISSING_JOURNAL"
	UnbalancedJournal DiscrepancyType = "UNBALANCED_JOURNAL"
	OrphanJournal     DiscrepancyType = "ORPHAN_JOURNAL"
	WrongStatus       DiscrepancyType = "WRONG_STATUS"
)

// Discrepancy is one reported finding. Findings are never raised as errors;
// the verifier only reports.
type Discrepancy struct {
	Type          DiscrepancyType `json:"type"`
	TransactionID string          `json:"transactionID,omitempty"`
	EntryID       string          `json:"entryID,omitempty"`
	Detail        string          `json:"detail"`
}

// IntegrityReport is the verifier's full output.
type IntegrityReport struct {
	CheckedTransactions int           `json:"checkedTransactions"`
	CheckedEntries      int           `json:"checkedEntries"`
	Discrepancies       []Discrepancy `json:"discrepancies"`
	TrialBalanced       bool          `json:"trialBalanced"`
	Truncated           bool          `json:"truncated"`
}

// CleanupResult reports an orphan cleanup pass. In a dry run DeletedEntryIDs
// lists what would be removed.
type CleanupResult struct {
	DryRun          bool     `json:"dryRun"`
	DeletedEntryIDs []string `json:"deletedEntryIDs"`
}
