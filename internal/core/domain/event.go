package domain

// EventKind is the closed set of business-event shapes the engine knows how
// to map to a debit/credit account pair. Category strings only refine a kind;
// they never select one.
type EventKind string

const (
	EventIncome              EventKind = "INCOME"
	EventExpense             EventKind = "EXPENSE"
	EventEquityContribution  EventKind = "EQUITY_CONTRIBUTION"
	EventLoanProceeds        EventKind = "LOAN_PROCEEDS"
	EventCOGS                EventKind = "COGS"
	EventDepreciation        EventKind = "DEPRECIATION"
	EventBadDebt             EventKind = "BAD_DEBT"
	EventFixedAssetPurchase  EventKind = "FIXED_ASSET_PURCHASE"
	EventPaymentReceipt      EventKind = "PAYMENT_RECEIPT"
	EventPaymentDisbursement EventKind = "PAYMENT_DISBURSEMENT"
)

// BusinessEvent is the shape handed to the account mapping resolver.
type BusinessEvent struct {
	Kind        EventKind `json:"kind"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`

	// IsReceivable marks income earned on credit (debits receivable instead
	// of cash). IsImmediatelySettled marks expenses/purchases paid at once
	// (credits cash instead of payable).
	IsReceivable         bool `json:"isReceivable"`
	IsImmediatelySettled bool `json:"isImmediatelySettled"`
}

// AccountMapping is the resolver's output: the account pair a balanced entry
// for the event debits and credits. UsedFallback is set when a category had
// no dedicated account and the amount lands on the generic income/expense
// account; callers surface this rather than hiding it.
type AccountMapping struct {
	DebitAccount  string `json:"debitAccount"`
	CreditAccount string `json:"creditAccount"`
	UsedFallback  bool   `json:"usedFallback"`
}
