package services

// ServiceContainer aggregates every engine service the handlers and jobs
// receive. Wired once at startup.
type ServiceContainer struct {
	Account      AccountSvc
	Journal      JournalSvc
	Ledger       LedgerSvc
	Reporting    ReportingSvc
	Payment      PaymentSvc
	Depreciation DepreciationSvc
	Integrity    IntegritySvc
}
