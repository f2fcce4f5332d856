package services

import (
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
)

// NewServiceContainer wires every engine service from the repository
// provider. The journal service is built first: the document services post
// through it.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalSvc := NewJournalService(repos.JournalRepo, repos.AccountRepo)

	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo),
		Journal:      journalSvc,
		Ledger:       NewLedgerService(repos.LedgerRepo, journalSvc),
		Reporting:    NewReportingService(repos.JournalRepo, repos.AccountRepo),
		Payment:      NewPaymentService(repos.PaymentRepo, repos.LedgerRepo, repos.JournalRepo, journalSvc),
		Depreciation: NewDepreciationService(repos.AssetRepo, repos.JournalRepo, journalSvc),
		Integrity:    NewIntegrityService(repos.LedgerRepo, repos.JournalRepo),
	}
}
