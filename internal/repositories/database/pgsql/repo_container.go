package pgsql

import (
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository against one pool. The
// journal repository is shared: document repositories post their journal
// mirror through it inside their own transactions.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, journalRepo)
	paymentRepo := newPgxPaymentRepository(dbPool, journalRepo)
	assetRepo := newPgxAssetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		JournalRepo: journalRepo,
		LedgerRepo:  ledgerRepo,
		PaymentRepo: paymentRepo,
		AssetRepo:   assetRepo,
	}
}
