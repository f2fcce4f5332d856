package repositories

// DefaultReadCap bounds how many journal or ledger rows a full-set read
// (aggregation, integrity verification) pulls into memory. Callers are told
// when the cap was hit so the truncation is never silent.
const DefaultReadCap = 5000

// RepositoryProvider aggregates every repository implementation. Wired once
// at startup and handed to the service layer.
type RepositoryProvider struct {
	AccountRepo AccountRepository
	JournalRepo JournalRepository
	LedgerRepo  LedgerRepository
	PaymentRepo PaymentRepository
	AssetRepo   AssetRepository
}
