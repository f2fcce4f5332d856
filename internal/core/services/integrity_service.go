package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
)

// integrityService reconciles the transaction store against the journal
// store. Verification is read-only; cleanup is a separate explicit call.
type integrityService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerReader
	journalRepo portsrepo.JournalRepository
}

// NewIntegrityService creates the integrity verifier.
func NewIntegrityService(ledgerRepo portsrepo.LedgerReader, journalRepo portsrepo.JournalRepository) portssvc.IntegritySvc {
	return &integrityService{ledgerRepo: ledgerRepo, journalRepo: journalRepo}
}

var _ portssvc.IntegritySvc = (*integrityService)(nil)

// Verify loads both stores once, indexes journals by their transaction link
// (current and legacy fields), and walks each side reporting typed findings.
func (s *integrityService) Verify(ctx context.Context, companyID string) (*domain.IntegrityReport, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}

	transactions, txTruncated, err := s.ledgerRepo.FindAllTransactions(ctx, companyID, portsrepo.DefaultReadCap)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for verification", "company_id", companyID)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	entries, entriesTruncated, err := s.journalRepo.FindAllEntries(ctx, companyID, portsrepo.DefaultReadCap)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal entries for verification", "company_id", companyID)
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	report := domain.IntegrityReport{
		CheckedTransactions: len(transactions),
		CheckedEntries:      len(entries),
		Discrepancies:       []domain.Discrepancy{},
		Truncated:           txTruncated || entriesTruncated,
	}
	if report.Truncated {
		s.LogWarn(ctx, "Verification read hit its cap, findings may be incomplete",
			"company_id", companyID, "cap", portsrepo.DefaultReadCap)
	}

	transactionsByID := make(map[string]domain.LedgerEntry, len(transactions))
	for _, t := range transactions {
		transactionsByID[t.TransactionID] = t
	}
	entriesByTransaction := make(map[string][]domain.JournalEntry)
	for _, e := range entries {
		if txID, linked := e.LinkedTransaction(); linked {
			entriesByTransaction[txID] = append(entriesByTransaction[txID], e)
		}
	}

	// Side one: every transaction needs at least one journal entry.
	for _, t := range transactions {
		linked := entriesByTransaction[t.TransactionID]
		if len(linked) == 0 {
			report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
				Type:          domain.MissingJournal,
				TransactionID: t.TransactionID,
				Detail:        fmt.Sprintf("transaction %s has no journal entry", t.TransactionID),
			})
		}
	}

	// Side two: every entry must balance, carry a known status, and any
	// transaction link must resolve.
	for _, e := range entries {
		diff := e.TotalDebits().Sub(e.TotalCredits())
		if diff.Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
			report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
				Type:    domain.UnbalancedJournal,
				EntryID: e.EntryID,
				Detail: fmt.Sprintf("entry %s is unbalanced: debits %s, credits %s",
					e.EntryID, e.TotalDebits().String(), e.TotalCredits().String()),
			})
		}
		if e.Status != domain.Posted && e.Status != domain.Reversed {
			report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
				Type:    domain.WrongStatus,
				EntryID: e.EntryID,
				Detail:  fmt.Sprintf("entry %s has unknown status %q", e.EntryID, e.Status),
			})
		}
		if txID, linked := e.LinkedTransaction(); linked {
			if _, exists := transactionsByID[txID]; !exists {
				report.Discrepancies = append(report.Discrepancies, domain.Discrepancy{
					Type:          domain.OrphanJournal,
					EntryID:       e.EntryID,
					TransactionID: txID,
					Detail:        fmt.Sprintf("entry %s links to missing transaction %s", e.EntryID, txID),
				})
			}
		}
	}

	report.TrialBalanced = trialBalanced(entries)

	s.LogInfo(ctx, "Integrity verification finished", "company_id", companyID,
		"transactions", report.CheckedTransactions, "entries", report.CheckedEntries,
		"discrepancies", len(report.Discrepancies), "trial_balanced", report.TrialBalanced)
	return &report, nil
}

// trialBalanced checks the system-wide posted totals without building a
// full report.
func trialBalanced(entries []domain.JournalEntry) bool {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, e := range entries {
		if e.Status != domain.Posted {
			continue
		}
		totalDebits = totalDebits.Add(e.TotalDebits())
		totalCredits = totalCredits.Add(e.TotalCredits())
	}
	return totalDebits.Sub(totalCredits).Abs().LessThan(domain.BalanceTolerance)
}

// CleanupOrphans removes journal entries whose transaction link no longer
// resolves. With dryRun set it only lists them.
func (s *integrityService) CleanupOrphans(ctx context.Context, companyID string, dryRun bool, userID string) (*domain.CleanupResult, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}

	transactions, _, err := s.ledgerRepo.FindAllTransactions(ctx, companyID, portsrepo.DefaultReadCap)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	entries, _, err := s.journalRepo.FindAllEntries(ctx, companyID, portsrepo.DefaultReadCap)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	exists := make(map[string]struct{}, len(transactions))
	for _, t := range transactions {
		exists[t.TransactionID] = struct{}{}
	}

	orphanIDs := []string{}
	for _, e := range entries {
		txID, linked := e.LinkedTransaction()
		if !linked {
			continue
		}
		if _, ok := exists[txID]; !ok {
			orphanIDs = append(orphanIDs, e.EntryID)
		}
	}

	result := domain.CleanupResult{DryRun: dryRun, DeletedEntryIDs: orphanIDs}
	if dryRun || len(orphanIDs) == 0 {
		return &result, nil
	}

	deleted, err := s.journalRepo.DeleteEntries(ctx, companyID, orphanIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete orphan journal entries", "company_id", companyID)
		return nil, fmt.Errorf("failed to delete orphan entries: %w", err)
	}
	s.LogInfo(ctx, "Orphan journal entries deleted", "company_id", companyID,
		"requested", len(orphanIDs), "deleted", deleted, "user_id", userID)
	return &result, nil
}
