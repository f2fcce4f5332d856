package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/hisabat-app/hisabat-backend/internal/utils/accounting"
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
	journalSvc portssvc.JournalSvc
}

// NewLedgerService creates the transaction recording service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, journalSvc portssvc.JournalSvc) portssvc.LedgerSvc {
	return &ledgerService{ledgerRepo: ledgerRepo, journalSvc: journalSvc}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// RecordTransaction resolves the business event to a debit/credit account
// pair, builds the balanced journal lines, and persists the ledger entry and
// its journal mirror in one database transaction.
func (s *ledgerService) RecordTransaction(ctx context.Context, companyID string, req dto.RecordTransactionRequest, userID string) (*portssvc.RecordedTransaction, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.IsReceivable && strings.TrimSpace(req.ClientID) == "" {
		return nil, fmt.Errorf("%w: receivable transactions require a client", apperrors.ErrValidation)
	}
	if req.IsReceivable && req.Type != string(domain.LedgerIncome) {
		return nil, fmt.Errorf("%w: only income transactions can be receivable", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		TransactionID:        uuid.NewString(),
		CompanyID:            companyID,
		EntryType:            domain.LedgerEntryType(req.Type),
		Amount:               req.Amount,
		Category:             req.Category,
		SubCategory:          req.SubCategory,
		ClientID:             req.ClientID,
		Description:          req.Description,
		EntryDate:            req.Date,
		IsReceivable:         req.IsReceivable,
		IsImmediatelySettled: req.IsImmediatelySettled,
		TotalPaid:            decimal.Zero,
		RemainingBalance:     req.Amount,
		PaymentStatus:        domain.StatusUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if !entry.IsReceivable {
		// Non-receivable entries carry no collection lifecycle.
		entry.TotalPaid = req.Amount
		entry.RemainingBalance = decimal.Zero
		entry.PaymentStatus = domain.StatusPaid
	}

	mapping, err := accounting.ResolveEventAccounts(entry.Event())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for transaction: %w", err)
	}
	if mapping.UsedFallback {
		s.LogWarn(ctx, "Transaction category mapped to fallback account",
			"company_id", companyID, "category", req.Category, "type", req.Type)
	}

	lines, err := accounting.BuildLines(mapping, entry.Amount, entry.Description)
	if err != nil {
		return nil, err
	}

	journal, err := s.journalSvc.PrepareEntry(ctx, companyID, domain.EntryDraft{
		Date:                entry.EntryDate,
		Description:         entry.Description,
		Lines:               lines,
		LinkedTransactionID: &entry.TransactionID,
		LinkedDocumentType:  domain.DocTransaction,
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveWithJournal(ctx, entry, *journal); err != nil {
		s.LogError(ctx, err, "Failed to save transaction with journal", "transaction_id", entry.TransactionID)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		"transaction_id", entry.TransactionID, "journal_entry_id", journal.EntryID,
		"type", req.Type, "amount", req.Amount.String())

	return &portssvc.RecordedTransaction{
		Entry:        entry,
		JournalID:    journal.EntryID,
		UsedFallback: mapping.UsedFallback,
	}, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, companyID, transactionID string) (*domain.LedgerEntry, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	entry, err := s.ledgerRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return entry, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.ledgerRepo.ListTransactions(ctx, companyID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", "company_id", companyID)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToLedgerEntryResponses(entries),
		NextToken:    nextToken,
	}, nil
}
