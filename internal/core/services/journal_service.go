package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/hisabat-app/hisabat-backend/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = errors.New("journal entry does not balance: debits must equal credits")
	ErrEntryMinLines      = errors.New("journal entry must have at least two lines")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDescriptionMissing = errors.New("journal entry description is required")
	ErrDateMissing        = errors.New("journal entry date is required")
	ErrAlreadyReversed    = errors.New("journal entry is already reversed")
	ErrReversalOfReversal = errors.New("cannot reverse a reversal entry")
)

// journalService is the posting engine: the only component that writes
// journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates the posting engine.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalSvc {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvc = (*journalService)(nil)

// newEntryNumber builds a display number: timestamp plus random suffix.
// Entries are identified by EntryID; the number only needs to look monotonic.
func newEntryNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("JE-%s-%s", now.Format("20060102150405"), suffix)
}

// validateDraft runs every pre-I/O check on the draft, then verifies
// the referenced accounts exist and are active.
func (s *journalService) validateDraft(ctx context.Context, companyID string, draft domain.EntryDraft) error {
	if err := s.RequireScope(companyID); err != nil {
		return err
	}
	if strings.TrimSpace(draft.Description) == "" {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if draft.Date.IsZero() {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDateMissing)
	}
	if len(draft.Lines) < 2 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryMinLines)
	}
	for _, line := range draft.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountCode)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("%w: line for account %s moves no amount", apperrors.ErrValidation, line.AccountCode)
		}
	}

	check := accounting.ValidateLines(draft.Lines)
	if !check.IsValid {
		return fmt.Errorf("%w: debits %s, credits %s", ErrEntryUnbalanced,
			check.TotalDebits.String(), check.TotalCredits.String())
	}

	codes := make([]string, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		codes = append(codes, line.AccountCode)
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, uniqueStrings(codes))
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for entry validation: %w", err)
	}
	for _, code := range codes {
		acc, found := accounts[code]
		if !found {
			return fmt.Errorf("%w: code %s", ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: code %s", ErrAccountInactive, code)
		}
	}
	return nil
}

// PrepareEntry validates a draft and mints the entry without persisting it.
func (s *journalService) PrepareEntry(ctx context.Context, companyID string, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	if err := s.validateDraft(ctx, companyID, draft); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	docType := draft.LinkedDocumentType
	if docType == "" {
		docType = domain.DocManual
	}
	entry := domain.JournalEntry{
		EntryID:             uuid.NewString(),
		EntryNumber:         newEntryNumber(now),
		CompanyID:           companyID,
		EntryDate:           draft.Date,
		Description:         draft.Description,
		Lines:               draft.Lines,
		Status:              domain.Posted,
		LinkedTransactionID: draft.LinkedTransactionID,
		LinkedPaymentID:     draft.LinkedPaymentID,
		LinkedDocumentType:  docType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return &entry, nil
}

// PostEntry validates and persists a manual journal entry.
func (s *journalService) PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error) {
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}

	entry, err := s.PrepareEntry(ctx, companyID, domain.EntryDraft{
		Date:               req.Date,
		Description:        req.Description,
		Lines:              lines,
		LinkedDocumentType: domain.DocManual,
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", "company_id", companyID)
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted", "entry_id", entry.EntryID, "entry_number", entry.EntryNumber)
	return entry, nil
}

// ReverseEntry posts a mirror-image entry and marks the original REVERSED.
func (s *journalService) ReverseEntry(ctx context.Context, companyID, entryID, reason, userID string) (*domain.JournalEntry, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to fetch entry for reversal", "entry_id", entryID)
		return nil, fmt.Errorf("failed to retrieve journal entry: %w", err)
	}
	if original.CompanyID != companyID {
		// Obscure existence across company scopes.
		return nil, apperrors.ErrNotFound
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyReversed)
	}
	if original.ReversesEntryID != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReversalOfReversal)
	}

	now := time.Now().UTC()
	reversedLines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		reversedLines[i] = domain.JournalLine{
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}

	reversal := domain.JournalEntry{
		EntryID:              uuid.NewString(),
		EntryNumber:          newEntryNumber(now),
		CompanyID:            companyID,
		EntryDate:            original.EntryDate,
		Description:          fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Lines:                reversedLines,
		Status:               domain.Posted,
		LinkedTransactionID:  original.LinkedTransactionID,
		LinkedPaymentID:      original.LinkedPaymentID,
		LinkedDocumentType:   original.LinkedDocumentType,
		LegacyTransactionRef: original.LegacyTransactionRef,
		ReversesEntryID:      &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveReversalEntry(ctx, reversal, original.EntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", "original_entry_id", original.EntryID)
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry reversed", "original_entry_id", original.EntryID, "reversal_entry_id", reversal.EntryID)
	return &reversal, nil
}

// GetEntry retrieves one journal entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves a page of journal entries.
func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, companyID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", "company_id", companyID)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
