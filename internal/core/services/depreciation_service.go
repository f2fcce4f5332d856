package services

import (
	"context"
	"errors"
	"fmt"
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

var ErrPeriodAlreadyRun = errors.New("depreciation already processed for period")

type depreciationService struct {
	BaseService
	assetRepo   portsrepo.AssetRepository
	journalRepo portsrepo.JournalWriter
	journalSvc  portssvc.JournalSvc
}

// NewDepreciationService creates the monthly depreciation engine.
func NewDepreciationService(assetRepo portsrepo.AssetRepository, journalRepo portsrepo.JournalWriter, journalSvc portssvc.JournalSvc) portssvc.DepreciationSvc {
	return &depreciationService{assetRepo: assetRepo, journalRepo: journalRepo, journalSvc: journalSvc}
}

var _ portssvc.DepreciationSvc = (*depreciationService)(nil)

// CreateAsset registers a depreciable fixed asset.
func (s *depreciationService) CreateAsset(ctx context.Context, companyID string, req dto.CreateAssetRequest, userID string) (*domain.FixedAsset, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	if !req.PurchaseCost.IsPositive() {
		return nil, fmt.Errorf("%w: purchase cost must be positive", apperrors.ErrValidation)
	}
	if req.SalvageValue.IsNegative() {
		return nil, fmt.Errorf("%w: salvage value must not be negative", apperrors.ErrValidation)
	}
	if req.SalvageValue.GreaterThanOrEqual(req.PurchaseCost) {
		return nil, fmt.Errorf("%w: salvage value must be below purchase cost", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	asset := domain.FixedAsset{
		AssetID:                 uuid.NewString(),
		CompanyID:               companyID,
		Name:                    req.Name,
		PurchaseCost:            req.PurchaseCost,
		SalvageValue:            req.SalvageValue,
		UsefulLifeMonths:        req.UsefulLifeMonths,
		MonthlyDepreciation:     domain.MonthlyStraightLine(req.PurchaseCost, req.SalvageValue, req.UsefulLifeMonths),
		AccumulatedDepreciation: decimal.Zero,
		BookValue:               req.PurchaseCost,
		Status:                  domain.AssetActive,
		PurchaseDate:            req.PurchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save fixed asset", "company_id", companyID)
		return nil, fmt.Errorf("failed to save fixed asset: %w", err)
	}
	s.LogInfo(ctx, "Fixed asset created", "asset_id", asset.AssetID,
		"monthly_depreciation", asset.MonthlyDepreciation.String())
	return &asset, nil
}

// RunMonthly processes one period in two phases. Phase one commits asset
// state, per-asset records, the run summary and a consolidated ledger expense
// entry in a single transaction. Phase two posts the journal mirror; if it
// fails, the run is stamped COMPLETED_JOURNAL_FAILED and the result carries
// recovery instructions instead of an error.
func (s *depreciationService) RunMonthly(ctx context.Context, companyID string, year int, month time.Month, userID string) (*domain.DepreciationResult, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	periodLabel := domain.PeriodLabel(year, month)

	if existing, err := s.assetRepo.FindRunByPeriod(ctx, companyID, periodLabel); err == nil {
		return nil, fmt.Errorf("%w: %s run %s: %w", ErrPeriodAlreadyRun, periodLabel, existing.RunID, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check period %s: %w", periodLabel, err)
	}

	assets, err := s.assetRepo.ListAssets(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets for depreciation", "company_id", companyID)
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	now := time.Now().UTC()
	periodEnd := domain.PeriodEnd(year, month)
	run := domain.DepreciationRun{
		RunID:             uuid.NewString(),
		CompanyID:         companyID,
		PeriodLabel:       periodLabel,
		Year:              year,
		Month:             int(month),
		TotalDepreciation: decimal.Zero,
		Status:            domain.RunCompleted,
		RunDate:           now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var (
		records   []domain.DepreciationRecord
		processed []domain.FixedAsset
		skipped   int
		total     = decimal.Zero
	)
	for _, asset := range assets {
		if !asset.IsDepreciable() {
			skipped++
			continue
		}
		amount := asset.NextDepreciationAmount()
		asset.ApplyDepreciation(amount, periodEnd)
		asset.LastUpdatedAt = now
		asset.LastUpdatedBy = userID

		records = append(records, domain.DepreciationRecord{
			RecordID:         uuid.NewString(),
			RunID:            run.RunID,
			CompanyID:        companyID,
			AssetID:          asset.AssetID,
			Amount:           amount,
			AccumulatedAfter: asset.AccumulatedDepreciation,
			BookValueAfter:   asset.BookValue,
			PeriodLabel:      periodLabel,
			RecordDate:       periodEnd,
		})
		processed = append(processed, asset)
		total = total.Add(amount)
	}

	run.AssetCount = len(processed)
	run.TotalDepreciation = total

	result := &domain.DepreciationResult{
		Run:               run,
		Records:           records,
		ProcessedAssets:   len(processed),
		SkippedAssets:     skipped,
		TotalDepreciation: total,
	}
	if len(processed) == 0 {
		s.LogInfo(ctx, "No depreciable assets for period", "company_id", companyID, "period", periodLabel)
		return result, nil
	}

	description := fmt.Sprintf("Monthly depreciation %s", periodLabel)
	ledgerEntry := domain.LedgerEntry{
		TransactionID:        uuid.NewString(),
		CompanyID:            companyID,
		EntryType:            domain.LedgerExpense,
		Amount:               total,
		Category:             "depreciation",
		Description:          description,
		EntryDate:            periodEnd,
		IsImmediatelySettled: true,
		TotalPaid:            total,
		RemainingBalance:     decimal.Zero,
		PaymentStatus:        domain.StatusPaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.assetRepo.CommitDepreciationRun(ctx, run, records, processed, ledgerEntry); err != nil {
		s.LogError(ctx, err, "Failed to commit depreciation run", "period", periodLabel)
		return nil, fmt.Errorf("failed to commit depreciation run: %w", err)
	}

	// Phase two: the journal mirror. Committed records stay committed even
	// if this fails; the run is stamped for manual reconciliation instead.
	splits := make([]accounting.LineSplit, len(processed))
	for i, asset := range processed {
		splits[i] = accounting.LineSplit{
			Description: fmt.Sprintf("Depreciation: %s", asset.Name),
			Amount:      records[i].Amount,
		}
	}
	mapping := domain.AccountMapping{
		DebitAccount:  domain.AccountDepExpense,
		CreditAccount: domain.AccountAccumulatedDep,
	}
	lines, err := accounting.SplitLines(mapping, splits, description)
	var journal *domain.JournalEntry
	if err == nil {
		journal, err = s.journalSvc.PrepareEntry(ctx, companyID, domain.EntryDraft{
			Date:                periodEnd,
			Description:         description,
			Lines:               lines,
			LinkedTransactionID: &ledgerEntry.TransactionID,
			LinkedDocumentType:  domain.DocDepreciation,
		}, userID)
	}
	if err == nil {
		err = s.journalRepo.SaveEntry(ctx, *journal)
	}
	if err != nil {
		s.LogError(ctx, err, "Depreciation journal mirror failed, records remain committed",
			"run_id", run.RunID, "period", periodLabel)
		run.Status = domain.RunJournalFailed
		if stampErr := s.assetRepo.SetRunJournalOutcome(ctx, run.RunID, nil, domain.RunJournalFailed); stampErr != nil {
			s.LogError(ctx, stampErr, "Failed to stamp journal-failed status on run", "run_id", run.RunID)
		}
		result.Run = run
		result.PartialFailure = true
		result.Recovery = &domain.RecoveryInstructions{
			DebitAccount:  domain.AccountDepExpense,
			CreditAccount: domain.AccountAccumulatedDep,
			Amount:        total,
			Note:          fmt.Sprintf("Post manually for period %s, dated %s", periodLabel, periodEnd.Format("2006-01-02")),
		}
		return result, nil
	}

	run.JournalEntryID = &journal.EntryID
	if err := s.assetRepo.SetRunJournalOutcome(ctx, run.RunID, &journal.EntryID, domain.RunCompleted); err != nil {
		s.LogError(ctx, err, "Failed to record journal entry id on run", "run_id", run.RunID)
	}
	result.Run = run

	s.LogInfo(ctx, "Depreciation run completed", "run_id", run.RunID, "period", periodLabel,
		"processed", len(processed), "skipped", skipped, "total", total.String())
	return result, nil
}

func (s *depreciationService) GetRun(ctx context.Context, companyID string, year int, month time.Month) (*domain.DepreciationRun, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	run, err := s.assetRepo.FindRunByPeriod(ctx, companyID, domain.PeriodLabel(year, month))
	if err != nil {
		return nil, fmt.Errorf("failed to find depreciation run: %w", err)
	}
	return run, nil
}

func (s *depreciationService) ListAssets(ctx context.Context, companyID string) ([]domain.FixedAsset, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.ListAssets(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fixed assets", "company_id", companyID)
		return nil, fmt.Errorf("failed to list fixed assets: %w", err)
	}
	return assets, nil
}
