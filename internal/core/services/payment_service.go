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

var (
	ErrNoOpenReceivables = errors.New("client has no open receivables")
	ErrNothingAllocated  = errors.New("payment could not be allocated to any receivable")
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepository
	ledgerRepo  portsrepo.LedgerReader
	journalRepo portsrepo.JournalReader
	journalSvc  portssvc.JournalSvc
}

// NewPaymentService creates the payment allocation service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepository, ledgerRepo portsrepo.LedgerReader, journalRepo portsrepo.JournalReader, journalSvc portssvc.JournalSvc) portssvc.PaymentSvc {
	return &paymentService{
		paymentRepo: paymentRepo,
		ledgerRepo:  ledgerRepo,
		journalRepo: journalRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

// PlanAllocation previews the FIFO spread of an amount across a client's
// open receivables. Read-only.
func (s *paymentService) PlanAllocation(ctx context.Context, companyID string, req dto.PlanAllocationRequest) (*domain.AllocationPlan, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	receivables, err := s.ledgerRepo.FindOpenReceivables(ctx, companyID, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open receivables: %w", err)
	}
	plan := accounting.DistributeFIFO(req.Amount, receivables)
	return &plan, nil
}

// RecordPayment distributes, persists and journals a client payment. The
// repository re-reads each receivable under a row lock, so the plan built
// here is a proposal the database write revalidates.
func (s *paymentService) RecordPayment(ctx context.Context, companyID string, req dto.RecordPaymentRequest, userID string) (*portssvc.RecordedPayment, error) {
	if err := s.RequireScope(companyID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	receivables, err := s.ledgerRepo.FindOpenReceivables(ctx, companyID, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open receivables: %w", err)
	}
	if len(receivables) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoOpenReceivables)
	}

	plan := accounting.DistributeFIFO(req.Amount, receivables)
	if plan.TotalAllocated.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNothingAllocated)
	}
	if plan.RemainingPayment.IsPositive() {
		s.LogWarn(ctx, "Payment exceeds open receivables, excess left unallocated",
			"client_id", req.ClientID, "unallocated", plan.RemainingPayment.String())
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		CompanyID:   companyID,
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Method:      domain.PaymentMethod(req.Method),
		PaymentDate: req.Date,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Only non-zero allocations are persisted.
	allocations := make([]domain.PaymentAllocation, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		if a.AllocatedAmount.IsZero() {
			continue
		}
		allocations = append(allocations, domain.PaymentAllocation{
			AllocationID:           uuid.NewString(),
			PaymentID:              payment.PaymentID,
			TransactionID:          a.TransactionID,
			AllocatedAmount:        a.AllocatedAmount,
			RemainingBalanceBefore: a.RemainingBalanceBefore,
		})
	}

	// Cash collected against the receivable: DR cash, CR accounts receivable
	// for the allocated portion only.
	description := fmt.Sprintf("Payment received from client %s", req.ClientID)
	lines := []domain.JournalLine{
		{AccountCode: domain.AccountCash, Debit: plan.TotalAllocated, Credit: decimal.Zero, Description: description},
		{AccountCode: domain.AccountReceivable, Debit: decimal.Zero, Credit: plan.TotalAllocated, Description: description},
	}
	journal, err := s.journalSvc.PrepareEntry(ctx, companyID, domain.EntryDraft{
		Date:               req.Date,
		Description:        description,
		Lines:              lines,
		LinkedPaymentID:    &payment.PaymentID,
		LinkedDocumentType: domain.DocPayment,
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.SavePaymentWithAllocations(ctx, payment, allocations, *journal); err != nil {
		s.LogError(ctx, err, "Failed to save payment with allocations", "payment_id", payment.PaymentID)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded", "payment_id", payment.PaymentID,
		"client_id", req.ClientID, "allocated", plan.TotalAllocated.String())

	return &portssvc.RecordedPayment{Payment: payment, Plan: plan}, nil
}

// ReversePayment undoes a recorded payment: allocations are subtracted back
// from their receivables and the linked journal entry is reversed.
func (s *paymentService) ReversePayment(ctx context.Context, companyID, paymentID, userID string) error {
	if err := s.RequireScope(companyID); err != nil {
		return err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, companyID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	if _, err := s.paymentRepo.DeletePaymentWithAllocations(ctx, companyID, payment.PaymentID, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete payment with allocations", "payment_id", paymentID)
		return fmt.Errorf("failed to reverse payment: %w", err)
	}

	entries, err := s.journalRepo.FindEntriesByLinkedPayment(ctx, companyID, payment.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to find payment journal entries: %w", err)
	}
	for _, entry := range entries {
		if entry.Status != domain.Posted || entry.ReversesEntryID != nil {
			continue
		}
		if _, err := s.journalSvc.ReverseEntry(ctx, companyID, entry.EntryID, "Payment reversed", userID); err != nil {
			// The balances are already restored; flag the dangling journal
			// entry for the integrity check rather than failing the caller.
			s.LogError(ctx, err, "Payment reversed but journal reversal failed",
				"payment_id", paymentID, "entry_id", entry.EntryID)
			return fmt.Errorf("payment reversed but journal reversal failed: %w", err)
		}
	}

	s.LogInfo(ctx, "Payment reversed", "payment_id", paymentID)
	return nil
}
