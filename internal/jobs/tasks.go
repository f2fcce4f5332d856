package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDepreciationRun is the task type for the monthly depreciation batch.
	TaskTypeDepreciationRun = "depreciation:run"
	// TaskTypeIntegrityVerify is the task type for the scheduled ledger/journal reconciliation.
	TaskTypeIntegrityVerify = "integrity:verify"

	// SystemUserID stamps audit fields on rows written by scheduled jobs.
	SystemUserID = "system"
)

// DepreciationRunPayload identifies the period a depreciation task covers.
// Year and Month zero mean "the previous calendar month at processing time",
// which is what the cron-scheduled task uses.
type DepreciationRunPayload struct {
	CompanyID string `json:"companyId"`
	Year      int    `json:"year,omitempty"`
	Month     int    `json:"month,omitempty"`
}

// IntegrityVerifyPayload identifies the company to reconcile.
type IntegrityVerifyPayload struct {
	CompanyID string `json:"companyId"`
}

// NewDepreciationRunTask constructs an Asynq task for one company and period.
func NewDepreciationRunTask(payload DepreciationRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDepreciationRun, data), nil
}

// NewIntegrityVerifyTask constructs an Asynq task for a scheduled verification.
func NewIntegrityVerifyTask(payload IntegrityVerifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeIntegrityVerify, data), nil
}

// NewDepreciationRunHandler processes TaskTypeDepreciationRun tasks.
func NewDepreciationRunHandler(svc portssvc.DepreciationSvc, metrics *Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DepreciationRunPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.CompanyID == "" {
			return asynq.SkipRetry
		}

		year, month := payload.Year, time.Month(payload.Month)
		if year == 0 || payload.Month == 0 {
			prev := time.Now().UTC().AddDate(0, -1, 0)
			year, month = prev.Year(), prev.Month()
		}

		tracker := metrics.Track("depreciation_run")
		result, err := svc.RunMonthly(ctx, payload.CompanyID, year, month, SystemUserID)
		if err = tracker.End(err); err != nil {
			logger.Error("Depreciation run failed",
				slog.String("company_id", payload.CompanyID),
				slog.Int("year", year),
				slog.Int("month", int(month)),
				slog.String("error", err.Error()))
			return err
		}

		if result.PartialFailure {
			// The asset-side work committed; retrying would hit the duplicate
			// guard. Surface the manual follow-up and finish the task.
			logger.Error("Depreciation run committed but journal mirror failed",
				slog.String("company_id", payload.CompanyID),
				slog.String("run_id", result.Run.RunID),
				slog.String("recovery", result.Recovery.Note))
			return nil
		}

		logger.Info("Depreciation run completed",
			slog.String("company_id", payload.CompanyID),
			slog.String("run_id", result.Run.RunID),
			slog.Int("assets_processed", result.ProcessedAssets))
		return nil
	}
}

// NewIntegrityVerifyHandler processes TaskTypeIntegrityVerify tasks.
func NewIntegrityVerifyHandler(svc portssvc.IntegritySvc, metrics *Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload IntegrityVerifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.CompanyID == "" {
			return asynq.SkipRetry
		}

		tracker := metrics.Track("integrity_verify")
		report, err := svc.Verify(ctx, payload.CompanyID)
		if err = tracker.End(err); err != nil {
			logger.Error("Integrity verification failed",
				slog.String("company_id", payload.CompanyID),
				slog.String("error", err.Error()))
			return err
		}

		metrics.SetDiscrepancies(payload.CompanyID, len(report.Discrepancies))
		if len(report.Discrepancies) > 0 || !report.TrialBalanced {
			logger.Warn("Integrity verification found problems",
				slog.String("company_id", payload.CompanyID),
				slog.Int("discrepancies", len(report.Discrepancies)),
				slog.Bool("trial_balanced", report.TrialBalanced))
		}
		return nil
	}
}
