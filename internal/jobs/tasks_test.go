package jobs_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/hisabat-app/hisabat-backend/internal/jobs"
)

// --- Mock DepreciationService ---
type MockDepreciationService struct {
	mock.Mock
}

var _ portssvc.DepreciationSvc = (*MockDepreciationService)(nil)

func (m *MockDepreciationService) RunMonthly(ctx context.Context, companyID string, year int, month time.Month, userID string) (*domain.DepreciationResult, error) {
	args := m.Called(ctx, companyID, year, month, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepreciationResult), args.Error(1)
}

func (m *MockDepreciationService) CreateAsset(ctx context.Context, companyID string, req dto.CreateAssetRequest, userID string) (*domain.FixedAsset, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedAsset), args.Error(1)
}

func (m *MockDepreciationService) GetRun(ctx context.Context, companyID string, year int, month time.Month) (*domain.DepreciationRun, error) {
	args := m.Called(ctx, companyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepreciationRun), args.Error(1)
}

func (m *MockDepreciationService) ListAssets(ctx context.Context, companyID string) ([]domain.FixedAsset, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedAsset), args.Error(1)
}

// --- Mock IntegrityService ---
type MockIntegrityService struct {
	mock.Mock
}

var _ portssvc.IntegritySvc = (*MockIntegrityService)(nil)

func (m *MockIntegrityService) Verify(ctx context.Context, companyID string) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

func (m *MockIntegrityService) CleanupOrphans(ctx context.Context, companyID string, dryRun bool, userID string) (*domain.CleanupResult, error) {
	args := m.Called(ctx, companyID, dryRun, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CleanupResult), args.Error(1)
}

// --- Test Suite ---
type TaskHandlerTestSuite struct {
	suite.Suite
	mockDepreciationSvc *MockDepreciationService
	mockIntegritySvc    *MockIntegrityService
	metrics             *jobs.Metrics
	logger              *slog.Logger
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.mockDepreciationSvc = new(MockDepreciationService)
	suite.mockIntegritySvc = new(MockIntegrityService)
	suite.metrics = jobs.NewMetrics(prometheus.NewRegistry())
	suite.logger = slog.Default()
}

func (suite *TaskHandlerTestSuite) TestDepreciationRunHandler_ExplicitPeriod() {
	handler := jobs.NewDepreciationRunHandler(suite.mockDepreciationSvc, suite.metrics, suite.logger)
	task, err := jobs.NewDepreciationRunTask(jobs.DepreciationRunPayload{
		CompanyID: "company-1", Year: 2026, Month: 2,
	})
	suite.Require().NoError(err)

	result := &domain.DepreciationResult{
		Run:             domain.DepreciationRun{RunID: "run-1"},
		ProcessedAssets: 3,
	}
	suite.mockDepreciationSvc.On("RunMonthly", mock.Anything, "company-1", 2026, time.February, jobs.SystemUserID).
		Return(result, nil).Once()

	err = handler(context.Background(), task)

	suite.Require().NoError(err)
	suite.mockDepreciationSvc.AssertExpectations(suite.T())
}

func (suite *TaskHandlerTestSuite) TestDepreciationRunHandler_DefaultsToPreviousMonth() {
	handler := jobs.NewDepreciationRunHandler(suite.mockDepreciationSvc, suite.metrics, suite.logger)
	task, err := jobs.NewDepreciationRunTask(jobs.DepreciationRunPayload{CompanyID: "company-1"})
	suite.Require().NoError(err)

	prev := time.Now().UTC().AddDate(0, -1, 0)
	result := &domain.DepreciationResult{Run: domain.DepreciationRun{RunID: "run-1"}}
	suite.mockDepreciationSvc.On("RunMonthly", mock.Anything, "company-1", prev.Year(), prev.Month(), jobs.SystemUserID).
		Return(result, nil).Once()

	err = handler(context.Background(), task)

	suite.Require().NoError(err)
	suite.mockDepreciationSvc.AssertExpectations(suite.T())
}

func (suite *TaskHandlerTestSuite) TestDepreciationRunHandler_BadPayloadSkipsRetry() {
	handler := jobs.NewDepreciationRunHandler(suite.mockDepreciationSvc, suite.metrics, suite.logger)

	err := handler(context.Background(), asynq.NewTask(jobs.TaskTypeDepreciationRun, []byte("not json")))

	suite.Require().ErrorIs(err, asynq.SkipRetry)
	suite.mockDepreciationSvc.AssertNotCalled(suite.T(), "RunMonthly",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TaskHandlerTestSuite) TestDepreciationRunHandler_EmptyCompanySkipsRetry() {
	handler := jobs.NewDepreciationRunHandler(suite.mockDepreciationSvc, suite.metrics, suite.logger)
	task, err := jobs.NewDepreciationRunTask(jobs.DepreciationRunPayload{})
	suite.Require().NoError(err)

	err = handler(context.Background(), task)

	suite.Require().ErrorIs(err, asynq.SkipRetry)
}

func (suite *TaskHandlerTestSuite) TestDepreciationRunHandler_ServiceErrorRetries() {
	handler := jobs.NewDepreciationRunHandler(suite.mockDepreciationSvc, suite.metrics, suite.logger)
	task, err := jobs.NewDepreciationRunTask(jobs.DepreciationRunPayload{
		CompanyID: "company-1", Year: 2026, Month: 2,
	})
	suite.Require().NoError(err)

	suite.mockDepreciationSvc.On("RunMonthly", mock.Anything, "company-1", 2026, time.February, jobs.SystemUserID).
		Return(nil, assert.AnError).Once()

	err = handler(context.Background(), task)

	suite.Require().Error(err)
	suite.NotErrorIs(err, asynq.SkipRetry)
}

func (suite *TaskHandlerTestSuite) TestDepreciationRunHandler_PartialFailureDoesNotRetry() {
	handler := jobs.NewDepreciationRunHandler(suite.mockDepreciationSvc, suite.metrics, suite.logger)
	task, err := jobs.NewDepreciationRunTask(jobs.DepreciationRunPayload{
		CompanyID: "company-1", Year: 2026, Month: 2,
	})
	suite.Require().NoError(err)

	// The asset-side commit stands; a retry would hit the duplicate-period
	// guard, so the handler must finish the task.
	result := &domain.DepreciationResult{
		Run:            domain.DepreciationRun{RunID: "run-1"},
		PartialFailure: true,
		Recovery:       &domain.RecoveryInstructions{Note: "post the journal entry manually"},
	}
	suite.mockDepreciationSvc.On("RunMonthly", mock.Anything, "company-1", 2026, time.February, jobs.SystemUserID).
		Return(result, nil).Once()

	err = handler(context.Background(), task)

	suite.Require().NoError(err)
}

func (suite *TaskHandlerTestSuite) TestIntegrityVerifyHandler_Success() {
	handler := jobs.NewIntegrityVerifyHandler(suite.mockIntegritySvc, suite.metrics, suite.logger)
	task, err := jobs.NewIntegrityVerifyTask(jobs.IntegrityVerifyPayload{CompanyID: "company-1"})
	suite.Require().NoError(err)

	report := &domain.IntegrityReport{TrialBalanced: true, Discrepancies: []domain.Discrepancy{}}
	suite.mockIntegritySvc.On("Verify", mock.Anything, "company-1").
		Return(report, nil).Once()

	err = handler(context.Background(), task)

	suite.Require().NoError(err)
	suite.mockIntegritySvc.AssertExpectations(suite.T())
}

func (suite *TaskHandlerTestSuite) TestIntegrityVerifyHandler_BadPayloadSkipsRetry() {
	handler := jobs.NewIntegrityVerifyHandler(suite.mockIntegritySvc, suite.metrics, suite.logger)

	err := handler(context.Background(), asynq.NewTask(jobs.TaskTypeIntegrityVerify, []byte("{")))

	suite.Require().ErrorIs(err, asynq.SkipRetry)
	suite.mockIntegritySvc.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
