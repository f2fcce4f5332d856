package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/hisabat-app/hisabat-backend/internal/handlers"
	"github.com/hisabat-app/hisabat-backend/internal/platform/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) EnsureDefaultChart(ctx context.Context, companyID string, userID string) (int, error) {
	args := m.Called(ctx, companyID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) SetAccountActive(ctx context.Context, companyID, code string, active bool, userID string) error {
	args := m.Called(ctx, companyID, code, active, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvc = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	companyID          string
	userID             string
}

// generateTestToken creates a dummy JWT scoped to the given company.
func (suite *AccountHandlerTestSuite) generateTestToken(userID, companyID string) string {
	claims := handlersTestClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hisabat-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

type handlersTestClaims struct {
	CompanyID string `json:"companyID"`
	jwt.RegisteredClaims
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockAccountService = new(MockAccountService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		APIRateLimit: "1000-M",
		IsProduction: true, // keeps swagger routes off in tests
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
	})
}

func (suite *AccountHandlerTestSuite) doRequest(method, url string, body []byte, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	expected := domain.DefaultChartOfAccounts()
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.companyID).
		Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/accounts", suite.companyID)
	token := suite.generateTestToken(suite.userID, suite.companyID)
	w := suite.doRequest(http.MethodGet, url, nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, len(expected))
	suite.Equal(expected[0].Code, body[0].Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestSeedChart_Success() {
	suite.mockAccountService.On("EnsureDefaultChart", mock.Anything, suite.companyID, suite.userID).
		Return(len(domain.DefaultChartOfAccounts()), nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/accounts/seed", suite.companyID)
	token := suite.generateTestToken(suite.userID, suite.companyID)
	w := suite.doRequest(http.MethodPost, url, nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]int
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(len(domain.DefaultChartOfAccounts()), body["created"])
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByCode", mock.Anything, suite.companyID, "8888").
		Return(nil, fmt.Errorf("account 8888: %w", apperrors.ErrNotFound)).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/accounts/8888", suite.companyID)
	token := suite.generateTestToken(suite.userID, suite.companyID)
	w := suite.doRequest(http.MethodGet, url, nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestSetAccountActive_Success() {
	suite.mockAccountService.On("SetAccountActive", mock.Anything, suite.companyID, "1000", false, suite.userID).
		Return(nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/accounts/1000/active", suite.companyID)
	token := suite.generateTestToken(suite.userID, suite.companyID)
	w := suite.doRequest(http.MethodPut, url, []byte(`{"isActive": false}`), token)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestSetAccountActive_MissingFlag() {
	url := fmt.Sprintf("/api/v1/companies/%s/accounts/1000/active", suite.companyID)
	token := suite.generateTestToken(suite.userID, suite.companyID)
	w := suite.doRequest(http.MethodPut, url, []byte(`{}`), token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "SetAccountActive",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	url := fmt.Sprintf("/api/v1/companies/%s/accounts", suite.companyID)
	w := suite.doRequest(http.MethodGet, url, nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCompanyScopeMismatch_Forbidden() {
	// Token is scoped to a different company than the path.
	otherCompany := uuid.NewString()
	url := fmt.Sprintf("/api/v1/companies/%s/accounts", suite.companyID)
	token := suite.generateTestToken(suite.userID, otherCompany)
	w := suite.doRequest(http.MethodGet, url, nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
