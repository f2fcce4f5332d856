package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisabat-app/hisabat-backend/internal/apperrors"
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/core/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvc
	companyID       string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		Code:          domain.AccountCash,
		CompanyID:     suite.companyID,
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitBalance,
		IsActive:      true,
	}
	suite.revenueAccount = domain.Account{
		Code:          domain.AccountSalesRevenue,
		CompanyID:     suite.companyID,
		Name:          "Sales Revenue",
		AccountType:   domain.Revenue,
		NormalBalance: domain.CreditBalance,
		IsActive:      true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.Code:    suite.cashAccount,
		suite.revenueAccount.Code: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.companyID,
		[]string{suite.cashAccount.Code, suite.revenueAccount.Code}).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Contains(entry.EntryNumber, "JE-")
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal(domain.DocManual, entry.LinkedDocumentType)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.True(entry.TotalDebits().Equal(entry.TotalCredits()))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_LineWithBothSides() {
	ctx := context.Background()
	// A single line may carry both a debit and a credit; only the aggregate
	// has to balance. The store accepts what validation accepts.
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Net settlement",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(30)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(70)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.companyID,
		[]string{suite.cashAccount.Code, suite.revenueAccount.Code}).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.TotalDebits().Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredits().Equal(decimal.NewFromInt(100)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Unbalanced",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(90)},
		},
	}

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_LessThanTwoLines() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Single line",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostEntry_ZeroLine() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Zero line",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code},
		},
	}

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.revenueAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		suite.cashAccount.Code: suite.cashAccount,
		inactive.Code:          inactive,
	}
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Inactive account",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(50)},
			{AccountCode: inactive.Code, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.companyID, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	accounts := map[string]domain.Account{
		suite.cashAccount.Code: suite.cashAccount,
	}
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Unknown account",
		Lines: []dto.JournalLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(50)},
			{AccountCode: "9999", Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, suite.companyID, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *JournalServiceTestSuite) postedEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-20260115120000-ABCDEF",
		CompanyID:   suite.companyID,
		EntryDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      domain.Posted,
		Lines: []domain.JournalLine{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			{AccountCode: suite.revenueAccount.Code, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original := suite.postedEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("SaveReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"),
		original.EntryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, "posted in error", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Require().NotNil(reversal.ReversesEntryID)
	suite.Equal(original.EntryID, *reversal.ReversesEntryID)
	suite.Equal(original.EntryDate, reversal.EntryDate)
	suite.Contains(reversal.Description, "Reversal of "+original.EntryNumber)

	// Debit and credit sides swapped, line for line.
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].Credit.Equal(original.Lines[0].Debit))
	suite.True(reversal.Lines[0].Debit.Equal(original.Lines[0].Credit))
	suite.True(reversal.Lines[1].Debit.Equal(original.Lines[1].Credit))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	original := suite.postedEntry()
	original.Status = domain.Reversed

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, "again", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReversalOfReversal() {
	ctx := context.Background()
	reversalEntry := suite.postedEntry()
	originalID := uuid.NewString()
	reversalEntry.ReversesEntryID = &originalID

	suite.mockJournalRepo.On("FindEntryByID", ctx, reversalEntry.EntryID).Return(reversalEntry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, reversalEntry.EntryID, "undo the undo", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrReversalOfReversal)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_WrongCompany() {
	ctx := context.Background()
	original := suite.postedEntry()
	original.CompanyID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, "wrong scope", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_MissingReason() {
	ctx := context.Background()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, uuid.NewString(), "  ", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntry_WrongCompany() {
	ctx := context.Background()
	entry := suite.postedEntry()
	entry.CompanyID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.GetEntry(ctx, suite.companyID, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{*suite.postedEntry()}

	suite.mockJournalRepo.On("ListEntries", ctx, suite.companyID, 20, (*string)(nil)).Return(entries, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.companyID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
