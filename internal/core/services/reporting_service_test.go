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
	portsrepo "github.com/hisabat-app/hisabat-backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReportingSvc
	companyID       string
	asOf            time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.companyID = uuid.NewString()
	suite.asOf = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func account(code, name string, accountType domain.AccountType, normal domain.BalanceSide) domain.Account {
	return domain.Account{Code: code, Name: name, AccountType: accountType, NormalBalance: normal, IsActive: true}
}

func (suite *ReportingServiceTestSuite) postedEntry(lines ...domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Status:    domain.Posted,
		Lines:     lines,
	}
}

func debit(code string, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountCode: code, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
}

func credit(code string, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountCode: code, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
}

func (suite *ReportingServiceTestSuite) expectPosted(entries ...domain.JournalEntry) {
	suite.mockJournalRepo.On("FindPostedEntries", mock.Anything, suite.companyID, suite.asOf, portsrepo.DefaultReadCap).
		Return(entries, false, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	suite.expectPosted(suite.postedEntry(debit(domain.AccountCash, 1000), credit(domain.AccountSalesRevenue, 1000)))
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "4000"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
		}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.Equal("1000", report.Rows[0].AccountCode)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalDebits.Equal(report.TotalCredits))
	suite.True(report.IsBalanced)
	suite.False(report.Truncated)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NegativeBalanceFlipsColumn() {
	ctx := context.Background()
	// Cash is debit-normal but its credits exceed its debits.
	suite.expectPosted(
		suite.postedEntry(debit(domain.AccountCash, 100), credit(domain.AccountSalesRevenue, 100)),
		suite.postedEntry(debit(domain.AccountRentExpense, 300), credit(domain.AccountCash, 300)),
	)
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "4000", "5100"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
			"5100": account("5100", "Rent Expense", domain.Expense, domain.DebitBalance),
		}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	cashRow := report.Rows[0]
	suite.Equal("1000", cashRow.AccountCode)
	suite.True(cashRow.Debit.IsZero())
	suite.True(cashRow.Credit.Equal(decimal.NewFromInt(200)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_UnknownCodeGetsSyntheticRow() {
	ctx := context.Background()
	suite.expectPosted(suite.postedEntry(debit("9999", 50), credit(domain.AccountSalesRevenue, 50)))
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"4000", "9999"}).
		Return(map[string]domain.Account{
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
		}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	unknown := report.Rows[1]
	suite.Equal("9999", unknown.AccountCode)
	suite.Equal("9999", unknown.AccountName)
	suite.True(unknown.Debit.Equal(decimal.NewFromInt(50)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_TruncatedRead() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindPostedEntries", mock.Anything, suite.companyID, suite.asOf, portsrepo.DefaultReadCap).
		Return([]domain.JournalEntry{
			suite.postedEntry(debit(domain.AccountCash, 10), credit(domain.AccountSalesRevenue, 10)),
		}, true, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "4000"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
		}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.Truncated)
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_NetsOntoNormalSide() {
	ctx := context.Background()
	cash := account("1000", "Cash", domain.Asset, domain.DebitBalance)
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.companyID, "1000").
		Return(&cash, nil).Once()
	suite.expectPosted(
		suite.postedEntry(debit(domain.AccountCash, 500), credit(domain.AccountSalesRevenue, 500)),
		suite.postedEntry(debit(domain.AccountRentExpense, 200), credit(domain.AccountCash, 200)),
	)

	balance, err := suite.service.AccountBalance(ctx, suite.companyID, "1000", suite.asOf)

	suite.Require().NoError(err)
	suite.True(balance.TotalDebits.Equal(decimal.NewFromInt(500)))
	suite.True(balance.TotalCredits.Equal(decimal.NewFromInt(200)))
	suite.True(balance.Balance.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IdentityHoldsWithNetIncome() {
	ctx := context.Background()
	suite.expectPosted(
		suite.postedEntry(debit(domain.AccountCash, 1000), credit(domain.AccountSalesRevenue, 1000)),
		suite.postedEntry(debit(domain.AccountRentExpense, 300), credit(domain.AccountCash, 300)),
	)
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "4000", "5100"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
			"5100": account("5100", "Rent Expense", domain.Expense, domain.DebitBalance),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(700)))
	suite.Require().NotEmpty(report.Equity)
	last := report.Equity[len(report.Equity)-1]
	suite.Equal(domain.NetIncomeCode, last.AccountCode)
	suite.True(last.Amount.Equal(decimal.NewFromInt(700)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ContraAssetReducesAssets() {
	ctx := context.Background()
	suite.expectPosted(
		suite.postedEntry(debit(domain.AccountCash, 1000), credit(domain.AccountSalesRevenue, 1000)),
		suite.postedEntry(debit(domain.AccountDepExpense, 100), credit(domain.AccountAccumulatedDep, 100)),
	)
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "1510", "4000", "5600"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"1510": account("1510", "Accumulated Depreciation", domain.Asset, domain.CreditBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
			"5600": account("5600", "Depreciation Expense", domain.Expense, domain.DebitBalance),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Assets, 2)
	contra := report.Assets[1]
	suite.Equal("1510", contra.AccountCode)
	suite.True(contra.Amount.Equal(decimal.NewFromInt(-100)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(900)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ContraEquityReducesEquity() {
	ctx := context.Background()
	// Owner draws accumulate on the debit side of an equity account.
	suite.expectPosted(
		suite.postedEntry(debit(domain.AccountCash, 1000), credit(domain.AccountSalesRevenue, 1000)),
		suite.postedEntry(debit("3100", 200), credit(domain.AccountCash, 200)),
	)
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "3100", "4000"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"3100": account("3100", "Owner Draws", domain.Equity, domain.DebitBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(report.Equity)
	draws := report.Equity[0]
	suite.Equal("3100", draws.AccountCode)
	suite.True(draws.Amount.Equal(decimal.NewFromInt(-200)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(800)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(800)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ContraRevenueReducesNetIncome() {
	ctx := context.Background()
	// Sales returns are a debit-normal revenue account.
	suite.expectPosted(
		suite.postedEntry(debit(domain.AccountCash, 1000), credit(domain.AccountSalesRevenue, 1000)),
		suite.postedEntry(debit("4100", 100), credit(domain.AccountCash, 100)),
	)
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"1000", "4000", "4100"}).
		Return(map[string]domain.Account{
			"1000": account("1000", "Cash", domain.Asset, domain.DebitBalance),
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
			"4100": account("4100", "Sales Returns", domain.Revenue, domain.DebitBalance),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(900)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_UnknownCodeFails() {
	ctx := context.Background()
	suite.expectPosted(suite.postedEntry(debit("9999", 50), credit(domain.AccountSalesRevenue, 50)))
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.companyID, []string{"4000", "9999"}).
		Return(map[string]domain.Account{
			"4000": account("4000", "Sales Revenue", domain.Revenue, domain.CreditBalance),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.Nil(report)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
