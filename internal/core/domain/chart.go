package domain

// Well-known account codes referenced by the event mapping resolver and the
// depreciation engine. The codes follow the conventional 1xxx-5xxx blocks.
const (
	AccountCash            = "1000"
	AccountReceivable      = "1100"
	AccountInventory       = "1200"
	AccountFixedAssets     = "1500"
	AccountAccumulatedDep  = "1510"
	AccountPayable         = "2000"
	AccountLoansPayable    = "2100"
	AccountOwnerCapital    = "3000"
	AccountRetainedEarn    = "3100"
	AccountSalesRevenue    = "4000"
	AccountServiceRevenue  = "4100"
	AccountOtherIncome     = "4900"
	AccountCOGS            = "5000"
	AccountRentExpense     = "5100"
	AccountSalariesExpense = "5200"
	AccountUtilities       = "5300"
	AccountSupplies        = "5400"
	AccountDepExpense      = "5600"
	AccountBadDebt         = "5700"
	AccountOtherExpense    = "5900"
)

// NetIncomeCode is the synthetic equity row the balance sheet folds the
// current period's net income into. It never exists in the chart itself.
const NetIncomeCode = "3999"

// DefaultChartOfAccounts returns the static chart every company is seeded
// with. Account 1510 is the contra-asset: grouped under fixed assets but
// credit-normal.
func DefaultChartOfAccounts() []Account {
	return []Account{
		{Code: AccountCash, Name: "Cash", NameAr: "النقدية", AccountType: Asset, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountReceivable, Name: "Accounts Receivable", NameAr: "الذمم المدينة", AccountType: Asset, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountInventory, Name: "Inventory", NameAr: "المخزون", AccountType: Asset, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountFixedAssets, Name: "Fixed Assets", NameAr: "الأصول الثابتة", AccountType: Asset, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountAccumulatedDep, Name: "Accumulated Depreciation", NameAr: "مجمع الإهلاك", AccountType: Asset, NormalBalance: CreditBalance, ParentCode: AccountFixedAssets, IsActive: true},
		{Code: AccountPayable, Name: "Accounts Payable", NameAr: "الذمم الدائنة", AccountType: Liability, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountLoansPayable, Name: "Loans Payable", NameAr: "قروض مستحقة", AccountType: Liability, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountOwnerCapital, Name: "Owner's Capital", NameAr: "رأس المال", AccountType: Equity, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountRetainedEarn, Name: "Retained Earnings", NameAr: "الأرباح المحتجزة", AccountType: Equity, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountSalesRevenue, Name: "Sales Revenue", NameAr: "إيرادات المبيعات", AccountType: Revenue, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountServiceRevenue, Name: "Service Revenue", NameAr: "إيرادات الخدمات", AccountType: Revenue, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountOtherIncome, Name: "Other Income", NameAr: "إيرادات أخرى", AccountType: Revenue, NormalBalance: CreditBalance, IsActive: true},
		{Code: AccountCOGS, Name: "Cost of Goods Sold", NameAr: "تكلفة البضاعة المباعة", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountRentExpense, Name: "Rent Expense", NameAr: "مصروف الإيجار", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountSalariesExpense, Name: "Salaries Expense", NameAr: "مصروف الرواتب", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountUtilities, Name: "Utilities Expense", NameAr: "مصروف المرافق", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountSupplies, Name: "Supplies Expense", NameAr: "مصروف المستلزمات", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountDepExpense, Name: "Depreciation Expense", NameAr: "مصروف الإهلاك", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountBadDebt, Name: "Bad Debt Expense", NameAr: "مصروف الديون المعدومة", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
		{Code: AccountOtherExpense, Name: "Other Expense", NameAr: "مصاريف أخرى", AccountType: Expense, NormalBalance: DebitBalance, IsActive: true},
	}
}
