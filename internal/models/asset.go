package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of a fixed asset.
type AssetStatus string

// RunStatus is the terminal state of a depreciation run.
type RunStatus string

// FixedAsset maps one row of the fixed_assets table.
type FixedAsset struct {
	AssetID                 string          `json:"assetID"`
	CompanyID               string          `json:"companyID"`
	Name                    string          `json:"name"`
	PurchaseCost            decimal.Decimal `json:"purchaseCost"`
	SalvageValue            decimal.Decimal `json:"salvageValue"`
	UsefulLifeMonths        int             `json:"usefulLifeMonths"`
	MonthlyDepreciation     decimal.Decimal `json:"monthlyDepreciation"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
	BookValue               decimal.Decimal `json:"bookValue"`
	Status                  AssetStatus     `json:"status"`
	PurchaseDate            time.Time       `json:"purchaseDate"`
	LastDepreciationDate    *time.Time      `json:"lastDepreciationDate"`
	AuditFields
}

// DepreciationRecord maps one row of the depreciation_records table.
type DepreciationRecord struct {
	RecordID         string          `json:"recordID"`
	RunID            string          `json:"runID"`
	CompanyID        string          `json:"companyID"`
	AssetID          string          `json:"assetID"`
	Amount           decimal.Decimal `json:"amount"`
	AccumulatedAfter decimal.Decimal `json:"accumulatedAfter"`
	BookValueAfter   decimal.Decimal `json:"bookValueAfter"`
	PeriodLabel      string          `json:"periodLabel"`
	RecordDate       time.Time       `json:"recordDate"`
}

// DepreciationRun maps one row of the depreciation_runs table. The unique
// (company_id, period_label) index is the run's idempotency guard.
type DepreciationRun struct {
	RunID             string          `json:"runID"`
	CompanyID         string          `json:"companyID"`
	PeriodLabel       string          `json:"periodLabel"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	AssetCount        int             `json:"assetCount"`
	TotalDepreciation decimal.Decimal `json:"totalDepreciation"`
	Status            RunStatus       `json:"status"`
	JournalEntryID    *string         `json:"journalEntryID"`
	RunDate           time.Time       `json:"runDate"`
	AuditFields
}
