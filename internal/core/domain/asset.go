package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of a fixed asset.
type AssetStatus string

const (
	AssetActive     AssetStatus = "ACTIVE"
	AssetDisposed   AssetStatus = "DISPOSED"
	AssetSold       AssetStatus = "SOLD"
	AssetWrittenOff AssetStatus = "WRITTEN_OFF"
)

// FixedAsset is a depreciable asset under straight-line depreciation.
// Invariants: 0 <= AccumulatedDepreciation <= PurchaseCost - SalvageValue,
// and BookValue == PurchaseCost - AccumulatedDepreciation. Only the
// depreciation run mutates depreciation state.
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
	LastDepreciationDate    *time.Time      `json:"lastDepreciationDate,omitempty"`
	AuditFields
}

// MonthlyStraightLine computes the per-month depreciation charge, rounded to
// currency precision.
func MonthlyStraightLine(purchaseCost, salvageValue decimal.Decimal, usefulLifeMonths int) decimal.Decimal {
	if usefulLifeMonths <= 0 {
		return decimal.Zero
	}
	return purchaseCost.Sub(salvageValue).Div(decimal.NewFromInt(int64(usefulLifeMonths))).Round(2)
}

// RemainingDepreciableBase is how much the asset can still depreciate before
// hitting its salvage floor.
func (a FixedAsset) RemainingDepreciableBase() decimal.Decimal {
	base := a.PurchaseCost.Sub(a.SalvageValue).Sub(a.AccumulatedDepreciation)
	if base.IsNegative() {
		return decimal.Zero
	}
	return base
}

// IsDepreciable reports whether a run should pick the asset up.
func (a FixedAsset) IsDepreciable() bool {
	return a.Status == AssetActive && a.RemainingDepreciableBase().IsPositive()
}

// NextDepreciationAmount clamps the monthly charge to the remaining base so
// the final month never overshoots salvage value.
func (a FixedAsset) NextDepreciationAmount() decimal.Decimal {
	remaining := a.RemainingDepreciableBase()
	if a.MonthlyDepreciation.LessThan(remaining) {
		return a.MonthlyDepreciation
	}
	return remaining
}

// ApplyDepreciation advances the asset's depreciation state by amount as of
// the given date, preserving the book-value invariant.
func (a *FixedAsset) ApplyDepreciation(amount decimal.Decimal, asOf time.Time) {
	a.AccumulatedDepreciation = a.AccumulatedDepreciation.Add(amount)
	a.BookValue = a.PurchaseCost.Sub(a.AccumulatedDepreciation)
	a.LastDepreciationDate = &asOf
}
