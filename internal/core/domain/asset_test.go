package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
)

func TestMonthlyStraightLine(t *testing.T) {
	tests := []struct {
		name             string
		purchaseCost     string
		salvageValue     string
		usefulLifeMonths int
		want             string
	}{
		{
			name:             "even division",
			purchaseCost:     "12000",
			salvageValue:     "0",
			usefulLifeMonths: 12,
			want:             "1000",
		},
		{
			name:             "salvage reduces the base",
			purchaseCost:     "12000",
			salvageValue:     "2000",
			usefulLifeMonths: 60,
			want:             "166.67",
		},
		{
			name:             "rounds to currency precision",
			purchaseCost:     "10000",
			salvageValue:     "0",
			usefulLifeMonths: 36,
			want:             "277.78",
		},
		{
			name:             "zero life yields zero charge",
			purchaseCost:     "12000",
			salvageValue:     "0",
			usefulLifeMonths: 0,
			want:             "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.MonthlyStraightLine(
				decimal.RequireFromString(tt.purchaseCost),
				decimal.RequireFromString(tt.salvageValue),
				tt.usefulLifeMonths,
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, got.String())
		})
	}
}

func TestFixedAsset_RemainingDepreciableBase(t *testing.T) {
	asset := domain.FixedAsset{
		PurchaseCost:            decimal.NewFromInt(12000),
		SalvageValue:            decimal.NewFromInt(2000),
		AccumulatedDepreciation: decimal.NewFromInt(9950),
	}
	assert.True(t, asset.RemainingDepreciableBase().Equal(decimal.NewFromInt(50)))

	// Over-depreciated state clamps to zero instead of going negative.
	asset.AccumulatedDepreciation = decimal.NewFromInt(10500)
	assert.True(t, asset.RemainingDepreciableBase().IsZero())
}

func TestFixedAsset_IsDepreciable(t *testing.T) {
	asset := domain.FixedAsset{
		PurchaseCost:            decimal.NewFromInt(12000),
		SalvageValue:            decimal.NewFromInt(2000),
		AccumulatedDepreciation: decimal.Zero,
		Status:                  domain.AssetActive,
	}
	assert.True(t, asset.IsDepreciable())

	disposed := asset
	disposed.Status = domain.AssetDisposed
	assert.False(t, disposed.IsDepreciable())

	fullyDepreciated := asset
	fullyDepreciated.AccumulatedDepreciation = decimal.NewFromInt(10000)
	assert.False(t, fullyDepreciated.IsDepreciable())
}

func TestFixedAsset_NextDepreciationAmount(t *testing.T) {
	asset := domain.FixedAsset{
		PurchaseCost:            decimal.NewFromInt(12000),
		SalvageValue:            decimal.NewFromInt(2000),
		MonthlyDepreciation:     decimal.RequireFromString("166.67"),
		AccumulatedDepreciation: decimal.Zero,
	}
	assert.True(t, asset.NextDepreciationAmount().Equal(decimal.RequireFromString("166.67")))

	// Final month: the charge clamps to the remaining base.
	asset.AccumulatedDepreciation = decimal.NewFromInt(9950)
	assert.True(t, asset.NextDepreciationAmount().Equal(decimal.NewFromInt(50)))
}

func TestFixedAsset_ApplyDepreciation(t *testing.T) {
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	asset := domain.FixedAsset{
		PurchaseCost:            decimal.NewFromInt(12000),
		SalvageValue:            decimal.NewFromInt(2000),
		AccumulatedDepreciation: decimal.NewFromInt(9950),
		BookValue:               decimal.NewFromInt(2050),
	}

	asset.ApplyDepreciation(decimal.NewFromInt(50), asOf)

	assert.True(t, asset.AccumulatedDepreciation.Equal(decimal.NewFromInt(10000)))
	assert.True(t, asset.BookValue.Equal(asset.SalvageValue))
	assert.NotNil(t, asset.LastDepreciationDate)
	assert.Equal(t, asOf, *asset.LastDepreciationDate)
}
