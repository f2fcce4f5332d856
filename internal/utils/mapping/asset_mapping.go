package mapping

import (
	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/hisabat-app/hisabat-backend/internal/models"
)

// ToModelFixedAsset converts a domain FixedAsset to a model FixedAsset
func ToModelFixedAsset(d domain.FixedAsset) models.FixedAsset {
	return models.FixedAsset{
		AssetID:                 d.AssetID,
		CompanyID:               d.CompanyID,
		Name:                    d.Name,
		PurchaseCost:            d.PurchaseCost,
		SalvageValue:            d.SalvageValue,
		UsefulLifeMonths:        d.UsefulLifeMonths,
		MonthlyDepreciation:     d.MonthlyDepreciation,
		AccumulatedDepreciation: d.AccumulatedDepreciation,
		BookValue:               d.BookValue,
		Status:                  models.AssetStatus(d.Status),
		PurchaseDate:            d.PurchaseDate,
		LastDepreciationDate:    d.LastDepreciationDate,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFixedAsset converts a model FixedAsset to a domain FixedAsset
func ToDomainFixedAsset(m models.FixedAsset) domain.FixedAsset {
	return domain.FixedAsset{
		AssetID:                 m.AssetID,
		CompanyID:               m.CompanyID,
		Name:                    m.Name,
		PurchaseCost:            m.PurchaseCost,
		SalvageValue:            m.SalvageValue,
		UsefulLifeMonths:        m.UsefulLifeMonths,
		MonthlyDepreciation:     m.MonthlyDepreciation,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		BookValue:               m.BookValue,
		Status:                  domain.AssetStatus(m.Status),
		PurchaseDate:            m.PurchaseDate,
		LastDepreciationDate:    m.LastDepreciationDate,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFixedAssetSlice converts a slice of model FixedAssets
func ToDomainFixedAssetSlice(ms []models.FixedAsset) []domain.FixedAsset {
	ds := make([]domain.FixedAsset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFixedAsset(m)
	}
	return ds
}

// ToModelDepreciationRecord converts a domain DepreciationRecord to its model
func ToModelDepreciationRecord(d domain.DepreciationRecord) models.DepreciationRecord {
	return models.DepreciationRecord{
		RecordID:         d.RecordID,
		RunID:            d.RunID,
		CompanyID:        d.CompanyID,
		AssetID:          d.AssetID,
		Amount:           d.Amount,
		AccumulatedAfter: d.AccumulatedAfter,
		BookValueAfter:   d.BookValueAfter,
		PeriodLabel:      d.PeriodLabel,
		RecordDate:       d.RecordDate,
	}
}

// ToDomainDepreciationRecord converts a model DepreciationRecord to its domain shape
func ToDomainDepreciationRecord(m models.DepreciationRecord) domain.DepreciationRecord {
	return domain.DepreciationRecord{
		RecordID:         m.RecordID,
		RunID:            m.RunID,
		CompanyID:        m.CompanyID,
		AssetID:          m.AssetID,
		Amount:           m.Amount,
		AccumulatedAfter: m.AccumulatedAfter,
		BookValueAfter:   m.BookValueAfter,
		PeriodLabel:      m.PeriodLabel,
		RecordDate:       m.RecordDate,
	}
}

// ToModelDepreciationRun converts a domain DepreciationRun to its model
func ToModelDepreciationRun(d domain.DepreciationRun) models.DepreciationRun {
	return models.DepreciationRun{
		RunID:             d.RunID,
		CompanyID:         d.CompanyID,
		PeriodLabel:       d.PeriodLabel,
		Year:              d.Year,
		Month:             d.Month,
		AssetCount:        d.AssetCount,
		TotalDepreciation: d.TotalDepreciation,
		Status:            models.RunStatus(d.Status),
		JournalEntryID:    d.JournalEntryID,
		RunDate:           d.RunDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepreciationRun converts a model DepreciationRun to its domain shape
func ToDomainDepreciationRun(m models.DepreciationRun) domain.DepreciationRun {
	return domain.DepreciationRun{
		RunID:             m.RunID,
		CompanyID:         m.CompanyID,
		PeriodLabel:       m.PeriodLabel,
		Year:              m.Year,
		Month:             m.Month,
		AssetCount:        m.AssetCount,
		TotalDepreciation: m.TotalDepreciation,
		Status:            domain.RunStatus(m.Status),
		JournalEntryID:    m.JournalEntryID,
		RunDate:           m.RunDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
