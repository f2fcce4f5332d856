package dto

import (
	"time"

	"github.com/hisabat-app/hisabat-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual journal entry.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// PostEntryRequest creates a manual journal entry.
type PostEntryRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest reverses a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams carries pagination for entry listings.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse mirrors a stored line.
type JournalLineResponse struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse is the wire shape of a journal entry.
type JournalEntryResponse struct {
	EntryID            string                `json:"entryID"`
	EntryNumber        string                `json:"entryNumber"`
	Date               time.Time             `json:"date"`
	Description        string                `json:"description"`
	Status             string                `json:"status"`
	Lines              []JournalLineResponse `json:"lines"`
	LinkedDocumentType string                `json:"linkedDocumentType,omitempty"`
	ReversesEntryID    *string               `json:"reversesEntryID,omitempty"`
	ReversedByEntryID  *string               `json:"reversedByEntryID,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain entry to its wire shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:            e.EntryID,
		EntryNumber:        e.EntryNumber,
		Date:               e.EntryDate,
		Description:        e.Description,
		Status:             string(e.Status),
		Lines:              lines,
		LinkedDocumentType: string(e.LinkedDocumentType),
		ReversesEntryID:    e.ReversesEntryID,
		ReversedByEntryID:  e.ReversedByEntryID,
		CreatedAt:          e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
