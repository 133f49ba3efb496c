package dto

import (
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryLineRequest is one line of a new entry. Accounts are referenced by code.
type PostEntryLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required,max=50"`
	Debit       decimal.Decimal `json:"debit" binding:"decimalgte0" swaggertype:"string"`
	Credit      decimal.Decimal `json:"credit" binding:"decimalgte0" swaggertype:"string"`
	Description string          `json:"description" binding:"max=500"`
	SortOrder   int             `json:"sortOrder" binding:"min=0"`
}

// PostEntryRequest defines the data needed to post a journal entry.
type PostEntryRequest struct {
	EntryDate     time.Time              `json:"entryDate" binding:"required"`
	Description   string                 `json:"description" binding:"required,max=500"`
	Reference     string                 `json:"reference" binding:"max=100"`
	LegalEntityID *string                `json:"legalEntityID,omitempty"`
	Draft         bool                   `json:"draft"` // saved as draft, no balance check until posted
	Lines         []PostEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit" swaggertype:"string"`
	Credit      decimal.Decimal `json:"credit" swaggertype:"string"`
	Description string          `json:"description"`
	SortOrder   int             `json:"sortOrder"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       string              `json:"entryID"`
	EntryNumber   string              `json:"entryNumber"`
	EntryDate     time.Time           `json:"entryDate"`
	Description   string              `json:"description"`
	Reference     string              `json:"reference"`
	LegalEntityID *string             `json:"legalEntityID,omitempty"`
	PeriodID      string              `json:"periodID"`
	Status        domain.EntryStatus  `json:"status"`
	TotalDebit    decimal.Decimal     `json:"totalDebit" swaggertype:"string"`
	TotalCredit   decimal.Decimal     `json:"totalCredit" swaggertype:"string"`
	Lines         []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
}

// ListEntriesParams defines the query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID  string              `json:"periodID"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Status    domain.PeriodStatus `json:"status"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	debit, credit := e.Totals()
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			SortOrder:   l.SortOrder,
		}
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     e.EntryDate,
		Description:   e.Description,
		Reference:     e.Reference,
		LegalEntityID: e.LegalEntityID,
		PeriodID:      e.PeriodID,
		Status:        e.Status,
		TotalDebit:    debit,
		TotalCredit:   credit,
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries; list views carry no lines.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
		responses[i].Lines = nil
	}
	return responses
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
	}
}
