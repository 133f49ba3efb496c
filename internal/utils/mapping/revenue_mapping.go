package mapping

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/models"
)

// ToDomainSalesDocument converts a model SalesDocument to a domain SalesDocument
func ToDomainSalesDocument(m models.SalesDocument) domain.SalesDocument {
	return domain.SalesDocument{
		DocumentID:   m.DocumentID,
		Number:       m.Number,
		DocumentType: domain.SalesDocumentType(m.DocumentType),
		IssueDate:    domain.DateOnly(m.IssueDate),
		Total:        m.Total,
		IsDomestic:   m.IsDomestic,
	}
}

// ToDomainFiscalDaySummary converts a model FiscalDaySummary and its linked book entry ids
func ToDomainFiscalDaySummary(m models.FiscalDaySummary, bookEntryIDs []string) domain.FiscalDaySummary {
	return domain.FiscalDaySummary{
		SummaryID:      m.SummaryID,
		Date:           domain.DateOnly(m.SummaryDate),
		TotalAmount:    m.TotalAmount,
		DomesticAmount: m.DomesticAmount,
		BookEntryIDs:   bookEntryIDs,
	}
}

// ToDomainBookEntry converts a model BookEntry to a domain BookEntry
func ToDomainBookEntry(m models.BookEntry) domain.BookEntry {
	return domain.BookEntry{
		EntryID:         m.EntryID,
		Date:            domain.DateOnly(m.EntryDate),
		Amount:          m.Amount,
		SalesDocumentID: FromNullString(m.SalesDocumentID),
	}
}
