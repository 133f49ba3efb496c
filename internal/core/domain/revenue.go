package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesDocumentType is the kind of an issued sales document.
type SalesDocumentType string

const (
	SalesInvoice    SalesDocumentType = "INVOICE"
	SalesCreditNote SalesDocumentType = "CREDIT_NOTE"
	SalesProforma   SalesDocumentType = "PROFORMA"
	SalesAdvance    SalesDocumentType = "ADVANCE"
)

// IsBinding reports whether the document type counts as revenue.
// Pro-forma and advance-payment documents are non-binding.
func (t SalesDocumentType) IsBinding() bool {
	return t != SalesProforma && t != SalesAdvance
}

// SalesDocument is a posted sales document as fetched for revenue aggregation.
type SalesDocument struct {
	DocumentID   string            `json:"documentID"`
	Number       string            `json:"number"`
	DocumentType SalesDocumentType `json:"documentType"`
	IssueDate    time.Time         `json:"issueDate"`
	Total        decimal.Decimal   `json:"total"`
	IsDomestic   bool              `json:"isDomestic"` // counterparty is a domestic party
}

// FiscalDaySummary is a fiscal-device daily summary.
type FiscalDaySummary struct {
	SummaryID      string          `json:"summaryID"`
	Date           time.Time       `json:"date"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DomesticAmount decimal.Decimal `json:"domesticAmount"`
	BookEntryIDs   []string        `json:"bookEntryIDs"` // book entries already represented in this summary
}

// BookEntry is an entry of the independent revenue book.
type BookEntry struct {
	EntryID         string          `json:"entryID"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	SalesDocumentID *string         `json:"salesDocumentID,omitempty"`
}

// RevenueSource tags where a revenue record came from.
type RevenueSource string

const (
	SourceSales  RevenueSource = "SALES"
	SourceFiscal RevenueSource = "FISCAL"
	SourceBook   RevenueSource = "BOOK"
)

// RevenueRecord is the normalized view over the three revenue sources.
type RevenueRecord struct {
	SourceID string          `json:"sourceID"`
	Source   RevenueSource   `json:"source"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	LinkedID *string         `json:"linkedID,omitempty"` // used for deduplication only
}
