package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SalesDocument is a row of the sales_documents table.
type SalesDocument struct {
	DocumentID   string          `db:"document_id"`
	TenantID     string          `db:"tenant_id"`
	Number       string          `db:"number"`
	DocumentType string          `db:"document_type"`
	IssueDate    time.Time       `db:"issue_date"`
	Total        decimal.Decimal `db:"total"`
	IsDomestic   bool            `db:"is_domestic"`
}

// FiscalDaySummary is a row of the fiscal_day_summaries table. Linked book entries
// live in fiscal_summary_book_entries.
type FiscalDaySummary struct {
	SummaryID      string          `db:"summary_id"`
	TenantID       string          `db:"tenant_id"`
	SummaryDate    time.Time       `db:"summary_date"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	DomesticAmount decimal.Decimal `db:"domestic_amount"`
}

// BookEntry is a row of the book_entries table.
type BookEntry struct {
	EntryID         string          `db:"entry_id"`
	TenantID        string          `db:"tenant_id"`
	EntryDate       time.Time       `db:"entry_date"`
	Amount          decimal.Decimal `db:"amount"`
	SalesDocumentID sql.NullString  `db:"sales_document_id"`
}
