package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields are the audit columns shared by mutable tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// EntryStatus mirrors the journal_entries.status check constraint.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID       string         `db:"entry_id"`
	TenantID      string         `db:"tenant_id"`
	EntryNumber   string         `db:"entry_number"` // unique per tenant
	EntryDate     time.Time      `db:"entry_date"`
	Description   string         `db:"description"`
	Reference     string         `db:"reference"`
	LegalEntityID sql.NullString `db:"legal_entity_id"`
	PeriodID      string         `db:"period_id"`
	Status        EntryStatus    `db:"status"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. Amounts are numeric(20,4).
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"code"` // joined from accounts
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	SortOrder   int             `db:"sort_order"`
}

// FiscalPeriod is a row of the fiscal_periods table.
type FiscalPeriod struct {
	PeriodID  string    `db:"period_id"`
	TenantID  string    `db:"tenant_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
}

// NumberingSettings is a row of the numbering_settings table.
type NumberingSettings struct {
	TenantID      string `db:"tenant_id"`
	Prefix        string `db:"prefix"`
	StartSequence int64  `db:"start_sequence"`
}
