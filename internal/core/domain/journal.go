package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// BalanceTolerance is the default rounding tolerance for debit/credit equality.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalEntry is the header of a balanced, dated accounting record.
type JournalEntry struct {
	EntryID       string        `json:"entryID"` // Primary Key (UUID)
	TenantID      string        `json:"tenantID"`
	EntryNumber   string        `json:"entryNumber"` // Sequential, tenant-scoped, system assigned
	EntryDate     time.Time     `json:"entryDate"`
	Description   string        `json:"description"`
	Reference     string        `json:"reference"`
	LegalEntityID *string       `json:"legalEntityID,omitempty"`
	PeriodID      string        `json:"periodID"`
	Status        EntryStatus   `json:"status"`
	Lines         []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	SortOrder   int             `json:"sortOrder"`
}

// HasBothSides reports whether the line carries a non-zero debit and credit at once.
func (l JournalLine) HasBothSides() bool {
	return !l.Debit.IsZero() && !l.Credit.IsZero()
}

// IsEmpty reports whether neither side carries an amount.
func (l JournalLine) IsEmpty() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// Totals returns the debit and credit sums of the entry's lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}
