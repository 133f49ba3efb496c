package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByNumber retrieves an entry and its lines ordered by sort position.
	FindEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers, newest first.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// SumEntryLines re-reads the persisted debit and credit totals of an entry.
	SumEntryLines(ctx context.Context, entryID string) (debit, credit decimal.Decimal, err error)

	// CountEntriesInYear counts the tenant's entries dated in year.
	CountEntriesInYear(ctx context.Context, tenantID string, year int) (int64, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// InsertEntry writes the header and all lines of entry.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error

	// LockEntryByNumber retrieves an entry with its lines and holds an exclusive lock on the header.
	LockEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error)

	// UpdateEntryStatus moves an entry to status.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
