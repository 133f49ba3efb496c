package services

import (
	"context"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/dto"
)

// LedgerWriterSvc is the sole write path into the ledger.
type LedgerWriterSvc interface {
	// PostEntry resolves account codes, numbers the entry and commits it atomically.
	PostEntry(ctx context.Context, tenantID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostDraft moves a draft entry to posted, re-checking balance and period.
	PostDraft(ctx context.Context, tenantID, entryNumber, userID string) (*domain.JournalEntry, error)
}

// LedgerReaderSvc defines read operations for journal entries
type LedgerReaderSvc interface {
	GetEntry(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// PeriodSvc locks and unlocks fiscal periods.
type PeriodSvc interface {
	ClosePeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error)
	OpenPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
	PeriodSvc
}
