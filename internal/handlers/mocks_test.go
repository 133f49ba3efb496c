package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/core/threshold"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostEntry(ctx context.Context, tenantID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) PostDraft(ctx context.Context, tenantID, entryNumber, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryNumber, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) ClosePeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockLedgerService) OpenPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock TaxService ---
type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) CalculateLine(ctx context.Context, req dto.CalculateLineRequest) (*dto.LineAmountsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LineAmountsResponse), args.Error(1)
}

func (m *MockTaxService) CalculateDocument(ctx context.Context, req dto.CalculateDocumentRequest) (*dto.DocumentTotalsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DocumentTotalsResponse), args.Error(1)
}

var _ portssvc.TaxSvcFacade = (*MockTaxService)(nil)

// --- Mock ThresholdService ---
type MockThresholdService struct {
	mock.Mock
}

func (m *MockThresholdService) Report(ctx context.Context, tenantID string, window threshold.Window, asOf time.Time) (*dto.ThresholdReport, error) {
	args := m.Called(ctx, tenantID, window, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ThresholdReport), args.Error(1)
}

var _ portssvc.ThresholdSvcFacade = (*MockThresholdService)(nil)
