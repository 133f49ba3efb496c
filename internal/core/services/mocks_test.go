package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/core/services"
)

// --- Mock TransactionManager ---
// The unit is simulated by running fn directly; Called records how often a unit was opened.
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindActiveAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock FiscalPeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodRepository = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) LockPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, tenantID, periodID string, status domain.PeriodStatus) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SumEntryLines(ctx context.Context, entryID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) CountEntriesInYear(ctx context.Context, tenantID string, year int) (int64, error) {
	args := m.Called(ctx, tenantID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) LockEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock EntryCounter ---
type MockEntryCounter struct {
	mock.Mock
}

var _ services.EntryCounter = (*MockEntryCounter)(nil)

func (m *MockEntryCounter) NextEntryNumber(ctx context.Context, tenantID string, entryDate time.Time) (string, error) {
	args := m.Called(ctx, tenantID, entryDate)
	return args.String(0), args.Error(1)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextSequence(ctx context.Context, tenantID string, year int) (int64, error) {
	args := m.Called(ctx, tenantID, year)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock NumberingSettingsReader ---
type MockNumberingSettings struct {
	mock.Mock
}

var _ portsrepo.NumberingSettingsReader = (*MockNumberingSettings)(nil)

func (m *MockNumberingSettings) FindNumberingSettings(ctx context.Context, tenantID string) (*domain.NumberingSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NumberingSettings), args.Error(1)
}

// --- Mock RevenueSourceRepository ---
type MockRevenueRepository struct {
	mock.Mock
}

var _ portsrepo.RevenueSourceRepository = (*MockRevenueRepository)(nil)

func (m *MockRevenueRepository) ListSalesDocuments(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SalesDocument, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesDocument), args.Error(1)
}

func (m *MockRevenueRepository) ListFiscalSummaries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.FiscalDaySummary, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalDaySummary), args.Error(1)
}

func (m *MockRevenueRepository) ListBookEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.BookEntry, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookEntry), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ services.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
