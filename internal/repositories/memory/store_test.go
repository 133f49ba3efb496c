package memory_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/core/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/platform/config"
	"github.com/SscSPs/bizledger/internal/repositories/memory"
)

const tenant = "tenant-1"

var june15 = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Enqueue(_ string, event string, _ map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func newStore() *memory.Store {
	s := memory.New()
	s.AddAccount(domain.Account{AccountID: "acc-cash", TenantID: tenant, Code: "1000", Name: "Cash", IsActive: true})
	s.AddAccount(domain.Account{AccountID: "acc-sales", TenantID: tenant, Code: "4000", Name: "Sales", IsActive: true})
	s.AddAccount(domain.Account{AccountID: "acc-old", TenantID: tenant, Code: "9000", Name: "Retired", IsActive: false})
	s.AddPeriod(domain.FiscalPeriod{
		PeriodID:  "p-2024-06",
		TenantID:  tenant,
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	})
	return s
}

func newLedger(s *memory.Store, serial bool, events services.EventPublisher) portssvc.LedgerSvcFacade {
	cfg := &config.Config{
		BalanceTolerance: domain.BalanceTolerance,
		StrictLines:      true,
		SerialCounter:    serial,
		NumberPrefix:     "JE-",
	}
	return services.NewServiceContainer(cfg, memory.NewRepositoryProvider(s), events).Ledger
}

func saleRequest(amount string) dto.PostEntryRequest {
	return dto.PostEntryRequest{
		EntryDate:   june15,
		Description: "Cash sale",
		Lines: []dto.PostEntryLineRequest{
			{AccountCode: "1000", Debit: decimal.RequireFromString(amount)},
			{AccountCode: "4000", Credit: decimal.RequireFromString(amount)},
		},
	}
}

func TestConcurrentPostsGetGaplessUniqueNumbers(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, &recordingPublisher{})

	const posts = 40
	numbers := make([]string, posts)
	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
			if assert.NoError(t, err) {
				numbers[i] = entry.EntryNumber
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, posts)
	for _, n := range numbers {
		assert.False(t, seen[n], "duplicate entry number %s", n)
		seen[n] = true
	}
	for i := 1; i <= posts; i++ {
		assert.True(t, seen[fmt.Sprintf("JE-2024-%06d", i)], "missing number %d", i)
	}
}

func TestPostEntry_PersistsLinesInOrder(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, nil)
	req := saleRequest("99.99")
	req.Lines[0].SortOrder = 2
	req.Lines[1].SortOrder = 1

	posted, err := ledger.PostEntry(context.Background(), tenant, req, "user-1")
	require.NoError(t, err)

	got, err := ledger.GetEntry(context.Background(), tenant, posted.EntryNumber)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "4000", got.Lines[0].AccountCode)
	assert.Equal(t, "acc-sales", got.Lines[0].AccountID)
	assert.Equal(t, "p-2024-06", got.PeriodID)
}

func TestPostEntry_InactiveAccountIsNotResolved(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, nil)
	req := saleRequest("10")
	req.Lines[1].AccountCode = "9000"

	_, err := ledger.PostEntry(context.Background(), tenant, req, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestFailedPostConsumesNoNumber(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, nil)

	req := saleRequest("10")
	req.EntryDate = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC) // no period covers July
	_, err := ledger.PostEntry(context.Background(), tenant, req, "user-1")
	require.ErrorIs(t, err, apperrors.ErrPeriodNotFound)

	entry, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "JE-2024-000001", entry.EntryNumber)
}

func TestClosedPeriodRejectsPosting(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, nil)

	_, err := ledger.ClosePeriod(context.Background(), tenant, "p-2024-06", "user-1")
	require.NoError(t, err)

	_, err = ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPeriodClosed)

	_, err = ledger.OpenPeriod(context.Background(), tenant, "p-2024-06", "user-1")
	require.NoError(t, err)
	_, err = ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	assert.NoError(t, err)
}

// closingAccountReader closes the period while accounts are being resolved, after
// the request passed validation but before the posting unit starts.
type closingAccountReader struct {
	*memory.Store
	periodID string
}

func (r closingAccountReader) FindActiveAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	if _, err := r.Store.UpdatePeriodStatus(ctx, tenantID, r.periodID, domain.PeriodClosed); err != nil {
		return nil, err
	}
	return r.Store.FindActiveAccountsByCodes(ctx, tenantID, codes)
}

func TestPeriodClosedDuringPostingRejectsEntry(t *testing.T) {
	s := newStore()
	numberer := services.NewEntryNumberer(
		services.NewSerializedCounter(s, s, "JE-"),
		services.NewBestEffortCounter(s, s, "JE-"),
	)
	ledger := services.NewLedgerService(s, closingAccountReader{Store: s, periodID: "p-2024-06"}, s, s, numberer)

	_, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	require.ErrorIs(t, err, apperrors.ErrPeriodClosed)

	entries, next, err := s.ListEntries(context.Background(), tenant, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Nil(t, next)
	count, err := s.CountEntriesInYear(context.Background(), tenant, 2024)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDraftLifecycle(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, nil)

	req := saleRequest("25")
	req.Draft = true
	draft, err := ledger.PostEntry(context.Background(), tenant, req, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, draft.Status)

	posted, err := ledger.PostDraft(context.Background(), tenant, draft.EntryNumber, "user-2")
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, posted.Status)
	assert.Equal(t, "user-2", posted.LastUpdatedBy)

	_, err = ledger.PostDraft(context.Background(), tenant, draft.EntryNumber, "user-2")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFallbackNumberingWhenSequencesUnavailable(t *testing.T) {
	s := newStore()
	s.SetNumberingSettings(domain.NumberingSettings{TenantID: tenant, Prefix: "GL-", StartSequence: 500})
	s.SetSequencesAvailable(false)
	events := &recordingPublisher{}
	ledger := newLedger(s, true, events)

	first, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	require.NoError(t, err)
	second, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "GL-2024-000500", first.EntryNumber)
	assert.Equal(t, "GL-2024-000501", second.EntryNumber)
	assert.Equal(t, []string{services.EventNumberingDegraded, services.EventNumberingDegraded}, events.events)
}

func TestNumberingResumesAfterSequencesRecover(t *testing.T) {
	s := newStore()
	events := &recordingPublisher{}
	ledger := newLedger(s, true, events)

	var numbers []string
	post := func() {
		entry, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
		require.NoError(t, err)
		numbers = append(numbers, entry.EntryNumber)
	}

	post()
	s.SetSequencesAvailable(false)
	post()
	post()
	s.SetSequencesAvailable(true)
	for i := 0; i < 4; i++ {
		post()
	}

	assert.Equal(t, []string{
		"JE-2024-000001",
		"JE-2024-000002",
		"JE-2024-000003",
		"JE-2024-000004",
		"JE-2024-000005",
		"JE-2024-000006",
		"JE-2024-000007",
	}, numbers)
	assert.Len(t, events.events, 2)
}

func TestNumberingUsesTenantPrefixInBothModes(t *testing.T) {
	s := newStore()
	s.SetNumberingSettings(domain.NumberingSettings{TenantID: tenant, Prefix: "GL-", StartSequence: 1})
	ledger := newLedger(s, true, nil)

	first, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	require.NoError(t, err)
	s.SetSequencesAvailable(false)
	second, err := ledger.PostEntry(context.Background(), tenant, saleRequest("10"), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "GL-2024-000001", first.EntryNumber)
	assert.Equal(t, "GL-2024-000002", second.EntryNumber)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	s := newStore()
	boom := errors.New("boom")

	err := s.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := s.NextSequence(ctx, tenant, 2024)
		require.NoError(t, err)
		require.NoError(t, s.InsertEntry(ctx, domain.JournalEntry{EntryID: "e1", TenantID: tenant, EntryNumber: "X-1", PeriodID: "p-2024-06"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.FindEntryByNumber(context.Background(), tenant, "X-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	seq, err := s.NextSequence(context.Background(), tenant, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq, "rolled back unit must not consume a sequence value")
}

func TestRunInTx_NestedUnitIsASavepoint(t *testing.T) {
	s := newStore()

	err := s.RunInTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, s.InsertEntry(ctx, domain.JournalEntry{EntryID: "outer", TenantID: tenant, EntryNumber: "X-1", PeriodID: "p-2024-06"}))
		inner := s.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, s.InsertEntry(ctx, domain.JournalEntry{EntryID: "inner", TenantID: tenant, EntryNumber: "X-2", PeriodID: "p-2024-06"}))
			return errors.New("inner failed")
		})
		assert.Error(t, inner)
		return nil
	})
	require.NoError(t, err)

	_, err = s.FindEntryByNumber(context.Background(), tenant, "X-1")
	assert.NoError(t, err)
	_, err = s.FindEntryByNumber(context.Background(), tenant, "X-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInsertEntry_DuplicateNumber(t *testing.T) {
	s := newStore()
	entry := domain.JournalEntry{EntryID: "e1", TenantID: tenant, EntryNumber: "JE-2024-000001", PeriodID: "p-2024-06"}
	require.NoError(t, s.InsertEntry(context.Background(), entry))

	entry.EntryID = "e2"
	err := s.InsertEntry(context.Background(), entry)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestListEntries_Pagination(t *testing.T) {
	s := newStore()
	ledger := newLedger(s, true, nil)
	for i := 0; i < 5; i++ {
		req := saleRequest("1")
		req.EntryDate = june15.AddDate(0, 0, i%2)
		_, err := ledger.PostEntry(context.Background(), tenant, req, "user-1")
		require.NoError(t, err)
	}

	var got []string
	var token *string
	for page := 0; page < 5; page++ {
		resp, err := ledger.ListEntries(context.Background(), tenant, dto.ListEntriesParams{Limit: 2, NextToken: token})
		require.NoError(t, err)
		for _, e := range resp.Entries {
			got = append(got, e.EntryNumber)
		}
		if resp.NextToken == nil {
			break
		}
		token = resp.NextToken
	}

	// June 16 entries (2nd and 4th posts) first, then June 15, number descending within a day.
	assert.Equal(t, []string{"JE-2024-000004", "JE-2024-000002", "JE-2024-000005", "JE-2024-000003", "JE-2024-000001"}, got)
}

func TestListEntries_BadToken(t *testing.T) {
	bad := "%%%"
	_, _, err := newStore().ListEntries(context.Background(), tenant, 10, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLoadSeed(t *testing.T) {
	seed := `{
		"tenants": [{
			"tenantID": "t-seed",
			"accounts": [{"accountID": "a1", "code": "1000", "name": "Cash", "isActive": true}],
			"periods": [{"periodID": "p1", "startDate": "2024-01-01T00:00:00Z", "endDate": "2024-12-31T00:00:00Z", "status": "OPEN"}],
			"numbering": {"prefix": "S-", "startSequence": 7},
			"bookEntries": [{"entryID": "b1", "date": "2024-03-01T00:00:00Z", "amount": "12.50"}]
		}]
	}`
	s := memory.New()
	require.NoError(t, s.LoadSeed(strings.NewReader(seed)))

	accounts, err := s.FindActiveAccountsByCodes(context.Background(), "t-seed", []string{"1000"})
	require.NoError(t, err)
	assert.Equal(t, "t-seed", accounts["1000"].TenantID)

	settings, err := s.FindNumberingSettings(context.Background(), "t-seed")
	require.NoError(t, err)
	assert.Equal(t, int64(7), settings.StartSequence)

	book, err := s.ListBookEntries(context.Background(), "t-seed", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(book[0].Amount))

	assert.Error(t, s.LoadSeed(strings.NewReader(`{"tenants": [{}]}`)))
}
