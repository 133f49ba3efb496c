package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/utils/pagination"
)

// Account reads

func (s *Store) FindActiveAccountsByCodes(_ context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]domain.Account, len(codes))
	for _, a := range s.data.accounts {
		if a.TenantID == tenantID && a.IsActive && slices.Contains(codes, a.Code) {
			result[a.Code] = a
		}
	}
	return result, nil
}

func (s *Store) FindAccountByID(_ context.Context, tenantID, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data.accounts[accountID]
	if !ok || a.TenantID != tenantID {
		return nil, notFound("account " + accountID)
	}
	return &a, nil
}

// Fiscal periods

// LockPeriodForDate needs no row lock here: a unit of work already excludes every other unit.
func (s *Store) LockPeriodForDate(_ context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.FiscalPeriod
	for _, p := range s.data.periods {
		if p.TenantID != tenantID || !p.Covers(date) {
			continue
		}
		if found == nil || p.StartDate.After(found.StartDate) {
			period := p
			found = &period
		}
	}
	if found == nil {
		return nil, apperrors.ErrPeriodNotFound
	}
	return found, nil
}

func (s *Store) UpdatePeriodStatus(_ context.Context, tenantID, periodID string, status domain.PeriodStatus) (*domain.FiscalPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.periods[periodID]
	if !ok || p.TenantID != tenantID {
		return nil, notFound("fiscal period " + periodID)
	}
	p.Status = status
	s.data.periods[periodID] = p
	return &p, nil
}

// Journal entries

func (s *Store) InsertEntry(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := entryKey(entry.TenantID, entry.EntryNumber)
	if _, exists := s.data.numbers[key]; exists {
		return fmt.Errorf("%w: entry number %s is already used", apperrors.ErrDuplicate, entry.EntryNumber)
	}
	if _, ok := s.data.periods[entry.PeriodID]; !ok {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodNotFound, entry.PeriodID)
	}
	for _, l := range entry.Lines {
		if a, ok := s.data.accounts[l.AccountID]; !ok || a.TenantID != entry.TenantID {
			return fmt.Errorf("%w: line references an unknown account", apperrors.ErrAccountNotFound)
		}
	}

	entry.EntryDate = domain.DateOnly(entry.EntryDate)
	entry.Lines = slices.Clone(entry.Lines)
	s.data.entries[entry.EntryID] = entry
	s.data.numbers[key] = entry.EntryID
	return nil
}

func (s *Store) FindEntryByNumber(_ context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entryByNumber(tenantID, entryNumber)
}

func (s *Store) LockEntryByNumber(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	return s.FindEntryByNumber(ctx, tenantID, entryNumber)
}

func (s *Store) entryByNumber(tenantID, entryNumber string) (*domain.JournalEntry, error) {
	id, ok := s.data.numbers[entryKey(tenantID, entryNumber)]
	if !ok {
		return nil, notFound("journal entry " + entryNumber)
	}
	e := s.data.entries[id]
	e.Lines = slices.Clone(e.Lines)
	slices.SortStableFunc(e.Lines, func(a, b domain.JournalLine) int {
		return a.SortOrder - b.SortOrder
	})
	return &e, nil
}

func (s *Store) ListEntries(_ context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var cursor *pagination.EntryCursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeEntryCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	all := make([]domain.JournalEntry, 0, len(s.data.entries))
	for _, e := range s.data.entries {
		if e.TenantID == tenantID {
			e.Lines = nil
			all = append(all, e)
		}
	}
	s.mu.RUnlock()

	newestFirst := func(a, b domain.JournalEntry) int {
		if c := b.EntryDate.Compare(a.EntryDate); c != 0 {
			return c
		}
		return strings.Compare(b.EntryNumber, a.EntryNumber)
	}
	slices.SortFunc(all, newestFirst)

	page := make([]domain.JournalEntry, 0, limit)
	for _, e := range all {
		if cursor != nil && newestFirst(e, domain.JournalEntry{EntryDate: cursor.EntryDate, EntryNumber: cursor.EntryNumber}) <= 0 {
			continue
		}
		page = append(page, e)
		if len(page) > limit {
			break
		}
	}

	var next *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeEntryCursor(pagination.EntryCursor{EntryDate: last.EntryDate, EntryNumber: last.EntryNumber})
		next = &token
		page = page[:limit]
	}
	return page, next, nil
}

func (s *Store) SumEntryLines(_ context.Context, entryID string) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data.entries[entryID]
	if !ok {
		return decimal.Zero, decimal.Zero, notFound("journal entry " + entryID)
	}
	debit, credit := e.Totals()
	return debit, credit, nil
}

func (s *Store) CountEntriesInYear(_ context.Context, tenantID string, year int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, e := range s.data.entries {
		if e.TenantID == tenantID && e.EntryDate.Year() == year {
			count++
		}
	}
	return count, nil
}

func (s *Store) UpdateEntryStatus(_ context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data.entries[entryID]
	if !ok {
		return notFound("journal entry " + entryID)
	}
	e.Status = status
	e.Touch(updatedBy, updatedAt)
	s.data.entries[entryID] = e
	return nil
}

// Numbering

func (s *Store) NextSequence(_ context.Context, tenantID string, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sequencesDisabled {
		return 0, fmt.Errorf("%w: sequences disabled", apperrors.ErrCounterUnavailable)
	}
	start := domain.DefaultNumberingSettings(tenantID).StartSequence
	if settings, found := s.data.settings[tenantID]; found {
		start = settings.StartSequence
	}
	// Skip past numbers the best-effort counter handed out while sequences were down.
	next := start
	for _, e := range s.data.entries {
		if e.TenantID == tenantID && e.EntryDate.Year() == year {
			next++
		}
	}

	key := sequenceKey{tenantID: tenantID, year: year}
	if last, ok := s.data.sequences[key]; ok && last+1 > next {
		next = last + 1
	}
	s.data.sequences[key] = next
	return next, nil
}

func (s *Store) FindNumberingSettings(_ context.Context, tenantID string) (*domain.NumberingSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.data.settings[tenantID]
	if !ok {
		return nil, notFound("numbering settings of tenant " + tenantID)
	}
	return &settings, nil
}
