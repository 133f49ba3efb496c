// Package memory is an in-process implementation of every repository port. Units of
// work are serialized by one mutex and rolled back by restoring a snapshot, which
// gives the same all-or-nothing contract as the Postgres adapter.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
)

type unitKey struct{}

type sequenceKey struct {
	tenantID string
	year     int
}

// state is everything a rollback restores.
type state struct {
	accounts  map[string]domain.Account      // by account id
	periods   map[string]domain.FiscalPeriod // by period id
	entries   map[string]domain.JournalEntry // by entry id
	numbers   map[string]string              // tenant/number -> entry id
	sequences map[sequenceKey]int64
	settings  map[string]domain.NumberingSettings

	sales  []tenantRow[domain.SalesDocument]
	fiscal []tenantRow[domain.FiscalDaySummary]
	book   []tenantRow[domain.BookEntry]
}

func (st *state) clone() *state {
	return &state{
		accounts:  maps.Clone(st.accounts),
		periods:   maps.Clone(st.periods),
		entries:   maps.Clone(st.entries),
		numbers:   maps.Clone(st.numbers),
		sequences: maps.Clone(st.sequences),
		settings:  maps.Clone(st.settings),
		sales:     slices.Clone(st.sales),
		fiscal:    slices.Clone(st.fiscal),
		book:      slices.Clone(st.book),
	}
}

// Store keeps all data in maps. The zero value is not usable; call New.
type Store struct {
	unit sync.Mutex   // held for the whole of an outermost unit of work
	mu   sync.RWMutex // guards data

	data *state

	sequencesDisabled bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: &state{
			accounts:  make(map[string]domain.Account),
			periods:   make(map[string]domain.FiscalPeriod),
			entries:   make(map[string]domain.JournalEntry),
			numbers:   make(map[string]string),
			sequences: make(map[sequenceKey]int64),
			settings:  make(map[string]domain.NumberingSettings),
		},
	}
}

var (
	_ portsrepo.TransactionManager      = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.FiscalPeriodRepository  = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.SequenceRepository      = (*Store)(nil)
	_ portsrepo.NumberingSettingsReader = (*Store)(nil)
	_ portsrepo.RevenueSourceRepository = (*Store)(nil)
)

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     s,
		AccountRepo:   s,
		PeriodRepo:    s,
		JournalRepo:   s,
		SequenceRepo:  s,
		NumberingRepo: s,
		RevenueRepo:   s,
	}
}

// RunInTx runs fn as one unit of work. Outermost units exclude each other; a nested
// unit behaves like a savepoint and only undoes its own changes on error.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(unitKey{}) == nil {
		s.unit.Lock()
		defer s.unit.Unlock()
		ctx = context.WithValue(ctx, unitKey{}, true)
	}

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		} else if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(ctx)
}

func (s *Store) restore(snapshot *state) {
	s.mu.Lock()
	s.data = snapshot
	s.mu.Unlock()
}

// SetSequencesAvailable toggles the serialized counter. A disabled counter answers
// every NextSequence with apperrors.ErrCounterUnavailable.
func (s *Store) SetSequencesAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequencesDisabled = !available
}

func entryKey(tenantID, entryNumber string) string {
	return tenantID + "/" + entryNumber
}

func notFound(what string) error {
	return apperrors.NewNotFoundError(what)
}
