package memory

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// AddAccount stores an account. The ledger itself never writes accounts.
func (s *Store) AddAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.accounts[a.AccountID] = a
}

// AddPeriod stores a fiscal period with its dates truncated to calendar days.
func (s *Store) AddPeriod(p domain.FiscalPeriod) {
	p.StartDate = domain.DateOnly(p.StartDate)
	p.EndDate = domain.DateOnly(p.EndDate)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.periods[p.PeriodID] = p
}

// SetNumberingSettings stores the tenant's numbering pattern.
func (s *Store) SetNumberingSettings(settings domain.NumberingSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.settings[settings.TenantID] = settings
}

func (s *Store) AddSalesDocument(tenantID string, doc domain.SalesDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.sales = append(s.data.sales, tenantRow[domain.SalesDocument]{tenantID: tenantID, row: doc})
}

func (s *Store) AddFiscalSummary(tenantID string, summary domain.FiscalDaySummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.fiscal = append(s.data.fiscal, tenantRow[domain.FiscalDaySummary]{tenantID: tenantID, row: summary})
}

func (s *Store) AddBookEntry(tenantID string, entry domain.BookEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.book = append(s.data.book, tenantRow[domain.BookEntry]{tenantID: tenantID, row: entry})
}

// TenantSeed is the reference data of one tenant.
type TenantSeed struct {
	TenantID        string                    `json:"tenantID"`
	Accounts        []domain.Account          `json:"accounts"`
	Periods         []domain.FiscalPeriod     `json:"periods"`
	Numbering       *domain.NumberingSettings `json:"numbering,omitempty"`
	SalesDocuments  []domain.SalesDocument    `json:"salesDocuments"`
	FiscalSummaries []domain.FiscalDaySummary `json:"fiscalSummaries"`
	BookEntries     []domain.BookEntry        `json:"bookEntries"`
}

// Seed is the layout of a memory seed file.
type Seed struct {
	Tenants []TenantSeed `json:"tenants"`
}

// LoadSeed reads a JSON seed and stores its rows. Rows inherit the tenant they are listed under.
func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode memory seed: %w", err)
	}

	for _, t := range seed.Tenants {
		if t.TenantID == "" {
			return fmt.Errorf("memory seed: tenant without tenantID")
		}
		for _, a := range t.Accounts {
			a.TenantID = t.TenantID
			s.AddAccount(a)
		}
		for _, p := range t.Periods {
			p.TenantID = t.TenantID
			s.AddPeriod(p)
		}
		if t.Numbering != nil {
			settings := *t.Numbering
			settings.TenantID = t.TenantID
			s.SetNumberingSettings(settings)
		}
		for _, d := range t.SalesDocuments {
			s.AddSalesDocument(t.TenantID, d)
		}
		for _, f := range t.FiscalSummaries {
			s.AddFiscalSummary(t.TenantID, f)
		}
		for _, b := range t.BookEntries {
			s.AddBookEntry(t.TenantID, b)
		}
	}
	return nil
}
