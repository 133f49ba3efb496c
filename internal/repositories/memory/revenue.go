package memory

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// tenantRow tags a revenue row with its tenant; the domain types carry none.
type tenantRow[T any] struct {
	tenantID string
	row      T
}

func inRange(date, from, to time.Time) bool {
	d := domain.DateOnly(date)
	return !d.Before(domain.DateOnly(from)) && !d.After(domain.DateOnly(to))
}

func (s *Store) ListSalesDocuments(_ context.Context, tenantID string, from, to time.Time) ([]domain.SalesDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []domain.SalesDocument{}
	for _, r := range s.data.sales {
		if r.tenantID == tenantID && inRange(r.row.IssueDate, from, to) {
			docs = append(docs, r.row)
		}
	}
	return docs, nil
}

func (s *Store) ListFiscalSummaries(_ context.Context, tenantID string, from, to time.Time) ([]domain.FiscalDaySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := []domain.FiscalDaySummary{}
	for _, r := range s.data.fiscal {
		if r.tenantID == tenantID && inRange(r.row.Date, from, to) {
			summaries = append(summaries, r.row)
		}
	}
	return summaries, nil
}

func (s *Store) ListBookEntries(_ context.Context, tenantID string, from, to time.Time) ([]domain.BookEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []domain.BookEntry{}
	for _, r := range s.data.book {
		if r.tenantID == tenantID && inRange(r.row.Date, from, to) {
			entries = append(entries, r.row)
		}
	}
	return entries, nil
}
