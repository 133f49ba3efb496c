// Package threshold folds already-fetched revenue sources into monthly running
// totals that are compared against a regulatory revenue ceiling. It performs no I/O.
package threshold

import (
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Sources are the three revenue collections the engine merges.
type Sources struct {
	SalesDocuments  []domain.SalesDocument
	FiscalSummaries []domain.FiscalDaySummary
	BookEntries     []domain.BookEntry // optional
}

// MonthlyBucket holds one month's per-source subtotals and the running total.
type MonthlyBucket struct {
	Month      time.Time       `json:"month"` // first day of the calendar month
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Sales      decimal.Decimal `json:"sales"`
	Fiscal     decimal.Decimal `json:"fiscal"`
	Book       decimal.Decimal `json:"book"`
	Total      decimal.Decimal `json:"total"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Normalize turns the sources into revenue records, applying the window's
// filters and dropping book entries already counted through another source.
func Normalize(window Window, src Sources) []domain.RevenueRecord {
	records := make([]domain.RevenueRecord, 0, len(src.SalesDocuments)+len(src.FiscalSummaries)+len(src.BookEntries))

	for _, doc := range src.SalesDocuments {
		if !doc.DocumentType.IsBinding() {
			continue
		}
		if window == WindowRolling365 && !doc.IsDomestic {
			continue
		}
		records = append(records, domain.RevenueRecord{
			SourceID: doc.DocumentID,
			Source:   domain.SourceSales,
			Date:     doc.IssueDate,
			Amount:   doc.Total,
		})
	}

	inFiscal := make(map[string]struct{})
	for _, summary := range src.FiscalSummaries {
		for _, id := range summary.BookEntryIDs {
			inFiscal[id] = struct{}{}
		}
		amount := summary.TotalAmount
		if window == WindowRolling365 {
			amount = summary.DomesticAmount
		}
		records = append(records, domain.RevenueRecord{
			SourceID: summary.SummaryID,
			Source:   domain.SourceFiscal,
			Date:     summary.Date,
			Amount:   amount,
		})
	}

	for _, entry := range src.BookEntries {
		if entry.SalesDocumentID != nil && *entry.SalesDocumentID != "" {
			continue
		}
		if _, counted := inFiscal[entry.EntryID]; counted {
			continue
		}
		records = append(records, domain.RevenueRecord{
			SourceID: entry.EntryID,
			Source:   domain.SourceBook,
			Date:     entry.Date,
			Amount:   entry.Amount,
			LinkedID: entry.SalesDocumentID,
		})
	}
	return records
}

// BuildBuckets returns the twelve monthly buckets of the window ending at asOf,
// oldest first. Records outside the window are ignored. The inputs are not modified.
func BuildBuckets(window Window, asOf time.Time, src Sources) []MonthlyBucket {
	spans := Spans(window, asOf)
	buckets := make([]MonthlyBucket, len(spans))
	for i, s := range spans {
		buckets[i] = MonthlyBucket{
			Month:      time.Date(s.End.Year(), s.End.Month(), 1, 0, 0, 0, 0, time.UTC),
			Start:      s.Start,
			End:        s.End,
			Sales:      decimal.Zero,
			Fiscal:     decimal.Zero,
			Book:       decimal.Zero,
			Total:      decimal.Zero,
			Cumulative: decimal.Zero,
		}
	}

	for _, rec := range Normalize(window, src) {
		for i := range buckets {
			if !spans[i].Contains(rec.Date) {
				continue
			}
			b := &buckets[i]
			switch rec.Source {
			case domain.SourceSales:
				b.Sales = b.Sales.Add(rec.Amount)
			case domain.SourceFiscal:
				b.Fiscal = b.Fiscal.Add(rec.Amount)
			case domain.SourceBook:
				b.Book = b.Book.Add(rec.Amount)
			}
			b.Total = b.Total.Add(rec.Amount)
			break
		}
	}

	running := decimal.Zero
	for i := range buckets {
		running = running.Add(buckets[i].Total)
		buckets[i].Cumulative = running
	}
	return buckets
}
