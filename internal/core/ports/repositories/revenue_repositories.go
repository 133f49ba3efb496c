package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// RevenueSourceRepository fetches the raw revenue collections of a tenant for a date range.
// Both bounds are inclusive calendar days.
type RevenueSourceRepository interface {
	ListSalesDocuments(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SalesDocument, error)
	ListFiscalSummaries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.FiscalDaySummary, error)
	ListBookEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.BookEntry, error)
}
