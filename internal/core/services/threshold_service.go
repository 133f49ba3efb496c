package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/core/threshold"
	"github.com/SscSPs/bizledger/internal/dto"
)

// thresholdService loads the revenue sources and runs the threshold engine over them.
type thresholdService struct {
	BaseService
	revenue portsrepo.RevenueSourceRepository
	limits  map[threshold.Window]decimal.Decimal
}

// NewThresholdService creates a new ThresholdService. A zero limit disables breach detection.
func NewThresholdService(revenue portsrepo.RevenueSourceRepository, calendarLimit, rollingLimit decimal.Decimal) portssvc.ThresholdSvcFacade {
	return &thresholdService{
		revenue: revenue,
		limits: map[threshold.Window]decimal.Decimal{
			threshold.WindowCalendarYear: calendarLimit,
			threshold.WindowRolling365:   rollingLimit,
		},
	}
}

var _ portssvc.ThresholdSvcFacade = (*thresholdService)(nil)

func (s *thresholdService) Report(ctx context.Context, tenantID string, window threshold.Window, asOf time.Time) (*dto.ThresholdReport, error) {
	if _, err := threshold.ParseWindow(string(window)); err != nil {
		return nil, err
	}
	from, to := threshold.Range(window, asOf)

	var (
		src threshold.Sources
		err error
	)
	if src.SalesDocuments, err = s.revenue.ListSalesDocuments(ctx, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("failed to load sales documents: %w", err)
	}
	if src.FiscalSummaries, err = s.revenue.ListFiscalSummaries(ctx, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("failed to load fiscal summaries: %w", err)
	}
	if src.BookEntries, err = s.revenue.ListBookEntries(ctx, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("failed to load book entries: %w", err)
	}

	buckets := threshold.BuildBuckets(window, asOf, src)
	status := threshold.Evaluate(buckets, s.limits[window])
	if status.Breached {
		s.LogWarn(ctx, "Revenue threshold exceeded",
			slog.String("tenant_id", tenantID),
			slog.String("window", string(window)),
			slog.String("total", status.Total.String()),
			slog.String("limit", status.Limit.String()))
	}

	return &dto.ThresholdReport{
		Window:  window,
		AsOf:    asOf,
		From:    from,
		To:      to,
		Buckets: buckets,
		Status:  status,
	}, nil
}
