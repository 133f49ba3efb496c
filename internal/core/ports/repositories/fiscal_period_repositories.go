package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// FiscalPeriodRepository defines operations on the period table.
type FiscalPeriodRepository interface {
	// LockPeriodForDate returns the tenant's period covering date and holds a shared
	// lock on it until the surrounding transaction ends. Returns apperrors.ErrPeriodNotFound
	// when no period covers the date. Closed periods are returned as-is.
	LockPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// UpdatePeriodStatus sets the period's status under an exclusive lock.
	UpdatePeriodStatus(ctx context.Context, tenantID, periodID string, status domain.PeriodStatus) (*domain.FiscalPeriod, error)
}
