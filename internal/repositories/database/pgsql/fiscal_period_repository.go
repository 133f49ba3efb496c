package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepository {
	return &PgxFiscalPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodRepository = (*PgxFiscalPeriodRepository)(nil)

// LockPeriodForDate takes FOR SHARE on the covering period. Concurrent postings share
// the lock; UpdatePeriodStatus waits until they commit.
func (r *PgxFiscalPeriodRepository) LockPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT period_id, tenant_id, start_date, end_date, status
		FROM fiscal_periods
		WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC
		LIMIT 1
		FOR SHARE;
	`
	var m models.FiscalPeriod
	err := r.conn(ctx).QueryRow(ctx, query, tenantID, domain.DateOnly(date)).
		Scan(&m.PeriodID, &m.TenantID, &m.StartDate, &m.EndDate, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPeriodNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock fiscal period", err)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// UpdatePeriodStatus sets the status; the row update takes the exclusive lock.
func (r *PgxFiscalPeriodRepository) UpdatePeriodStatus(ctx context.Context, tenantID, periodID string, status domain.PeriodStatus) (*domain.FiscalPeriod, error) {
	query := `
		UPDATE fiscal_periods
		SET status = $3, last_updated_at = NOW()
		WHERE tenant_id = $1 AND period_id = $2
		RETURNING period_id, tenant_id, start_date, end_date, status;
	`
	var m models.FiscalPeriod
	err := r.conn(ctx).QueryRow(ctx, query, tenantID, periodID, string(status)).
		Scan(&m.PeriodID, &m.TenantID, &m.StartDate, &m.EndDate, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fiscal period " + periodID)
		}
		return nil, apperrors.NewAppError(500, "failed to update fiscal period "+periodID, err)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}
