package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
)

// PgxSequenceRepository keeps one counter row per tenant and fiscal year.
type PgxSequenceRepository struct {
	BaseRepository
	tx *PgxTxManager
}

func newPgxSequenceRepository(pool *pgxpool.Pool, tx *PgxTxManager) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}, tx: tx}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextSequence serializes on a per-tenant advisory lock held until the posting
// transaction ends, then bumps the counter row. The counter never falls behind
// start_sequence plus the entries already stored for the year, so numbers handed
// out by the best-effort counter are skipped. Both statements run in a savepoint
// so a missing counter table or function does not abort the caller's transaction.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, tenantID string, year int) (int64, error) {
	upsert := `
		WITH used AS (
			SELECT COALESCE((SELECT start_sequence FROM numbering_settings WHERE tenant_id = $1), 1)
				+ (SELECT COUNT(*) FROM journal_entries
				   WHERE tenant_id = $1 AND entry_date >= $3 AND entry_date < $4) AS floor_value
		)
		INSERT INTO journal_sequences (tenant_id, fiscal_year, last_value)
		SELECT $1, $2, floor_value FROM used
		ON CONFLICT (tenant_id, fiscal_year)
		DO UPDATE SET last_value = GREATEST(journal_sequences.last_value + 1, EXCLUDED.last_value)
		RETURNING last_value;
	`
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var seq int64
	err := r.tx.RunInTx(ctx, func(spCtx context.Context) error {
		q := r.conn(spCtx)
		if _, err := q.Exec(spCtx, `SELECT pg_advisory_xact_lock(hashtext($1));`, "journal_seq:"+tenantID); err != nil {
			return err
		}
		return q.QueryRow(spCtx, upsert, tenantID, year, from, from.AddDate(1, 0, 0)).Scan(&seq)
	})
	if err != nil {
		switch pgErrorCode(err) {
		case pgUndefinedFunction, pgUndefinedTable, pgLockNotAvailable:
			return 0, fmt.Errorf("%w: %v", apperrors.ErrCounterUnavailable, err)
		}
		return 0, apperrors.NewAppError(500, "failed to advance journal sequence", err)
	}
	return seq, nil
}

type PgxNumberingSettingsRepository struct {
	BaseRepository
}

func newPgxNumberingSettingsRepository(pool *pgxpool.Pool) portsrepo.NumberingSettingsReader {
	return &PgxNumberingSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NumberingSettingsReader = (*PgxNumberingSettingsRepository)(nil)

// FindNumberingSettings reads the tenant's numbering pattern.
func (r *PgxNumberingSettingsRepository) FindNumberingSettings(ctx context.Context, tenantID string) (*domain.NumberingSettings, error) {
	query := `SELECT tenant_id, prefix, start_sequence FROM numbering_settings WHERE tenant_id = $1;`
	var m models.NumberingSettings
	if err := r.conn(ctx).QueryRow(ctx, query, tenantID).Scan(&m.TenantID, &m.Prefix, &m.StartSequence); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("numbering settings of tenant " + tenantID)
		}
		return nil, apperrors.NewAppError(500, "failed to read numbering settings", err)
	}
	settings := mapping.ToDomainNumberingSettings(m)
	return &settings, nil
}
