package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	"github.com/SscSPs/bizledger/internal/models"
	"github.com/SscSPs/bizledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindActiveAccountsByCodes resolves codes in one round trip. Inactive and unknown codes are absent.
func (r *PgxAccountRepository) FindActiveAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	query := `
		SELECT account_id, tenant_id, code, name, is_active
		FROM accounts
		WHERE tenant_id = $1 AND code = ANY($2) AND is_active = TRUE;
	`
	rows, err := r.conn(ctx).Query(ctx, query, tenantID, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by code", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.TenantID, &m.Code, &m.Name, &m.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// FindAccountByID retrieves an account of the tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, tenant_id, code, name, is_active
		FROM accounts
		WHERE tenant_id = $1 AND account_id = $2;
	`
	var m models.Account
	err := r.conn(ctx).QueryRow(ctx, query, tenantID, accountID).Scan(&m.AccountID, &m.TenantID, &m.Code, &m.Name, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}
