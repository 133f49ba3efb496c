package repositories

import (
	"context"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// AccountReader defines read operations for account data. The ledger never writes accounts.
type AccountReader interface {
	// FindActiveAccountsByCodes resolves account codes of a tenant to active accounts.
	// Codes that do not resolve are simply missing from the returned map.
	FindActiveAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)

	// FindAccountByID retrieves an account of the tenant, active or not.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
}
