package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically.
type TransactionManager interface {
	// RunInTx executes fn inside one transaction. Repository calls made with the
	// context handed to fn join that transaction; a nested RunInTx becomes a savepoint.
	// The transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
