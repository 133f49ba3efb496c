package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository onto one pool and one transaction manager.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	txManager := newPgxTxManager(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:     txManager,
		AccountRepo:   newPgxAccountRepository(dbPool),
		PeriodRepo:    newPgxFiscalPeriodRepository(dbPool),
		JournalRepo:   journalRepo,
		SequenceRepo:  newPgxSequenceRepository(dbPool, txManager),
		NumberingRepo: newPgxNumberingSettingsRepository(dbPool),
		RevenueRepo:   newPgxRevenueRepository(dbPool),
	}
}
