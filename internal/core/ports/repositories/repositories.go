package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager     TransactionManager
	AccountRepo   AccountRepositoryFacade
	PeriodRepo    FiscalPeriodRepository
	JournalRepo   JournalRepositoryFacade
	SequenceRepo  SequenceRepository
	NumberingRepo NumberingSettingsReader
	RevenueRepo   RevenueSourceRepository
}
