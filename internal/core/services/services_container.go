package services

import (
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events EventPublisher) *portssvc.ServiceContainer {
	var serialized EntryCounter
	if cfg.SerialCounter {
		serialized = NewSerializedCounter(repos.SequenceRepo, repos.NumberingRepo, cfg.NumberPrefix)
	}
	numberer := NewEntryNumberer(
		serialized,
		NewBestEffortCounter(repos.NumberingRepo, repos.JournalRepo, cfg.NumberPrefix),
		WithDegradedEventPublisher(events),
	)

	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(
			repos.TxManager,
			repos.AccountRepo,
			repos.PeriodRepo,
			repos.JournalRepo,
			numberer,
			WithBalanceTolerance(cfg.BalanceTolerance),
			WithStrictLines(cfg.StrictLines),
		),
		Tax:       NewTaxService(),
		Threshold: NewThresholdService(repos.RevenueRepo, cfg.CalendarYearLimit, cfg.RollingLimit),
	}
}
