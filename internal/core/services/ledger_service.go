package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/utils/accounting"
)

const defaultListLimit = 20

// ledgerService is the only component that writes entries, lines and period state.
type ledgerService struct {
	BaseService
	txManager portsrepo.TransactionManager
	accounts  portsrepo.AccountReader
	periods   portsrepo.FiscalPeriodRepository
	journals  portsrepo.JournalRepositoryFacade
	numberer  EntryCounter
	tolerance decimal.Decimal
	strict    bool
	now       func() time.Time
}

// LedgerOption configures the ledger service.
type LedgerOption func(*ledgerService)

// WithBalanceTolerance overrides the debit/credit rounding tolerance.
func WithBalanceTolerance(tolerance decimal.Decimal) LedgerOption {
	return func(s *ledgerService) {
		s.tolerance = tolerance
	}
}

// WithStrictLines toggles rejection of lines carrying both or neither side.
func WithStrictLines(strict bool) LedgerOption {
	return func(s *ledgerService) {
		s.strict = strict
	}
}

// WithClock replaces the clock used for audit timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	txManager portsrepo.TransactionManager,
	accounts portsrepo.AccountReader,
	periods portsrepo.FiscalPeriodRepository,
	journals portsrepo.JournalRepositoryFacade,
	numberer EntryCounter,
	opts ...LedgerOption,
) portssvc.LedgerSvcFacade {
	s := &ledgerService{
		txManager: txManager,
		accounts:  accounts,
		periods:   periods,
		journals:  journals,
		numberer:  numberer,
		tolerance: domain.BalanceTolerance,
		strict:    true,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostEntry validates the request, resolves account codes and commits the entry.
// Period lock, number assignment, insert and the persisted balance check share one
// transaction, so a failure at any step leaves nothing behind.
func (s *ledgerService) PostEntry(ctx context.Context, tenantID string, req dto.PostEntryRequest, userID string) (*domain.JournalEntry, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant is required", apperrors.ErrValidation)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	now := s.now()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		TenantID:      tenantID,
		EntryDate:     domain.DateOnly(req.EntryDate),
		Description:   description,
		Reference:     strings.TrimSpace(req.Reference),
		LegalEntityID: req.LegalEntityID,
		Status:        domain.Posted,
		Lines:         make([]domain.JournalLine, len(req.Lines)),
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if req.Draft {
		entry.Status = domain.Draft
	}

	for i, l := range req.Lines {
		sortOrder := l.SortOrder
		if sortOrder == 0 {
			sortOrder = i + 1
		}
		entry.Lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountCode: strings.TrimSpace(l.AccountCode),
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			SortOrder:   sortOrder,
		}
	}
	sort.SliceStable(entry.Lines, func(i, j int) bool {
		return entry.Lines[i].SortOrder < entry.Lines[j].SortOrder
	})

	if err := accounting.ValidateLines(entry.Lines, s.strict); err != nil {
		return nil, err
	}
	if entry.Status == domain.Posted {
		if err := accounting.ValidateEntryBalance(entry, s.tolerance); err != nil {
			return nil, err
		}
	}

	if err := s.resolveAccounts(ctx, tenantID, entry.Lines); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		period, err := s.lockOpenPeriod(txCtx, tenantID, entry.EntryDate)
		if err != nil {
			return err
		}
		entry.PeriodID = period.PeriodID

		number, err := s.numberer.NextEntryNumber(txCtx, tenantID, entry.EntryDate)
		if err != nil {
			return err
		}
		entry.EntryNumber = number

		if err := s.journals.InsertEntry(txCtx, entry); err != nil {
			return err
		}
		if entry.Status == domain.Posted {
			return s.verifyPersistedBalance(txCtx, entry.EntryID)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry",
			slog.String("tenant_id", tenantID),
			slog.String("entry_date", entry.EntryDate.Format(time.DateOnly)))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry committed",
		slog.String("tenant_id", tenantID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)),
		slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// PostDraft moves a draft to posted. The entry is locked so two concurrent
// promotions cannot both succeed.
func (s *ledgerService) PostDraft(ctx context.Context, tenantID, entryNumber, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		entry, err := s.journals.LockEntryByNumber(txCtx, tenantID, entryNumber)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entryNumber, entry.Status)
		}
		if err := accounting.ValidateLines(entry.Lines, s.strict); err != nil {
			return err
		}
		if err := accounting.ValidateEntryBalance(*entry, s.tolerance); err != nil {
			return err
		}
		period, err := s.lockOpenPeriod(txCtx, tenantID, entry.EntryDate)
		if err != nil {
			return err
		}

		now := s.now()
		if err := s.journals.UpdateEntryStatus(txCtx, entry.EntryID, domain.Posted, userID, now); err != nil {
			return err
		}
		if err := s.verifyPersistedBalance(txCtx, entry.EntryID); err != nil {
			return err
		}

		entry.Status = domain.Posted
		entry.PeriodID = period.PeriodID
		entry.Touch(userID, now)
		posted = entry
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post draft entry",
			slog.String("tenant_id", tenantID),
			slog.String("entry_number", entryNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry posted", slog.String("tenant_id", tenantID), slog.String("entry_number", entryNumber))
	return posted, nil
}

// GetEntry returns an entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, tenantID, entryNumber string) (*domain.JournalEntry, error) {
	return s.journals.FindEntryByNumber(ctx, tenantID, entryNumber)
}

// ListEntries returns a page of entry headers, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, nextToken, err := s.journals.ListEntries(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ClosePeriod locks a period against new postings. It waits for postings that
// already hold the period.
func (s *ledgerService) ClosePeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error) {
	return s.setPeriodStatus(ctx, tenantID, periodID, userID, domain.PeriodClosed)
}

// OpenPeriod reopens a closed period.
func (s *ledgerService) OpenPeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error) {
	return s.setPeriodStatus(ctx, tenantID, periodID, userID, domain.PeriodOpen)
}

func (s *ledgerService) setPeriodStatus(ctx context.Context, tenantID, periodID, userID string, status domain.PeriodStatus) (*domain.FiscalPeriod, error) {
	var period *domain.FiscalPeriod
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		period, err = s.periods.UpdatePeriodStatus(txCtx, tenantID, periodID, status)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update fiscal period", slog.String("period_id", periodID), slog.String("status", string(status)))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal period updated",
		slog.String("tenant_id", tenantID),
		slog.String("period_id", periodID),
		slog.String("status", string(status)),
		slog.String("user_id", userID))
	return period, nil
}

// resolveAccounts fills in the account ids of lines. Every unresolved code is reported.
func (s *ledgerService) resolveAccounts(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountCode] {
			seen[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}

	accounts, err := s.accounts.FindActiveAccountsByCodes(ctx, tenantID, codes)
	if err != nil {
		return err
	}

	var missing []string
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, strings.Join(missing, ", "))
	}

	for i := range lines {
		lines[i].AccountID = accounts[lines[i].AccountCode].AccountID
	}
	return nil
}

func (s *ledgerService) lockOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periods.LockPeriodForDate(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.PeriodID)
	}
	return period, nil
}

func (s *ledgerService) verifyPersistedBalance(ctx context.Context, entryID string) error {
	debit, credit, err := s.journals.SumEntryLines(ctx, entryID)
	if err != nil {
		return err
	}
	if !accounting.IsBalanced(debit, credit, s.tolerance) {
		return fmt.Errorf("%w: persisted debits %s, credits %s", apperrors.ErrJournalUnbalanced, debit.String(), credit.String())
	}
	return nil
}
