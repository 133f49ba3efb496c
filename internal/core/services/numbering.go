package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bizledger/internal/core/ports/repositories"
)

// EventNumberingDegraded is sent every time an entry is numbered by the best-effort counter.
const EventNumberingDegraded = "ledger_numbering_degraded"

// EntryCounter hands out the next entry number of a tenant. It must be called with
// the context of the posting transaction.
type EntryCounter interface {
	NextEntryNumber(ctx context.Context, tenantID string, entryDate time.Time) (string, error)
}

// EventPublisher receives operator-facing events.
type EventPublisher interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// FormatEntryNumber renders prefix, year and sequence as e.g. "JE-2024-000042".
func FormatEntryNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s%d-%06d", prefix, year, seq)
}

// numberingPattern resolves the prefix and start sequence shared by both counters.
// The configured prefix applies to tenants without a settings row.
type numberingPattern struct {
	settings      portsrepo.NumberingSettingsReader
	defaultPrefix string
}

func (p numberingPattern) load(ctx context.Context, tenantID string) (domain.NumberingSettings, error) {
	settings, err := p.settings.FindNumberingSettings(ctx, tenantID)
	if errors.Is(err, apperrors.ErrNotFound) {
		defaults := domain.DefaultNumberingSettings(tenantID)
		if p.defaultPrefix != "" {
			defaults.Prefix = p.defaultPrefix
		}
		return defaults, nil
	}
	if err != nil {
		return domain.NumberingSettings{}, fmt.Errorf("failed to load numbering settings: %w", err)
	}
	return *settings, nil
}

// serializedCounter numbers entries from a per-tenant, per-year counter row that is
// locked for the rest of the posting transaction.
type serializedCounter struct {
	sequences portsrepo.SequenceRepository
	pattern   numberingPattern
}

// NewSerializedCounter creates the primary entry counter.
func NewSerializedCounter(sequences portsrepo.SequenceRepository, settings portsrepo.NumberingSettingsReader, defaultPrefix string) EntryCounter {
	return &serializedCounter{
		sequences: sequences,
		pattern:   numberingPattern{settings: settings, defaultPrefix: defaultPrefix},
	}
}

func (c *serializedCounter) NextEntryNumber(ctx context.Context, tenantID string, entryDate time.Time) (string, error) {
	year := entryDate.Year()
	seq, err := c.sequences.NextSequence(ctx, tenantID, year)
	if err != nil {
		return "", err
	}
	settings, err := c.pattern.load(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return FormatEntryNumber(settings.Prefix, year, seq), nil
}

// bestEffortCounter derives the next number from the count of the year's entries.
// Two concurrent posts can compute the same number; the unique index on entry
// numbers turns that race into a failed post.
type bestEffortCounter struct {
	pattern  numberingPattern
	journals portsrepo.JournalReader
}

// NewBestEffortCounter creates the degraded-mode entry counter.
func NewBestEffortCounter(settings portsrepo.NumberingSettingsReader, journals portsrepo.JournalReader, defaultPrefix string) EntryCounter {
	return &bestEffortCounter{
		pattern:  numberingPattern{settings: settings, defaultPrefix: defaultPrefix},
		journals: journals,
	}
}

func (c *bestEffortCounter) NextEntryNumber(ctx context.Context, tenantID string, entryDate time.Time) (string, error) {
	settings, err := c.pattern.load(ctx, tenantID)
	if err != nil {
		return "", err
	}

	year := entryDate.Year()
	count, err := c.journals.CountEntriesInYear(ctx, tenantID, year)
	if err != nil {
		return "", fmt.Errorf("failed to count entries of %d: %w", year, err)
	}
	return FormatEntryNumber(settings.Prefix, year, settings.StartSequence+count), nil
}

// entryNumberer prefers the serialized counter and drops to the best-effort one
// only when the serialized counter reports itself unavailable.
type entryNumberer struct {
	BaseService
	primary  EntryCounter // nil disables the serialized path
	fallback EntryCounter
	events   EventPublisher
}

// NumbererOption configures an entry numberer.
type NumbererOption func(*entryNumberer)

// WithDegradedEventPublisher sends an event for every degraded numbering.
func WithDegradedEventPublisher(p EventPublisher) NumbererOption {
	return func(n *entryNumberer) {
		n.events = p
	}
}

// NewEntryNumberer combines the two counters. A nil primary always uses the fallback.
func NewEntryNumberer(primary, fallback EntryCounter, opts ...NumbererOption) EntryCounter {
	n := &entryNumberer{primary: primary, fallback: fallback}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *entryNumberer) NextEntryNumber(ctx context.Context, tenantID string, entryDate time.Time) (string, error) {
	reason := "serialized counter disabled"
	if n.primary != nil {
		number, err := n.primary.NextEntryNumber(ctx, tenantID, entryDate)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, apperrors.ErrCounterUnavailable) {
			return "", err
		}
		reason = err.Error()
	}

	number, err := n.fallback.NextEntryNumber(ctx, tenantID, entryDate)
	if err != nil {
		return "", err
	}

	n.LogWarn(ctx, "Entry numbered by best-effort counter; uniqueness is not serialized",
		slog.String("tenant_id", tenantID),
		slog.String("entry_number", number),
		slog.String("reason", reason))
	if n.events != nil {
		n.events.Enqueue(tenantID, EventNumberingDegraded, map[string]any{
			"entry_number": number,
			"reason":       reason,
		})
	}
	return number, nil
}
