package repositories

import (
	"context"

	"github.com/SscSPs/bizledger/internal/core/domain"
)

// SequenceRepository is the storage behind the serialized entry counter.
type SequenceRepository interface {
	// NextSequence increments and returns the tenant's counter for year. The counter
	// row and the lock serializing it belong to the surrounding transaction.
	// Returns apperrors.ErrCounterUnavailable when the counter cannot be used.
	NextSequence(ctx context.Context, tenantID string, year int) (int64, error)
}

// NumberingSettingsReader provides the numbering pattern read by the best-effort counter.
type NumberingSettingsReader interface {
	// FindNumberingSettings returns apperrors.ErrNotFound when the tenant has no settings.
	FindNumberingSettings(ctx context.Context, tenantID string) (*domain.NumberingSettings, error)
}
