package services

import (
	"context"
	"time"

	"github.com/SscSPs/bizledger/internal/core/threshold"
	"github.com/SscSPs/bizledger/internal/dto"
)

// ThresholdSvcFacade builds revenue threshold reports.
type ThresholdSvcFacade interface {
	Report(ctx context.Context, tenantID string, window threshold.Window, asOf time.Time) (*dto.ThresholdReport, error)
}
