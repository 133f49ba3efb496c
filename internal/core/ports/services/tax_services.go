package services

import (
	"context"

	"github.com/SscSPs/bizledger/internal/dto"
)

// TaxSvcFacade exposes the tax-line calculator.
type TaxSvcFacade interface {
	CalculateLine(ctx context.Context, req dto.CalculateLineRequest) (*dto.LineAmountsResponse, error)
	CalculateDocument(ctx context.Context, req dto.CalculateDocumentRequest) (*dto.DocumentTotalsResponse, error)
}
