package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/utils/accounting"
)

// taxService is the caller-side guard around the pure tax-line calculator.
type taxService struct {
	BaseService
}

// NewTaxService creates a new TaxService.
func NewTaxService() portssvc.TaxSvcFacade {
	return &taxService{}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

func (s *taxService) CalculateLine(ctx context.Context, req dto.CalculateLineRequest) (*dto.LineAmountsResponse, error) {
	in, err := s.lineInput(ctx, 0, req)
	if err != nil {
		return nil, err
	}
	resp := dto.ToLineAmountsResponse(domain.ResolveTaxFormula(in.Classification), accounting.CalcLine(in))
	return &resp, nil
}

func (s *taxService) CalculateDocument(ctx context.Context, req dto.CalculateDocumentRequest) (*dto.DocumentTotalsResponse, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: a document needs at least one line", apperrors.ErrValidation)
	}
	inputs := make([]accounting.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		in, err := s.lineInput(ctx, i+1, l)
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}
	resp := dto.ToDocumentTotalsResponse(accounting.CalcDocument(inputs))
	return &resp, nil
}

// lineInput rejects negative inputs; the calculator itself is sign-agnostic.
func (s *taxService) lineInput(ctx context.Context, lineNo int, req dto.CalculateLineRequest) (accounting.LineInput, error) {
	switch {
	case req.Quantity.IsNegative():
		return accounting.LineInput{}, fmt.Errorf("%w: line %d: quantity must not be negative", apperrors.ErrValidation, lineNo)
	case req.UnitPrice.IsNegative():
		return accounting.LineInput{}, fmt.Errorf("%w: line %d: unit price must not be negative", apperrors.ErrValidation, lineNo)
	case req.TaxRate.IsNegative():
		return accounting.LineInput{}, fmt.Errorf("%w: line %d: tax rate must not be negative", apperrors.ErrValidation, lineNo)
	}

	in := req.ToLineInput()
	if !domain.IsKnownTreatment(in.Classification) {
		s.LogDebug(ctx, "Unknown tax classification, using standard formula", slog.String("classification", string(in.Classification)))
	}
	return in, nil
}
