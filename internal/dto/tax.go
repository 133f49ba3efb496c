package dto

import (
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/SscSPs/bizledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CalculateLineRequest carries the inputs of one document line.
type CalculateLineRequest struct {
	Quantity       decimal.Decimal `json:"quantity" binding:"decimalgte0" swaggertype:"string"`
	UnitPrice      decimal.Decimal `json:"unitPrice" binding:"decimalgte0" swaggertype:"string"`
	TaxRate        decimal.Decimal `json:"taxRate" binding:"decimalgte0" swaggertype:"string"`
	Classification string          `json:"classification" binding:"omitempty,taxcode"`
	FeeValue       decimal.Decimal `json:"feeValue" binding:"decimalgte0" swaggertype:"string"`
}

// CalculateDocumentRequest carries all lines of a document.
type CalculateDocumentRequest struct {
	Lines []CalculateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// LineAmountsResponse defines the derived amounts of a line.
type LineAmountsResponse struct {
	Formula       string          `json:"formula"`
	LineTotal     decimal.Decimal `json:"lineTotal" swaggertype:"string"`
	TaxAmount     decimal.Decimal `json:"taxAmount" swaggertype:"string"`
	TotalWithTax  decimal.Decimal `json:"totalWithTax" swaggertype:"string"`
	NonDeductible decimal.Decimal `json:"nonDeductible" swaggertype:"string"`
}

// TaxBreakdownResponse is one (classification, rate) row of a document.
type TaxBreakdownResponse struct {
	Classification string          `json:"classification"`
	Formula        string          `json:"formula"`
	Rate           decimal.Decimal `json:"rate" swaggertype:"string"`
	Base           decimal.Decimal `json:"base" swaggertype:"string"`
	TaxAmount      decimal.Decimal `json:"taxAmount" swaggertype:"string"`
	NonDeductible  decimal.Decimal `json:"nonDeductible" swaggertype:"string"`
}

// DocumentTotalsResponse defines the rounded totals of a document.
type DocumentTotalsResponse struct {
	LineTotal     decimal.Decimal        `json:"lineTotal" swaggertype:"string"`
	TaxAmount     decimal.Decimal        `json:"taxAmount" swaggertype:"string"`
	TotalWithTax  decimal.Decimal        `json:"totalWithTax" swaggertype:"string"`
	NonDeductible decimal.Decimal        `json:"nonDeductible" swaggertype:"string"`
	Breakdown     []TaxBreakdownResponse `json:"breakdown"`
}

// ToLineInput converts the request into calculator input.
func (r CalculateLineRequest) ToLineInput() accounting.LineInput {
	return accounting.LineInput{
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		TaxRate:        r.TaxRate,
		Classification: domain.TaxTreatment(r.Classification),
		FeeValue:       r.FeeValue,
	}
}

// ToLineAmountsResponse converts calculator output to the response DTO.
func ToLineAmountsResponse(formula domain.TaxFormula, a accounting.LineAmounts) LineAmountsResponse {
	return LineAmountsResponse{
		Formula:       formula.String(),
		LineTotal:     a.LineTotal,
		TaxAmount:     a.TaxAmount,
		TotalWithTax:  a.TotalWithTax,
		NonDeductible: a.NonDeductible,
	}
}

// ToDocumentTotalsResponse converts document totals to the response DTO.
func ToDocumentTotalsResponse(t accounting.DocumentTotals) DocumentTotalsResponse {
	rows := make([]TaxBreakdownResponse, len(t.Breakdown))
	for i, b := range t.Breakdown {
		rows[i] = TaxBreakdownResponse{
			Classification: string(b.Classification),
			Formula:        b.Formula.String(),
			Rate:           b.Rate,
			Base:           b.Base,
			TaxAmount:      b.TaxAmount,
			NonDeductible:  b.NonDeductible,
		}
	}
	return DocumentTotalsResponse{
		LineTotal:     t.LineTotal,
		TaxAmount:     t.TaxAmount,
		TotalWithTax:  t.TotalWithTax,
		NonDeductible: t.NonDeductible,
		Breakdown:     rows,
	}
}
