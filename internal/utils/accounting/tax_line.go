package accounting

import (
	"sort"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places aggregates are rounded to.
const AmountPlaces = 2

// LineInput holds the inputs of a document line.
type LineInput struct {
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRate        decimal.Decimal // percentage
	Classification domain.TaxTreatment
	FeeValue       decimal.Decimal // only read by fee-based formulas
}

// LineAmounts holds the derived amounts of a document line. Values are exact;
// rounding happens only when a document is aggregated.
type LineAmounts struct {
	LineTotal     decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalWithTax  decimal.Decimal
	NonDeductible decimal.Decimal
}

// percentOf returns base × rate / 100 without an intermediate division.
func percentOf(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Shift(-2)
}

// CalcLine computes the derived amounts of one line. It does not check signs.
func CalcLine(in LineInput) LineAmounts {
	lineTotal := in.Quantity.Mul(in.UnitPrice)

	switch domain.ResolveTaxFormula(in.Classification) {
	case domain.FormulaFeeBased:
		tax := percentOf(in.FeeValue, in.TaxRate)
		return LineAmounts{
			LineTotal:     lineTotal,
			TaxAmount:     tax,
			TotalWithTax:  lineTotal.Add(tax),
			NonDeductible: decimal.Zero,
		}
	case domain.FormulaNonDeductible:
		nonDeductible := percentOf(lineTotal, in.TaxRate)
		return LineAmounts{
			LineTotal:     lineTotal,
			TaxAmount:     decimal.Zero,
			TotalWithTax:  lineTotal.Add(nonDeductible),
			NonDeductible: nonDeductible,
		}
	default:
		tax := percentOf(lineTotal, in.TaxRate)
		return LineAmounts{
			LineTotal:     lineTotal,
			TaxAmount:     tax,
			TotalWithTax:  lineTotal.Add(tax),
			NonDeductible: decimal.Zero,
		}
	}
}

// RecalculateLine refreshes the derived fields of line from its inputs.
// Lines of a finalized document are read-only snapshots.
func RecalculateLine(line *domain.DocumentLine, finalized bool) error {
	if finalized {
		return apperrors.ErrDocumentFinalized
	}
	amounts := CalcLine(LineInput{
		Quantity:       line.Quantity,
		UnitPrice:      line.UnitPrice,
		TaxRate:        line.TaxRate,
		Classification: line.Classification,
		FeeValue:       line.FeeValue,
	})
	// Non-deductible tax is a purchase-side cost; a sales line never carries it.
	if line.Side == domain.SalesSide && !amounts.NonDeductible.IsZero() {
		amounts.TotalWithTax = amounts.TotalWithTax.Sub(amounts.NonDeductible)
		amounts.NonDeductible = decimal.Zero
	}
	line.LineTotal = amounts.LineTotal
	line.TaxAmount = amounts.TaxAmount
	line.TotalWithTax = amounts.TotalWithTax
	line.NonDeductible = amounts.NonDeductible
	return nil
}

// TaxBreakdownRow aggregates lines sharing a classification and rate.
type TaxBreakdownRow struct {
	Classification domain.TaxTreatment
	Formula        domain.TaxFormula
	Rate           decimal.Decimal
	Base           decimal.Decimal
	TaxAmount      decimal.Decimal
	NonDeductible  decimal.Decimal
}

// DocumentTotals are the rounded totals of a document.
type DocumentTotals struct {
	LineTotal     decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalWithTax  decimal.Decimal
	NonDeductible decimal.Decimal
	Breakdown     []TaxBreakdownRow
}

// CalcDocument sums the exact line amounts and rounds only the aggregates.
func CalcDocument(lines []LineInput) DocumentTotals {
	totals := DocumentTotals{
		LineTotal:     decimal.Zero,
		TaxAmount:     decimal.Zero,
		TotalWithTax:  decimal.Zero,
		NonDeductible: decimal.Zero,
	}
	type breakdownKey struct {
		classification domain.TaxTreatment
		rate           string
	}
	rows := make(map[breakdownKey]*TaxBreakdownRow)

	for _, in := range lines {
		amounts := CalcLine(in)
		totals.LineTotal = totals.LineTotal.Add(amounts.LineTotal)
		totals.TaxAmount = totals.TaxAmount.Add(amounts.TaxAmount)
		totals.TotalWithTax = totals.TotalWithTax.Add(amounts.TotalWithTax)
		totals.NonDeductible = totals.NonDeductible.Add(amounts.NonDeductible)

		formula := domain.ResolveTaxFormula(in.Classification)
		base := amounts.LineTotal
		if formula == domain.FormulaFeeBased {
			base = in.FeeValue
		}
		key := breakdownKey{classification: in.Classification, rate: in.TaxRate.String()}
		row, ok := rows[key]
		if !ok {
			row = &TaxBreakdownRow{
				Classification: in.Classification,
				Formula:        formula,
				Rate:           in.TaxRate,
				Base:           decimal.Zero,
				TaxAmount:      decimal.Zero,
				NonDeductible:  decimal.Zero,
			}
			rows[key] = row
		}
		row.Base = row.Base.Add(base)
		row.TaxAmount = row.TaxAmount.Add(amounts.TaxAmount)
		row.NonDeductible = row.NonDeductible.Add(amounts.NonDeductible)
	}

	totals.LineTotal = totals.LineTotal.Round(AmountPlaces)
	totals.TaxAmount = totals.TaxAmount.Round(AmountPlaces)
	totals.TotalWithTax = totals.TotalWithTax.Round(AmountPlaces)
	totals.NonDeductible = totals.NonDeductible.Round(AmountPlaces)

	totals.Breakdown = make([]TaxBreakdownRow, 0, len(rows))
	for _, row := range rows {
		row.Base = row.Base.Round(AmountPlaces)
		row.TaxAmount = row.TaxAmount.Round(AmountPlaces)
		row.NonDeductible = row.NonDeductible.Round(AmountPlaces)
		totals.Breakdown = append(totals.Breakdown, *row)
	}
	sort.Slice(totals.Breakdown, func(i, j int) bool {
		a, b := totals.Breakdown[i], totals.Breakdown[j]
		if a.Classification != b.Classification {
			return a.Classification < b.Classification
		}
		return a.Rate.LessThan(b.Rate)
	})
	return totals
}
