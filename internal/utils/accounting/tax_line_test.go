package accounting

import (
	"testing"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestCalcLine(t *testing.T) {
	tests := []struct {
		name          string
		in            LineInput
		lineTotal     string
		taxAmount     string
		totalWithTax  string
		nonDeductible string
	}{
		{
			name:          "standard",
			in:            LineInput{Quantity: dec("2"), UnitPrice: dec("100"), TaxRate: dec("20"), Classification: domain.TreatmentStandard},
			lineTotal:     "200",
			taxAmount:     "40",
			totalWithTax:  "240",
			nonDeductible: "0",
		},
		{
			name:          "fee based taxes the fee only",
			in:            LineInput{Quantity: dec("0"), UnitPrice: dec("0"), TaxRate: dec("20"), Classification: domain.TreatmentFeeBased, FeeValue: dec("500")},
			lineTotal:     "0",
			taxAmount:     "100",
			totalWithTax:  "100",
			nonDeductible: "0",
		},
		{
			name:          "fee family code",
			in:            LineInput{Quantity: dec("1"), UnitPrice: dec("1000"), TaxRate: dec("25"), Classification: "F-COM", FeeValue: dec("80")},
			lineTotal:     "1000",
			taxAmount:     "20",
			totalWithTax:  "1020",
			nonDeductible: "0",
		},
		{
			name:          "non deductible",
			in:            LineInput{Quantity: dec("1"), UnitPrice: dec("1000"), TaxRate: dec("20"), Classification: domain.TreatmentNonDeductible},
			lineTotal:     "1000",
			taxAmount:     "0",
			totalWithTax:  "1200",
			nonDeductible: "200",
		},
		{
			name:          "reverse charge uses the standard formula",
			in:            LineInput{Quantity: dec("3"), UnitPrice: dec("10"), TaxRate: dec("10"), Classification: domain.TreatmentReverseCharge},
			lineTotal:     "30",
			taxAmount:     "3",
			totalWithTax:  "33",
			nonDeductible: "0",
		},
		{
			name:          "unknown code falls back to standard",
			in:            LineInput{Quantity: dec("1"), UnitPrice: dec("50"), TaxRate: dec("10"), Classification: "ZZ9"},
			lineTotal:     "50",
			taxAmount:     "5",
			totalWithTax:  "55",
			nonDeductible: "0",
		},
		{
			name:          "no intermediate rounding",
			in:            LineInput{Quantity: dec("3"), UnitPrice: dec("0.333"), TaxRate: dec("25"), Classification: domain.TreatmentStandard},
			lineTotal:     "0.999",
			taxAmount:     "0.24975",
			totalWithTax:  "1.24875",
			nonDeductible: "0",
		},
		{
			name:          "negative quantity is not rejected",
			in:            LineInput{Quantity: dec("-1"), UnitPrice: dec("100"), TaxRate: dec("20"), Classification: domain.TreatmentStandard},
			lineTotal:     "-100",
			taxAmount:     "-20",
			totalWithTax:  "-120",
			nonDeductible: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcLine(tt.in)
			assertDecimal(t, tt.lineTotal, got.LineTotal, "lineTotal")
			assertDecimal(t, tt.taxAmount, got.TaxAmount, "taxAmount")
			assertDecimal(t, tt.totalWithTax, got.TotalWithTax, "totalWithTax")
			assertDecimal(t, tt.nonDeductible, got.NonDeductible, "nonDeductible")
		})
	}
}

func TestCalcLine_ReverseChargeEqualsStandard(t *testing.T) {
	in := LineInput{Quantity: dec("7"), UnitPrice: dec("13.37"), TaxRate: dec("21")}

	in.Classification = domain.TreatmentStandard
	standard := CalcLine(in)
	in.Classification = domain.TreatmentReverseCharge
	reverse := CalcLine(in)

	assert.True(t, standard.TaxAmount.Equal(reverse.TaxAmount))
	assert.True(t, standard.TotalWithTax.Equal(reverse.TotalWithTax))
}

func TestCalcDocument_RoundsOnlyAggregates(t *testing.T) {
	// Three lines of 0.333 × 1 at 25% give 0.08325 tax each. Rounding per line
	// would yield 0.24; the exact sum 0.24975 rounds to 0.25.
	line := LineInput{Quantity: dec("1"), UnitPrice: dec("0.333"), TaxRate: dec("25"), Classification: domain.TreatmentStandard}

	totals := CalcDocument([]LineInput{line, line, line})

	assertDecimal(t, "1", totals.LineTotal, "lineTotal")
	assertDecimal(t, "0.25", totals.TaxAmount, "taxAmount")
	assertDecimal(t, "1.25", totals.TotalWithTax, "totalWithTax")
	require.Len(t, totals.Breakdown, 1)
	assertDecimal(t, "0.25", totals.Breakdown[0].TaxAmount, "breakdown tax")
}

func TestCalcDocument_Breakdown(t *testing.T) {
	lines := []LineInput{
		{Quantity: dec("1"), UnitPrice: dec("100"), TaxRate: dec("20"), Classification: domain.TreatmentStandard},
		{Quantity: dec("1"), UnitPrice: dec("50"), TaxRate: dec("20"), Classification: domain.TreatmentStandard},
		{Quantity: dec("1"), UnitPrice: dec("10"), TaxRate: dec("10"), Classification: domain.TreatmentStandard},
		{Quantity: dec("1"), UnitPrice: dec("1000"), TaxRate: dec("20"), Classification: domain.TreatmentNonDeductible},
		{Quantity: dec("0"), UnitPrice: dec("0"), TaxRate: dec("20"), Classification: domain.TreatmentFeeBased, FeeValue: dec("500")},
	}

	totals := CalcDocument(lines)

	assertDecimal(t, "1160", totals.LineTotal, "lineTotal")
	assertDecimal(t, "131", totals.TaxAmount, "taxAmount")
	assertDecimal(t, "200", totals.NonDeductible, "nonDeductible")
	assertDecimal(t, "1491", totals.TotalWithTax, "totalWithTax")

	require.Len(t, totals.Breakdown, 4)
	assert.Equal(t, domain.TreatmentFeeBased, totals.Breakdown[0].Classification)
	assertDecimal(t, "500", totals.Breakdown[0].Base, "fee base")
	assert.Equal(t, domain.TreatmentNonDeductible, totals.Breakdown[1].Classification)
	assert.Equal(t, domain.FormulaNonDeductible, totals.Breakdown[1].Formula)
	assert.Equal(t, domain.TreatmentStandard, totals.Breakdown[2].Classification)
	assertDecimal(t, "10", totals.Breakdown[2].Rate, "first standard rate")
	assertDecimal(t, "150", totals.Breakdown[3].Base, "20% standard base")
	assertDecimal(t, "30", totals.Breakdown[3].TaxAmount, "20% standard tax")
}

func TestCalcDocument_Empty(t *testing.T) {
	totals := CalcDocument(nil)
	assert.True(t, totals.TotalWithTax.IsZero())
	assert.Empty(t, totals.Breakdown)
}

func TestRecalculateLine(t *testing.T) {
	line := &domain.DocumentLine{
		Side:           domain.PurchaseSide,
		Quantity:       dec("1"),
		UnitPrice:      dec("1000"),
		TaxRate:        dec("20"),
		Classification: domain.TreatmentNonDeductible,
		TaxAmount:      dec("999"),
	}

	require.NoError(t, RecalculateLine(line, false))
	assertDecimal(t, "1000", line.LineTotal, "lineTotal")
	assertDecimal(t, "0", line.TaxAmount, "taxAmount")
	assertDecimal(t, "200", line.NonDeductible, "nonDeductible")
	assertDecimal(t, "1200", line.TotalWithTax, "totalWithTax")

	line.UnitPrice = dec("2000")
	err := RecalculateLine(line, true)
	assert.ErrorIs(t, err, apperrors.ErrDocumentFinalized)
	assertDecimal(t, "1000", line.LineTotal, "snapshot untouched")
}

func TestRecalculateLine_SalesSideCarriesNoNonDeductible(t *testing.T) {
	line := &domain.DocumentLine{
		Side:           domain.SalesSide,
		Quantity:       dec("2"),
		UnitPrice:      dec("50"),
		TaxRate:        dec("20"),
		Classification: domain.TreatmentNonDeductible,
		NonDeductible:  dec("7"),
	}

	require.NoError(t, RecalculateLine(line, false))
	assertDecimal(t, "100", line.LineTotal, "lineTotal")
	assertDecimal(t, "0", line.TaxAmount, "taxAmount")
	assertDecimal(t, "0", line.NonDeductible, "nonDeductible")
	assertDecimal(t, "100", line.TotalWithTax, "totalWithTax")

	line.Side = domain.PurchaseSide
	require.NoError(t, RecalculateLine(line, false))
	assertDecimal(t, "20", line.NonDeductible, "purchase side keeps nonDeductible")
	assertDecimal(t, "120", line.TotalWithTax, "totalWithTax")
}
