package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/services"
	"github.com/SscSPs/bizledger/internal/dto"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTaxService_CalculateLine(t *testing.T) {
	svc := services.NewTaxService()

	resp, err := svc.CalculateLine(context.Background(), dto.CalculateLineRequest{
		Quantity:       d("2"),
		UnitPrice:      d("50"),
		TaxRate:        d("20"),
		Classification: "ND-fuel",
	})

	require.NoError(t, err)
	assert.Equal(t, "NON_DEDUCTIBLE", resp.Formula)
	assert.True(t, d("100").Equal(resp.LineTotal))
	assert.True(t, resp.TaxAmount.IsZero())
	assert.True(t, d("20").Equal(resp.NonDeductible))
	assert.True(t, d("120").Equal(resp.TotalWithTax))
}

func TestTaxService_UnknownClassificationUsesStandard(t *testing.T) {
	resp, err := services.NewTaxService().CalculateLine(context.Background(), dto.CalculateLineRequest{
		Quantity:       d("1"),
		UnitPrice:      d("10"),
		TaxRate:        d("25"),
		Classification: "XYZ",
	})

	require.NoError(t, err)
	assert.Equal(t, "STANDARD", resp.Formula)
	assert.True(t, d("2.5").Equal(resp.TaxAmount))
}

func TestTaxService_RejectsNegativeInputs(t *testing.T) {
	svc := services.NewTaxService()
	for name, req := range map[string]dto.CalculateLineRequest{
		"quantity":   {Quantity: d("-1"), UnitPrice: d("10"), TaxRate: d("20"), Classification: "S"},
		"unit price": {Quantity: d("1"), UnitPrice: d("-10"), TaxRate: d("20"), Classification: "S"},
		"tax rate":   {Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("-20"), Classification: "S"},
	} {
		_, err := svc.CalculateLine(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidation, name)
	}
}

func TestTaxService_CalculateDocument(t *testing.T) {
	resp, err := services.NewTaxService().CalculateDocument(context.Background(), dto.CalculateDocumentRequest{
		Lines: []dto.CalculateLineRequest{
			{Quantity: d("1"), UnitPrice: d("100"), TaxRate: d("20"), Classification: "S"},
			{Quantity: d("1"), UnitPrice: d("100"), TaxRate: d("20"), Classification: "RC"},
			{Quantity: d("1"), UnitPrice: d("60"), TaxRate: d("10"), Classification: "F", FeeValue: d("30")},
		},
	})

	require.NoError(t, err)
	assert.True(t, d("260").Equal(resp.LineTotal), "got %s", resp.LineTotal)
	assert.True(t, d("43").Equal(resp.TaxAmount), "got %s", resp.TaxAmount)
	assert.True(t, d("303").Equal(resp.TotalWithTax), "got %s", resp.TotalWithTax)
	require.Len(t, resp.Breakdown, 3)
}

func TestTaxService_EmptyDocument(t *testing.T) {
	_, err := services.NewTaxService().CalculateDocument(context.Background(), dto.CalculateDocumentRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTaxService_DocumentReportsOffendingLine(t *testing.T) {
	_, err := services.NewTaxService().CalculateDocument(context.Background(), dto.CalculateDocumentRequest{
		Lines: []dto.CalculateLineRequest{
			{Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("20"), Classification: "S"},
			{Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("-1"), Classification: "S"},
		},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "line 2")
}
