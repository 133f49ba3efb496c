package domain

import "github.com/shopspring/decimal"

// DocumentSide tells sales lines from purchase lines.
type DocumentSide string

const (
	SalesSide    DocumentSide = "SALES"
	PurchaseSide DocumentSide = "PURCHASE"
)

// DocumentLine is a sales or purchase document line. The derived amounts are
// always recomputed from the inputs and never edited directly.
type DocumentLine struct {
	LineID         string          `json:"lineID"`
	DocumentID     string          `json:"documentID"`
	Side           DocumentSide    `json:"side"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRate        decimal.Decimal `json:"taxRate"` // percentage, e.g. 25
	Classification TaxTreatment    `json:"classification"`
	FeeValue       decimal.Decimal `json:"feeValue"` // taxable base for fee-based lines

	// Derived.
	LineTotal     decimal.Decimal `json:"lineTotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalWithTax  decimal.Decimal `json:"totalWithTax"`
	NonDeductible decimal.Decimal `json:"nonDeductible"` // purchase side only
}
