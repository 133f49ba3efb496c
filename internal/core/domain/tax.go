package domain

import "strings"

// TaxTreatment is the short classification code stored on a document line.
type TaxTreatment string

const (
	TreatmentStandard      TaxTreatment = "S"
	TreatmentReverseCharge TaxTreatment = "RC"
	TreatmentZeroRated     TaxTreatment = "Z"
	TreatmentExempt        TaxTreatment = "E"
	TreatmentFeeBased      TaxTreatment = "F"
	TreatmentNonDeductible TaxTreatment = "ND"
)

// Code families. New codes inside a family pick up the family formula.
const (
	feeFamilyPrefix        = "F-"
	nonDeductibleFamPrefix = "ND-"
)

// TaxFormula is the closed set of tax-amount formulas.
type TaxFormula int

const (
	FormulaStandard TaxFormula = iota
	FormulaFeeBased
	FormulaNonDeductible
)

func (f TaxFormula) String() string {
	switch f {
	case FormulaFeeBased:
		return "FEE_BASED"
	case FormulaNonDeductible:
		return "NON_DEDUCTIBLE"
	default:
		return "STANDARD"
	}
}

var treatmentFormulas = map[TaxTreatment]TaxFormula{
	TreatmentStandard:      FormulaStandard,
	TreatmentReverseCharge: FormulaStandard,
	TreatmentZeroRated:     FormulaStandard,
	TreatmentExempt:        FormulaStandard,
	TreatmentFeeBased:      FormulaFeeBased,
	TreatmentNonDeductible: FormulaNonDeductible,
}

// ResolveTaxFormula maps a classification code to its formula. It is the only place
// codes are interpreted; unknown codes fall back to the standard formula.
func ResolveTaxFormula(code TaxTreatment) TaxFormula {
	normalized := TaxTreatment(strings.ToUpper(strings.TrimSpace(string(code))))
	if f, ok := treatmentFormulas[normalized]; ok {
		return f
	}
	switch {
	case strings.HasPrefix(string(normalized), feeFamilyPrefix):
		return FormulaFeeBased
	case strings.HasPrefix(string(normalized), nonDeductibleFamPrefix):
		return FormulaNonDeductible
	default:
		return FormulaStandard
	}
}

// IsKnownTreatment reports whether code is an exact code or belongs to a known family.
func IsKnownTreatment(code TaxTreatment) bool {
	normalized := TaxTreatment(strings.ToUpper(strings.TrimSpace(string(code))))
	if _, ok := treatmentFormulas[normalized]; ok {
		return true
	}
	return strings.HasPrefix(string(normalized), feeFamilyPrefix) ||
		strings.HasPrefix(string(normalized), nonDeductibleFamPrefix)
}
