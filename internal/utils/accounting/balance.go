package accounting

import (
	"fmt"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinEntryLines is the smallest number of lines a journal entry may carry.
const MinEntryLines = 2

// IsBalanced reports whether debit and credit differ by no more than tolerance.
func IsBalanced(debit, credit, tolerance decimal.Decimal) bool {
	return debit.Sub(credit).Abs().LessThanOrEqual(tolerance)
}

// ValidateEntryBalance checks the entry's line sums against tolerance.
func ValidateEntryBalance(entry domain.JournalEntry, tolerance decimal.Decimal) error {
	debit, credit := entry.Totals()
	if !IsBalanced(debit, credit, tolerance) {
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrJournalUnbalanced, debit.String(), credit.String())
	}
	return nil
}

// ValidateLines checks line count and amount signs. With strict set, every line must
// carry exactly one non-zero side.
func ValidateLines(lines []domain.JournalLine, strict bool) error {
	if len(lines) < MinEntryLines {
		return fmt.Errorf("%w: an entry needs at least %d lines, got %d", apperrors.ErrValidation, MinEntryLines, len(lines))
	}
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if !strict {
			continue
		}
		if l.HasBothSides() {
			return fmt.Errorf("%w: line %d has both a debit and a credit", apperrors.ErrValidation, i+1)
		}
		if l.IsEmpty() {
			return fmt.Errorf("%w: line %d has neither a debit nor a credit", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}
