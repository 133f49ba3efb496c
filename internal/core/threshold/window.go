package threshold

import (
	"fmt"
	"time"

	"github.com/SscSPs/bizledger/internal/apperrors"
	"github.com/SscSPs/bizledger/internal/core/domain"
)

// Window selects the regulatory period revenue is measured over.
type Window string

const (
	WindowCalendarYear Window = "calendar-year"
	WindowRolling365   Window = "rolling-365-day"
)

// BucketCount is the number of monthly buckets in every window.
const BucketCount = 12

const rollingDays = 365

// ParseWindow validates a window selector.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowCalendarYear, WindowRolling365:
		return Window(s), nil
	default:
		return "", fmt.Errorf("%w: unknown threshold window %q", apperrors.ErrValidation, s)
	}
}

// Span is an inclusive range of calendar days.
type Span struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether date's calendar day lies inside the span.
func (s Span) Contains(date time.Time) bool {
	d := domain.DateOnly(date)
	return !d.Before(s.Start) && !d.After(s.End)
}

// Spans returns the twelve monthly day ranges of the window, oldest first.
//
// The calendar window covers January to December of asOf's year. The rolling
// window covers the twelve calendar months ending with asOf's month: the newest
// month ends on asOf and the oldest starts exactly 364 days before asOf, so the
// twelve ranges together span 365 days.
func Spans(window Window, asOf time.Time) []Span {
	asOf = domain.DateOnly(asOf)
	spans := make([]Span, BucketCount)

	switch window {
	case WindowRolling365:
		first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(BucketCount - 1), 0)
		for i := range spans {
			start := first.AddDate(0, i, 0)
			spans[i] = Span{Start: start, End: start.AddDate(0, 1, -1)}
		}
		spans[0].Start = asOf.AddDate(0, 0, -(rollingDays - 1))
		spans[BucketCount-1].End = asOf
	default:
		for i := range spans {
			start := time.Date(asOf.Year(), time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			spans[i] = Span{Start: start, End: start.AddDate(0, 1, -1)}
		}
	}
	return spans
}

// Range returns the first and last day covered by the window.
func Range(window Window, asOf time.Time) (from, to time.Time) {
	spans := Spans(window, asOf)
	return spans[0].Start, spans[len(spans)-1].End
}
