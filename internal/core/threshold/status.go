package threshold

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status compares the window's cumulative revenue with a limit.
type Status struct {
	Limit       decimal.Decimal `json:"limit"`
	Total       decimal.Decimal `json:"total"`
	Remaining   decimal.Decimal `json:"remaining"`
	UsedPercent decimal.Decimal `json:"usedPercent"`
	Breached    bool            `json:"breached"`
	BreachMonth *time.Time      `json:"breachMonth,omitempty"` // first month whose cumulative total exceeds the limit
}

// Evaluate reports how close the buckets come to limit. The limit is the highest
// allowed turnover: a cumulative total equal to it is not a breach. A zero limit
// disables the percentage and never breaches.
func Evaluate(buckets []MonthlyBucket, limit decimal.Decimal) Status {
	st := Status{
		Limit:       limit,
		Total:       decimal.Zero,
		Remaining:   limit,
		UsedPercent: decimal.Zero,
	}
	if len(buckets) > 0 {
		st.Total = buckets[len(buckets)-1].Cumulative
	}
	if !limit.IsPositive() {
		st.Remaining = decimal.Zero
		return st
	}

	st.Remaining = limit.Sub(st.Total)
	if st.Remaining.IsNegative() {
		st.Remaining = decimal.Zero
	}
	st.UsedPercent = st.Total.Mul(decimal.NewFromInt(100)).Div(limit).Round(2)

	for _, b := range buckets {
		if b.Cumulative.GreaterThan(limit) {
			month := b.Month
			st.Breached = true
			st.BreachMonth = &month
			break
		}
	}
	return st
}
