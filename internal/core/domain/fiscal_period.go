package domain

import "time"

// PeriodStatus is the lock state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is a tenant date range that entries may be posted into while open.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`
	TenantID  string       `json:"tenantID"`
	StartDate time.Time    `json:"startDate"` // inclusive
	EndDate   time.Time    `json:"endDate"`   // inclusive
	Status    PeriodStatus `json:"status"`
}

// Covers reports whether date falls inside the period, comparing calendar days.
func (p FiscalPeriod) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// IsOpen reports whether entries may still be posted into the period.
func (p FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}
