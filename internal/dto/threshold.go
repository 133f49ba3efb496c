package dto

import (
	"time"

	"github.com/SscSPs/bizledger/internal/core/threshold"
)

// ThresholdQuery defines the query parameters of a threshold report.
type ThresholdQuery struct {
	Window string `form:"window" binding:"required,oneof=calendar-year rolling-365-day"`
	AsOf   string `form:"asOf" binding:"omitempty,datetime=2006-01-02"` // defaults to today
}

// ThresholdReport is the monthly revenue series of a window and its limit status.
type ThresholdReport struct {
	Window  threshold.Window          `json:"window"`
	AsOf    time.Time                 `json:"asOf"`
	From    time.Time                 `json:"from"`
	To      time.Time                 `json:"to"`
	Buckets []threshold.MonthlyBucket `json:"buckets"`
	Status  threshold.Status          `json:"status"`
}
