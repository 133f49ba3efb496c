package domain

// NumberingSettings is the tenant's journal numbering configuration, read only by
// the best-effort counter.
type NumberingSettings struct {
	TenantID      string `json:"tenantID"`
	Prefix        string `json:"prefix"`        // e.g. "JE-"
	StartSequence int64  `json:"startSequence"` // first number of a year
}

// DefaultNumberingSettings is used when a tenant has no settings row.
func DefaultNumberingSettings(tenantID string) NumberingSettings {
	return NumberingSettings{TenantID: tenantID, Prefix: "JE-", StartSequence: 1}
}
