package domain

// Account is a ledger account of a tenant's chart of accounts.
// The accounting core only reads accounts; it never creates or mutates them.
type Account struct {
	AccountID string `json:"accountID"` // Primary Key (UUID)
	TenantID  string `json:"tenantID"`
	Code      string `json:"code"` // Unique per tenant, e.g. "1200"
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
}
