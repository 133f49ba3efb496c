package models

// Account is a row of the accounts table.
type Account struct {
	AccountID string `db:"account_id"`
	TenantID  string `db:"tenant_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	IsActive  bool   `db:"is_active"`
}
