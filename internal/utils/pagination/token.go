package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	dateFormat = time.DateOnly
	separator  = "|"
)

// EntryCursor is the position of the last entry of a page. Entries are listed by
// entry date descending with the entry number as tie-breaker, which is unique per tenant.
type EntryCursor struct {
	EntryDate   time.Time
	EntryNumber string
}

// EncodeEntryCursor creates an opaque, URL-safe token for c.
func EncodeEntryCursor(c EntryCursor) string {
	tokenStr := c.EntryDate.UTC().Format(dateFormat) + separator + c.EntryNumber
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeEntryCursor parses a token produced by EncodeEntryCursor.
func DecodeEntryCursor(token string) (EntryCursor, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return EntryCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decoded), separator, 2)
	if len(parts) != 2 || parts[1] == "" {
		return EntryCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	entryDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return EntryCursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	return EntryCursor{EntryDate: entryDate, EntryNumber: parts[1]}, nil
}
