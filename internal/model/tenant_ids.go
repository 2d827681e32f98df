package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TenantIDList is the set of tenant ids a user is authorized for. It is stored
// as a comma-delimited text column and normalized once at scan time, so nothing
// downstream ever re-parses the raw string.
type TenantIDList []string

// Contains reports whether the list includes the given tenant id
func (l TenantIDList) Contains(tenantID string) bool {
	for _, id := range l {
		if id == tenantID {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (l TenantIDList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Scan implements sql.Scanner
func (l *TenantIDList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TenantIDList", value)
	}

	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	*l = ids
	return nil
}
