package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores a typed struct in a PostgreSQL JSONB column.
// Implements sql.Scanner and driver.Valuer.
type JSONB[T any] struct {
	V T
}

// Scan implements sql.Scanner for reading from PostgreSQL JSONB.
func (j *JSONB[T]) Scan(src any) error {
	var source []byte
	switch v := src.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONB: %T", src)
	}

	if len(source) == 0 {
		var zero T
		j.V = zero
		return nil
	}
	if err := json.Unmarshal(source, &j.V); err != nil {
		return fmt.Errorf("failed to decode JSONB: %w", err)
	}
	return nil
}

// Value implements driver.Valuer for writing to PostgreSQL JSONB.
func (j JSONB[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
