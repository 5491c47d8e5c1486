package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Attributes holds free-form string labels attached to a catalog entity.
//
// They are stored as a JSON object in a text column so the same schema works
// on PostgreSQL and SQLite.
type Attributes map[string]string

// Value implements driver.Valuer interface for database writes.
func (a Attributes) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(map[string]string(a))
	if err != nil {
		return nil, fmt.Errorf("error marshaling attributes: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for database reads.
func (a *Attributes) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan attributes: unsupported type")
	}

	if len(data) == 0 {
		*a = nil
		return nil
	}

	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("invalid attributes JSON in database: %w", err)
	}
	*a = m
	return nil
}

// Get returns the attribute value for key, or "" if it is not set.
func (a Attributes) Get(key string) string {
	return a[key]
}
