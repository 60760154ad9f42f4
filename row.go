package forestdb

import (
	"fmt"
	"time"
)

// Row is one result row as named cells, produced by a Database and consumed
// once to populate a single entity instance.
type Row map[string]interface{}

// HasColumn reports whether the row contains the named cell, NULL included.
func (r Row) HasColumn(name string) bool {
	_, ok := r[name]
	return ok
}

// Text returns the textual representation of a cell. Booleans render as "1"
// and "0". The second return is false when the column is missing or its
// value is NULL.
func (r Row) Text(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	case string:
		return t, true
	case []byte:
		return string(t), true
	case time.Time:
		return t.Format(timestampLayout), true
	}
	return fmt.Sprint(v), true
}

// Native returns the cell value as the driver produced it. The second return
// is false when the column is missing or its value is NULL.
func (r Row) Native(name string) (interface{}, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Int64 returns the cell as an int64, 0 when missing or not numeric.
func (r Row) Int64(name string) int64 {
	switch t := r[name].(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint64:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}
