// Package rowmap converts generic query result rows into typed domain
// records. Mapping is total: a decoder either returns a fully populated
// record or a single MappingError naming the offending column; it never
// returns a partially populated record alongside an error.
package rowmap

import (
	"fmt"
	"time"

	"github.com/getapet/server/internal/store"
)

// MappingError reports that a row value could not be converted to the
// declared field type.
type MappingError struct {
	Column string
	Value  any
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map column %q from value of type %T", e.Column, e.Value)
}

// String extracts a text column. Missing or NULL values map to "".
func String(row store.Row, col string) (string, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", &MappingError{Column: col, Value: v}
	}
}

// Int extracts an integer column. Missing or NULL values map to 0.
func Int(row store.Row, col string) (int, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, &MappingError{Column: col, Value: v}
	}
}

// Int64 extracts a 64-bit integer column. Missing or NULL values map to 0.
func Int64(row store.Row, col string) (int64, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, &MappingError{Column: col, Value: v}
	}
}

// Float64 extracts a floating-point column. Missing or NULL values map to 0.
// Integer driver values are widened; anything else fails.
func Float64(row store.Row, col string) (float64, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	default:
		return 0, &MappingError{Column: col, Value: v}
	}
}

// Time extracts a timestamp column. Missing or NULL values map to the zero
// time; any non-temporal driver value is a mapping failure, unlike the other
// accessors which only reject values of the wrong kind.
func Time(row store.Row, col string) (time.Time, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, &MappingError{Column: col, Value: v}
	}
	return t, nil
}
