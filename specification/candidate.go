package specification

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Candidate field keys recognized by the profit-sharing rules. Lookup is
// case-sensitive; the string values behind FieldArea and FieldCargo are
// compared case-insensitively by the predicates that read them.
const (
	FieldArea           = "area"
	FieldCargo          = "cargo"
	FieldSalarioBruto   = "salario_bruto"
	FieldDataDeAdmissao = "data_de_admissao"
)

// DateLayout is the calendar-date format accepted for date fields supplied
// as strings. RFC 3339 timestamps are accepted as a fallback.
const DateLayout = "2006-01-02"

// Candidate is the record under evaluation. It exposes typed, read-only
// field lookups; every accessor returns ErrMissingField when the key is
// absent and ErrMalformedValue when the stored value cannot be interpreted
// as the requested type.
type Candidate interface {
	Text(key string) (string, error)
	Decimal(key string) (decimal.Decimal, error)
	Date(key string) (time.Time, error)
}

// FieldMap is a map-backed Candidate. It is the boundary adapter for
// callers that supply records as loosely-typed maps (JSON bodies, database
// rows already converted to Go values). It performs no validation up front;
// each typed accessor validates on read.
type FieldMap map[string]any

var _ Candidate = FieldMap(nil)

// Text returns the named field as a string.
func (m FieldMap) Text(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("field %q: %w", key, ErrMissingField)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T: %w", key, v, ErrMalformedValue)
	}
	return s, nil
}

// Decimal returns the named field as an exact decimal. Accepted
// representations: decimal.Decimal, a numeric string, or a Go numeric type.
// Float inputs go through the decimal constructor, so values arriving from
// JSON keep their short decimal form.
func (m FieldMap) Decimal(key string) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("field %q: %w", key, ErrMissingField)
	}

	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("field %q: %q is not a decimal: %w", key, val, ErrMalformedValue)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("field %q: expected decimal, got %T: %w", key, v, ErrMalformedValue)
	}
}

// Date returns the named field as a calendar date. Accepted
// representations: time.Time, a "2006-01-02" string, or an RFC 3339 string.
func (m FieldMap) Date(key string) (time.Time, error) {
	v, ok := m[key]
	if !ok {
		return time.Time{}, fmt.Errorf("field %q: %w", key, ErrMissingField)
	}

	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		if t, err := time.Parse(DateLayout, val); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("field %q: %q is not a date: %w", key, val, ErrMalformedValue)
	default:
		return time.Time{}, fmt.Errorf("field %q: expected date, got %T: %w", key, v, ErrMalformedValue)
	}
}
