package models

import (
	"fmt"
	"strings"
)

// Field identifies one of the three numeric columns of the dataset.
// It is a closed enumeration: field selection, melting and ranking are
// switch-checked against these three values only.
type Field int

const (
	FieldVolume Field = iota
	FieldValue
	FieldFrequency
)

// AllFields lists every field in canonical order (volume, value, frequency).
var AllFields = []Field{FieldVolume, FieldValue, FieldFrequency}

// String returns the wire/display name of the field.
func (f Field) String() string {
	switch f {
	case FieldVolume:
		return "volume"
	case FieldValue:
		return "value"
	case FieldFrequency:
		return "frequency"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField maps a wire name to a Field. Matching is case-insensitive
// and accepts the original Indonesian column labels as aliases.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "volume":
		return FieldVolume, nil
	case "value", "nilai":
		return FieldValue, nil
	case "frequency", "frekuensi":
		return FieldFrequency, nil
	default:
		return 0, fmt.Errorf("unknown field %q", s)
	}
}
