package heap

import (
	"fmt"
)

const (
	// MaxVarcharLength is the number of payload bytes reserved for every
	// varchar field, shorter strings are zero padded.
	MaxVarcharLength = 128

	varcharLengthPrefixSize = 4
)

type FieldType int

const (
	Boolean FieldType = iota + 1
	Int4
	Int8
	Real
	Double
	Varchar
)

// Len returns the fixed number of bytes a field of this type occupies on a page.
func (t FieldType) Len() int {
	switch t {
	case Boolean:
		return 1
	case Int4:
		return 4
	case Int8:
		return 8
	case Real:
		return 4
	case Double:
		return 8
	case Varchar:
		return varcharLengthPrefixSize + MaxVarcharLength
	default:
		return 0
	}
}

func (t FieldType) IsValid() bool {
	return t.Len() > 0
}

func (t FieldType) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Int4:
		return "int4"
	case Int8:
		return "int8"
	case Real:
		return "real"
	case Double:
		return "double"
	case Varchar:
		return "varchar"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseFieldType is the inverse of String.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "boolean", "bool":
		return Boolean, nil
	case "int4", "int":
		return Int4, nil
	case "int8", "bigint":
		return Int8, nil
	case "real", "float":
		return Real, nil
	case "double":
		return Double, nil
	case "varchar", "string":
		return Varchar, nil
	}
	return 0, fmt.Errorf("%w: unknown field type %q", ErrInvalidSchema, s)
}
