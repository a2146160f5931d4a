package sql

import (
	"fmt"

	"github.com/spf13/cast"
)

// Type represents the type of a SQL expression.
type Type interface {
	// Name returns the name of the type.
	Name() string
	// Convert coerces a value to this type, or returns an error if the
	// value cannot represent it.
	Convert(v interface{}) (interface{}, error)
	// Zero returns the zero value for this type.
	Zero() interface{}
}

var (
	// Null is the type of NULL literals.
	Null Type = nullType{}
	// Boolean is a true/false type.
	Boolean Type = booleanType{}
	// Int64 is a 64-bit signed integer type.
	Int64 Type = int64Type{}
	// Float64 is a 64-bit floating point type.
	Float64 Type = float64Type{}
	// Text is a variable-length string type.
	Text Type = textType{}
)

type nullType struct{}

func (nullType) Name() string { return "NULL" }

func (nullType) Convert(v interface{}) (interface{}, error) {
	if v != nil {
		return nil, ErrInvalidType.New("NULL")
	}
	return nil, nil
}

func (nullType) Zero() interface{} { return nil }

type booleanType struct{}

func (booleanType) Name() string { return "BOOLEAN" }

func (booleanType) Convert(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return cast.ToBoolE(v)
}

func (booleanType) Zero() interface{} { return false }

type int64Type struct{}

func (int64Type) Name() string { return "BIGINT" }

func (int64Type) Convert(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return cast.ToInt64E(v)
}

func (int64Type) Zero() interface{} { return int64(0) }

type float64Type struct{}

func (float64Type) Name() string { return "DOUBLE" }

func (float64Type) Convert(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return cast.ToFloat64E(v)
}

func (float64Type) Zero() interface{} { return float64(0) }

type textType struct{}

func (textType) Name() string { return "TEXT" }

func (textType) Convert(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return cast.ToStringE(v)
}

func (textType) Zero() interface{} { return "" }

// TypeOf guesses the type of a Go value. Unknown kinds map to Text.
func TypeOf(v interface{}) Type {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int64
	case float32, float64:
		return Float64
	case string:
		return Text
	default:
		return Text
	}
}

// Compare compares two non-nil values under the given type. It returns
// -1, 0 or 1. Values that cannot be coerced to the type produce an
// error.
func Compare(t Type, a, b interface{}) (int, error) {
	ca, err := t.Convert(a)
	if err != nil {
		return 0, err
	}
	cb, err := t.Convert(b)
	if err != nil {
		return 0, err
	}

	switch t.(type) {
	case booleanType:
		av, bv := ca.(bool), cb.(bool)
		if av == bv {
			return 0, nil
		}
		if !av {
			return -1, nil
		}
		return 1, nil
	case int64Type:
		av, bv := ca.(int64), cb.(int64)
		return compareOrdered(av, bv), nil
	case float64Type:
		av, bv := ca.(float64), cb.(float64)
		return compareOrdered(av, bv), nil
	case textType:
		av, bv := ca.(string), cb.(string)
		return compareOrdered(av, bv), nil
	default:
		return 0, ErrInvalidType.New(fmt.Sprintf("%T", a))
	}
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
