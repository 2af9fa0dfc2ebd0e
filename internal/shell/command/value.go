package command

import (
	"fmt"
	"strconv"
)

// Kind identifies the declared type of a flag value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a typed flag value. Exactly one arm is meaningful, selected by
// Kind; the zero Value is a KindString empty string.
type Value struct {
	kind Kind
	str  string
	num  int64
	real float64
	flag bool
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps an integer.
func IntValue(n int64) Value { return Value{kind: KindInt, num: n} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{kind: KindFloat, real: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind returns the value's declared type.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string arm; ok is false if the value is not a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Int returns the integer arm; ok is false if the value is not an int.
func (v Value) Int() (int64, bool) { return v.num, v.kind == KindInt }

// Float returns the float arm; ok is false if the value is not a float.
func (v Value) Float() (float64, bool) { return v.real, v.kind == KindFloat }

// Bool returns the boolean arm; ok is false if the value is not a bool.
func (v Value) Bool() (bool, bool) { return v.flag, v.kind == KindBool }

// Coerce converts raw token text into a Value of the requested kind.
//
// Numeric parses are full-string: trailing garbage or empty input fails
// rather than producing a truncated value. The boolean literal sets are
// case-sensitive and closed: {"true","yes","1"} and {"false","no","0"}.
// Extending them would silently change what existing content accepts.
//
// Postcondition: Returns a Value of exactly the requested kind, or an error;
// never a wrongly-typed value.
func Coerce(text string, kind Kind) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(text), nil

	case KindInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parsing %q as int: %w", text, err)
		}
		return IntValue(n), nil

	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parsing %q as float: %w", text, err)
		}
		return FloatValue(f), nil

	case KindBool:
		switch text {
		case "true", "yes", "1":
			return BoolValue(true), nil
		case "false", "no", "0":
			return BoolValue(false), nil
		default:
			return Value{}, fmt.Errorf("parsing %q as bool: not a recognized literal", text)
		}

	default:
		return Value{}, fmt.Errorf("unknown value kind %d", kind)
	}
}
