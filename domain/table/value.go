package table

import (
	"math"
	"strconv"
)

// Kind discriminates the closed set of cell representations.
type Kind int

const (
	// KindNumber is an observed floating-point value.
	KindNumber Kind = iota
	// KindString is an observed text value.
	KindString
	// KindNaN is the floating-point absence sentinel (Marker-A).
	KindNaN
	// KindNull is the general-purpose absence sentinel (Marker-B).
	KindNull
)

// Value is a single table cell. A cell either holds an observed number or
// string, or carries one of the two absence markers. The two markers are
// semantically equivalent ("no value") but distinguishable, and downstream
// classification depends on which one a cell carries.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num creates a numeric cell. An IEEE NaN input normalizes to the NaN
// marker so that a column never holds a "present" cell without a value.
func Num(f float64) Value {
	if math.IsNaN(f) {
		return NaN()
	}
	return Value{kind: KindNumber, num: f}
}

// Str creates a text cell.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// NaN returns the Marker-A absence sentinel.
func NaN() Value {
	return Value{kind: KindNaN}
}

// Null returns the Marker-B absence sentinel.
func Null() Value {
	return Value{kind: KindNull}
}

// Kind returns the cell's representation kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the cell carries either absence marker.
func (v Value) IsMissing() bool {
	return v.kind == KindNaN || v.kind == KindNull
}

// Float returns the numeric value and true for numeric cells.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the string value and true for text cells.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Equal compares two cells. Markers compare equal to the same marker only.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	default:
		return true
	}
}

// String renders the cell for reports and CSV output.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindNaN:
		return "NaN"
	default:
		return ""
	}
}
