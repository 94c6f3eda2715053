package tabular

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a cell value.
type Kind int

// Cell value kinds. The zero value is missing so that unset cells and
// empty source cells behave identically.
const (
	KindMissing Kind = iota
	KindString
	KindNumber
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single table cell: a string, a number, or missing.
// Values are comparable; two values are equal when kind and content match.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// String creates a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Missing returns the missing value.
func Missing() Value {
	return Value{}
}

// Parse converts a raw cell as read from a source file into a typed value.
// Cells that are empty after trimming become missing, numeric text becomes
// a number, and everything else stays a verbatim string. NaN and infinities
// stay textual so that value equality remains well defined.
func Parse(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Value{kind: KindNumber, num: n}
	}
	return Value{kind: KindString, str: raw}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// AsString returns the string content and whether the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric content and whether the value is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Format renders the value in its canonical file form. Missing renders as
// the empty string and numbers use the shortest decimal notation that
// round-trips, without exponents.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}
