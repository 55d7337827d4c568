package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindBlank Kind = iota
	KindString
	KindNumber
)

// Value is a single spreadsheet cell: a string, a number, or Blank.
// Blank means "value unknown" and is distinct from zero and from the
// empty string; on the wire it always serializes as "".
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

var Blank = Value{Kind: KindBlank}

func Str(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func Num(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// missing-value sentinels emitted by spreadsheet tooling
var blankSentinels = map[string]bool{
	"nan":  true,
	"#n/a": true,
	"n/a":  true,
	"null": true,
	"none": true,
}

// Normalize canonicalizes a raw cell to its semantic form: whitespace-only
// strings and missing-value markers become Blank, numeric-looking strings
// become numbers, non-finite numbers become Blank. Normalizing an already
// normalized value is a no-op.
func (v Value) Normalize() Value {
	switch v.Kind {
	case KindBlank:
		return Blank
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return Blank
		}
		return Value{Kind: KindNumber, Num: v.Num}
	}

	trimmed := strings.TrimSpace(v.Str)
	if trimmed == "" || blankSentinels[strings.ToLower(trimmed)] {
		return Blank
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Value{Kind: KindNumber, Num: f}
	}
	return Value{Kind: KindString, Str: v.Str}
}

func (v Value) IsBlank() bool {
	return v.Kind == KindBlank
}

// isIntegral reports whether the number can be represented exactly as an
// integer, so "5" round-trips as 5 rather than 5.0.
func (v Value) isIntegral() bool {
	return v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1e15
}

// String renders the value for comparisons: Blank is the empty string,
// numbers use their shortest decimal form.
func (v Value) String() string {
	switch v.Kind {
	case KindBlank:
		return ""
	case KindNumber:
		if v.isIntegral() {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return v.Str
	}
}

// Export returns the value typed for a spreadsheet cell.
func (v Value) Export() any {
	switch v.Kind {
	case KindBlank:
		return ""
	case KindNumber:
		if v.isIntegral() {
			return int64(v.Num)
		}
		return v.Num
	default:
		return v.Str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBlank:
		return []byte(`""`), nil
	case KindNumber:
		if v.isIntegral() {
			return []byte(strconv.FormatInt(int64(v.Num), 10)), nil
		}
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	default:
		return json.Marshal(v.Str)
	}
}
