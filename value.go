package typelite

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/orsinium-labs/enum"
)

// Type is the storage class of a Value, mirroring the engine's runtime
// tag for a column's actual stored representation.
type Type enum.Member[string]

var (
	TypeInteger = Type{Value: "integer"}
	TypeFloat   = Type{Value: "float"}
	TypeText    = Type{Value: "text"}
	TypeBlob    = Type{Value: "blob"}
	TypeNull    = Type{Value: "null"}
)

// Value is a kind-erased, statement-independent copy of a single column
// value: one of integer, float, text, blob, or null. A Value is
// constructed once when a row is materialized and is immutable
// afterwards, so it stays valid after the originating statement steps to
// the next row.
type Value struct {
	typ Type
	num int64
	fl  float64
	str string
	raw []byte
}

// Null is the SQL NULL value.
var Null = Value{typ: TypeNull}

// Int64Value returns an integer Value.
func Int64Value(v int64) Value {
	return Value{typ: TypeInteger, num: v}
}

// IntValue returns an integer Value.
func IntValue(v int) Value {
	return Int64Value(int64(v))
}

// FloatValue returns a float Value.
func FloatValue(v float64) Value {
	return Value{typ: TypeFloat, fl: v}
}

// TextValue returns a text Value.
func TextValue(s string) Value {
	return Value{typ: TypeText, str: s}
}

// BlobValue returns a blob Value. A nil slice is treated as NULL, the
// same way the engine treats a missing blob.
func BlobValue(b []byte) Value {
	if b == nil {
		return Null
	}
	return Value{typ: TypeBlob, raw: b}
}

// Type returns the storage class of the value.
func (v Value) Type() Type {
	if v.typ == (Type{}) {
		return TypeNull
	}
	return v.typ
}

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool {
	return v.Type() == TypeNull
}

// Int64 returns the stored integer. It is only meaningful when Type is
// TypeInteger; use AsInt64 for converting access.
func (v Value) Int64() int64 { return v.num }

// Float returns the stored float. It is only meaningful when Type is
// TypeFloat; use AsFloat for converting access.
func (v Value) Float() float64 { return v.fl }

// Text returns the stored text. It is only meaningful when Type is
// TypeText; use AsText for converting access.
func (v Value) Text() string { return v.str }

// Blob returns the stored blob. It is only meaningful when Type is
// TypeBlob.
func (v Value) Blob() []byte { return v.raw }

// AsInt64 converts the value to int64. Integers convert as themselves,
// floats truncate toward zero, text is parsed as a decimal integer.
// Blobs and NULL yield no value.
func (v Value) AsInt64() (int64, bool) {
	switch v.Type() {
	case TypeInteger:
		return v.num, true
	case TypeFloat:
		if math.IsNaN(v.fl) || math.IsInf(v.fl, 0) {
			return 0, false
		}
		return int64(v.fl), true
	case TypeText:
		n, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsInt32 converts the value to int32 with the same rules as AsInt64,
// truncating wider integers.
func (v Value) AsInt32() (int32, bool) {
	n, ok := v.AsInt64()
	if !ok {
		return 0, false
	}
	return int32(n), true
}

// AsFloat converts the value to float64. Integers widen, floats convert
// as themselves, text is parsed as a decimal number. Blobs and NULL
// yield no value.
func (v Value) AsFloat() (float64, bool) {
	switch v.Type() {
	case TypeInteger:
		return float64(v.num), true
	case TypeFloat:
		return v.fl, true
	case TypeText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsText converts the value to a string. Integers render as decimal
// strings, floats as locale-independent decimal strings that always
// include a fractional part (1.0 rather than 1), text converts as
// itself. Blobs and NULL yield no value.
func (v Value) AsText() (string, bool) {
	switch v.Type() {
	case TypeInteger:
		return strconv.FormatInt(v.num, 10), true
	case TypeFloat:
		return formatFloatText(v.fl), true
	case TypeText:
		return v.str, true
	default:
		return "", false
	}
}

// AsBlob converts the value to a byte slice. Only blobs convert; every
// other storage class yields no value.
func (v Value) AsBlob() ([]byte, bool) {
	if v.Type() != TypeBlob {
		return nil, false
	}
	return v.raw, true
}

// Any returns the value as one of int64, float64, string, []byte, or
// nil, matching its storage class.
func (v Value) Any() any {
	switch v.Type() {
	case TypeInteger:
		return v.num
	case TypeFloat:
		return v.fl
	case TypeText:
		return v.str
	case TypeBlob:
		return v.raw
	default:
		return nil
	}
}

// String implements fmt.Stringer for diagnostics and shell output.
func (v Value) String() string {
	switch v.Type() {
	case TypeInteger:
		return strconv.FormatInt(v.num, 10)
	case TypeFloat:
		return formatFloatText(v.fl)
	case TypeText:
		return v.str
	case TypeBlob:
		return fmt.Sprintf("x'%x'", v.raw)
	default:
		return "NULL"
	}
}

// formatFloatText renders a float the way the conversion layer documents
// it: shortest decimal form with a guaranteed fractional part.
func formatFloatText(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
