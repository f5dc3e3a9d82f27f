package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Kind identifies which primitive a Value holds.
type Kind uint8

// Supported value kinds. KindUndefined is what a record yields for a field it
// does not have.
const (
	KindUndefined Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "undefined"
	}
}

// Value is a primitive record value: a string, a number, a boolean, or
// undefined. The zero Value is undefined.
//
// Coercions follow the loose rules browser clients of the listing endpoint
// rely on: missing fields compare as the string "undefined", and non-numeric
// strings become NaN, which makes every numeric comparison false.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// NumberValue wraps n.
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf converts a decoded JSON or YAML scalar into a Value.
func ValueOf(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{}, fmt.Errorf("null is not a primitive value")
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case float32:
		return NumberValue(float64(t)), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case uint64:
		return NumberValue(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("parse number %q: %w", t.String(), err)
		}
		return NumberValue(f), nil
	case Value:
		return t, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether v is undefined.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// Interface returns the underlying Go value (string, float64, bool or nil).
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String implements fmt.Stringer using the string coercion.
func (v Value) String() string { return v.ToString() }

// ToString coerces v to a string.
func (v Value) ToString() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return FormatNumber(v.n)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "undefined"
	}
}

// ToNumber coerces v to a number. Undefined and unparseable strings give NaN.
func (v Value) ToNumber() float64 {
	switch v.kind {
	case KindString:
		return ParseNumber(v.s)
	case KindNumber:
		return v.n
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// MarshalJSON encodes v as its JSON primitive. Undefined becomes null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.n)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON primitive. null decodes to undefined.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*v = Value{}
		return nil
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber converts a string to a number the way a browser's Number()
// does: surrounding whitespace is ignored, the empty string is 0, hex, octal
// and binary integer literals and signed Infinity are accepted, and anything
// else is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok || strings.ContainsAny(s[2:], "+-_") {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	// ErrRange still yields the correctly rounded ±Inf or 0.
	return f
}

// FormatNumber renders n the way a browser's String() does: integers without
// a fraction, the shortest round-trip digits otherwise, and exponent notation
// below 1e-6 or from 1e21 upward.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	// d.ddde±XX
	sci := strconv.FormatFloat(n, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)
	k := len(digits)
	point := exp + 1 // position of the decimal point relative to digits

	var out string
	switch {
	case k <= point && point <= 21:
		out = digits + strings.Repeat("0", point-k)
	case 0 < point && point <= 21:
		out = digits[:point] + "." + digits[point:]
	case -6 < point && point <= 0:
		out = "0." + strings.Repeat("0", -point) + digits
	default:
		e := point - 1
		expSign := "+"
		if e < 0 {
			expSign = "-"
			e = -e
		}
		if k == 1 {
			out = digits + "e" + expSign + strconv.Itoa(e)
		} else {
			out = digits[:1] + "." + digits[1:] + "e" + expSign + strconv.Itoa(e)
		}
	}
	return sign + out
}
