// Package value implements the tagged-union Value model of the
// expression algebra: Int, Float, Bool, Str and Null, with the
// promotion and equality rules every builder operation evaluates
// against.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cast"

	"xplain/internal/xerrors"
)

// Kind tags the variant a Value currently holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a small tagged struct rather than an interface{}, so the
// variants are exhaustive and promotion stays a plain switch.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

func Null() Value           { return Value{kind: KindNull} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Str(s string) Value    { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the raw int64 and whether v actually holds an Int.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the raw float64 and whether v actually holds a Float.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Bool returns the raw bool and whether v actually holds a Bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Str returns the raw string and whether v actually holds a Str.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func isNumeric(v Value) bool { return v.kind == KindInt || v.kind == KindFloat }

// native returns the Go-native numeric value, for cast-driven promotion.
func (v Value) native() any {
	if v.kind == KindInt {
		return v.i
	}
	return v.f
}

// promote widens two numeric operands to float64, also reporting
// whether both were Int (in which case integer arithmetic applies).
func promote(a, b Value) (af, bf float64, bothInt bool, err error) {
	if !isNumeric(a) || !isNumeric(b) {
		return 0, 0, false, xerrors.TypeError.New(a.Kind(), b.Kind())
	}
	return cast.ToFloat64(a.native()), cast.ToFloat64(b.native()), a.kind == KindInt && b.kind == KindInt, nil
}

// Add implements Plus: Int+Int promotes to Int, any Float operand promotes to Float.
func Add(a, b Value) (Value, error) {
	af, bf, bothInt, err := promote(a, b)
	if err != nil {
		return Value{}, err
	}
	if bothInt {
		return Int(a.i + b.i), nil
	}
	return Float(af + bf), nil
}

// Sub implements Minus.
func Sub(a, b Value) (Value, error) {
	af, bf, bothInt, err := promote(a, b)
	if err != nil {
		return Value{}, err
	}
	if bothInt {
		return Int(a.i - b.i), nil
	}
	return Float(af - bf), nil
}

// Mul implements Times.
func Mul(a, b Value) (Value, error) {
	af, bf, bothInt, err := promote(a, b)
	if err != nil {
		return Value{}, err
	}
	if bothInt {
		return Int(a.i * b.i), nil
	}
	return Float(af * bf), nil
}

// Div implements DividedBy: operands are promoted to Float first, always.
func Div(a, b Value) (Value, error) {
	af, bf, _, err := promote(a, b)
	if err != nil {
		return Value{}, err
	}
	if bf == 0 {
		return Value{}, xerrors.DivisionByZero.New()
	}
	return Float(af / bf), nil
}

func compareNumeric(a, b Value) (int, error) {
	af, bf, _, err := promote(a, b)
	if err != nil {
		return 0, err
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

// Gt, Gte, Lt, Lte require numeric operands; ordering over Bool/Str/Null is undefined.
func Gt(a, b Value) (bool, error) {
	c, err := compareNumeric(a, b)
	return c > 0, err
}

func Gte(a, b Value) (bool, error) {
	c, err := compareNumeric(a, b)
	return c >= 0, err
}

func Lt(a, b Value) (bool, error) {
	c, err := compareNumeric(a, b)
	return c < 0, err
}

func Lte(a, b Value) (bool, error) {
	c, err := compareNumeric(a, b)
	return c <= 0, err
}

// Eq compares numerics after promotion, and compares Bool/Str/Null
// directly; operands of two different non-numeric kinds are simply
// unequal rather than a TypeError — equality is total, unlike ordering.
func Eq(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		c, _ := compareNumeric(a, b)
		return c == 0
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindNull:
		return true
	default:
		return false
	}
}

func Ne(a, b Value) bool { return !Eq(a, b) }

// wireValue is the record-layer JSON encoding of a Value (§6: "value
// (json)"), one field populated per kind.
type wireValue struct {
	Kind   string   `json:"kind"`
	Int    *int64   `json:"i,omitempty"`
	Float  *float64 `json:"f,omitempty"`
	Bool   *bool    `json:"b,omitempty"`
	String *string  `json:"s,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	w := wireValue{Kind: v.kind.String()}
	switch v.kind {
	case KindInt:
		w.Int = &v.i
	case KindFloat:
		w.Float = &v.f
	case KindBool:
		w.Bool = &v.b
	case KindString:
		w.String = &v.s
	}
	return json.Marshal(w)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "null":
		*v = Null()
	case "int":
		*v = Int(*w.Int)
	case "float":
		*v = Float(*w.Float)
	case "bool":
		*v = Bool(*w.Bool)
	case "string":
		*v = Str(*w.String)
	default:
		return fmt.Errorf("value: unknown kind %q", w.Kind)
	}
	return nil
}

// String renders the canonical literal form used by the Renderer:
// True/False for Bool, Null for Null, quoted for Str, plain for numerics.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	default:
		return "<invalid>"
	}
}
