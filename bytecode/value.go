package bytecode

import (
	"fmt"
	"strconv"
	"strings"

	"max/token"
)

// Kind tags a runtime Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindInteger
	KindFloat
	KindString
	KindTrue
	KindFalse
	KindFunction
)

// Value is the tagged runtime value of MAX. A none value may carry the type
// annotation it satisfies in NoneOf: `int x` with no initializer binds a
// none tagged TypeInt, which still satisfies the int constraint. A plain
// `none` has an empty tag.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Str    string
	Fn     *Function
	NoneOf token.TokenType
}

func IntegerValue(i int64) Value  { return Value{Kind: KindInteger, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NoneValue() Value            { return Value{Kind: KindNone} }
func FunctionValue(f *Function) Value {
	return Value{Kind: KindFunction, Fn: f}
}

func BoolValue(b bool) Value {
	if b {
		return Value{Kind: KindTrue}
	}
	return Value{Kind: KindFalse}
}

// NoneFor returns the typed-none zero value for the annotation t, or plain
// none when t is not a type annotation.
func NoneFor(t token.TokenType) Value {
	if t.IsType() {
		return Value{Kind: KindNone, NoneOf: t}
	}
	return Value{Kind: KindNone}
}

// AnnotationAccepts reports whether v satisfies the type annotation t.
// An unannotated declaration (t == token.None) accepts anything.
func AnnotationAccepts(t token.TokenType, v Value) bool {
	switch t {
	case token.TypeInt:
		return v.Kind == KindInteger || (v.Kind == KindNone && v.NoneOf == token.TypeInt)
	case token.TypeFloat:
		return v.Kind == KindFloat || (v.Kind == KindNone && v.NoneOf == token.TypeFloat)
	case token.TypeString:
		return v.Kind == KindString || (v.Kind == KindNone && v.NoneOf == token.TypeString)
	case token.TypeBool:
		return v.Kind == KindTrue || v.Kind == KindFalse ||
			(v.Kind == KindNone && v.NoneOf == token.TypeBool)
	case token.TypeFunction:
		return v.Kind == KindFunction
	case token.None:
		return true
	}
	return false
}

func (v Value) IsNumber() bool {
	return v.Kind == KindInteger || v.Kind == KindFloat
}

// IsTruthy: true, nonzero numbers and non-empty strings are truthy;
// everything else, typed nones included, is falsy.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case KindTrue:
		return true
	case KindInteger:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	}
	return false
}

// TypeOf returns the type name used in diagnostics.
func (v Value) TypeOf() string {
	switch v.Kind {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTrue, KindFalse:
		return "bool"
	case KindFunction:
		return "function"
	}
	return "none"
}

// String renders the value the way print shows it: strings quoted, floats in
// shortest form, functions as <function name>, all nones as none.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return "\"" + v.Str + "\""
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindFunction:
		return v.Fn.String()
	}
	return "none"
}

func (v Value) asFloat() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}
	return v.Float
}

// Add: int+int stays int, any int/float mix widens to float, strings
// concatenate.
func Add(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInteger && b.Kind == KindInteger:
		return IntegerValue(a.Int + b.Int), nil
	case a.IsNumber() && b.IsNumber():
		return FloatValue(a.asFloat() + b.asFloat()), nil
	case a.Kind == KindString && b.Kind == KindString:
		return StringValue(a.Str + b.Str), nil
	}
	return Value{}, fmt.Errorf("Unsupported add operation on types %s and %s", a.TypeOf(), b.TypeOf())
}

func Subtract(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInteger && b.Kind == KindInteger:
		return IntegerValue(a.Int - b.Int), nil
	case a.IsNumber() && b.IsNumber():
		return FloatValue(a.asFloat() - b.asFloat()), nil
	}
	return Value{}, fmt.Errorf("Unsupported substract operation on types %s and %s", a.TypeOf(), b.TypeOf())
}

// Multiply follows Add's numeric rules and additionally repeats a string:
// int*string and string*int both yield the string repeated n times.
func Multiply(a, b Value) (Value, error) {
	switch {
	case a.Kind == KindInteger && b.Kind == KindInteger:
		return IntegerValue(a.Int * b.Int), nil
	case a.IsNumber() && b.IsNumber():
		return FloatValue(a.asFloat() * b.asFloat()), nil
	case a.Kind == KindInteger && b.Kind == KindString:
		return repeatString(b.Str, a.Int)
	case a.Kind == KindString && b.Kind == KindInteger:
		return repeatString(a.Str, b.Int)
	}
	return Value{}, fmt.Errorf("Unsupported multiply operation on types %s and %s", a.TypeOf(), b.TypeOf())
}

func repeatString(s string, n int64) (Value, error) {
	if n < 0 {
		return Value{}, fmt.Errorf("Cannot repeat a string a negative number of times")
	}
	return StringValue(strings.Repeat(s, int(n))), nil
}

// Divide always yields a float, int/int included.
func Divide(a, b Value) (Value, error) {
	if a.IsNumber() && b.IsNumber() {
		return FloatValue(a.asFloat() / b.asFloat()), nil
	}
	return Value{}, fmt.Errorf("Unsupported divide operation on types %s and %s", a.TypeOf(), b.TypeOf())
}

// Negate is defined on numbers only.
func Negate(v Value) (Value, error) {
	switch v.Kind {
	case KindInteger:
		return IntegerValue(-v.Int), nil
	case KindFloat:
		return FloatValue(-v.Float), nil
	}
	return Value{}, fmt.Errorf("Unsupported negate operation on type %s", v.TypeOf())
}

// Not applies the truthiness rule and inverts it.
func Not(v Value) Value {
	return BoolValue(!v.IsTruthy())
}

// Equal is structural on same-kind pairs; values of different kinds are
// never equal. Typed nones compare equal only when their tags match.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInteger:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindString:
		return a.Str == b.Str
	case KindTrue, KindFalse:
		return true
	case KindNone:
		return a.NoneOf == b.NoneOf
	case KindFunction:
		return a.Fn == b.Fn
	}
	return false
}

// Compare orders two numeric values with widening, returning -1, 0 or 1.
// Non-numeric operands are incomparable and report ok == false.
func Compare(a, b Value) (int, bool) {
	if !a.IsNumber() || !b.IsNumber() {
		return 0, false
	}
	if a.Kind == KindInteger && b.Kind == KindInteger {
		switch {
		case a.Int < b.Int:
			return -1, true
		case a.Int > b.Int:
			return 1, true
		}
		return 0, true
	}
	af, bf := a.asFloat(), b.asFloat()
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}
