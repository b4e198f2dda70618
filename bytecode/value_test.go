package bytecode

import (
	"testing"

	"max/token"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{"int plus int stays int", IntegerValue(1), IntegerValue(2), IntegerValue(3), false},
		{"float plus float", FloatValue(1.5), FloatValue(2), FloatValue(3.5), false},
		{"int widens to float", IntegerValue(1), FloatValue(0.5), FloatValue(1.5), false},
		{"float plus int widens", FloatValue(0.5), IntegerValue(1), FloatValue(1.5), false},
		{"strings concatenate", StringValue("ab"), StringValue("cd"), StringValue("abcd"), false},
		{"int plus string fails", IntegerValue(1), StringValue("a"), Value{}, true},
		{"none fails", NoneValue(), IntegerValue(1), Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Add(%v, %v) succeeded, want error", tt.a, tt.b)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Add(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAddErrorMessage(t *testing.T) {
	_, err := Add(IntegerValue(1), StringValue("a"))
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "Unsupported add operation on types int and string"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{"int times int", IntegerValue(3), IntegerValue(4), IntegerValue(12), false},
		{"widening", IntegerValue(2), FloatValue(1.5), FloatValue(3), false},
		{"int repeats string", IntegerValue(2), StringValue("ab"), StringValue("abab"), false},
		{"string repeated by int", StringValue("x"), IntegerValue(3), StringValue("xxx"), false},
		{"zero repeat", IntegerValue(0), StringValue("ab"), StringValue(""), false},
		{"negative repeat fails", IntegerValue(-1), StringValue("ab"), Value{}, true},
		{"string times string fails", StringValue("a"), StringValue("b"), Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Multiply(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Multiply(%v, %v) succeeded, want error", tt.a, tt.b)
				}
				return
			}
			if err != nil {
				t.Fatalf("Multiply(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Multiply(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDivideAlwaysYieldsFloat(t *testing.T) {
	got, err := Divide(IntegerValue(10), IntegerValue(4))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindFloat || got.Float != 2.5 {
		t.Errorf("10 / 4 = %v, want float 2.5", got)
	}

	got, err = Divide(IntegerValue(10), IntegerValue(2))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindFloat || got.Float != 5 {
		t.Errorf("10 / 2 = %v, want float 5", got)
	}
}

func TestSubtractWidens(t *testing.T) {
	got, err := Subtract(FloatValue(2.5), IntegerValue(1))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, FloatValue(1.5)) {
		t.Errorf("2.5 - 1 = %v", got)
	}

	if _, err := Subtract(StringValue("a"), StringValue("b")); err == nil {
		t.Error("string subtraction succeeded, want error")
	}
}

func TestNegate(t *testing.T) {
	got, err := Negate(IntegerValue(5))
	if err != nil || !Equal(got, IntegerValue(-5)) {
		t.Errorf("Negate(5) = %v, %v", got, err)
	}
	got, err = Negate(FloatValue(1.5))
	if err != nil || !Equal(got, FloatValue(-1.5)) {
		t.Errorf("Negate(1.5) = %v, %v", got, err)
	}
	if _, err := Negate(StringValue("a")); err == nil {
		t.Error("Negate on a string succeeded, want error")
	}
}

func TestTruthiness(t *testing.T) {
	truthy := []Value{
		BoolValue(true),
		IntegerValue(1),
		IntegerValue(-1),
		FloatValue(0.1),
		StringValue("x"),
	}
	falsy := []Value{
		BoolValue(false),
		IntegerValue(0),
		FloatValue(0),
		StringValue(""),
		NoneValue(),
		NoneFor(token.TypeInt),
		FunctionValue(NewFunction()),
	}

	for _, v := range truthy {
		if !v.IsTruthy() {
			t.Errorf("%v should be truthy", v)
		}
	}
	for _, v := range falsy {
		if v.IsTruthy() {
			t.Errorf("%v should be falsy", v)
		}
	}
}

func TestEqualIsStructural(t *testing.T) {
	same := [][2]Value{
		{IntegerValue(1), IntegerValue(1)},
		{FloatValue(1.5), FloatValue(1.5)},
		{StringValue("a"), StringValue("a")},
		{BoolValue(true), BoolValue(true)},
		{NoneValue(), NoneValue()},
		{NoneFor(token.TypeInt), NoneFor(token.TypeInt)},
	}
	for _, pair := range same {
		if !Equal(pair[0], pair[1]) || !Equal(pair[1], pair[0]) {
			t.Errorf("%v and %v should be equal both ways", pair[0], pair[1])
		}
		if !Equal(pair[0], pair[0]) {
			t.Errorf("%v is not equal to itself", pair[0])
		}
	}

	different := [][2]Value{
		{IntegerValue(1), IntegerValue(2)},
		{IntegerValue(1), FloatValue(1)},
		{IntegerValue(1), StringValue("1")},
		{BoolValue(true), BoolValue(false)},
		{NoneValue(), NoneFor(token.TypeInt)},
		{NoneFor(token.TypeInt), NoneFor(token.TypeString)},
		{NoneValue(), IntegerValue(0)},
	}
	for _, pair := range different {
		if Equal(pair[0], pair[1]) || Equal(pair[1], pair[0]) {
			t.Errorf("%v and %v should not be equal", pair[0], pair[1])
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Value
		want int
		ok   bool
	}{
		{IntegerValue(1), IntegerValue(2), -1, true},
		{IntegerValue(2), IntegerValue(2), 0, true},
		{IntegerValue(3), IntegerValue(2), 1, true},
		{IntegerValue(1), FloatValue(1.5), -1, true},
		{FloatValue(2.5), IntegerValue(2), 1, true},
		{StringValue("a"), StringValue("b"), 0, false},
		{IntegerValue(1), StringValue("a"), 0, false},
		{BoolValue(true), BoolValue(false), 0, false},
	}

	for _, tt := range tests {
		got, ok := Compare(tt.a, tt.b)
		if ok != tt.ok {
			t.Errorf("Compare(%v, %v) comparable = %v, want %v", tt.a, tt.b, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAnnotationAccepts(t *testing.T) {
	tests := []struct {
		annotation token.TokenType
		value      Value
		want       bool
	}{
		{token.TypeInt, IntegerValue(1), true},
		{token.TypeInt, NoneFor(token.TypeInt), true},
		{token.TypeInt, FloatValue(1), false},
		{token.TypeInt, NoneFor(token.TypeFloat), false},
		{token.TypeFloat, FloatValue(1), true},
		{token.TypeFloat, NoneFor(token.TypeFloat), true},
		{token.TypeFloat, IntegerValue(1), false},
		{token.TypeString, StringValue(""), true},
		{token.TypeString, NoneFor(token.TypeString), true},
		{token.TypeString, IntegerValue(1), false},
		{token.TypeBool, BoolValue(true), true},
		{token.TypeBool, BoolValue(false), true},
		{token.TypeBool, NoneFor(token.TypeBool), true},
		{token.TypeBool, IntegerValue(1), false},
		{token.TypeFunction, FunctionValue(NewFunction()), true},
		{token.TypeFunction, NoneValue(), false},
		{token.None, IntegerValue(1), true},
		{token.None, StringValue("x"), true},
		{token.None, FunctionValue(NewFunction()), true},
	}

	for _, tt := range tests {
		if got := AnnotationAccepts(tt.annotation, tt.value); got != tt.want {
			t.Errorf("AnnotationAccepts(%v, %v) = %v, want %v", tt.annotation, tt.value, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	fn := NewFunction()
	fn.Name = "square"

	tests := []struct {
		value Value
		want  string
	}{
		{IntegerValue(42), "42"},
		{FloatValue(2.5), "2.5"},
		{FloatValue(3), "3"},
		{StringValue("hi"), `"hi"`},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{NoneValue(), "none"},
		{NoneFor(token.TypeInt), "none"},
		{FunctionValue(fn), "<function square>"},
		{FunctionValue(NewFunction()), "<script>"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
