package promptargs

import (
	"encoding/json"
	"testing"
)

func TestFieldType_ZeroValues(t *testing.T) {
	cases := []struct {
		ft   FieldType
		want any
	}{
		{String(), ""},
		{Number(), float64(0)},
		{Integer(), float64(0)},
		{Boolean(), false},
	}
	for _, tc := range cases {
		zv, ok := tc.ft.Zero()
		if !ok {
			t.Fatalf("%s: expected a canonical zero", tc.ft.Name())
		}
		if zv != tc.want {
			t.Fatalf("%s: zero = %#v, want %#v", tc.ft.Name(), zv, tc.want)
		}
	}
	if zv, ok := Array().Zero(); !ok || len(zv.([]any)) != 0 {
		t.Fatalf("array zero = %#v, %v", zv, ok)
	}
	if zv, ok := Object().Zero(); !ok || len(zv.(map[string]any)) != 0 {
		t.Fatalf("object zero = %#v, %v", zv, ok)
	}
	if _, ok := Enum("a").Zero(); ok {
		t.Fatalf("enum must not claim a canonical zero")
	}
}

func TestString_Constraints(t *testing.T) {
	ft := String(MinLength(2), MaxLength(4))
	if err := ft.Validate("ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ft.Validate("a"); err == nil {
		t.Fatalf("expected minLength violation")
	}
	if err := ft.Validate("abcde"); err == nil {
		t.Fatalf("expected maxLength violation")
	}
	if err := ft.Validate(7); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestNumber_AcceptsCommonNumericRepresentations(t *testing.T) {
	ft := Number(Minimum(0), Maximum(100))
	for _, v := range []any{float64(3.5), 3, int64(3), uint(3), json.Number("3")} {
		if err := ft.Validate(v); err != nil {
			t.Fatalf("Validate(%T) = %v", v, err)
		}
	}
	if err := ft.Validate(json.Number("wat")); err == nil {
		t.Fatalf("expected type error for unparseable json.Number")
	}
	if err := ft.Validate(float64(-1)); err == nil {
		t.Fatalf("expected minimum violation")
	}
	if err := ft.Validate(float64(101)); err == nil {
		t.Fatalf("expected maximum violation")
	}
}

func TestInteger_RejectsFractional(t *testing.T) {
	ft := Integer()
	if err := ft.Validate(float64(3)); err != nil {
		t.Fatalf("integral float rejected: %v", err)
	}
	if err := ft.Validate(float64(3.5)); err == nil {
		t.Fatalf("expected fractional rejection")
	}
}

func TestEnum_Membership(t *testing.T) {
	ft := Enum("free", "pro")
	if err := ft.Validate("pro"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ft.Validate("enterprise"); err == nil {
		t.Fatalf("expected membership violation")
	}
	if err := ft.Validate(1); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestArrayAndObject_AcceptTypedContainers(t *testing.T) {
	if err := Array().Validate([]string{"a"}); err != nil {
		t.Fatalf("typed slice rejected: %v", err)
	}
	if err := Array().Validate("nope"); err == nil {
		t.Fatalf("expected array type error")
	}
	if err := Object().Validate(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("typed map rejected: %v", err)
	}
	if err := Object().Validate([]any{}); err == nil {
		t.Fatalf("expected object type error")
	}
}

func TestOptionalOf_DelegatesValidation(t *testing.T) {
	ft := OptionalOf(String(MinLength(2)))
	if !ft.Optional() {
		t.Fatalf("wrapper must report optional")
	}
	if ft.Name() != TypeString {
		t.Fatalf("wrapper must keep inner name, got %s", ft.Name())
	}
	if err := ft.Validate("a"); err == nil {
		t.Fatalf("present values must still hit inner constraints")
	}
}
