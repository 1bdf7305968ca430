package promptargs

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Type tags for the built-in field types.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// FieldType is the capability a schema field delegates value checking to.
// A value must be checkable against the declared type, the type must know
// its canonical zero value (if it has one), and it must expose whether it
// treats absence as valid on its own.
//
// Implementations must be immutable after construction; a FieldType is
// shared by every Resolve call against its schema.
type FieldType interface {
	// Name returns the type tag used in descriptors and error messages.
	Name() string
	// Optional reports whether the type itself accepts an absent value.
	Optional() bool
	// Zero returns the canonical sensible default for the type and whether
	// one exists.
	Zero() (any, bool)
	// Validate checks a present value against the type and its constraints.
	// The error text describes the expected type or violated constraint.
	Validate(v any) error
}

// zeroValues is the canonical-zero dispatch table keyed by type tag. Adding
// a primitive type is a one-entry addition, not a new branch.
var zeroValues = map[string]func() any{
	TypeString:  func() any { return "" },
	TypeNumber:  func() any { return float64(0) },
	TypeInteger: func() any { return float64(0) },
	TypeBoolean: func() any { return false },
	TypeArray:   func() any { return []any{} },
	TypeObject:  func() any { return map[string]any{} },
}

func zeroFor(tag string) (any, bool) {
	fn, ok := zeroValues[tag]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// TypeOption attaches a constraint to a built-in field type.
type TypeOption func(*typeConstraints)

type typeConstraints struct {
	minLength *int
	maxLength *int
	minimum   *float64
	maximum   *float64
}

// MinLength sets a string minimum length.
func MinLength(n int) TypeOption { return func(c *typeConstraints) { c.minLength = &n } }

// MaxLength sets a string maximum length.
func MaxLength(n int) TypeOption { return func(c *typeConstraints) { c.maxLength = &n } }

// Minimum sets a numeric minimum.
func Minimum(f float64) TypeOption { return func(c *typeConstraints) { c.minimum = &f } }

// Maximum sets a numeric maximum.
func Maximum(f float64) TypeOption { return func(c *typeConstraints) { c.maximum = &f } }

func applyTypeOptions(opts []TypeOption) typeConstraints {
	var c typeConstraints
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// String returns a string field type.
func String(opts ...TypeOption) FieldType {
	return stringType{constraints: applyTypeOptions(opts)}
}

// Number returns a number field type accepting any numeric value.
func Number(opts ...TypeOption) FieldType {
	return numberType{constraints: applyTypeOptions(opts)}
}

// Integer returns a number field type that rejects fractional values.
func Integer(opts ...TypeOption) FieldType {
	return numberType{integer: true, constraints: applyTypeOptions(opts)}
}

// Boolean returns a boolean field type.
func Boolean() FieldType { return boolType{} }

// Array returns a sequence field type. Element types are not constrained.
func Array() FieldType { return arrayType{} }

// Object returns a mapping field type. Value types are not constrained.
func Object() FieldType { return objectType{} }

// Enum returns a string field type whose value must be one of values.
func Enum(values ...string) FieldType {
	return enumType{values: append([]string(nil), values...)}
}

// OptionalOf wraps a field type so that absence is accepted even when the
// field is not otherwise marked optional. Present values are validated by
// the inner type unchanged.
func OptionalOf(inner FieldType) FieldType { return optionalType{inner: inner} }

type stringType struct{ constraints typeConstraints }

func (stringType) Name() string { return TypeString }
func (stringType) Optional() bool { return false }
func (stringType) Zero() (any, bool) { return zeroFor(TypeString) }
func (t stringType) Validate(v any) error {
	s, ok := v.(string)
	if !ok {
		return typeErr(TypeString, v)
	}
	if c := t.constraints; c.minLength != nil && len(s) < *c.minLength {
		return fmt.Errorf("string shorter than minLength %d", *c.minLength)
	}
	if c := t.constraints; c.maxLength != nil && len(s) > *c.maxLength {
		return fmt.Errorf("string longer than maxLength %d", *c.maxLength)
	}
	return nil
}

type numberType struct {
	integer     bool
	constraints typeConstraints
}

func (t numberType) Name() string {
	if t.integer {
		return TypeInteger
	}
	return TypeNumber
}
func (numberType) Optional() bool { return false }
func (t numberType) Zero() (any, bool) { return zeroFor(t.Name()) }
func (t numberType) Validate(v any) error {
	f, ok := asNumber(v)
	if !ok {
		return typeErr(t.Name(), v)
	}
	if t.integer && math.Trunc(f) != f {
		return fmt.Errorf("expected integer, got fractional %g", f)
	}
	if c := t.constraints; c.minimum != nil && f < *c.minimum {
		return fmt.Errorf("number below minimum %g", *c.minimum)
	}
	if c := t.constraints; c.maximum != nil && f > *c.maximum {
		return fmt.Errorf("number above maximum %g", *c.maximum)
	}
	return nil
}

// asNumber normalizes the numeric representations produced by JSON decoding
// (float64), JSON Schema reflection (json.Number), YAML decoding (int /
// int64) and Go literals.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

type boolType struct{}

func (boolType) Name() string { return TypeBoolean }
func (boolType) Optional() bool { return false }
func (boolType) Zero() (any, bool) { return zeroFor(TypeBoolean) }
func (boolType) Validate(v any) error {
	if _, ok := v.(bool); !ok {
		return typeErr(TypeBoolean, v)
	}
	return nil
}

type arrayType struct{}

func (arrayType) Name() string { return TypeArray }
func (arrayType) Optional() bool { return false }
func (arrayType) Zero() (any, bool) { return zeroFor(TypeArray) }
func (arrayType) Validate(v any) error {
	if k := reflect.ValueOf(v).Kind(); k != reflect.Slice && k != reflect.Array {
		return typeErr(TypeArray, v)
	}
	return nil
}

type objectType struct{}

func (objectType) Name() string { return TypeObject }
func (objectType) Optional() bool { return false }
func (objectType) Zero() (any, bool) { return zeroFor(TypeObject) }
func (objectType) Validate(v any) error {
	if reflect.ValueOf(v).Kind() != reflect.Map {
		return typeErr(TypeObject, v)
	}
	return nil
}

type enumType struct{ values []string }

func (enumType) Name() string { return TypeString }
func (enumType) Optional() bool { return false }

// Zero is deliberately unsupported: there is no canonical member of an
// arbitrary enum, so a required enum without a default must surface as a
// validation failure rather than guess.
func (enumType) Zero() (any, bool) { return nil, false }
func (t enumType) Validate(v any) error {
	s, ok := v.(string)
	if !ok {
		return typeErr(TypeString, v)
	}
	for _, ev := range t.values {
		if ev == s {
			return nil
		}
	}
	return fmt.Errorf("value %q not in enum %v", s, t.values)
}

type optionalType struct{ inner FieldType }

func (t optionalType) Name() string { return t.inner.Name() }
func (optionalType) Optional() bool { return true }
func (t optionalType) Zero() (any, bool) { return t.inner.Zero() }
func (t optionalType) Validate(v any) error { return t.inner.Validate(v) }

func typeErr(want string, got any) error {
	if got == nil {
		return fmt.Errorf("expected %s, got null", want)
	}
	return fmt.Errorf("expected %s, got %T", want, got)
}
