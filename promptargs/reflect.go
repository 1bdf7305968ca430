package promptargs

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// SchemaForStruct derives a Schema from a struct type via JSON Schema
// reflection. Exported fields become schema fields in declaration order,
// named by their json tag when present. Pointer fields (or fields tagged
// omitempty) reflect as not required; value fields are required. The
// jsonschema struct tag supplies description, enum, default and basic
// string/numeric constraints.
//
//	type GreetArgs struct {
//	    Name  string  `json:"name" jsonschema:"description=Who to greet"`
//	    Tone  *string `json:"tone,omitempty" jsonschema:"enum=formal,enum=casual"`
//	    Count int     `json:"count" jsonschema:"default=1,minimum=1"`
//	}
func SchemaForStruct[A any]() (*Schema, error) {
	// The reflector assumes a struct; guard the kind first so non-struct
	// type parameters fail with an error instead of a panic.
	if reflect.TypeOf(new(A)).Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("promptargs: %T does not reflect to an object schema", *new(A))
	}
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	js := r.Reflect(new(A))
	if js == nil || js.Type != "object" || js.Properties == nil {
		return nil, fmt.Errorf("promptargs: %T does not reflect to an object schema", *new(A))
	}

	required := make(map[string]bool, len(js.Required))
	for _, name := range js.Required {
		required[name] = true
	}

	b := NewSchema()
	for el := js.Properties.Oldest(); el != nil; el = el.Next() {
		name, prop := el.Key, el.Value
		ft, err := typeFromJSONSchema(prop)
		if err != nil {
			return nil, fmt.Errorf("promptargs: field %s: %w", name, err)
		}
		var opts []FieldOption
		if prop.Description != "" {
			opts = append(opts, Description(prop.Description))
		}
		if prop.Default != nil {
			opts = append(opts, Default(prop.Default))
		}
		if !required[name] {
			opts = append(opts, Optional())
		}
		b.Typed(name, ft, opts...)
	}
	return b.Build(), nil
}

func typeFromJSONSchema(prop *jsonschema.Schema) (FieldType, error) {
	if prop == nil {
		return nil, fmt.Errorf("missing property schema")
	}
	if len(prop.Enum) > 0 {
		values := make([]string, 0, len(prop.Enum))
		for _, ev := range prop.Enum {
			s, ok := ev.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported non-string enum value %v", ev)
			}
			values = append(values, s)
		}
		return Enum(values...), nil
	}

	var opts []TypeOption
	if prop.MinLength != nil {
		opts = append(opts, MinLength(int(*prop.MinLength)))
	}
	if prop.MaxLength != nil {
		opts = append(opts, MaxLength(int(*prop.MaxLength)))
	}
	if prop.Minimum != "" {
		if f, err := prop.Minimum.Float64(); err == nil {
			opts = append(opts, Minimum(f))
		}
	}
	if prop.Maximum != "" {
		if f, err := prop.Maximum.Float64(); err == nil {
			opts = append(opts, Maximum(f))
		}
	}

	switch prop.Type {
	case TypeString:
		return String(opts...), nil
	case TypeNumber:
		return Number(opts...), nil
	case TypeInteger:
		return Integer(opts...), nil
	case TypeBoolean:
		return Boolean(), nil
	case TypeArray:
		return Array(), nil
	case TypeObject:
		return Object(), nil
	default:
		return nil, fmt.Errorf("unsupported schema type %q", prop.Type)
	}
}
