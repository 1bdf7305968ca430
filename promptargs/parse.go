package promptargs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaDoc is the on-disk representation of an argument schema. Arguments
// are a list rather than a mapping so that declaration order survives both
// YAML and JSON round trips.
type SchemaDoc struct {
	Arguments []FieldDoc `yaml:"arguments" json:"arguments"`
}

// FieldDoc is one argument declaration in a schema document.
type FieldDoc struct {
	Name        string   `yaml:"name" json:"name"`
	Type        string   `yaml:"type" json:"type"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Required    *bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Default     any      `yaml:"default,omitempty" json:"default,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty"`
	MinLength   *int     `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength   *int     `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// ParseSchema reads a schema document from YAML or JSON bytes. JSON parses
// through the YAML decoder unchanged.
func ParseSchema(data []byte) (*Schema, error) {
	var doc SchemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("promptargs: parse schema: %w", err)
	}
	return doc.Schema()
}

// ParseSchemaFile reads a schema document from a file.
func ParseSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("promptargs: read schema %s: %w", path, err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Schema builds the runtime schema for the document.
func (d SchemaDoc) Schema() (*Schema, error) {
	if len(d.Arguments) == 0 {
		return nil, fmt.Errorf("promptargs: schema document declares no arguments")
	}
	b := NewSchema()
	for _, fd := range d.Arguments {
		ft, err := fd.fieldType()
		if err != nil {
			return nil, fmt.Errorf("promptargs: argument %s: %w", fd.Name, err)
		}
		var opts []FieldOption
		if fd.Description != "" {
			opts = append(opts, Description(fd.Description))
		}
		if fd.Default != nil {
			opts = append(opts, Default(normalizeYAML(fd.Default)))
		}
		if fd.Required != nil {
			if *fd.Required {
				opts = append(opts, Required())
			} else {
				opts = append(opts, Optional())
			}
		}
		if fd.Name == "" {
			return nil, fmt.Errorf("promptargs: schema document argument missing name")
		}
		b.Typed(fd.Name, ft, opts...)
	}
	return b.Build(), nil
}

func (d FieldDoc) fieldType() (FieldType, error) {
	if len(d.Enum) > 0 {
		if d.Type != "" && d.Type != TypeString {
			return nil, fmt.Errorf("enum requires string type, got %q", d.Type)
		}
		return Enum(d.Enum...), nil
	}
	var opts []TypeOption
	if d.MinLength != nil {
		opts = append(opts, MinLength(*d.MinLength))
	}
	if d.MaxLength != nil {
		opts = append(opts, MaxLength(*d.MaxLength))
	}
	if d.Minimum != nil {
		opts = append(opts, Minimum(*d.Minimum))
	}
	if d.Maximum != nil {
		opts = append(opts, Maximum(*d.Maximum))
	}
	switch d.Type {
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
	case "":
		return nil, fmt.Errorf("missing type")
	default:
		return nil, fmt.Errorf("unsupported type %q", d.Type)
	}
}

// normalizeYAML rewrites the map[any]any shapes the YAML decoder can emit
// into the map[string]any shape the object type validates.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}
