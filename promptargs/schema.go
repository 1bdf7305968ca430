package promptargs

import (
	"fmt"
	"strings"

	"github.com/promptwell/prompt-server-go/mcp"
)

// Field is a single argument declaration.
type Field struct {
	Type        FieldType
	Description string
	// Required is tri-state: nil means unset, which leaves optionality to
	// the default presence and the type's own optionality.
	Required *bool
	// Default is merged in when the caller omits the field. It always wins
	// over zero synthesis, even when Required is explicitly true.
	Default any
}

// optional reports whether absence of the field is acceptable. This is the
// one shared optionality predicate: Resolve uses it to accept absent fields
// and Describe uses it to report the required flag, so the two cannot drift.
func (f Field) optional() bool {
	if f.Required != nil && !*f.Required {
		return true
	}
	if f.Default != nil {
		return true
	}
	return f.Type.Optional()
}

// explicitlyOptional reports whether absence should be preserved during the
// default merge: only an explicit required=false or a self-optional type
// keeps a defaultless field absent.
func (f Field) explicitlyOptional() bool {
	return (f.Required != nil && !*f.Required) || f.Type.Optional()
}

type namedField struct {
	name  string
	field Field
}

// Schema is an ordered set of argument declarations. It is declared once per
// prompt and is immutable for the prompt's lifetime.
type Schema struct {
	fields []namedField
	index  map[string]int
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, nf := range s.fields {
		out[i] = nf.name
	}
	return out
}

// Field looks up a declaration by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i].field, true
}

// Describe returns the catalog view of the schema: one name/description/
// required triple per field, in declaration order. The required flag is the
// negation of the same optionality predicate Resolve applies.
func (s *Schema) Describe() []mcp.PromptArgument {
	out := make([]mcp.PromptArgument, len(s.fields))
	for i, nf := range s.fields {
		out[i] = mcp.PromptArgument{
			Name:        nf.name,
			Description: nf.field.Description,
			Required:    !nf.field.optional(),
		}
	}
	return out
}

// FieldOption configures a single field declaration.
type FieldOption func(*Field)

// Description attaches a human-readable description.
func Description(desc string) FieldOption { return func(f *Field) { f.Description = desc } }

// Default sets the value merged in when the caller omits the field.
func Default(v any) FieldOption { return func(f *Field) { f.Default = v } }

// Required marks the field explicitly required.
func Required() FieldOption {
	return func(f *Field) { t := true; f.Required = &t }
}

// Optional marks the field explicitly not required.
func Optional() FieldOption {
	return func(f *Field) { t := false; f.Required = &t }
}

// SchemaBuilder constructs a Schema fluently.
// Usage:
//
//	s := promptargs.NewSchema().
//	    String("message", promptargs.Default("hi"), promptargs.Description("Greeting text")).
//	    Number("count", promptargs.Default(42)).
//	    Boolean("verbose", promptargs.Optional()).
//	    Build()
//
// Declaration order is preserved and surfaces in Describe. Duplicate or
// empty field names panic: they are authoring errors, not runtime input.
type SchemaBuilder struct {
	fields []namedField
	seen   map[string]struct{}
	built  bool
}

// NewSchema returns an empty schema builder.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{seen: make(map[string]struct{})}
}

// String declares a string field.
func (b *SchemaBuilder) String(name string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, String(), opts...)
}

// Number declares a number field.
func (b *SchemaBuilder) Number(name string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, Number(), opts...)
}

// Integer declares an integer field.
func (b *SchemaBuilder) Integer(name string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, Integer(), opts...)
}

// Boolean declares a boolean field.
func (b *SchemaBuilder) Boolean(name string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, Boolean(), opts...)
}

// Array declares a sequence field.
func (b *SchemaBuilder) Array(name string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, Array(), opts...)
}

// Object declares a mapping field.
func (b *SchemaBuilder) Object(name string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, Object(), opts...)
}

// Enum declares a string field constrained to the given values.
func (b *SchemaBuilder) Enum(name string, values []string, opts ...FieldOption) *SchemaBuilder {
	return b.Typed(name, Enum(values...), opts...)
}

// Typed declares a field with an explicit FieldType.
func (b *SchemaBuilder) Typed(name string, t FieldType, opts ...FieldOption) *SchemaBuilder {
	if strings.TrimSpace(name) == "" {
		panic("promptargs: empty field name")
	}
	if t == nil {
		panic(fmt.Sprintf("promptargs: nil field type for %s", name))
	}
	if _, dup := b.seen[name]; dup {
		panic(fmt.Sprintf("promptargs: duplicate field %s", name))
	}
	b.seen[name] = struct{}{}
	f := Field{Type: t}
	for _, o := range opts {
		if o != nil {
			o(&f)
		}
	}
	b.fields = append(b.fields, namedField{name: name, field: f})
	return b
}

// Build finalizes the schema. The builder must not be reused afterwards.
func (b *SchemaBuilder) Build() *Schema {
	if b.built {
		panic("promptargs: schema builder reused after Build")
	}
	b.built = true
	s := &Schema{
		fields: append([]namedField(nil), b.fields...),
		index:  make(map[string]int, len(b.fields)),
	}
	for i, nf := range s.fields {
		s.index[nf.name] = i
	}
	return s
}
