package promptargs

import (
	"fmt"
	"strings"
)

// Violation records one field that failed validation.
type Violation struct {
	Field string
	// Want describes the expected type or the violated constraint.
	Want string
	// Got is the offending value. An explicit null is a present value with
	// a nil Got; check Present to tell it apart from omission.
	Got any
	// Present reports whether the field carried a value at all.
	Present bool
}

func (v Violation) String() string {
	switch {
	case !v.Present:
		return fmt.Sprintf("%s: missing required %s", v.Field, v.Want)
	case v.Got == nil:
		return fmt.Sprintf("%s: %s", v.Field, v.Want)
	default:
		return fmt.Sprintf("%s: %s (got %#v)", v.Field, v.Want, v.Got)
	}
}

// ValidationError aggregates every violated field from a single Resolve
// call. Validation is a single structural check, never short-circuited
// field by field.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// Resolve merges schema defaults into raw and validates the result.
//
// It is a pure function of (s, raw): raw is never mutated, the returned
// object is freshly allocated, and no state survives the call. A nil raw is
// equivalent to an empty input. On failure no partial object is returned;
// the error is a *ValidationError enumerating every offending field.
func Resolve(s *Schema, raw map[string]any) (map[string]any, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("promptargs: resolve requires a non-empty schema")
	}

	merged := make(map[string]any, len(raw)+s.Len())
	for k, v := range raw {
		merged[k] = v
	}

	// Default merge. Merges are per-field independent, so declaration order
	// cannot affect the outcome.
	for _, nf := range s.fields {
		if _, present := merged[nf.name]; present {
			continue
		}
		f := nf.field
		switch {
		case f.Default != nil:
			merged[nf.name] = cloneValue(f.Default)
		case f.explicitlyOptional():
			// Genuinely optional with no default: stays absent.
		default:
			// Required with no explicit default. That is an authoring gap in
			// the prompt's schema, not the caller's input: synthesize the
			// type's canonical zero so empty calls do not fail spuriously.
			// Types without a canonical zero stay absent and fail below.
			if zv, ok := f.Type.Zero(); ok {
				merged[nf.name] = zv
			}
		}
	}

	// Validate the merged object as a whole, accepting absence only where
	// the shared optionality predicate allows it.
	var verr ValidationError
	for _, nf := range s.fields {
		f := nf.field
		v, present := merged[nf.name]
		if !present {
			if f.optional() {
				continue
			}
			verr.Violations = append(verr.Violations, Violation{Field: nf.name, Want: f.Type.Name()})
			continue
		}
		if err := f.Type.Validate(v); err != nil {
			verr.Violations = append(verr.Violations, Violation{Field: nf.name, Want: err.Error(), Got: v, Present: true})
		}
	}
	if len(verr.Violations) > 0 {
		return nil, &verr
	}
	return merged, nil
}

// cloneValue copies container defaults so a caller mutating a resolved
// object cannot corrupt the schema's default for later calls.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
