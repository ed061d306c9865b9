// Package form implements the schema-driven form engine: declarative
// field lists, per-form drafts, client-side validation, and multipart
// payload assembly. It knows nothing about which entity a schema serves
// or how fields are presented to the operator.
package form

import (
	"fmt"
	"sort"
)

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldEmail  FieldType = "email"
	FieldTel    FieldType = "tel"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
	FieldFile   FieldType = "file"
	FieldHidden FieldType = "hidden"
)

// Option is one selectable value of a select field.
type Option struct {
	Label string
	Value string
}

// Field describes one input of a form.
type Field struct {
	Label        string
	Name         string
	Type         FieldType
	Options      []Option
	Required     bool
	DefaultValue string
}

// Schema is a static, validated field list for one form purpose. Schemas
// are defined once and never mutated at runtime.
type Schema struct {
	Name   string
	fields []Field
	byName map[string]int
}

// NewSchema validates fields against the target entity's recognized
// field names, so a typo in a schema fails at construction rather than
// producing a payload the backend silently drops.
func NewSchema(name string, recognized []string, fields ...Field) (*Schema, error) {
	known := make(map[string]bool, len(recognized))
	for _, n := range recognized {
		known[n] = true
	}

	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema %s: field %d has no name", name, i)
		}
		if !known[f.Name] {
			return nil, fmt.Errorf("schema %s: field %q is not recognized by the target entity", name, f.Name)
		}
		if _, dup := byName[f.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate field %q", name, f.Name)
		}
		if f.Type == FieldSelect && len(f.Options) == 0 {
			return nil, fmt.Errorf("schema %s: select field %q has no options", name, f.Name)
		}
		if f.Type != FieldSelect && len(f.Options) > 0 {
			return nil, fmt.Errorf("schema %s: field %q carries options but is not a select", name, f.Name)
		}
		byName[f.Name] = i
	}

	return &Schema{Name: name, fields: fields, byName: byName}, nil
}

// MustSchema panics on an invalid schema; used for the static definitions.
func MustSchema(name string, recognized []string, fields ...Field) *Schema {
	s, err := NewSchema(name, recognized, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field looks a field up by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// OptionValues returns the allowed values of a select field, sorted for
// stable error messages.
func (f Field) OptionValues() []string {
	values := make([]string, len(f.Options))
	for i, o := range f.Options {
		values[i] = o.Value
	}
	sort.Strings(values)
	return values
}

func selectOptions(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}
