// Package structure implements Struct, the runtime value of a structure type: an ordered list of values,
// each optionally named.
//
// Computations with more than one parameter receive their arguments packed in a Struct, and computations may
// return a Struct to return more than one value.
package structure

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field of a Struct. Name is optional, but unique within the Struct when given.
type Field struct {
	Name  string
	Value any
}

// Struct is an immutable ordered list of fields.
type Struct struct {
	fields []Field
}

// New creates a Struct of unnamed fields with the given values.
func New(values ...any) *Struct {
	s := &Struct{fields: make([]Field, len(values))}
	for i, value := range values {
		s.fields[i] = Field{Value: value}
	}
	return s
}

// Named creates a Struct with the given fields. It returns an error if a name is used more than once.
func Named(fields ...Field) (*Struct, error) {
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		if seen[field.Name] {
			return nil, errors.Errorf("structure.Named: field name %q used more than once", field.Name)
		}
		seen[field.Name] = true
	}
	return &Struct{fields: append([]Field(nil), fields...)}, nil
}

// Len returns the number of fields.
func (s *Struct) Len() int { return len(s.fields) }

// Field returns the i-th field.
func (s *Struct) Field(i int) Field { return s.fields[i] }

// Value returns the value of the i-th field.
func (s *Struct) Value(i int) any { return s.fields[i].Value }

// Get returns the value of the field with the given name.
func (s *Struct) Get(name string) (any, bool) {
	if name == "" {
		return nil, false
	}
	for _, field := range s.fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Names returns the names of the fields, with "" for unnamed fields.
func (s *Struct) Names() []string {
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name
	}
	return names
}

// Values returns the values of the fields, in order.
func (s *Struct) Values() []any {
	values := make([]any, len(s.fields))
	for i, field := range s.fields {
		values[i] = field.Value
	}
	return values
}

// Map returns a new Struct with the same names, and each value transformed by fn.
// It stops at the first error.
func (s *Struct) Map(fn func(i int, value any) (any, error)) (*Struct, error) {
	mapped := &Struct{fields: make([]Field, len(s.fields))}
	for i, field := range s.fields {
		value, err := fn(i, field.Value)
		if err != nil {
			return nil, err
		}
		mapped.fields[i] = Field{Name: field.Name, Value: value}
	}
	return mapped, nil
}

// String implements fmt.Stringer, rendering as "<a=1,2>".
func (s *Struct) String() string {
	parts := make([]string, len(s.fields))
	for i, field := range s.fields {
		if field.Name == "" {
			parts[i] = fmt.Sprintf("%v", field.Value)
		} else {
			parts[i] = fmt.Sprintf("%s=%v", field.Name, field.Value)
		}
	}
	return "<" + strings.Join(parts, ",") + ">"
}
