package types

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Field of a StructType. Name is optional, but unique within the structure when given.
type Field struct {
	Name string
	Type Type
}

// Named is a shortcut to create a named Field.
func Named(name string, t Type) Field {
	return Field{Name: name, Type: t}
}

// String renders the field as "name=type", or "type" if it has no name.
func (f Field) String() string {
	if f.Name == "" {
		return render(f.Type)
	}
	return f.Name + "=" + render(f.Type)
}

// StructType is an ordered sequence of fields, each optionally named.
// It renders as "<a,b>" or "<f=a,x=b>".
type StructType struct {
	Fields []Field
}

// Struct creates a structure type with the given fields.
// It panics if a field has no type or if names are repeated. See StructOrError for a version that returns an error.
func Struct(fields ...Field) *StructType {
	t, err := StructOrError(fields...)
	if err != nil {
		exceptions.Panicf("%v", err)
	}
	return t
}

// StructOrError is the same as Struct, but it returns an error instead of panicking.
func StructOrError(fields ...Field) (*StructType, error) {
	seen := make(map[string]bool, len(fields))
	for i, field := range fields {
		if IsNil(field.Type) {
			return nil, errors.Errorf("types.Struct: field #%d (%q) has no type", i, field.Name)
		}
		if field.Name == "" {
			continue
		}
		if seen[field.Name] {
			return nil, errors.Errorf("types.Struct: field name %q used more than once", field.Name)
		}
		seen[field.Name] = true
	}
	return &StructType{Fields: append([]Field(nil), fields...)}, nil
}

// Unnamed creates a structure type of unnamed fields of the given types.
func Unnamed(fieldTypes ...Type) *StructType {
	fields := make([]Field, len(fieldTypes))
	for i, t := range fieldTypes {
		fields[i] = Field{Type: t}
	}
	return Struct(fields...)
}

func (*StructType) isType() {}

// Kind implements Type.
func (t *StructType) Kind() Kind { return KindStruct }

// Len returns the number of fields.
func (t *StructType) Len() int { return len(t.Fields) }

// Index returns the position of the field with the given name.
func (t *StructType) Index(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i, field := range t.Fields {
		if field.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Names returns the names of the fields, with "" for unnamed fields.
func (t *StructType) Names() []string {
	names := make([]string, len(t.Fields))
	for i, field := range t.Fields {
		names[i] = field.Name
	}
	return names
}

// String implements Type.
func (t *StructType) String() string {
	parts := make([]string, len(t.Fields))
	for i, field := range t.Fields {
		parts[i] = field.String()
	}
	return "<" + strings.Join(parts, ",") + ">"
}
