// Package dtypes defines the primitive element kinds of tensor types, and their mapping to Go types.
package dtypes

import (
	"reflect"
	"strings"

	"github.com/x448/float16"
)

// DType is the primitive element kind of a tensor, e.g.: Int32, Bool, Float32.
//
// Its String method returns the canonical lower-case name used when rendering type signatures ("int32", "bool").
type DType int

//go:generate go tool enumer -type DType -transform=lower dtypes.go

const (
	// Invalid represents an invalid (or not set) dtype.
	Invalid DType = iota

	// Bool is used as the output and input of logic operations.
	Bool

	Int8
	Int16
	Int32
	Int64

	Uint8
	Uint16
	Uint32
	Uint64

	Float16
	Float32
	Float64

	Complex64
	Complex128

	String
)

var (
	float16Type = reflect.TypeOf(float16.Float16(0))

	goTypes = map[DType]reflect.Type{
		Bool:       reflect.TypeOf(false),
		Int8:       reflect.TypeOf(int8(0)),
		Int16:      reflect.TypeOf(int16(0)),
		Int32:      reflect.TypeOf(int32(0)),
		Int64:      reflect.TypeOf(int64(0)),
		Uint8:      reflect.TypeOf(uint8(0)),
		Uint16:     reflect.TypeOf(uint16(0)),
		Uint32:     reflect.TypeOf(uint32(0)),
		Uint64:     reflect.TypeOf(uint64(0)),
		Float16:    float16Type,
		Float32:    reflect.TypeOf(float32(0)),
		Float64:    reflect.TypeOf(float64(0)),
		Complex64:  reflect.TypeOf(complex64(0)),
		Complex128: reflect.TypeOf(complex128(0)),
		String:     reflect.TypeOf(""),
	}

	// shortNames are the XLA-style abbreviations also accepted by MapOfNames.
	shortNames = map[DType]string{
		Bool:       "pred",
		Int8:       "s8",
		Int16:      "s16",
		Int32:      "s32",
		Int64:      "s64",
		Uint8:      "u8",
		Uint16:     "u16",
		Uint32:     "u32",
		Uint64:     "u64",
		Float16:    "f16",
		Float32:    "f32",
		Float64:    "f64",
		Complex64:  "c64",
		Complex128: "c128",
	}
)

// MapOfNames maps names (canonical, capitalized and abbreviated, e.g. "int32", "Int32", "s32", "S32") to DTypes.
var MapOfNames = make(map[string]DType)

func init() {
	for _, dtype := range DTypeValues() {
		if dtype == Invalid {
			continue
		}
		name := dtype.String()
		MapOfNames[name] = dtype
		MapOfNames[strings.ToUpper(name[:1])+name[1:]] = dtype
		if short, found := shortNames[dtype]; found {
			MapOfNames[short] = dtype
			MapOfNames[strings.ToUpper(short)] = dtype
		}
	}
}

// GoType returns the Go type used to hold a scalar of the dtype, or nil for Invalid.
func (dtype DType) GoType() reflect.Type {
	return goTypes[dtype]
}

// IsInt returns whether dtype is a signed or unsigned integer.
func (dtype DType) IsInt() bool {
	return (dtype >= Int8 && dtype <= Int64) || dtype.IsUnsigned()
}

// IsUnsigned returns whether dtype is an unsigned integer.
func (dtype DType) IsUnsigned() bool {
	return dtype >= Uint8 && dtype <= Uint64
}

// IsFloat returns whether dtype is a floating point type.
func (dtype DType) IsFloat() bool {
	return dtype >= Float16 && dtype <= Float64
}

// IsComplex returns whether dtype is a complex number type.
func (dtype DType) IsComplex() bool {
	return dtype == Complex64 || dtype == Complex128
}

// Memory returns the number of bytes used by one element of the dtype.
// It returns 0 for Invalid and String, whose size is not fixed.
func (dtype DType) Memory() uintptr {
	if dtype == String {
		return 0
	}
	t := dtype.GoType()
	if t == nil {
		return 0
	}
	return t.Size()
}

// FromGoType returns the DType for the given Go type, or Invalid if there is no mapping.
//
// Go's int and uint are mapped to Int64 and Uint64 respectively.
func FromGoType(t reflect.Type) DType {
	if t == nil {
		return Invalid
	}
	if t == float16Type {
		return Float16
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int, reflect.Int64:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint, reflect.Uint64:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128
	case reflect.String:
		return String
	default:
		return Invalid
	}
}

// FromAny returns the DType of the given scalar value, or Invalid if it is not a supported scalar.
func FromAny(value any) DType {
	if value == nil {
		return Invalid
	}
	return FromGoType(reflect.TypeOf(value))
}
