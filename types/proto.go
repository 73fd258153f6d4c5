package types

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto exports the type tree as a protobuf Value, for serialization. Each node is a struct with a
// single key naming its kind:
//
//	{"tensor": {"dtype": "int32", "dims": [2, -1]}}
//	{"sequence": <element>}
//	{"function": {"parameter": <parameter or null>, "result": <result>}}
//	{"struct": [{"name": "x", "type": <type>}, ...]}
//
// A nil type is exported as a null value.
func ToProto(t Type) *structpb.Value {
	if IsNil(t) {
		return structpb.NewNullValue()
	}
	node := func(key string, value *structpb.Value) *structpb.Value {
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{key: value}})
	}
	switch tt := t.(type) {
	case *TensorType:
		dims := make([]*structpb.Value, len(tt.Dimensions))
		for i, dim := range tt.Dimensions {
			dims[i] = structpb.NewNumberValue(float64(dim))
		}
		return node("tensor", structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"dtype": structpb.NewStringValue(tt.DType.String()),
			"dims":  structpb.NewListValue(&structpb.ListValue{Values: dims}),
		}}))
	case *SequenceType:
		return node("sequence", ToProto(tt.Element))
	case *FunctionType:
		return node("function", structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"parameter": ToProto(tt.Parameter),
			"result":    ToProto(tt.Result),
		}}))
	case *StructType:
		fields := make([]*structpb.Value, len(tt.Fields))
		for i, field := range tt.Fields {
			fields[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
				"name": structpb.NewStringValue(field.Name),
				"type": ToProto(field.Type),
			}})
		}
		return node("struct", structpb.NewListValue(&structpb.ListValue{Values: fields}))
	}
	return structpb.NewNullValue()
}
