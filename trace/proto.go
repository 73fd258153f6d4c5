package trace

import (
	"github.com/gomlx/fedcomp/types"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProto exports the traced computation as a protobuf Struct (a JSON-like tree), for tools that consume
// it, e.g. after rendering it with protojson.
//
// Each statement is a node with its "op", its "inputs" value names, and when present its "output" value
// name with its "type" (see types.ToProto) and "attributes" rendered as text.
func (c *Computation) ToProto() *structpb.Struct {
	statements := make([]*structpb.Value, len(c.main.Statements))
	for i, stmt := range c.main.Statements {
		inputs := make([]*structpb.Value, len(stmt.Inputs))
		for j, input := range stmt.Inputs {
			inputs[j] = structpb.NewStringValue(input.String())
		}
		fields := map[string]*structpb.Value{
			"op":     structpb.NewStringValue(stmt.OpType.ToText()),
			"inputs": structpb.NewListValue(&structpb.ListValue{Values: inputs}),
		}
		if len(stmt.Outputs) > 0 {
			fields["output"] = structpb.NewStringValue(stmt.Outputs[0].String())
			fields["type"] = types.ToProto(stmt.Outputs[0].typ)
		}
		if len(stmt.Attributes) > 0 {
			attributes := make(map[string]*structpb.Value, len(stmt.Attributes))
			for key, value := range stmt.Attributes {
				attributes[key] = structpb.NewStringValue(literalToText(value))
			}
			fields["attributes"] = structpb.NewStructValue(&structpb.Struct{Fields: attributes})
		}
		statements[i] = structpb.NewStructValue(&structpb.Struct{Fields: fields})
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":       structpb.NewStringValue(c.Name),
		"type":       types.ToProto(c.TypeSignature()),
		"statements": structpb.NewListValue(&structpb.ListValue{Values: statements}),
	}}
}
