package trace

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gomlx/fedcomp/trace/optypes"
	"github.com/gomlx/fedcomp/types"
)

// Statement represents a single operation line of a traced function.
type Statement struct {
	// OpType is the type of the operation.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation.
	Attributes map[string]any

	// Outputs of the operation. It is empty for the return statement.
	Outputs []*Value
}

// elementWriter is implemented by the parts of a traced function that can render themselves.
type elementWriter interface {
	Write(w io.Writer) error
}

// Write writes a string representation of the statement to the given writer.
func (s *Statement) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer)
	}

	// Output values are written first:
	w("  ") // Indentation of functions.
	if len(s.Outputs) > 0 {
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			we(output)
		}
		w(" = ")
	}

	// Write op name and arguments:
	w("%q(", s.OpType.ToText())
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input)
	}
	w(")")

	// Write attributes, sorted by key so the rendering is deterministic.
	if len(s.Attributes) > 0 {
		keys := make([]string, 0, len(s.Attributes))
		for key := range s.Attributes {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		w(" {")
		for i, key := range keys {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", key, literalToText(s.Attributes[key]))
		}
		w("}")
	}

	// Write signature:
	w(" : (")
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s", input.typ)
	}
	w(")")
	if len(s.Outputs) > 0 {
		w(" -> (")
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			w("%s", output.typ)
		}
		w(")")
	}
	return err
}

// literalToText converts a literal value, usually used in attributes, to its text representation.
func literalToText(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float32, float64:
		return fmt.Sprintf("%g", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case interface{ Name() string }:
		// Named callables, like computations.
		return "@" + v.Name()
	case types.Typed:
		if stringer, ok := v.(fmt.Stringer); ok {
			return stringer.String()
		}
		return fmt.Sprintf("<opaque %s>", v.TypeSignature())
	default:
		return fmt.Sprintf("%v", v)
	}
}
