package main

import (
	"fmt"
	"io"

	"github.com/gomlx/fedcomp/computations"
	"github.com/gomlx/fedcomp/dtypes"
	"github.com/gomlx/fedcomp/trace"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
)

// runDemo wraps foo(f, x) = f(f(x)) as a federated computation, and calls it with a local third_power.
func runDemo(w io.Writer, withJSON bool) error {
	thirdPower, err := computations.NewLocal().WithName("third_power").WithParameter(dtypes.Int32).Wrap(
		func(x int32) int32 { return x * x * x })
	if err != nil {
		return err
	}
	foo, err := computations.NewFederated().
		WithName("foo").
		WithParameter(types.Named("f", types.Function(types.Int32, types.Int32)), types.Named("x", types.Int32)).
		Wrap(func(f, x *trace.Value) (*trace.Value, error) {
			fx, err := f.Call(x)
			if err != nil {
				return nil, err
			}
			return f.Call(fx)
		})
	if err != nil {
		return err
	}

	result, err := foo.Call(thirdPower, 10)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "%s\n%s\n\n%s(%s, 10) = %v\n", foo, foo.Definition(), foo.Name(), thirdPower.Name(), result); err != nil {
		return errors.Wrap(err, "failed to write demo output")
	}
	if !withJSON {
		return nil
	}
	json, err := protojson.MarshalOptions{Multiline: true}.Marshal(foo.Trace().ToProto())
	if err != nil {
		return errors.Wrap(err, "failed to convert trace to JSON")
	}
	_, err = fmt.Fprintf(w, "\n%s\n", json)
	return errors.Wrap(err, "failed to write demo output")
}
