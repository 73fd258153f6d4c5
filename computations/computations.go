// Package computations wraps Go functions into typed computations, the units composed by a federated
// program.
//
// There are two kinds of computations:
//
//   - Local computations run their Go body directly on concrete values (scalars, slices, structures and
//     sequences). See Local and NewLocal.
//   - Federated computations orchestrate other computations: their body is traced once with *trace.Value
//     placeholders, and calling them replays the trace on concrete values. See Federated and NewFederated.
//
// A computation has a type signature, a types.FunctionType, fixed when it is wrapped if its parameter type
// is declared (or if the function takes no parameters). Otherwise the computation is polymorphic: it is
// bound to a concrete parameter type inferred from the arguments of each call, and each binding is cached.
//
// Example:
//
//	thirdPower := computations.MustLocal(func(x int32) int32 { return x * x * x }, dtypes.Int32)
//	foo := computations.MustFederated(func(f, x *trace.Value) (*trace.Value, error) {
//		fx, err := f.Call(x)
//		if err != nil {
//			return nil, err
//		}
//		return f.Call(fx)
//	}, types.Function(types.Int32, types.Int32), dtypes.Int32)
//	fmt.Println(foo.TypeSignature()) // (<(int32 -> int32),int32> -> int32)
//	result, err := foo.Call(thirdPower, 10) // int32(1_000_000_000)
package computations

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/gomlx/fedcomp/trace"
	"github.com/gomlx/fedcomp/types"
	"golang.org/x/sync/singleflight"
)

// Kind of computation.
type Kind int

const (
	// KindLocal computations run their Go body on concrete values.
	KindLocal Kind = iota

	// KindFederated computations trace their body into a composition of other computations.
	KindFederated
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "Local"
	case KindFederated:
		return "Federated"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Computation is a typed, callable wrapper of a Go function.
//
// It is safe for concurrent use: once bound its state is immutable, and the bindings of a polymorphic
// computation are guarded by a mutex.
type Computation struct {
	name string
	kind Kind
	body *native

	// typ is nil while the computation is polymorphic.
	typ *types.FunctionType

	// traced holds the trace of the body of a bound federated computation.
	traced *trace.Computation

	// Polymorphic computations only: bound computations per parameter type.
	mu       sync.Mutex
	bindings map[string]*Computation
	group    singleflight.Group
}

// Compile-time check that computations can be used as constants and callees of traced bodies.
var _ trace.Callable = (*Computation)(nil)

// Name of the computation. It defaults to the name of the wrapped Go function.
func (c *Computation) Name() string {
	return c.name
}

// Kind of the computation.
func (c *Computation) Kind() Kind {
	return c.kind
}

// TypeSignature implements types.Typed. It returns a *types.FunctionType, or nil if the computation is
// polymorphic.
func (c *Computation) TypeSignature() types.Type {
	if c.typ == nil {
		return nil
	}
	return c.typ
}

// FunctionType returns the type signature of a bound computation, or nil if it is polymorphic.
func (c *Computation) FunctionType() *types.FunctionType {
	return c.typ
}

// IsPolymorphic returns whether the computation is still waiting to be bound to a parameter type.
// Polymorphic computations are bound (see Bind) on each call.
func (c *Computation) IsPolymorphic() bool {
	return c.typ == nil
}

// Definition returns the text of the traced body of a bound federated computation, or "" for local or
// polymorphic computations.
func (c *Computation) Definition() string {
	if c.traced == nil {
		return ""
	}
	return c.traced.Text
}

// Trace returns the traced body of a bound federated computation, or nil otherwise.
func (c *Computation) Trace() *trace.Computation {
	return c.traced
}

// String implements fmt.Stringer.
func (c *Computation) String() string {
	if c.IsPolymorphic() {
		return fmt.Sprintf("%s computation %q (polymorphic)", c.kind, c.name)
	}
	return fmt.Sprintf("%s computation %q %s", c.kind, c.name, c.typ)
}

// funcName returns a name for the Go function fn, usable as a computation name: "foo" for a function
// named foo, "TestFoo_func1" for a function literal inside TestFoo.
func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return "computation"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "computation"
	}
	return name
}
