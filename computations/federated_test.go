package computations

import (
	"strings"
	"testing"

	"github.com/gomlx/fedcomp/dtypes"
	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/trace"
	"github.com/gomlx/fedcomp/types"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var int32ToInt32 = types.Function(types.Int32, types.Int32)

func newThirdPower() *Computation {
	return NewLocal().WithName("third_power").WithParameter(dtypes.Int32).MustWrap(
		func(x int32) int32 { return x * x * x })
}

func TestFederatedUnlabeled(t *testing.T) {
	foo := NewFederated().WithName("foo").WithParameter(int32ToInt32, dtypes.Int32).MustWrap(
		func(f, x *trace.Value) (*trace.Value, error) {
			assert.Equal(t, "(int32 -> int32)", f.TypeSignature().String())
			assert.Equal(t, "int32", x.TypeSignature().String())
			fx, err := f.Call(x)
			if err != nil {
				return nil, err
			}
			result, err := f.Call(fx)
			if err != nil {
				return nil, err
			}
			assert.Equal(t, "int32", result.TypeSignature().String())
			return result, nil
		})
	assert.Equal(t, "(<(int32 -> int32),int32> -> int32)", foo.TypeSignature().String())
	assert.Equal(t, KindFederated, foo.Kind())
	assert.True(t, strings.HasPrefix(foo.Definition(),
		"func @foo(%arg: <(int32 -> int32),int32>) -> (int32) {\n"), foo.Definition())
	assert.Contains(t, foo.Definition(), `%3 = "call"(%0, %2) : ((int32 -> int32), int32) -> (int32)`)

	thirdPower := newThirdPower()
	assert.Equal(t, int32(1_000_000_000), must.M1(foo.Call(thirdPower, 10)))
	assert.Equal(t, int32(1), must.M1(foo.Call(thirdPower, 1)))
}

func TestFederatedLabeled(t *testing.T) {
	foo := MustFederated(func(f, x *trace.Value) (*trace.Value, error) {
		fx, err := f.Call(x)
		if err != nil {
			return nil, err
		}
		return f.Call(fx)
	}, types.Named("f", int32ToInt32), types.Named("x", types.Int32))
	square := MustLocal(func(x int32) int32 { return x * x }, dtypes.Int32)
	squareDropY := MustLocal(func(x, y int32) int32 { return x * x }, dtypes.Int32, dtypes.Int32)

	assert.Equal(t, "(<f=(int32 -> int32),x=int32> -> int32)", foo.TypeSignature().String())
	assert.Equal(t, int32(10_000), must.M1(foo.Call(square, 10)))
	assert.Equal(t, int32(10_000), must.M1(squareDropY.Call(must.M1(squareDropY.Call(10, 5)), 100)))
	assert.Equal(t, int32(10_000), must.M1(squareDropY.Call(must.M1(squareDropY.Call(10, 100)), 5)))

	_, err := foo.Call(squareDropY, 10)
	require.Error(t, err)
	require.ErrorContains(t, err, "is not assignable from source type")
	var mismatch *types.TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "<f=(int32 -> int32),x=int32>", mismatch.Target.String())

	// Labeled structure arguments.
	arg := must.M1(structure.Named(structure.Field{Name: "f", Value: square}, structure.Field{Name: "x", Value: 3}))
	assert.Equal(t, int32(81), must.M1(foo.Call(arg)))
}

func TestFederatedComposition(t *testing.T) {
	thirdPower := newThirdPower()
	square := NewLocal().WithName("square").WithParameter(dtypes.Int32).MustWrap(func(x int32) int32 { return x * x })
	positive := NewLocal().WithName("positive").MustWrap(func(x int) bool { return x > 0 })

	bar := NewFederated().WithName("bar").WithParameter(dtypes.Int32).MustWrap(func(x *trace.Value) (any, error) {
		y, err := thirdPower.Call(x)
		if err != nil {
			return nil, err
		}
		return square.Call(y)
	})
	assert.Equal(t, "(int32 -> int32)", bar.TypeSignature().String())
	assert.Contains(t, bar.Definition(), `%0 = "constant"() {value = @third_power} : () -> ((int32 -> int32))`)
	assert.Contains(t, bar.Definition(), `{value = @square}`)
	assert.Equal(t, int32(64), must.M1(bar.Call(2)))

	// Polymorphic computations are bound while tracing.
	baz := MustFederated(func(x *trace.Value) (any, error) {
		return positive.Call(x)
	}, dtypes.Int32)
	assert.Equal(t, "(int32 -> bool)", baz.TypeSignature().String())
	assert.Equal(t, true, must.M1(baz.Call(3)))
	assert.Equal(t, false, must.M1(baz.Call(-3)))
	assert.Equal(t, 1, positive.NumBindings())

	// Federated computations compose too.
	qux := MustFederated(func(x *trace.Value) (any, error) {
		return bar.Call(x)
	}, dtypes.Int32)
	assert.Equal(t, int32(64), must.M1(qux.Call(2)))

	// Type errors are found while tracing, before anything runs.
	squareDropY := MustLocal(func(x, y int32) int32 { return x * x }, dtypes.Int32, dtypes.Int32)
	_, err := Federated(func(x *trace.Value) (any, error) {
		return squareDropY.Call(x)
	}, dtypes.Int32)
	var declErr *DeclarationError
	require.True(t, errors.As(err, &declErr))
	var mismatch *types.TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.ErrorContains(t, err, "type <int32,int32> is not assignable from source type int32")
}

func TestNoArgumentFederated(t *testing.T) {
	foo := MustFederated(func() int { return 10 })
	assert.Equal(t, "( -> int32)", foo.TypeSignature().String())
	assert.Equal(t, int32(10), must.M1(foo.Call()))
}

func TestFederatedStructures(t *testing.T) {
	foo := MustFederated(func(x *trace.Value) (*structure.Struct, error) {
		return structure.Named(structure.Field{Name: "a", Value: x}, structure.Field{Name: "b", Value: 1})
	}, dtypes.Int32)
	assert.Equal(t, "(int32 -> <a=int32,b=int32>)", foo.TypeSignature().String())
	result := must.M1(foo.Call(5)).(*structure.Struct)
	a, _ := result.Get("a")
	b, _ := result.Get("b")
	assert.Equal(t, int32(5), a)
	assert.Equal(t, int32(1), b)

	// Returning a computation.
	thirdPower := newThirdPower()
	getter := MustFederated(func() *Computation { return thirdPower })
	assert.Equal(t, "( -> (int32 -> int32))", getter.TypeSignature().String())
	got := must.M1(getter.Call()).(*Computation)
	assert.Equal(t, int32(27), must.M1(got.Call(3)))
}

func TestFederatedPolymorphic(t *testing.T) {
	apply := MustFederated(func(f, x any) (any, error) {
		return f.(*trace.Value).Call(x)
	})
	assert.True(t, apply.IsPolymorphic())
	assert.Equal(t, int32(8), must.M1(apply.Call(newThirdPower(), 2)))
	bound := must.M1(apply.Bind(types.Unnamed(int32ToInt32, types.Int32)))
	assert.Equal(t, "(<(int32 -> int32),int32> -> int32)", bound.TypeSignature().String())
	assert.Contains(t, bound.Definition(), `"call"(%0, %1)`)
	assert.Equal(t, 1, apply.NumBindings())
}

func TestFederatedDeclarationErrors(t *testing.T) {
	var declErr *DeclarationError
	_, err := Federated(func(x int32) int32 { return x }, dtypes.Int32)
	require.True(t, errors.As(err, &declErr))
	require.ErrorContains(t, err, "must accept *trace.Value")

	_, err = Federated(func(x *trace.Value) *trace.Value { return nil }, dtypes.Int32)
	require.True(t, errors.As(err, &declErr))
	require.ErrorContains(t, err, "returned nil")

	_, err = Federated(func(x *trace.Value) (*trace.Value, error) { return x.Field(0) }, dtypes.Int32)
	require.True(t, errors.As(err, &declErr))
	require.ErrorContains(t, err, "non-structure type int32")
}
