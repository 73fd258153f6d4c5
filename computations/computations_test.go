package computations

import (
	"flag"
	"fmt"
	"sync"
	"testing"

	"github.com/gomlx/fedcomp/dtypes"
	"github.com/gomlx/fedcomp/sequence"
	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/types"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

func TestMain(m *testing.M) {
	flag.Parse()
	m.Run()
}

func TestLocalDeclared(t *testing.T) {
	// Wrapping a function literal with a parameter.
	foo := must.M1(Local(func(x int32) bool { return x > 10 }, dtypes.Int32))
	assert.Equal(t, "(int32 -> bool)", foo.TypeSignature().String())
	assert.False(t, foo.IsPolymorphic())
	assert.Equal(t, false, must.M1(foo.Call(9)))
	assert.Equal(t, false, must.M1(foo.Call(10)))
	assert.Equal(t, true, must.M1(foo.Call(11)))

	// Wrapping a function with two parameters.
	add := func(x, y int32) int32 { return x + y }
	bar := must.M1(Local(add, dtypes.Int32, dtypes.Int32))
	assert.Equal(t, "(<int32,int32> -> int32)", bar.TypeSignature().String())
	assert.Equal(t, int32(7), must.M1(bar.Call(3, 4)))
	assert.Equal(t, int32(7), must.M1(bar.Call(structure.New(3, 4))))
	assert.Contains(t, bar.Name(), "TestLocalDeclared_func")

	// Wrapping functions without parameters.
	baz := must.M1(Local(func() int32 { return 10 }))
	assert.Equal(t, "( -> int32)", baz.TypeSignature().String())
	assert.Equal(t, int32(10), must.M1(baz.Call()))

	bak := must.M1(Local(bakFn))
	assert.Equal(t, "( -> int32)", bak.TypeSignature().String())
	assert.Equal(t, int32(10), must.M1(bak.Call()))
	assert.Equal(t, "bakFn", bak.Name())
}

func bakFn() int { return 10 }

func TestLocalWithVariable(t *testing.T) {
	variable := 10
	readVar := must.M1(Local(func() int { return variable }))
	assert.Equal(t, "( -> int32)", readVar.TypeSignature().String())
	assert.Equal(t, int32(10), must.M1(readVar.Call()))
}

func TestLocalAsDecorator(t *testing.T) {
	decorator := NewLocal().WithParameter(dtypes.Int32)
	foo := decorator.MustWrap(func(x int32) bool { return x > 10 })
	assert.Equal(t, "(int32 -> bool)", foo.TypeSignature().String())
	assert.Equal(t, false, must.M1(foo.Call(9)))
	assert.Equal(t, false, must.M1(foo.Call(10)))
	assert.Equal(t, true, must.M1(foo.Call(11)))

	// The same configuration wraps more functions.
	negative := decorator.MustWrap(func(x int32) bool { return x < 0 })
	assert.Equal(t, true, must.M1(negative.Call(-1)))

	bar := NewLocal().WithName("bar").MustWrap(func() int32 { return 10 })
	assert.Equal(t, "( -> int32)", bar.TypeSignature().String())
	assert.Equal(t, "bar", bar.Name())
	assert.Equal(t, int32(10), must.M1(bar.Call()))
	assert.Equal(t, `Local computation "bar" ( -> int32)`, bar.String())

	require.Panics(t, func() { NewLocal().WithParameter(dtypes.Int32).WithParameter(dtypes.Int32) })
	require.Panics(t, func() { NewLocal().WithParameter(dtypes.Int32).MustWrap(func() int32 { return 1 }) })
}

func TestLocalCallErrors(t *testing.T) {
	foo := MustLocal(func(x int32) bool { return x > 10 }, dtypes.Int32)
	var mismatch *types.TypeMismatchError

	_, err := foo.Call(int64(9))
	require.True(t, errors.As(err, &mismatch))
	require.ErrorContains(t, err, "type int32 is not assignable from source type int64")

	_, err = foo.Call(1, 2)
	require.True(t, errors.As(err, &mismatch))
	_, err = foo.Call()
	require.True(t, errors.As(err, &mismatch))
	_, err = foo.Call(map[string]int{})
	require.Error(t, err)

	// The computation is still usable after errors.
	assert.Equal(t, true, must.M1(foo.Call(11)))

	noParam := MustLocal(func() int32 { return 10 })
	_, err = noParam.Call(1)
	require.True(t, errors.As(err, &mismatch))
	require.ErrorContains(t, err, "function takes no parameter")

	failing := MustLocal(func(x int32) (int32, error) {
		if x < 0 {
			return 0, errors.New("negative input")
		}
		return x, nil
	}, dtypes.Int32)
	_, err = failing.Call(-1)
	require.ErrorContains(t, err, "negative input")
	assert.Equal(t, int32(3), must.M1(failing.Call(3)))

	panicking := MustLocal(func(x int32) int32 { return 100 / x }, dtypes.Int32)
	_, err = panicking.Call(0)
	require.ErrorContains(t, err, "panic while running function")
}

func TestLocalWithGoIntResults(t *testing.T) {
	// Go int results are typed without running the body.
	var numCalls int
	divide := must.M1(Local(func(x int32) int {
		numCalls++
		return 100 / int(x)
	}, dtypes.Int32))
	assert.Equal(t, 0, numCalls)
	assert.Equal(t, "(int32 -> int32)", divide.TypeSignature().String())
	assert.Equal(t, int32(25), must.M1(divide.Call(4)))
	assert.Equal(t, 1, numCalls)
	_, err := divide.Call(0)
	require.ErrorContains(t, err, "panic while running function")

	positive := must.M1(Local(func(x int32) (int, error) {
		if x <= 0 {
			return 0, errors.New("x must be positive")
		}
		return int(x), nil
	}, dtypes.Int32))
	assert.Equal(t, "(int32 -> int32)", positive.TypeSignature().String())
	assert.Equal(t, int32(3), must.M1(positive.Call(3)))
	_, err = positive.Call(0)
	require.ErrorContains(t, err, "x must be positive")

	// Results that don't fit the bound result type fail explicitly, and the signature doesn't change.
	square := MustLocal(func(x int) int { return x * x })
	assert.Equal(t, int32(100), must.M1(square.Call(10)))
	_, err = square.Call(100000)
	require.ErrorContains(t, err, "result 10000000000 overflows the result type int32")
	assert.Equal(t, "(int32 -> int32)", must.M1(square.Bind(types.Int32)).TypeSignature().String())

	scaled := MustLocal(func(x int32) int { return int(x) * 100000 }, dtypes.Int32)
	_, err = scaled.Call(100000)
	require.ErrorContains(t, err, "overflows")
	assert.Equal(t, int32(200000), must.M1(scaled.Call(2)))

	wide := MustLocal(func(x int) int64 { return int64(x) * int64(x) })
	assert.Equal(t, int64(10000000000), must.M1(wide.Call(100000)))

	// Results of type any are typed by a run on placeholder arguments: failures there ask for a typed result.
	_, err = Local(func(x int32) any { return 100 / int(x) }, dtypes.Int32)
	var declErr *DeclarationError
	require.True(t, errors.As(err, &declErr))
	require.ErrorContains(t, err, "cannot determine the result type")
	require.ErrorContains(t, err, "use a Go result type with a dtype")
}

func TestLocalIdentityTypeNames(t *testing.T) {
	for _, dtype := range dtypes.DTypeValues() {
		if dtype == dtypes.Invalid {
			continue
		}
		identity, err := Local(func(x any) any { return x }, dtype)
		require.NoErrorf(t, err, "identity of %s", dtype)
		want := "(" + dtype.String() + " -> " + dtype.String() + ")"
		assert.Equalf(t, want, identity.TypeSignature().String(), "identity of %s", dtype)
	}
}

func TestDeclarationErrors(t *testing.T) {
	var declErr *DeclarationError
	for _, fn := range []any{
		nil,
		10,
		func(xs ...int32) int32 { return 0 },
		func(x int32) {},
		func(x int32) (int32, int32) { return x, x },
		(func(x int32) int32)(nil),
	} {
		_, err := Local(fn, dtypes.Int32)
		require.Errorf(t, err, "Local(%T) should have failed", fn)
		require.True(t, errors.As(err, &declErr))
	}

	// Arity mismatches.
	_, err := Local(func(x, y int32) int32 { return x }, dtypes.Int32)
	require.True(t, errors.As(err, &declErr))
	_, err = Local(func() int32 { return 0 }, dtypes.Int32)
	require.True(t, errors.As(err, &declErr))
	_, err = NewLocal().WithParameter().Wrap(func(x int32) int32 { return x })
	require.True(t, errors.As(err, &declErr))
	require.ErrorContains(t, err, "but no parameter type was given")

	// Invalid types.
	_, err = Local(func(x int32) int32 { return x }, "int33")
	require.True(t, errors.As(err, &declErr))
	_, err = Local(func(f *Computation) int32 { return 0 }, types.Function(types.Int32, types.Int32))
	require.True(t, errors.As(err, &declErr))
	require.ErrorContains(t, err, "function-typed parameters")

	// Result types that can't be inferred.
	_, err = Local(func() map[string]int { return nil })
	require.True(t, errors.As(err, &declErr))
}

func TestLocalWithSequenceInputsAndOutputsFails(t *testing.T) {
	for _, dtype := range dtypes.DTypeValues() {
		if dtype == dtypes.Invalid {
			continue
		}
		_, err := Local(func(x *sequence.Sequence) *sequence.Sequence { return x }, types.Sequence(types.Scalar(dtype)))
		var declErr *DeclarationError
		require.Truef(t, errors.As(err, &declErr), "sequence of %s: %v", dtype, err)
		require.ErrorContains(t, err, "can not return sequences")
	}

	// Also within structures.
	_, err := Local(func(x *sequence.Sequence, y int32) *sequence.Sequence { return x },
		types.Sequence(types.Int32), dtypes.Int32)
	require.Error(t, err)
}

func TestWithSequences(t *testing.T) {
	foo := MustLocal(func(ds *sequence.Sequence) (int64, error) {
		sum, err := ds.Reduce(int64(0), func(accumulator, element any) (any, error) {
			return accumulator.(int64) + element.(int64), nil
		})
		if err != nil {
			return 0, err
		}
		return sum.(int64), nil
	}, types.Sequence(types.Int64))
	assert.Equal(t, "(int64* -> int64)", foo.TypeSignature().String())

	bar := MustLocal(func() *sequence.Sequence { return sequence.Range(10) })
	assert.Equal(t, "( -> int64*)", bar.TypeSignature().String())

	assert.Equal(t, int64(45), must.M1(foo.Call(must.M1(bar.Call()))))

	// Sequences of the wrong element type are rejected.
	_, err := foo.Call(sequence.Empty(types.Int32))
	require.ErrorContains(t, err, "type int64* is not assignable from source type int32*")
}

func TestPolymorphic(t *testing.T) {
	foo := MustLocal(func(x int) bool { return x > 0 })
	assert.True(t, foo.IsPolymorphic())
	assert.Nil(t, foo.TypeSignature())
	assert.Equal(t, false, must.M1(foo.Call(-1)))
	assert.Equal(t, false, must.M1(foo.Call(0)))
	assert.Equal(t, true, must.M1(foo.Call(1)))
	assert.Equal(t, 1, foo.NumBindings())

	// A new binding per parameter type.
	assert.Equal(t, true, must.M1(foo.Call(int64(1))))
	assert.Equal(t, 2, foo.NumBindings())
	bound := must.M1(foo.Bind(types.Int64))
	assert.Equal(t, "(int64 -> bool)", bound.TypeSignature().String())
	assert.Same(t, bound, must.M1(foo.Bind(types.Int64)))

	bar := MustLocal(func(x, y int) bool { return x > y })
	assert.Equal(t, false, must.M1(bar.Call(0, 1)))
	assert.Equal(t, true, must.M1(bar.Call(1, 0)))
	assert.Equal(t, false, must.M1(bar.Call(0, 0)))
	assert.Equal(t, true, must.M1(bar.Call(structure.New(2, 1))))
	assert.Equal(t, "(<int32,int32> -> bool)", must.M1(bar.Bind(types.Unnamed(types.Int32, types.Int32))).TypeSignature().String())

	// Arity errors don't create bindings.
	var mismatch *types.TypeMismatchError
	_, err := bar.Call(1)
	require.True(t, errors.As(err, &mismatch))
	_, err = bar.Call(1, 2, 3)
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, bar.NumBindings())

	// Bodies that can't take the arguments.
	_, err = foo.Call("x")
	require.Error(t, err)
	assert.Equal(t, false, must.M1(foo.Call(-5)))
}

func TestPolymorphicConcurrentBinds(t *testing.T) {
	var mu sync.Mutex
	var numCalls int
	square := MustLocal(func(x int64) int64 {
		mu.Lock()
		numCalls++
		mu.Unlock()
		return x * x
	})

	var wg sync.WaitGroup
	results := make([]any, 100)
	errs := make([]error, 100)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = square.Call(int32(i))
		}()
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		require.Equal(t, int64(i*i), results[i])
	}
	require.Equal(t, 1, square.NumBindings())
	// int64 results are known statically, so the body only ran for the calls.
	require.Equal(t, 100, numCalls)
}

func TestKind(t *testing.T) {
	require.Equal(t, "Local", KindLocal.String())
	require.Equal(t, "Federated", fmt.Sprint(KindFederated))
	require.Equal(t, "Kind(7)", Kind(7).String())
}
