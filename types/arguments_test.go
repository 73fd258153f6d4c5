package types

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMatchArguments(t *testing.T) {
	pack, err := MatchArguments(Int32, Int32)
	require.NoError(t, err)
	require.False(t, pack)

	pack, err = MatchArguments(Unnamed(Int32, Int32), Int32, Int32)
	require.NoError(t, err)
	require.True(t, pack)

	// A structure argument matching the structure parameter is used as is.
	pack, err = MatchArguments(Unnamed(Int32, Int32), Unnamed(Int32, Int32))
	require.NoError(t, err)
	require.False(t, pack)

	// Single field structures accept the bare value too.
	pack, err = MatchArguments(Struct(Named("x", Int32)), Int32)
	require.NoError(t, err)
	require.True(t, pack)
	pack, err = MatchArguments(Struct(Named("x", Int32)), Unnamed(Int32))
	require.NoError(t, err)
	require.False(t, pack)

	pack, err = MatchArguments(nil)
	require.NoError(t, err)
	require.False(t, pack)

	var mismatch *TypeMismatchError
	_, err = MatchArguments(nil, Int32)
	require.True(t, errors.As(err, &mismatch))
	require.ErrorContains(t, err, "function takes no parameter, but 1 argument(s) were given")

	_, err = MatchArguments(Int32)
	require.True(t, errors.As(err, &mismatch))
	require.ErrorContains(t, err, "no argument given")

	_, err = MatchArguments(Int32, Int32, Int32)
	require.ErrorContains(t, err, "type int32 is not assignable from source type <int32,int32>")

	_, err = MatchArguments(Unnamed(Int32, Int32), Int32)
	require.ErrorContains(t, err, "type <int32,int32> is not assignable from source type int32")
}

func TestArgumentsType(t *testing.T) {
	require.Nil(t, ArgumentsType())
	require.Equal(t, "bool", ArgumentsType(Bool).String())
	require.Equal(t, "<bool,int32>", ArgumentsType(Bool, Int32).String())
}
