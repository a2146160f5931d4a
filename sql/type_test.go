package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeConvert(t *testing.T) {
	testCases := []struct {
		typ      Type
		value    interface{}
		expected interface{}
	}{
		{Boolean, 1, true},
		{Boolean, "false", false},
		{Int64, "42", int64(42)},
		{Int64, 42.0, int64(42)},
		{Float64, "1.5", float64(1.5)},
		{Text, 42, "42"},
		{Boolean, nil, nil},
		{Int64, nil, nil},
		{Text, nil, nil},
	}

	for _, tt := range testCases {
		t.Run(tt.typ.Name(), func(t *testing.T) {
			v, err := tt.typ.Convert(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestTypeConvertError(t *testing.T) {
	require := require.New(t)

	_, err := Int64.Convert("not a number")
	require.Error(err)

	_, err = Null.Convert(42)
	require.True(ErrInvalidType.Is(err))
}

func TestTypeOf(t *testing.T) {
	require := require.New(t)

	require.Equal(Null, TypeOf(nil))
	require.Equal(Boolean, TypeOf(true))
	require.Equal(Int64, TypeOf(42))
	require.Equal(Float64, TypeOf(1.5))
	require.Equal(Text, TypeOf("x"))
}

func TestCompare(t *testing.T) {
	require := require.New(t)

	cmp, err := Compare(Int64, int64(1), int64(2))
	require.NoError(err)
	require.Equal(-1, cmp)

	cmp, err = Compare(Text, "b", "a")
	require.NoError(err)
	require.Equal(1, cmp)

	cmp, err = Compare(Float64, 1.5, 1.5)
	require.NoError(err)
	require.Equal(0, cmp)

	cmp, err = Compare(Boolean, false, true)
	require.NoError(err)
	require.Equal(-1, cmp)

	_, err = Compare(Int64, "nope", int64(1))
	require.Error(err)
}
