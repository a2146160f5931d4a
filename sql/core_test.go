package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullPattern(t *testing.T) {
	require := require.New(t)

	require.Equal("", Params(nil).NullPattern())
	require.Equal("", Params{}.NullPattern())

	p := Params{"b": nil, "a": int64(1), "c": "x"}
	pattern := p.NullPattern()

	// Deterministic regardless of map iteration order.
	for i := 0; i < 16; i++ {
		require.Equal(pattern, p.NullPattern())
	}

	// Same names and same null positions, different values: same
	// pattern.
	q := Params{"b": nil, "a": int64(42), "c": "y"}
	require.Equal(pattern, q.NullPattern())

	// Same names, different null positions: different pattern.
	r := Params{"b": "bound", "a": int64(1), "c": "x"}
	require.NotEqual(pattern, r.NullPattern())

	// Different names: different pattern.
	s := Params{"b": nil, "a": int64(1), "d": "x"}
	require.NotEqual(pattern, s.NullPattern())
}

func TestTagBits(t *testing.T) {
	require := require.New(t)

	tag := TagNeverNull | TagOpaque
	require.True(tag&TagNeverNull != 0)
	require.True(tag&TagOpaque != 0)
	require.True(TagNone&TagNeverNull == 0)
}
