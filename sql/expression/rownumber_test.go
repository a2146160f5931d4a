package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poizan42/go-query-rewriter/sql"
)

func TestRowNumberOrdering(t *testing.T) {
	require := require.New(t)

	_, err := NewRowNumberOrdering()
	require.True(sql.ErrEmptyOrdering.Is(err))

	_, err = NewRowNumberOrdering(sql.SortField{Column: nil, Order: sql.Ascending})
	require.True(sql.ErrNilChild.Is(err))

	a := NewGetField("t", "a", sql.Int64, false)
	b := NewGetField("t", "b", sql.Int64, false)

	ord, err := NewRowNumberOrdering(sql.SortField{Column: a, Order: sql.Ascending})
	require.NoError(err)
	require.Equal(sql.TagNeverNull, ord.Tag())

	// Append returns a new accumulator and keeps field order.
	appended, err := ord.Append(sql.SortField{Column: b, Order: sql.Descending})
	require.NoError(err)
	require.NotSame(ord, appended)
	require.Len(ord.Fields(), 1)
	require.Len(appended.Fields(), 2)
	require.Equal(a, appended.Fields()[0].Column)
	require.Equal(b, appended.Fields()[1].Column)

	_, err = ord.Eval(sql.NewEmptyContext(), nil)
	require.True(sql.ErrNotCompileTimeEvaluable.Is(err))
}

func TestRowNumber(t *testing.T) {
	require := require.New(t)

	a := NewGetField("t", "a", sql.Int64, false)
	p := NewGetField("t", "grp", sql.Text, false)

	_, err := NewRowNumber(nil)
	require.True(sql.ErrNilChild.Is(err))

	ord, err := NewRowNumberOrdering(sql.SortField{Column: a, Order: sql.Ascending})
	require.NoError(err)

	rn, err := NewRowNumber(ord, p)
	require.NoError(err)
	require.False(rn.IsNullable())
	require.Equal(sql.Int64, rn.Type())

	// The accumulator travels as the last child so tree rewrites see
	// the whole window definition.
	children := rn.Children()
	require.Len(children, 2)
	require.Equal(p, children[0])
	require.Equal(ord, children[1])

	swapped, err := rn.WithChildren(children...)
	require.NoError(err)
	require.Equal(rn.String(), swapped.String())

	_, err = rn.WithChildren(p, p)
	require.Error(err)
}
