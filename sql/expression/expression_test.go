package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poizan42/go-query-rewriter/sql"
)

func TestLiteralNullability(t *testing.T) {
	require := require.New(t)

	require.False(NewLiteral(int64(1), sql.Int64).IsNullable())
	require.True(NewLiteral(nil, sql.Null).IsNullable())
}

func TestBindVarEval(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	bv := NewBindVar("id", sql.Int64)
	require.True(bv.IsNullable())

	v, err := bv.Eval(ctx, sql.Params{"id": 42})
	require.NoError(err)
	require.Equal(int64(42), v)

	v, err = bv.Eval(ctx, sql.Params{"id": nil})
	require.NoError(err)
	require.Nil(v)

	_, err = bv.Eval(ctx, sql.Params{})
	require.True(sql.ErrUnboundParameter.Is(err))
}

func TestComparisonNullOperand(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	eq := NewEquals(NewLiteral(nil, sql.Null), NewLiteral(int64(1), sql.Int64))
	v, err := eq.Eval(ctx, nil)
	require.NoError(err)
	require.Nil(v)

	lt := NewLessThan(NewLiteral(int64(1), sql.Int64), NewLiteral(int64(2), sql.Int64))
	v, err = lt.Eval(ctx, nil)
	require.NoError(err)
	require.Equal(true, v)
}

func TestThreeValuedLogic(t *testing.T) {
	ctx := sql.NewEmptyContext()
	null := NewLiteral(nil, sql.Null)
	yes := NewLiteral(true, sql.Boolean)
	no := NewLiteral(false, sql.Boolean)

	testCases := []struct {
		name     string
		expr     sql.Expression
		expected interface{}
	}{
		{"false AND NULL", NewAnd(no, null), false},
		{"true AND NULL", NewAnd(yes, null), nil},
		{"true OR NULL", NewOr(yes, null), true},
		{"false OR NULL", NewOr(no, null), nil},
		{"NOT NULL", NewNot(null), nil},
		{"NOT false", NewNot(no), true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.expr.Eval(ctx, nil)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestIsNull(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	e := NewIsNull(NewLiteral(nil, sql.Null))
	require.False(e.IsNullable())

	v, err := e.Eval(ctx, nil)
	require.NoError(err)
	require.Equal(true, v)

	v, err = NewIsNull(NewLiteral(int64(1), sql.Int64)).Eval(ctx, nil)
	require.NoError(err)
	require.Equal(false, v)
}

func TestCoalesceNullability(t *testing.T) {
	require := require.New(t)

	_, err := NewCoalesce()
	require.Error(err)

	// Nullability follows the last argument.
	c, err := NewCoalesce(
		NewBindVar("a", sql.Int64),
		NewLiteral(int64(0), sql.Int64),
	)
	require.NoError(err)
	require.False(c.IsNullable())

	c, err = NewCoalesce(
		NewBindVar("a", sql.Int64),
		NewBindVar("b", sql.Int64),
	)
	require.NoError(err)
	require.True(c.IsNullable())
}

func TestCoalesceEval(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	c, err := NewCoalesce(
		NewLiteral(nil, sql.Null),
		NewLiteral(int64(7), sql.Int64),
	)
	require.NoError(err)

	v, err := c.Eval(ctx, nil)
	require.NoError(err)
	require.Equal(int64(7), v)
	require.Equal(sql.Int64, c.Type())
}

func TestCustom(t *testing.T) {
	require := require.New(t)

	_, err := NewCustom("", sql.Int64, false)
	require.Error(err)

	c, err := NewCustom("ROW_COUNT", sql.Int64, true)
	require.NoError(err)
	require.False(c.IsNullable())
	require.Equal(sql.TagNeverNull, c.Tag())

	// Without the never-null declaration, nullability follows the
	// arguments.
	c, err = NewCustom("LOWER", sql.Text, false, NewBindVar("name", sql.Text))
	require.NoError(err)
	require.True(c.IsNullable())
	require.Equal(sql.TagNone, c.Tag())

	_, err = c.Eval(sql.NewEmptyContext(), nil)
	require.True(sql.ErrNotCompileTimeEvaluable.Is(err))
}

func TestJoinAnd(t *testing.T) {
	require := require.New(t)

	require.Nil(JoinAnd())

	one := NewIsNull(NewBindVar("a", sql.Int64))
	require.Equal(one, JoinAnd(one))

	joined := JoinAnd(one, one, one)
	and, ok := joined.(*And)
	require.True(ok)
	require.Len(and.Children(), 2)
}
