package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/plan"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

func applyFold(t *testing.T, n sql.Node) (sql.Node, transform.TreeIdentity) {
	t.Helper()
	result, identity, err := foldConstants(sql.NewEmptyContext(), NewDefault(), NewCompilation(nil, nil, nil), n)
	require.NoError(t, err)
	return result, identity
}

func TestFoldLiteralComparison(t *testing.T) {
	require := require.New(t)

	node := plan.NewFilter(
		expression.NewLessThan(
			expression.NewLiteral(int64(1), sql.Int64),
			expression.NewLiteral(int64(2), sql.Int64),
		),
		testTable(),
	)

	result, identity := applyFold(t, node)
	require.Equal(transform.NewTree, identity)
	lit, ok := filterExpr(t, result).(*expression.Literal)
	require.True(ok)
	require.Equal(true, lit.Value())
}

func TestFoldArithmetic(t *testing.T) {
	require := require.New(t)

	node := plan.NewProject([]sql.Expression{
		expression.NewPlus(
			expression.NewLiteral(int64(2), sql.Int64),
			expression.NewLiteral(int64(3), sql.Int64),
		),
	}, testTable())

	result, _ := applyFold(t, node)
	lit, ok := result.(*plan.Project).Projections[0].(*expression.Literal)
	require.True(ok)
	require.Equal(int64(5), lit.Value())
}

func TestShortCircuitBooleans(t *testing.T) {
	field := expression.NewGetField("t", "name", sql.Text, true)
	cmp := expression.NewEquals(field, expression.NewBindVar("p", sql.Text))
	yes := expression.NewLiteral(true, sql.Boolean)
	no := expression.NewLiteral(false, sql.Boolean)

	testCases := []struct {
		name     string
		expr     sql.Expression
		expected string
	}{
		{"true AND x", expression.NewAnd(yes, cmp), cmp.String()},
		{"false AND x", expression.NewAnd(no, cmp), "false"},
		{"x OR true", expression.NewOr(cmp, yes), "true"},
		{"x OR false", expression.NewOr(cmp, no), cmp.String()},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			result, identity := applyFold(t, plan.NewFilter(tt.expr, testTable()))
			require.Equal(t, transform.NewTree, identity)
			require.Equal(t, tt.expected, filterExpr(t, result).String())
		})
	}
}

func TestCustomKindsNeverFold(t *testing.T) {
	require := require.New(t)

	custom, err := expression.NewCustom("MY_FUNC", sql.Int64, false,
		expression.NewLiteral(int64(1), sql.Int64))
	require.NoError(err)

	node := plan.NewProject([]sql.Expression{custom}, testTable())
	_, identity := applyFold(t, node)
	require.Equal(transform.SameTree, identity)
}

func TestInlineParams(t *testing.T) {
	require := require.New(t)

	node := plan.NewFilter(
		expression.NewEquals(
			expression.NewGetField("t", "id", sql.Int64, false),
			expression.NewBindVar("id", sql.Int64),
		),
		testTable(),
	)

	// Off by default: the placeholder stays and the plan is cacheable.
	comp := NewCompilation(sql.Params{"id": int64(7)}, nil, nil)
	_, identity, err := inlineParams(sql.NewEmptyContext(), NewDefault(), comp, node)
	require.NoError(err)
	require.Equal(transform.SameTree, identity)
	require.True(comp.Cacheable())

	// Requested: the placeholder becomes a literal and the plan is no
	// longer cacheable.
	comp = NewCompilation(sql.Params{"id": int64(7)}, nil, nil)
	comp.InlineParams = true
	result, identity, err := inlineParams(sql.NewEmptyContext(), NewDefault(), comp, node)
	require.NoError(err)
	require.Equal(transform.NewTree, identity)
	require.False(comp.Cacheable())

	eq, ok := filterExpr(t, result).(*expression.Equals)
	require.True(ok)
	lit, ok := eq.Right.(*expression.Literal)
	require.True(ok)
	require.Equal(int64(7), lit.Value())

	// NULL-bound placeholders are left alone; the nullability rules
	// own those.
	comp = NewCompilation(sql.Params{"id": nil}, nil, nil)
	comp.InlineParams = true
	_, identity, err = inlineParams(sql.NewEmptyContext(), NewDefault(), comp, node)
	require.NoError(err)
	require.Equal(transform.SameTree, identity)
	require.True(comp.Cacheable())
}
