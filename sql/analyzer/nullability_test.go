package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/plan"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

func testTable() *plan.TableScan {
	return plan.NewTableScan("t", sql.Schema{
		{Name: "id", Source: "t", Type: sql.Int64, Nullable: false},
		{Name: "name", Source: "t", Type: sql.Text, Nullable: true},
	})
}

func applyNullability(t *testing.T, comp *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity) {
	t.Helper()
	result, identity, err := processNullability(sql.NewEmptyContext(), NewDefault(), comp, n)
	require.NoError(t, err)
	return result, identity
}

func filterExpr(t *testing.T, n sql.Node) sql.Expression {
	t.Helper()
	f, ok := n.(*plan.Filter)
	require.True(t, ok)
	return f.Expression
}

func TestIsNullOnBoundParameter(t *testing.T) {
	require := require.New(t)

	pred := expression.NewIsNull(expression.NewBindVar("p", sql.Text))
	node := plan.NewFilter(pred, testTable())

	// Bound to NULL: the check folds to TRUE.
	comp := NewCompilation(sql.Params{"p": nil}, nil, nil)
	result, identity := applyNullability(t, comp, node)
	require.Equal(transform.NewTree, identity)
	lit, ok := filterExpr(t, result).(*expression.Literal)
	require.True(ok)
	require.Equal(true, lit.Value())

	// Bound to a value: the check folds to FALSE.
	comp = NewCompilation(sql.Params{"p": "x"}, nil, nil)
	result, _ = applyNullability(t, comp, node)
	lit, ok = filterExpr(t, result).(*expression.Literal)
	require.True(ok)
	require.Equal(false, lit.Value())

	// Unbound: left for execution time.
	comp = NewCompilation(sql.Params{}, nil, nil)
	result, identity = applyNullability(t, comp, node)
	require.Equal(transform.SameTree, identity)
	require.Equal(node, result)

	// Cacheability is preserved either way.
	require.True(comp.Cacheable())
}

func TestIsNullOnNonNullableColumn(t *testing.T) {
	require := require.New(t)

	pred := expression.NewIsNull(expression.NewGetField("t", "id", sql.Int64, false))
	node := plan.NewFilter(pred, testTable())

	result, identity := applyNullability(t, NewCompilation(nil, nil, nil), node)
	require.Equal(transform.NewTree, identity)
	lit, ok := filterExpr(t, result).(*expression.Literal)
	require.True(ok)
	require.Equal(false, lit.Value())

	// A nullable column stays as-is.
	nullable := plan.NewFilter(
		expression.NewIsNull(expression.NewGetField("t", "name", sql.Text, true)),
		testTable(),
	)
	_, identity = applyNullability(t, NewCompilation(nil, nil, nil), nullable)
	require.Equal(transform.SameTree, identity)
}

func TestEqualsNullBoundParameter(t *testing.T) {
	require := require.New(t)

	field := expression.NewGetField("t", "name", sql.Text, true)
	node := plan.NewFilter(
		expression.NewEquals(field, expression.NewBindVar("p", sql.Text)),
		testTable(),
	)

	comp := NewCompilation(sql.Params{"p": nil}, nil, nil)
	result, identity := applyNullability(t, comp, node)
	require.Equal(transform.NewTree, identity)

	isnull, ok := filterExpr(t, result).(*expression.IsNull)
	require.True(ok)
	require.Equal(field.String(), isnull.Child.String())

	// The placeholder on the left works the same.
	swapped := plan.NewFilter(
		expression.NewEquals(expression.NewBindVar("p", sql.Text), field),
		testTable(),
	)
	result, _ = applyNullability(t, comp, swapped)
	_, ok = filterExpr(t, result).(*expression.IsNull)
	require.True(ok)

	// Bound to a value: the comparison survives.
	comp = NewCompilation(sql.Params{"p": "x"}, nil, nil)
	_, identity = applyNullability(t, comp, node)
	require.Equal(transform.SameTree, identity)
}

func TestCoalescePruning(t *testing.T) {
	require := require.New(t)

	nullable := expression.NewGetField("t", "name", sql.Text, true)
	fallback := expression.NewLiteral("none", sql.Text)
	unreachable := expression.NewBindVar("p", sql.Text)

	c, err := expression.NewCoalesce(nullable, fallback, unreachable)
	require.NoError(err)
	node := plan.NewProject([]sql.Expression{c}, testTable())

	result, identity := applyNullability(t, NewCompilation(nil, nil, nil), node)
	require.Equal(transform.NewTree, identity)

	proj := result.(*plan.Project)
	pruned, ok := proj.Projections[0].(*expression.Coalesce)
	require.True(ok)
	require.Len(pruned.Children(), 2)

	// A leading non-nullable argument replaces the COALESCE entirely.
	c, err = expression.NewCoalesce(fallback, nullable)
	require.NoError(err)
	node = plan.NewProject([]sql.Expression{c}, testTable())
	result, _ = applyNullability(t, NewCompilation(nil, nil, nil), node)
	proj = result.(*plan.Project)
	require.Equal(fallback.String(), proj.Projections[0].String())
}

func TestNeverNullSubtreeUntouched(t *testing.T) {
	require := require.New(t)

	// The custom expression declares never-null; its argument would
	// otherwise be rewritten.
	arg := expression.NewIsNull(expression.NewBindVar("p", sql.Text))
	custom, err := expression.NewCustom("MY_FUNC", sql.Boolean, true, arg)
	require.NoError(err)
	node := plan.NewFilter(custom, testTable())

	comp := NewCompilation(sql.Params{"p": nil}, nil, nil)
	result, identity := applyNullability(t, comp, node)
	require.Equal(transform.SameTree, identity)
	require.Equal(node, result)
}

func TestOpaqueNodeUntouched(t *testing.T) {
	require := require.New(t)

	inner := plan.NewFilter(
		expression.NewIsNull(expression.NewBindVar("p", sql.Text)),
		testTable(),
	)
	pinned, err := plan.NewOpaqueTable("sub", inner)
	require.NoError(err)
	node := plan.NewProject(
		[]sql.Expression{expression.NewGetField("sub", "id", sql.Int64, false)},
		pinned,
	)

	comp := NewCompilation(sql.Params{"p": nil}, nil, nil)
	result, identity := applyNullability(t, comp, node)
	require.Equal(transform.SameTree, identity)
	require.Equal(node, result)
}

func TestNullabilityIdempotent(t *testing.T) {
	require := require.New(t)

	node := plan.NewFilter(
		expression.NewAnd(
			expression.NewIsNull(expression.NewBindVar("p", sql.Text)),
			expression.NewEquals(
				expression.NewGetField("t", "name", sql.Text, true),
				expression.NewBindVar("q", sql.Text),
			),
		),
		testTable(),
	)

	comp := NewCompilation(sql.Params{"p": nil, "q": nil}, nil, nil)
	once, identity := applyNullability(t, comp, node)
	require.Equal(transform.NewTree, identity)

	twice, identity := applyNullability(t, comp, once)
	require.Equal(transform.SameTree, identity)
	require.Equal(once.String(), twice.String())
}
