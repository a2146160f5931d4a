package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/plan"
)

func productsTable() *plan.TableScan {
	return plan.NewTableScan("Products", sql.Schema{
		{Name: "Id", Source: "Products", Type: sql.Int64, Nullable: false},
		{Name: "Name", Source: "Products", Type: sql.Text, Nullable: true},
	})
}

func ordersTable() *plan.TableScan {
	return plan.NewTableScan("Orders", sql.Schema{
		{Name: "Id", Source: "Orders", Type: sql.Int64, Nullable: false},
		{Name: "ProductId", Source: "Orders", Type: sql.Int64, Nullable: false},
	})
}

func TestBuilderImmutable(t *testing.T) {
	require := require.New(t)

	base := From(productsTable())
	filtered := base.Where(expression.NewIsNull(
		expression.NewGetField("Products", "Name", sql.Text, true),
	))

	// The receiver is untouched; each call builds a new query.
	require.NotEqual(base.Node().String(), filtered.Node().String())
	_, ok := base.Node().(*plan.TableScan)
	require.True(ok)
}

func TestTranslatePlainQuery(t *testing.T) {
	require := require.New(t)

	q := From(productsTable()).
		Where(expression.NewEquals(
			expression.NewGetField("Products", "Id", sql.Int64, false),
			expression.NewBindVar("id", sql.Int64),
		)).
		Select(expression.NewGetField("Products", "Name", sql.Text, true))

	// No builder calls: translation is the identity.
	translated, err := Translate(q.Node())
	require.NoError(err)
	require.Equal(q.Node(), translated)
}

func TestTranslateSubquery(t *testing.T) {
	require := require.New(t)

	q := From(productsTable()).
		OrderBy(sql.SortField{
			Column: expression.NewGetField("Products", "Id", sql.Int64, false),
			Order:  sql.Ascending,
		}).
		AsSubquery("p").
		Where(expression.NewIsNull(
			expression.NewGetField("p", "Name", sql.Text, true),
		))

	translated, err := Translate(q.Node())
	require.NoError(err)

	filter, ok := translated.(*plan.Filter)
	require.True(ok)
	alias, ok := filter.Child.(*plan.SubqueryAlias)
	require.True(ok)
	require.Equal("p", alias.Name())
	_, ok = alias.Child.(*plan.Sort)
	require.True(ok)
}

func TestTranslateGroupJoinFlatten(t *testing.T) {
	require := require.New(t)

	lk := expression.NewGetField("Products", "Id", sql.Int64, false)
	rk := expression.NewGetField("Orders", "ProductId", sql.Int64, false)

	// Flatten with default-if-empty becomes a left join.
	q := From(productsTable()).GroupJoin(From(ordersTable()), lk, rk).Flatten(true)
	translated, err := Translate(q.Node())
	require.NoError(err)

	join, ok := translated.(*plan.Join)
	require.True(ok)
	require.Equal(plan.JoinLeft, join.Op)
	cond, ok := join.Cond.(*expression.Equals)
	require.True(ok)
	require.Equal(lk.String(), cond.Left.String())
	require.Equal(rk.String(), cond.Right.String())

	// Without default-if-empty it is an inner join.
	q = From(productsTable()).GroupJoin(From(ordersTable()), lk, rk).Flatten(false)
	translated, err = Translate(q.Node())
	require.NoError(err)
	join, ok = translated.(*plan.Join)
	require.True(ok)
	require.Equal(plan.JoinInner, join.Op)
}

func TestLeftJoinComposition(t *testing.T) {
	require := require.New(t)

	lk := expression.NewGetField("Products", "Id", sql.Int64, false)
	rk := expression.NewGetField("Orders", "ProductId", sql.Int64, false)

	// LeftJoin is sugar for GroupJoin + Flatten(true); both spellings
	// translate to the same tree.
	sugar := From(productsTable()).LeftJoin(From(ordersTable()), lk, rk)
	spelled := From(productsTable()).GroupJoin(From(ordersTable()), lk, rk).Flatten(true)

	a, err := Translate(sugar.Node())
	require.NoError(err)
	b, err := Translate(spelled.Node())
	require.NoError(err)
	require.Equal(b.String(), a.String())
}

func TestDanglingGroupJoin(t *testing.T) {
	require := require.New(t)

	lk := expression.NewGetField("Products", "Id", sql.Int64, false)
	rk := expression.NewGetField("Orders", "ProductId", sql.Int64, false)

	q := From(productsTable()).GroupJoin(From(ordersTable()), lk, rk)
	_, err := Translate(q.Node())
	require.True(sql.ErrGroupJoinNotFlattened.Is(err))

	// Even buried under further composition.
	buried := q.Where(expression.NewIsNull(
		expression.NewGetField("Products", "Name", sql.Text, true),
	))
	_, err = Translate(buried.Node())
	require.True(sql.ErrGroupJoinNotFlattened.Is(err))
}

func TestFlattenRequiresGroupJoin(t *testing.T) {
	require := require.New(t)

	q := From(productsTable()).Flatten(true)
	_, err := Translate(q.Node())
	require.True(sql.ErrNotAQuery.Is(err))
}

func TestTranslateDelete(t *testing.T) {
	require := require.New(t)

	q := From(productsTable()).
		Where(expression.NewEquals(
			expression.NewGetField("Products", "Id", sql.Int64, false),
			expression.NewBindVar("id", sql.Int64),
		)).
		Delete()

	translated, err := Translate(q.Node())
	require.NoError(err)

	del, ok := translated.(*plan.Delete)
	require.True(ok)
	require.Equal("Products", del.Table.Name())
	require.NotNil(del.Where)

	// A delete result cannot compose further.
	_, err = Translate(FromNode(translated).Delete().Node())
	require.True(sql.ErrNotAQuery.Is(err))
}

func TestTranslateDeleteRejectsDistinct(t *testing.T) {
	require := require.New(t)

	q := From(productsTable()).Distinct().Delete()
	_, err := Translate(q.Node())
	require.True(sql.ErrDeleteOnDistinct.Is(err))
}

func TestTranslateTempTable(t *testing.T) {
	require := require.New(t)

	q := From(productsTable()).ReadFromTempTable("ids")
	translated, err := Translate(q.Node())
	require.NoError(err)

	scan, ok := translated.(*plan.TableScan)
	require.True(ok)
	require.Equal(sql.HintKey("ids"), scan.TempKey())
}

func TestTempTableRequiresTableReference(t *testing.T) {
	require := require.New(t)

	// A source with no table reference anywhere cannot be tagged.
	tmp, err := plan.NewTempTable("#tmp1", "", nil)
	require.NoError(err)

	q := FromNode(tmp).ReadFromTempTable("ids")
	_, err = Translate(q.Node())
	require.True(sql.ErrNoTableReference.Is(err))
}

func TestTempTableRejectsMultipleTableReferences(t *testing.T) {
	require := require.New(t)

	lk := expression.NewGetField("Products", "Id", sql.Int64, false)
	rk := expression.NewGetField("Orders", "ProductId", sql.Int64, false)

	// Two table references: there is no single table to resolve the key
	// against.
	q := From(productsTable()).
		LeftJoin(From(ordersTable()), lk, rk).
		ReadFromTempTable("ids")
	_, err := Translate(q.Node())
	require.True(sql.ErrAmbiguousTableReference.Is(err))
}
