package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
)

func TestLeftJoinSchemaNullability(t *testing.T) {
	require := require.New(t)

	cond := expression.NewEquals(
		expression.NewGetField("Products", "Id", sql.Int64, false),
		expression.NewGetField("Orders", "ProductId", sql.Int64, false),
	)

	// An inner join keeps both sides as declared.
	inner := NewInnerJoin(productsTable(), ordersTable(), cond)
	for _, col := range inner.Schema() {
		if col.Source == "Orders" {
			require.False(col.Nullable, col.Name)
		}
	}

	// A left join makes every right-side column nullable: the right
	// side may be absent.
	left := NewLeftJoin(productsTable(), ordersTable(), cond)
	require.Equal(JoinLeft, left.Op)
	for _, col := range left.Schema() {
		if col.Source == "Orders" {
			require.True(col.Nullable, col.Name)
		}
	}
	// The left side is untouched.
	require.False(left.Schema()[0].Nullable)
}

func TestNodeTags(t *testing.T) {
	require := require.New(t)

	temp, err := NewTempTable("#tmp1", "t", nil)
	require.NoError(err)
	require.NotZero(temp.Tag() & sql.TagOpaque)
	require.NotZero(temp.Tag() & sql.TagNeverNull)

	opaque, err := NewOpaqueTable("pinned", productsTable())
	require.NoError(err)
	require.NotZero(opaque.Tag() & sql.TagOpaque)

	require.Equal(sql.TagNone, productsTable().Tag())
	require.Equal(sql.TagNone, NewDistinct(productsTable()).Tag())
}

func TestTableScanCopies(t *testing.T) {
	require := require.New(t)

	base := productsTable()
	qualified := base.WithQualifier("dbo").WithAlias("p").WithHints([]string{"NOLOCK"})

	require.Equal("", base.Qualifier())
	require.Equal("Products", base.Alias())
	require.Empty(base.Hints())

	require.Equal("dbo", qualified.Qualifier())
	require.Equal("p", qualified.Alias())
	require.Equal([]string{"NOLOCK"}, qualified.Hints())

	tagged := base.WithTempKey("ids")
	require.Equal(sql.HintKey(""), base.TempKey())
	require.Equal(sql.HintKey("ids"), tagged.TempKey())
}
