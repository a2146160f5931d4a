package builder

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/plan"
)

// Query is an immutable declarative query under construction. Every
// method returns a new Query; the receiver is never modified.
type Query struct {
	node sql.Node
}

// From starts a query over the given table.
func From(table *plan.TableScan) *Query {
	return &Query{node: table}
}

// FromNode starts a query over an arbitrary row source.
func FromNode(node sql.Node) *Query {
	return &Query{node: node}
}

// Node returns the tree built so far, still carrying untranslated
// builder calls.
func (q *Query) Node() sql.Node {
	return q.node
}

// Where adds a filter predicate.
func (q *Query) Where(pred sql.Expression) *Query {
	return &Query{node: plan.NewFilter(pred, q.node)}
}

// Select projects the given expressions.
func (q *Query) Select(projections ...sql.Expression) *Query {
	return &Query{node: plan.NewProject(projections, q.node)}
}

// OrderBy sorts the result by the given fields.
func (q *Query) OrderBy(fields ...sql.SortField) *Query {
	return &Query{node: plan.NewSort(fields, q.node)}
}

// Distinct removes duplicate rows.
func (q *Query) Distinct() *Query {
	return &Query{node: plan.NewDistinct(q.node)}
}

// GroupBy groups rows by the given expressions.
func (q *Query) GroupBy(grouping ...sql.Expression) *Query {
	return &Query{node: plan.NewGroupBy(grouping, q.node)}
}

// Having filters groups after grouping.
func (q *Query) Having(cond sql.Expression) *Query {
	return &Query{node: plan.NewHaving(cond, q.node)}
}

// Limit caps the number of rows returned.
func (q *Query) Limit(n int64) *Query {
	return &Query{node: plan.NewLimit(n, q.node)}
}

// Offset skips the first n rows.
func (q *Query) Offset(n int64) *Query {
	return &Query{node: plan.NewOffset(n, q.node)}
}

// Join inner-joins the query with another on the given condition.
func (q *Query) Join(right *Query, cond sql.Expression) *Query {
	return &Query{node: plan.NewInnerJoin(q.node, right.node, cond)}
}

// AsSubquery pushes the query built so far into a nested sub-query with
// the given name, pinning its ordering and grouping semantics for
// further composition.
func (q *Query) AsSubquery(name string) *Query {
	return &Query{node: &Call{op: OpSubquery, child: q.node, name: name}}
}

// GroupJoin pairs each row of the query with the group of rows of right
// whose rightKey equals the row's leftKey. A group join has no
// relational form of its own: it must be followed by Flatten.
func (q *Query) GroupJoin(right *Query, leftKey, rightKey sql.Expression) *Query {
	return &Query{node: &Call{
		op:       OpGroupJoin,
		child:    q.node,
		right:    right.node,
		leftKey:  leftKey,
		rightKey: rightKey,
	}}
}

// Flatten flattens a group join into row pairs. With defaultIfEmpty,
// left rows without matches are kept and their right side is absent;
// callers must treat right-side values as possibly-absent, including
// non-nullable fields.
func (q *Query) Flatten(defaultIfEmpty bool) *Query {
	return &Query{node: &Call{op: OpFlatten, child: q.node, defaultIfEmpty: defaultIfEmpty}}
}

// LeftJoin left-joins the query with another. It is not a primitive:
// it composes as a group join flattened with default-if-empty,
// optionally followed by a projection:
//
//	L.GroupJoin(R, lk, rk).Flatten(true).Select(sel...)
func (q *Query) LeftJoin(right *Query, leftKey, rightKey sql.Expression, projections ...sql.Expression) *Query {
	joined := q.GroupJoin(right, leftKey, rightKey).Flatten(true)
	if len(projections) == 0 {
		return joined
	}
	return joined.Select(projections...)
}

// Delete turns the query shape into a bulk delete producing a single
// affected-row count.
func (q *Query) Delete() *Query {
	return &Query{node: &Call{op: OpDelete, child: q.node}}
}

// ReadFromTempTable tags the query's table reference to be resolved
// against the temp table context under the given key. The temp table
// name is only known at execution time and never appears in the built
// tree.
func (q *Query) ReadFromTempTable(key sql.HintKey) *Query {
	return &Query{node: &Call{op: OpTempTable, child: q.node, key: key}}
}
