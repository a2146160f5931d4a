package builder

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/plan"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

// registry maps each operation token to its lowering. The table is
// fixed at compile time.
var registry = map[Op]lowerFunc{
	OpSubquery:  lowerSubquery,
	OpGroupJoin: lowerGroupJoin,
	OpFlatten:   lowerFlatten,
	OpDelete:    lowerDelete,
	OpTempTable: lowerTempTable,
}

// Translate lowers every builder call in the tree into primitive nodes,
// bottom-up. After translation no Call node remains.
func Translate(n sql.Node) (sql.Node, error) {
	translated, _, err := transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		lowered, err := TranslateCall(n)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if lowered == nil {
			return n, transform.SameTree, nil
		}
		return lowered, transform.NewTree, nil
	})
	if err != nil {
		return nil, err
	}

	// A group join is lowered by the flatten above it; one still in the
	// tree here was never flattened.
	var dangling error
	transform.Inspect(translated, func(n sql.Node) bool {
		if _, ok := n.(*Call); ok {
			dangling = sql.ErrGroupJoinNotFlattened.New()
			return false
		}
		return true
	})
	if dangling != nil {
		return nil, dangling
	}

	return translated, nil
}

// TranslateCall lowers a single builder call. It returns nil, nil when
// the node is not a builder call, signalling the caller to continue
// normal translation.
func TranslateCall(n sql.Node) (sql.Node, error) {
	call, ok := n.(*Call)
	if !ok {
		return nil, nil
	}
	lower, ok := registry[call.op]
	if !ok {
		return nil, sql.ErrUnknownBuilderOp.New(call.op)
	}
	return lower(call)
}

func lowerSubquery(call *Call) (sql.Node, error) {
	if !isQueryShape(call.child) {
		return nil, sql.ErrNotAQuery.New(call.child)
	}
	return plan.NewSubqueryAlias(call.name, call.child)
}

// lowerGroupJoin leaves the call in place: a group join only gains a
// relational form when the flatten above it consumes it.
func lowerGroupJoin(call *Call) (sql.Node, error) {
	return call, nil
}

func lowerFlatten(call *Call) (sql.Node, error) {
	group, ok := call.child.(*Call)
	if !ok || group.op != OpGroupJoin {
		return nil, sql.ErrNotAQuery.New(call.child)
	}
	cond := expression.NewEquals(group.leftKey, group.rightKey)
	if call.defaultIfEmpty {
		return plan.NewLeftJoin(group.child, group.right, cond), nil
	}
	return plan.NewInnerJoin(group.child, group.right, cond), nil
}

func lowerDelete(call *Call) (sql.Node, error) {
	if !isQueryShape(call.child) {
		return nil, sql.ErrNotAQuery.New(call.child)
	}
	return plan.NewDelete(call.child)
}

func lowerTempTable(call *Call) (sql.Node, error) {
	var scans int
	transform.Inspect(call.child, func(n sql.Node) bool {
		if _, ok := n.(*plan.TableScan); ok {
			scans++
		}
		return true
	})
	switch {
	case scans == 0:
		return nil, sql.ErrNoTableReference.New("temp table key " + string(call.key))
	case scans > 1:
		return nil, sql.ErrAmbiguousTableReference.New(scans, "temp table key "+string(call.key))
	}

	tagged, _, err := transform.Node(call.child, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		if t, ok := n.(*plan.TableScan); ok {
			return t.WithTempKey(call.key), transform.NewTree, nil
		}
		return n, transform.SameTree, nil
	})
	if err != nil {
		return nil, err
	}
	return tagged, nil
}

// isQueryShape reports whether the node produces relational rows. A
// bulk delete produces a scalar count and cannot compose further.
func isQueryShape(n sql.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*plan.Delete); ok {
		return false
	}
	return len(n.Schema()) > 0
}
