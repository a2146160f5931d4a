package analyzer

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/plan"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

// applyBulkOperations is the bulk-operation visitor. It resolves temp
// table tags against the temp table context and attaches table hints to
// references matched by name. The rule is skipped entirely when both
// side channels are empty; the presence check is the only cost for
// queries that use neither. Given the same tree and the same context
// keys the output is structurally identical, which the plan cache
// relies on.
func applyBulkOperations(_ *sql.Context, o *Optimizer, comp *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	if comp.Hints.Empty() && comp.TempTables.Empty() {
		return n, transform.SameTree, nil
	}

	return transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		t, ok := n.(*plan.TableScan)
		if !ok {
			return n, transform.SameTree, nil
		}

		if key := t.TempKey(); key != "" {
			name, bound := comp.TempTables.Name(key)
			if !bound {
				return n, transform.SameTree, nil
			}
			o.Log("resolved temp table key %s to %s", key, name)
			tmp, err := plan.NewTempTable(name, t.Alias(), t.Schema())
			if err != nil {
				return nil, transform.SameTree, err
			}
			return tmp, transform.NewTree, nil
		}

		if hints, ok := comp.Hints.Hints(sql.HintKey(t.Name())); ok {
			o.Log("attached hints %v to table %s", hints, t.Name())
			return t.WithHints(hints), transform.NewTree, nil
		}

		return n, transform.SameTree, nil
	})
}
