package analyzer

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

// inlineParams replaces bound placeholders with their literal values
// when the compilation requests it. An inlined plan depends on the
// concrete parameter values, not just their null pattern, so the
// compilation is marked uncacheable as soon as one placeholder is
// replaced.
func inlineParams(_ *sql.Context, o *Optimizer, comp *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	if !comp.InlineParams || len(comp.Params) == 0 {
		return n, transform.SameTree, nil
	}

	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		bv, ok := e.(*expression.BindVar)
		if !ok {
			return e, transform.SameTree, nil
		}
		v, bound := comp.Params[bv.Name]
		if !bound || v == nil {
			return e, transform.SameTree, nil
		}
		converted, err := bv.Type().Convert(v)
		if err != nil {
			return nil, transform.SameTree, err
		}
		o.Log("inlined parameter %s", bv.Name)
		comp.MarkUncacheable()
		return expression.NewLiteral(converted, bv.Type()), transform.NewTree, nil
	})
}
