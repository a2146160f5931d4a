package analyzer

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

// foldConstants evaluates expressions whose operands are all literals
// and replaces them with their literal result. It also short-circuits
// boolean operators with one literal side.
func foldConstants(ctx *sql.Context, o *Optimizer, _ *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprs(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if simplified, ok := shortCircuit(e); ok {
			o.Log("short-circuited %s", e)
			return simplified, transform.NewTree, nil
		}

		if !foldable(e) || !allLiteralChildren(e) {
			return e, transform.SameTree, nil
		}

		v, err := e.Eval(ctx, nil)
		if err != nil {
			return nil, transform.SameTree, err
		}
		o.Log("folded %s to %v", e, v)
		if v == nil {
			return expression.NewLiteral(nil, sql.Null), transform.NewTree, nil
		}
		return expression.NewLiteral(v, e.Type()), transform.NewTree, nil
	})
}

// foldable reports whether the expression kind can be evaluated at
// compile time when all of its operands are literals. Custom kinds are
// opaque to the pipeline and never fold.
func foldable(e sql.Expression) bool {
	switch e.(type) {
	case *expression.Equals, *expression.LessThan, *expression.GreaterThan,
		*expression.And, *expression.Or, *expression.Not,
		*expression.IsNull, *expression.Coalesce, *expression.Plus:
		return true
	default:
		return false
	}
}

func allLiteralChildren(e sql.Expression) bool {
	for _, child := range e.Children() {
		if _, ok := child.(*expression.Literal); !ok {
			return false
		}
	}
	return true
}

// shortCircuit simplifies AND/OR with one literal boolean side. NULL
// literals are left to the full fold, which obeys three-valued logic.
func shortCircuit(e sql.Expression) (sql.Expression, bool) {
	switch e := e.(type) {
	case *expression.And:
		if v, ok := literalBool(e.Left); ok {
			if !v {
				return expression.NewLiteral(false, sql.Boolean), true
			}
			return e.Right, true
		}
		if v, ok := literalBool(e.Right); ok {
			if !v {
				return expression.NewLiteral(false, sql.Boolean), true
			}
			return e.Left, true
		}
	case *expression.Or:
		if v, ok := literalBool(e.Left); ok {
			if v {
				return expression.NewLiteral(true, sql.Boolean), true
			}
			return e.Right, true
		}
		if v, ok := literalBool(e.Right); ok {
			if v {
				return expression.NewLiteral(true, sql.Boolean), true
			}
			return e.Left, true
		}
	}
	return nil, false
}

func literalBool(e sql.Expression) (bool, bool) {
	lit, ok := e.(*expression.Literal)
	if !ok {
		return false, false
	}
	v, ok := lit.Value().(bool)
	return v, ok
}
