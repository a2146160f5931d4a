package analyzer

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

// processNullability is the nullability processor. It walks the tree
// bottom-up and simplifies predicates from what is known about each
// sub-expression's nullability and the parameter null pattern:
//
//   - x IS NULL folds to FALSE when x cannot be null;
//   - x = @p rewrites to x IS NULL when @p is bound to NULL;
//   - COALESCE arguments after the first non-nullable one are dropped.
//
// Nodes tagged never-null declared their nullability at construction;
// the declaration is authoritative and such nodes are passed through
// unchanged, subtree included. Nodes tagged opaque are returned as-is
// without visiting their children: their internal structure is
// intentionally not analyzable. Every rewrite here depends only on the
// parameter null pattern, so the compilation's cacheability is
// preserved.
func processNullability(_ *sql.Context, o *Optimizer, comp *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	var walk func(n sql.Node) (sql.Node, transform.TreeIdentity, error)
	walk = func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		if n.Tag()&sql.TagOpaque != 0 {
			return n, transform.SameTree, nil
		}

		children := n.Children()
		var newChildren []sql.Node
		for i, c := range children {
			nc, same, err := walk(c)
			if err != nil {
				return nil, transform.SameTree, err
			}
			if !same {
				if newChildren == nil {
					newChildren = make([]sql.Node, len(children))
					copy(newChildren, children)
				}
				newChildren[i] = nc
			}
		}

		sameC := transform.SameTree
		if len(newChildren) > 0 {
			sameC = transform.NewTree
			var err error
			n, err = n.WithChildren(newChildren...)
			if err != nil {
				return nil, transform.SameTree, err
			}
		}

		n, sameE, err := nodeExprs(o, comp, n)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return n, sameC && sameE, nil
	}

	return walk(n)
}

func nodeExprs(o *Optimizer, comp *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	ne, ok := n.(sql.Expressioner)
	if !ok {
		return n, transform.SameTree, nil
	}

	exprs := ne.Expressions()
	var newExprs []sql.Expression
	for i, e := range exprs {
		rewritten, same, err := walkExpr(o, comp, e)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !same {
			if newExprs == nil {
				newExprs = make([]sql.Expression, len(exprs))
				copy(newExprs, exprs)
			}
			newExprs[i] = rewritten
		}
	}

	if len(newExprs) == 0 {
		return n, transform.SameTree, nil
	}
	nn, err := ne.WithExpressions(newExprs...)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return nn, transform.NewTree, nil
}

// walkExpr rewrites one expression bottom-up. Tagged subtrees are
// pruned before any child rewriting applies: a never-null or opaque
// declaration covers the whole subtree.
func walkExpr(o *Optimizer, comp *Compilation, e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	if e.Tag()&(sql.TagNeverNull|sql.TagOpaque) != 0 {
		return e, transform.SameTree, nil
	}

	children := e.Children()
	var newChildren []sql.Expression
	for i, c := range children {
		nc, same, err := walkExpr(o, comp, c)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !same {
			if newChildren == nil {
				newChildren = make([]sql.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = nc
		}
	}

	sameC := transform.SameTree
	if len(newChildren) > 0 {
		sameC = transform.NewTree
		var err error
		e, err = e.WithChildren(newChildren...)
		if err != nil {
			return nil, transform.SameTree, err
		}
	}

	e, sameN, err := simplifyExpr(o, comp, e)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return e, sameC && sameN, nil
}

func simplifyExpr(o *Optimizer, comp *Compilation, e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	switch e := e.(type) {
	case *expression.IsNull:
		if bv, ok := e.Child.(*expression.BindVar); ok {
			if v, bound := comp.Params[bv.Name]; bound {
				o.Log("resolved %s from the parameter null pattern", e)
				return expression.NewLiteral(v == nil, sql.Boolean), transform.NewTree, nil
			}
			return e, transform.SameTree, nil
		}
		if !e.Child.IsNullable() {
			o.Log("%s can never hold: operand is non-nullable", e)
			return expression.NewLiteral(false, sql.Boolean), transform.NewTree, nil
		}

	case *expression.Equals:
		// Comparing against a NULL-bound placeholder never matches in
		// SQL semantics; the caller-intended meaning is an IS NULL
		// check on the other operand.
		if other, ok := nullBoundOperand(comp, e.Left, e.Right); ok {
			o.Log("rewrote %s to an IS NULL check", e)
			return expression.NewIsNull(other), transform.NewTree, nil
		}

	case *expression.Coalesce:
		if pruned, ok := pruneCoalesce(e); ok {
			o.Log("pruned %s", e)
			return pruned, transform.NewTree, nil
		}
	}

	return e, transform.SameTree, nil
}

// nullBoundOperand returns the non-placeholder operand when exactly one
// side is a placeholder bound to NULL.
func nullBoundOperand(comp *Compilation, left, right sql.Expression) (sql.Expression, bool) {
	if bv, ok := left.(*expression.BindVar); ok {
		if v, bound := comp.Params[bv.Name]; bound && v == nil {
			return right, true
		}
	}
	if bv, ok := right.(*expression.BindVar); ok {
		if v, bound := comp.Params[bv.Name]; bound && v == nil {
			return left, true
		}
	}
	return nil, false
}

// pruneCoalesce drops the arguments after the first non-nullable one:
// they can never be reached. A single remaining argument replaces the
// COALESCE entirely.
func pruneCoalesce(c *expression.Coalesce) (sql.Expression, bool) {
	args := c.Children()
	for i, arg := range args {
		if !arg.IsNullable() {
			if i == 0 {
				return arg, true
			}
			if i < len(args)-1 {
				pruned, err := expression.NewCoalesce(args[:i+1]...)
				if err != nil {
					return nil, false
				}
				return pruned, true
			}
			return nil, false
		}
	}
	return nil, false
}
