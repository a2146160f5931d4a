package transform

import (
	"errors"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Expr applies a transformation function to the given expression tree
// from the bottom up. Each callback [f] returns a TreeIdentity that is
// aggregated into a final output indicating whether the expression tree
// was changed.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	var newChildren []sql.Expression
	for i := 0; i < len(children); i++ {
		c, same, err := Expr(children[i], f)
		if err != nil {
			return nil, SameTree, err
		}
		if !same {
			if newChildren == nil {
				newChildren = make([]sql.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = c
		}
	}

	sameC := SameTree
	if len(newChildren) > 0 {
		sameC = NewTree
		var err error
		e, err = e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	e, sameN, err := f(e)
	if err != nil {
		return nil, SameTree, err
	}
	return e, sameC && sameN, nil
}

// InspectExpr traverses the given expression tree from the bottom up,
// breaking if f returns true. Returns whether traversal was
// interrupted.
func InspectExpr(e sql.Expression, f func(sql.Expression) bool) bool {
	stop := errors.New("stop")
	_, _, err := Expr(e, func(e sql.Expression) (sql.Expression, TreeIdentity, error) {
		if f(e) {
			return nil, SameTree, stop
		}
		return e, SameTree, nil
	})
	return errors.Is(err, stop)
}
