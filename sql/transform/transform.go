// Package transform provides pure, bottom-up rewriting of relational
// and expression trees. Rewrites never mutate their input: a changed
// subtree produces a new parent chain, and unchanged children are
// shared by reference between the old and new trees.
package transform

import (
	"github.com/poizan42/go-query-rewriter/sql"
)

// TreeIdentity tracks whether a rewrite changed the tree it was given.
type TreeIdentity bool

const (
	// SameTree is returned when the tree was left untouched.
	SameTree TreeIdentity = true
	// NewTree is returned when the rewrite produced a new tree.
	NewTree TreeIdentity = false
)

// NodeFunc is a function that given a node will return that node as is
// or transformed, a TreeIdentity to indicate whether the node was
// modified, and an error or nil.
type NodeFunc func(n sql.Node) (sql.Node, TreeIdentity, error)

// ExprFunc is a function that given an expression will return that
// expression as is or transformed, a TreeIdentity, and an error or nil.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// Node applies a transformation function to the given relational tree
// from the bottom up.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	var newChildren []sql.Node
	for i := 0; i < len(children); i++ {
		c, same, err := Node(children[i], f)
		if err != nil {
			return nil, SameTree, err
		}
		if !same {
			if newChildren == nil {
				newChildren = make([]sql.Node, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = c
		}
	}

	sameC := SameTree
	if len(newChildren) > 0 {
		sameC = NewTree
		var err error
		n, err = n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	n, sameN, err := f(n)
	if err != nil {
		return nil, SameTree, err
	}
	return n, sameC && sameN, nil
}

// NodeExprs applies a transformation function to all expressions of all
// nodes in the given tree, from the bottom up.
func NodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	return Node(n, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		return OneNodeExprs(n, f)
	})
}

// OneNodeExprs applies a transformation function to the expressions of
// a single node, leaving the node's children untouched.
func OneNodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	ne, ok := n.(sql.Expressioner)
	if !ok {
		return n, SameTree, nil
	}

	exprs := ne.Expressions()
	if len(exprs) == 0 {
		return n, SameTree, nil
	}

	var newExprs []sql.Expression
	for i := 0; i < len(exprs); i++ {
		e, same, err := Expr(exprs[i], f)
		if err != nil {
			return nil, SameTree, err
		}
		if !same {
			if newExprs == nil {
				newExprs = make([]sql.Expression, len(exprs))
				copy(newExprs, exprs)
			}
			newExprs[i] = e
		}
	}

	if len(newExprs) == 0 {
		return n, SameTree, nil
	}
	nn, err := ne.WithExpressions(newExprs...)
	if err != nil {
		return nil, SameTree, err
	}
	return nn, NewTree, nil
}

// Inspect performs a pre-order traversal of the tree, calling f on each
// node. If f returns false the children of that node are skipped.
func Inspect(n sql.Node, f func(sql.Node) bool) {
	if !f(n) {
		return
	}
	for _, child := range n.Children() {
		Inspect(child, f)
	}
}
