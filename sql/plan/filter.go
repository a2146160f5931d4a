package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Filter skips rows that don't match the given predicate.
type Filter struct {
	UnaryNode
	// Expression is the boolean-valued predicate.
	Expression sql.Expression
}

var _ sql.Node = (*Filter)(nil)
var _ sql.Expressioner = (*Filter)(nil)

// NewFilter creates a new filter node.
func NewFilter(expression sql.Expression, child sql.Node) *Filter {
	return &Filter{
		UnaryNode:  UnaryNode{Child: child},
		Expression: expression,
	}
}

// WithChildren implements the Node interface.
func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewFilter(f.Expression, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (f *Filter) Expressions() []sql.Expression {
	return []sql.Expression{f.Expression}
}

// WithExpressions implements the Expressioner interface.
func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(exprs), 1)
	}
	return NewFilter(exprs[0], f.Child), nil
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)\n └─ %s", f.Expression, f.Child)
}
