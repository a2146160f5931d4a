package plan

import (
	"fmt"
	"strings"

	"github.com/poizan42/go-query-rewriter/sql"
)

// GroupBy groups the rows of its child by the given expressions.
type GroupBy struct {
	UnaryNode
	Grouping []sql.Expression
}

var _ sql.Node = (*GroupBy)(nil)
var _ sql.Expressioner = (*GroupBy)(nil)

// NewGroupBy creates a new GroupBy node.
func NewGroupBy(grouping []sql.Expression, child sql.Node) *GroupBy {
	return &GroupBy{
		UnaryNode: UnaryNode{Child: child},
		Grouping:  grouping,
	}
}

// WithChildren implements the Node interface.
func (g *GroupBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}
	return NewGroupBy(g.Grouping, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (g *GroupBy) Expressions() []sql.Expression {
	return g.Grouping
}

// WithExpressions implements the Expressioner interface.
func (g *GroupBy) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(g.Grouping) {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(exprs), len(g.Grouping))
	}
	return NewGroupBy(exprs, g.Child), nil
}

func (g *GroupBy) String() string {
	grouping := make([]string, len(g.Grouping))
	for i, e := range g.Grouping {
		grouping[i] = e.String()
	}
	return fmt.Sprintf("GroupBy(%s)\n └─ %s", strings.Join(grouping, ", "), g.Child)
}

// Having filters groups after grouping.
type Having struct {
	UnaryNode
	Cond sql.Expression
}

var _ sql.Node = (*Having)(nil)
var _ sql.Expressioner = (*Having)(nil)

// NewHaving creates a new Having node.
func NewHaving(cond sql.Expression, child sql.Node) *Having {
	return &Having{
		UnaryNode: UnaryNode{Child: child},
		Cond:      cond,
	}
}

// WithChildren implements the Node interface.
func (h *Having) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(h, len(children), 1)
	}
	return NewHaving(h.Cond, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (h *Having) Expressions() []sql.Expression {
	return []sql.Expression{h.Cond}
}

// WithExpressions implements the Expressioner interface.
func (h *Having) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(h, len(exprs), 1)
	}
	return NewHaving(exprs[0], h.Child), nil
}

func (h *Having) String() string {
	return fmt.Sprintf("Having(%s)\n └─ %s", h.Cond, h.Child)
}
