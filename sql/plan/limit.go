package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Limit is a node that caps the number of rows returned.
type Limit struct {
	UnaryNode
	Limit int64
}

var _ sql.Node = (*Limit)(nil)

// NewLimit creates a new Limit node.
func NewLimit(size int64, child sql.Node) *Limit {
	return &Limit{
		UnaryNode: UnaryNode{Child: child},
		Limit:     size,
	}
}

// WithChildren implements the Node interface.
func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 1)
	}
	return NewLimit(l.Limit, children[0]), nil
}

func (l *Limit) String() string {
	return fmt.Sprintf("Limit(%d)\n └─ %s", l.Limit, l.Child)
}

// Offset is a node that skips the first N rows.
type Offset struct {
	UnaryNode
	Offset int64
}

var _ sql.Node = (*Offset)(nil)

// NewOffset creates a new Offset node.
func NewOffset(n int64, child sql.Node) *Offset {
	return &Offset{
		UnaryNode: UnaryNode{Child: child},
		Offset:    n,
	}
}

// WithChildren implements the Node interface.
func (o *Offset) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(o, len(children), 1)
	}
	return NewOffset(o.Offset, children[0]), nil
}

func (o *Offset) String() string {
	return fmt.Sprintf("Offset(%d)\n └─ %s", o.Offset, o.Child)
}
