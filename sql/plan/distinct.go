package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Distinct removes duplicate rows from its child's result.
type Distinct struct {
	UnaryNode
}

var _ sql.Node = (*Distinct)(nil)

// NewDistinct creates a new Distinct node.
func NewDistinct(child sql.Node) *Distinct {
	return &Distinct{UnaryNode{Child: child}}
}

// WithChildren implements the Node interface.
func (d *Distinct) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), 1)
	}
	return NewDistinct(children[0]), nil
}

func (d *Distinct) String() string {
	return fmt.Sprintf("Distinct\n └─ %s", d.Child)
}
