package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// OpaqueTable is a table-valued node whose internal structure is
// intentionally not analyzable by the generic optimizer, such as a
// dialect-specific table-valued fragment. The nullability processor
// must return it as-is without visiting its child.
type OpaqueTable struct {
	UnaryNode
	name string
}

var _ sql.Node = (*OpaqueTable)(nil)
var _ sql.Nameable = (*OpaqueTable)(nil)

// NewOpaqueTable wraps the given query shape as an unanalyzable
// table-valued node with the given name.
func NewOpaqueTable(name string, child sql.Node) (*OpaqueTable, error) {
	if child == nil {
		return nil, sql.ErrNilChild.New("OpaqueTable")
	}
	return &OpaqueTable{UnaryNode: UnaryNode{Child: child}, name: name}, nil
}

// Name implements the Nameable interface.
func (o *OpaqueTable) Name() string { return o.name }

// WithChildren implements the Node interface.
func (o *OpaqueTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(o, len(children), 1)
	}
	return NewOpaqueTable(o.name, children[0])
}

// Tag implements the Node interface. The declaration is fixed at
// construction: opaque contents, never an absent row source.
func (*OpaqueTable) Tag() sql.Tag { return sql.TagOpaque | sql.TagNeverNull }

func (o *OpaqueTable) String() string {
	return fmt.Sprintf("OpaqueTable(%s)", o.name)
}
