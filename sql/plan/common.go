package plan

import (
	"github.com/poizan42/go-query-rewriter/sql"
)

// UnaryNode is a node that has a single child.
type UnaryNode struct {
	Child sql.Node
}

// Schema implements the Node interface.
func (n *UnaryNode) Schema() sql.Schema {
	return n.Child.Schema()
}

// Children implements the Node interface.
func (n *UnaryNode) Children() []sql.Node {
	return []sql.Node{n.Child}
}

// Tag implements the Node interface.
func (*UnaryNode) Tag() sql.Tag { return sql.TagNone }

// BinaryNode is a node with two children.
type BinaryNode struct {
	Left  sql.Node
	Right sql.Node
}

// Children implements the Node interface.
func (n *BinaryNode) Children() []sql.Node {
	return []sql.Node{n.Left, n.Right}
}

// Tag implements the Node interface.
func (*BinaryNode) Tag() sql.Tag { return sql.TagNone }
