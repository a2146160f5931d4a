package builder

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Call marks a builder-level operation in the tree until the method
// translator lowers it. A call node never survives translation.
type Call struct {
	op    Op
	child sql.Node

	// name of the sub-query for OpSubquery.
	name string
	// key of the temp table tag for OpTempTable.
	key sql.HintKey
	// right side and join keys for OpGroupJoin.
	right    sql.Node
	leftKey  sql.Expression
	rightKey sql.Expression
	// defaultIfEmpty keeps unmatched left rows for OpFlatten.
	defaultIfEmpty bool
}

var _ sql.Node = (*Call)(nil)

// Op returns the operation token of the call.
func (c *Call) Op() Op { return c.op }

// Schema implements the Node interface. Before translation the call
// reports its child's shape.
func (c *Call) Schema() sql.Schema {
	if c.op == OpGroupJoin || c.op == OpFlatten {
		schema := make(sql.Schema, 0)
		schema = append(schema, c.childSchema()...)
		if c.right != nil {
			schema = append(schema, c.right.Schema().AsNullable()...)
		}
		return schema
	}
	return c.childSchema()
}

func (c *Call) childSchema() sql.Schema {
	if c.child == nil {
		return nil
	}
	return c.child.Schema()
}

// Children implements the Node interface.
func (c *Call) Children() []sql.Node {
	if c.right != nil {
		return []sql.Node{c.child, c.right}
	}
	return []sql.Node{c.child}
}

// WithChildren implements the Node interface.
func (c *Call) WithChildren(children ...sql.Node) (sql.Node, error) {
	expected := 1
	if c.right != nil {
		expected = 2
	}
	if len(children) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), expected)
	}
	nc := *c
	nc.child = children[0]
	if expected == 2 {
		nc.right = children[1]
	}
	return &nc, nil
}

// Tag implements the Node interface.
func (*Call) Tag() sql.Tag { return sql.TagNone }

func (c *Call) String() string {
	switch c.op {
	case OpSubquery:
		return fmt.Sprintf("Call(%s, %s)\n └─ %s", c.op, c.name, c.child)
	case OpTempTable:
		return fmt.Sprintf("Call(%s, %s)\n └─ %s", c.op, c.key, c.child)
	case OpGroupJoin:
		return fmt.Sprintf("Call(%s, %s = %s)\n ├─ %s\n └─ %s", c.op, c.leftKey, c.rightKey, c.child, c.right)
	case OpFlatten:
		return fmt.Sprintf("Call(%s, defaultIfEmpty=%v)\n └─ %s", c.op, c.defaultIfEmpty, c.child)
	default:
		return fmt.Sprintf("Call(%s)\n └─ %s", c.op, c.child)
	}
}
