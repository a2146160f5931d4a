package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// JoinType is the kind of a join node.
type JoinType byte

const (
	// JoinInner keeps only matched row pairs.
	JoinInner JoinType = iota
	// JoinLeft keeps every left row; unmatched rows carry an absent
	// right side. Callers must treat right-side values as
	// possibly-absent, including non-nullable fields.
	JoinLeft
)

func (t JoinType) String() string {
	switch t {
	case JoinInner:
		return "InnerJoin"
	case JoinLeft:
		return "LeftJoin"
	default:
		return "invalid JoinType"
	}
}

// Join combines two row sources on a boolean condition.
type Join struct {
	BinaryNode
	Op   JoinType
	Cond sql.Expression
}

var _ sql.Node = (*Join)(nil)
var _ sql.Expressioner = (*Join)(nil)

// NewInnerJoin creates an inner join on the given condition.
func NewInnerJoin(left, right sql.Node, cond sql.Expression) *Join {
	return &Join{BinaryNode: BinaryNode{Left: left, Right: right}, Op: JoinInner, Cond: cond}
}

// NewLeftJoin creates a left join on the given condition.
func NewLeftJoin(left, right sql.Node, cond sql.Expression) *Join {
	return &Join{BinaryNode: BinaryNode{Left: left, Right: right}, Op: JoinLeft, Cond: cond}
}

// Schema implements the Node interface. For a left join the right
// side's columns are reported nullable, since they are absent for
// unmatched left rows.
func (j *Join) Schema() sql.Schema {
	left := j.Left.Schema()
	right := j.Right.Schema()
	if j.Op == JoinLeft {
		right = right.AsNullable()
	}
	schema := make(sql.Schema, 0, len(left)+len(right))
	schema = append(schema, left...)
	schema = append(schema, right...)
	return schema
}

// WithChildren implements the Node interface.
func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(children), 2)
	}
	nj := *j
	nj.Left, nj.Right = children[0], children[1]
	return &nj, nil
}

// Expressions implements the Expressioner interface.
func (j *Join) Expressions() []sql.Expression {
	return []sql.Expression{j.Cond}
}

// WithExpressions implements the Expressioner interface.
func (j *Join) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(exprs), 1)
	}
	nj := *j
	nj.Cond = exprs[0]
	return &nj, nil
}

func (j *Join) String() string {
	return fmt.Sprintf("%s(%s)\n ├─ %s\n └─ %s", j.Op, j.Cond, j.Left, j.Right)
}
