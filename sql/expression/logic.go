package expression

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// And checks whether two expressions are true.
type And struct {
	BinaryExpression
}

var _ sql.Expression = (*And)(nil)

// NewAnd creates a new And expression.
func NewAnd(left, right sql.Expression) *And {
	return &And{BinaryExpression{Left: left, Right: right}}
}

// JoinAnd joins several expressions with ANDs.
func JoinAnd(exprs ...sql.Expression) sql.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		result := NewAnd(exprs[0], exprs[1])
		for _, e := range exprs[2:] {
			result = NewAnd(result, e)
		}
		return result
	}
}

func (a *And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

// Type implements the Expression interface.
func (*And) Type() sql.Type {
	return sql.Boolean
}

// Eval implements the Expression interface, with SQL three-valued
// logic: FALSE AND NULL is FALSE, TRUE AND NULL is NULL.
func (a *And) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	lval, err := evalBool(ctx, a.Left, params)
	if err != nil {
		return nil, err
	}
	if lval != nil && !*lval {
		return false, nil
	}

	rval, err := evalBool(ctx, a.Right, params)
	if err != nil {
		return nil, err
	}
	if rval != nil && !*rval {
		return false, nil
	}

	if lval == nil || rval == nil {
		return nil, nil
	}
	return true, nil
}

// WithChildren implements the Expression interface.
func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(a, len(children), 2)
	}
	return NewAnd(children[0], children[1]), nil
}

// Or checks whether one of the two given expressions is true.
type Or struct {
	BinaryExpression
}

var _ sql.Expression = (*Or)(nil)

// NewOr creates a new Or expression.
func NewOr(left, right sql.Expression) *Or {
	return &Or{BinaryExpression{Left: left, Right: right}}
}

func (o *Or) String() string {
	return fmt.Sprintf("(%s OR %s)", o.Left, o.Right)
}

// Type implements the Expression interface.
func (*Or) Type() sql.Type {
	return sql.Boolean
}

// Eval implements the Expression interface, with SQL three-valued
// logic: TRUE OR NULL is TRUE, FALSE OR NULL is NULL.
func (o *Or) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	lval, err := evalBool(ctx, o.Left, params)
	if err != nil {
		return nil, err
	}
	if lval != nil && *lval {
		return true, nil
	}

	rval, err := evalBool(ctx, o.Right, params)
	if err != nil {
		return nil, err
	}
	if rval != nil && *rval {
		return true, nil
	}

	if lval == nil || rval == nil {
		return nil, nil
	}
	return false, nil
}

// WithChildren implements the Expression interface.
func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(o, len(children), 2)
	}
	return NewOr(children[0], children[1]), nil
}

// Not is a node that negates an expression.
type Not struct {
	UnaryExpression
}

var _ sql.Expression = (*Not)(nil)

// NewNot returns a new Not node.
func NewNot(child sql.Expression) *Not {
	return &Not{UnaryExpression{Child: child}}
}

func (e *Not) String() string {
	return fmt.Sprintf("NOT %s", e.Child)
}

// Type implements the Expression interface.
func (*Not) Type() sql.Type {
	return sql.Boolean
}

// Eval implements the Expression interface.
func (e *Not) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	v, err := evalBool(ctx, e.Child, params)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return !*v, nil
}

// WithChildren implements the Expression interface.
func (e *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}
	return NewNot(children[0]), nil
}

func evalBool(ctx *sql.Context, e sql.Expression, params sql.Params) (*bool, error) {
	v, err := e.Eval(ctx, params)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	b, err := sql.Boolean.Convert(v)
	if err != nil {
		return nil, err
	}
	bv := b.(bool)
	return &bv, nil
}
