package expression

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Plus adds two expressions.
type Plus struct {
	BinaryExpression
}

var _ sql.Expression = (*Plus)(nil)

// NewPlus creates a new Plus expression.
func NewPlus(left, right sql.Expression) *Plus {
	return &Plus{BinaryExpression{Left: left, Right: right}}
}

func (p *Plus) String() string {
	return fmt.Sprintf("(%s + %s)", p.Left, p.Right)
}

// Type implements the Expression interface.
func (p *Plus) Type() sql.Type {
	if p.Left.Type() == sql.Float64 || p.Right.Type() == sql.Float64 {
		return sql.Float64
	}
	return sql.Int64
}

// Eval implements the Expression interface.
func (p *Plus) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	lval, err := p.Left.Eval(ctx, params)
	if err != nil {
		return nil, err
	}
	if lval == nil {
		return nil, nil
	}

	rval, err := p.Right.Eval(ctx, params)
	if err != nil {
		return nil, err
	}
	if rval == nil {
		return nil, nil
	}

	typ := p.Type()
	lc, err := typ.Convert(lval)
	if err != nil {
		return nil, err
	}
	rc, err := typ.Convert(rval)
	if err != nil {
		return nil, err
	}

	if typ == sql.Float64 {
		return lc.(float64) + rc.(float64), nil
	}
	return lc.(int64) + rc.(int64), nil
}

// WithChildren implements the Expression interface.
func (p *Plus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 2)
	}
	return NewPlus(children[0], children[1]), nil
}
