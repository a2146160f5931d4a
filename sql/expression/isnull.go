package expression

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// IsNull is an expression that checks if an expression is null.
type IsNull struct {
	UnaryExpression
}

var _ sql.Expression = (*IsNull)(nil)

// NewIsNull creates a new IsNull expression.
func NewIsNull(child sql.Expression) *IsNull {
	return &IsNull{UnaryExpression{Child: child}}
}

// Type implements the Expression interface.
func (*IsNull) Type() sql.Type {
	return sql.Boolean
}

// IsNullable implements the Expression interface. IS NULL itself never
// yields NULL.
func (*IsNull) IsNullable() bool {
	return false
}

// Eval implements the Expression interface.
func (e *IsNull) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	v, err := e.Child.Eval(ctx, params)
	if err != nil {
		return nil, err
	}
	return v == nil, nil
}

func (e *IsNull) String() string {
	return fmt.Sprintf("%s IS NULL", e.Child)
}

// WithChildren implements the Expression interface.
func (e *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}
	return NewIsNull(children[0]), nil
}
