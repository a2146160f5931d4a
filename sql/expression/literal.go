package expression

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Literal represents a constant literal value.
type Literal struct {
	value     interface{}
	fieldType sql.Type
}

// NewLiteral creates a new Literal expression.
func NewLiteral(value interface{}, fieldType sql.Type) *Literal {
	return &Literal{
		value:     value,
		fieldType: fieldType,
	}
}

// Value returns the literal value.
func (l *Literal) Value() interface{} {
	return l.value
}

// Type implements the Expression interface.
func (l *Literal) Type() sql.Type {
	return l.fieldType
}

// IsNullable implements the Expression interface.
func (l *Literal) IsNullable() bool {
	return l.value == nil
}

// Eval implements the Expression interface.
func (l *Literal) Eval(*sql.Context, sql.Params) (interface{}, error) {
	return l.value, nil
}

func (l *Literal) String() string {
	switch v := l.value.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

// Children implements the Expression interface.
func (*Literal) Children() []sql.Expression {
	return nil
}

// WithChildren implements the Expression interface.
func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 0)
	}
	return l, nil
}

// Tag implements the Expression interface.
func (*Literal) Tag() sql.Tag { return sql.TagNone }
