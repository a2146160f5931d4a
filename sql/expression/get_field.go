package expression

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// GetField is an expression referencing a column of a table.
type GetField struct {
	table     string
	name      string
	fieldType sql.Type
	nullable  bool
}

var _ sql.Expression = (*GetField)(nil)
var _ sql.Nameable = (*GetField)(nil)

// NewGetField creates a GetField expression.
func NewGetField(table, name string, fieldType sql.Type, nullable bool) *GetField {
	return &GetField{
		table:     table,
		name:      name,
		fieldType: fieldType,
		nullable:  nullable,
	}
}

// Table returns the name of the field's table.
func (p *GetField) Table() string { return p.table }

// Name implements the Nameable interface.
func (p *GetField) Name() string { return p.name }

// WithTable returns a copy of this expression with the table replaced.
func (p *GetField) WithTable(table string) *GetField {
	p2 := *p
	p2.table = table
	return &p2
}

// WithNullable returns a copy of this expression with the given
// nullability. Used for columns read through the right side of a left
// join, which are absent for unmatched rows.
func (p *GetField) WithNullable(nullable bool) *GetField {
	if p.nullable == nullable {
		return p
	}
	p2 := *p
	p2.nullable = nullable
	return &p2
}

// Type implements the Expression interface.
func (p *GetField) Type() sql.Type { return p.fieldType }

// IsNullable implements the Expression interface.
func (p *GetField) IsNullable() bool { return p.nullable }

// Eval implements the Expression interface. Column references need row
// data and cannot be evaluated at compile time.
func (p *GetField) Eval(*sql.Context, sql.Params) (interface{}, error) {
	return nil, sql.ErrNotCompileTimeEvaluable.New(p)
}

func (p *GetField) String() string {
	if p.table == "" {
		return p.name
	}
	return fmt.Sprintf("%s.%s", p.table, p.name)
}

// Children implements the Expression interface.
func (*GetField) Children() []sql.Expression {
	return nil
}

// WithChildren implements the Expression interface.
func (p *GetField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 0)
	}
	return p, nil
}

// Tag implements the Expression interface.
func (*GetField) Tag() sql.Tag { return sql.TagNone }
