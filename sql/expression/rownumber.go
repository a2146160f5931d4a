package expression

import (
	"fmt"
	"strings"

	"github.com/poizan42/go-query-rewriter/sql"
)

// RowNumberOrdering accumulates the ORDER BY list of a row-number
// window. Append produces a new accumulator sharing the existing
// fields. The accumulator is only ever valid as the input of a window
// function; emitting it directly as SQL is a fatal internal error
// raised by the generator.
type RowNumberOrdering struct {
	fields sql.SortFields
}

var _ sql.Expression = (*RowNumberOrdering)(nil)

// NewRowNumberOrdering creates an accumulator over the given sort
// fields. At least one field is required.
func NewRowNumberOrdering(fields ...sql.SortField) (*RowNumberOrdering, error) {
	if len(fields) == 0 {
		return nil, sql.ErrEmptyOrdering.New()
	}
	for _, f := range fields {
		if f.Column == nil {
			return nil, sql.ErrNilChild.New("row-number ordering")
		}
	}
	return &RowNumberOrdering{fields: sql.SortFields(fields)}, nil
}

// Append returns a new accumulator holding the existing fields followed
// by the given ones, in order. The receiver is not modified.
func (r *RowNumberOrdering) Append(fields ...sql.SortField) (*RowNumberOrdering, error) {
	if len(fields) == 0 {
		return nil, sql.ErrEmptyOrdering.New()
	}
	combined := make(sql.SortFields, 0, len(r.fields)+len(fields))
	combined = append(combined, r.fields...)
	combined = append(combined, fields...)
	return NewRowNumberOrdering(combined...)
}

// Fields returns the accumulated sort fields in order.
func (r *RowNumberOrdering) Fields() sql.SortFields {
	return r.fields
}

// Type implements the Expression interface. The accumulator has no SQL
// value of its own.
func (*RowNumberOrdering) Type() sql.Type { return sql.Null }

// IsNullable implements the Expression interface.
func (*RowNumberOrdering) IsNullable() bool { return false }

// Eval implements the Expression interface.
func (r *RowNumberOrdering) Eval(*sql.Context, sql.Params) (interface{}, error) {
	return nil, sql.ErrNotCompileTimeEvaluable.New(r)
}

func (r *RowNumberOrdering) String() string {
	return fmt.Sprintf("RowNumberOrdering(%s)", r.fields)
}

// Children implements the Expression interface.
func (r *RowNumberOrdering) Children() []sql.Expression {
	return r.fields.Columns()
}

// WithChildren implements the Expression interface.
func (r *RowNumberOrdering) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	fields, err := r.fields.WithColumns(children...)
	if err != nil {
		return nil, err
	}
	return NewRowNumberOrdering(fields...)
}

// Tag implements the Expression interface. ROW_NUMBER output is never
// NULL, and the declaration is fixed here at construction.
func (*RowNumberOrdering) Tag() sql.Tag { return sql.TagNeverNull }

// RowNumber is the ROW_NUMBER() window function. It consumes a
// RowNumberOrdering accumulator, the only context in which the
// accumulator may reach SQL generation.
type RowNumber struct {
	partitionBy []sql.Expression
	ordering    *RowNumberOrdering
}

var _ sql.Expression = (*RowNumber)(nil)

// NewRowNumber creates a RowNumber window function. The ordering is
// required; the partition list may be empty.
func NewRowNumber(ordering *RowNumberOrdering, partitionBy ...sql.Expression) (*RowNumber, error) {
	if ordering == nil {
		return nil, sql.ErrNilChild.New("ROW_NUMBER")
	}
	return &RowNumber{partitionBy: partitionBy, ordering: ordering}, nil
}

// Ordering returns the consumed ordering accumulator.
func (r *RowNumber) Ordering() *RowNumberOrdering { return r.ordering }

// PartitionBy returns the partition expressions, possibly empty.
func (r *RowNumber) PartitionBy() []sql.Expression { return r.partitionBy }

// Type implements the Expression interface.
func (*RowNumber) Type() sql.Type { return sql.Int64 }

// IsNullable implements the Expression interface.
func (*RowNumber) IsNullable() bool { return false }

// Eval implements the Expression interface.
func (r *RowNumber) Eval(*sql.Context, sql.Params) (interface{}, error) {
	return nil, sql.ErrNotCompileTimeEvaluable.New(r)
}

func (r *RowNumber) String() string {
	if len(r.partitionBy) == 0 {
		return fmt.Sprintf("ROW_NUMBER() OVER (ORDER BY %s)", r.ordering.Fields())
	}
	parts := make([]string, len(r.partitionBy))
	for i, p := range r.partitionBy {
		parts[i] = p.String()
	}
	return fmt.Sprintf("ROW_NUMBER() OVER (PARTITION BY %s ORDER BY %s)",
		strings.Join(parts, ", "), r.ordering.Fields())
}

// Children implements the Expression interface.
func (r *RowNumber) Children() []sql.Expression {
	children := make([]sql.Expression, 0, len(r.partitionBy)+1)
	children = append(children, r.partitionBy...)
	children = append(children, r.ordering)
	return children
}

// WithChildren implements the Expression interface.
func (r *RowNumber) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(r.partitionBy)+1 {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(children), len(r.partitionBy)+1)
	}
	ordering, ok := children[len(children)-1].(*RowNumberOrdering)
	if !ok {
		return nil, sql.ErrInvalidChildType.New(r, children[len(children)-1], (*RowNumberOrdering)(nil))
	}
	return NewRowNumber(ordering, children[:len(children)-1]...)
}

// Tag implements the Expression interface.
func (*RowNumber) Tag() sql.Tag { return sql.TagNeverNull }
