package expression

import (
	"github.com/poizan42/go-query-rewriter/sql"
)

// BindVar is a named placeholder for a value bound at execution time.
type BindVar struct {
	Name string
	typ  sql.Type
}

// NewBindVar creates a new BindVar expression of the given type.
func NewBindVar(name string, typ sql.Type) *BindVar {
	return &BindVar{Name: name, typ: typ}
}

func (bv *BindVar) String() string {
	return "BindVar(" + bv.Name + ")"
}

// Type implements the Expression interface.
func (bv *BindVar) Type() sql.Type {
	return bv.typ
}

// IsNullable implements the Expression interface. A placeholder can
// always be bound to NULL.
func (bv *BindVar) IsNullable() bool {
	return true
}

// Eval implements the Expression interface.
func (bv *BindVar) Eval(_ *sql.Context, params sql.Params) (interface{}, error) {
	v, ok := params[bv.Name]
	if !ok {
		return nil, sql.ErrUnboundParameter.New(bv.Name)
	}
	if v == nil {
		return nil, nil
	}
	return bv.typ.Convert(v)
}

// Children implements the Expression interface.
func (*BindVar) Children() []sql.Expression {
	return nil
}

// WithChildren implements the Expression interface.
func (bv *BindVar) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(bv, len(children), 0)
	}
	return bv, nil
}

// Tag implements the Expression interface.
func (*BindVar) Tag() sql.Tag { return sql.TagNone }
