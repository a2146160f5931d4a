package expression

import (
	"fmt"
	"strings"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Coalesce returns the first non-NULL argument.
type Coalesce struct {
	args []sql.Expression
}

var _ sql.Expression = (*Coalesce)(nil)

// NewCoalesce creates a new Coalesce expression. At least one argument
// is required.
func NewCoalesce(args ...sql.Expression) (*Coalesce, error) {
	if len(args) == 0 {
		return nil, sql.ErrInvalidChildrenNumber.New((*Coalesce)(nil), 0, 1)
	}
	return &Coalesce{args: args}, nil
}

// Type implements the Expression interface. The type is the type of the
// first argument with a known type.
func (c *Coalesce) Type() sql.Type {
	for _, arg := range c.args {
		if arg.Type() != sql.Null {
			return arg.Type()
		}
	}
	return sql.Null
}

// IsNullable implements the Expression interface. A COALESCE yields
// NULL only if its last argument can: every earlier NULL falls through
// to the next argument.
func (c *Coalesce) IsNullable() bool {
	return c.args[len(c.args)-1].IsNullable()
}

// Eval implements the Expression interface.
func (c *Coalesce) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	for _, arg := range c.args {
		v, err := arg.Eval(ctx, params)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (c *Coalesce) String() string {
	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("COALESCE(%s)", strings.Join(args, ", "))
}

// Children implements the Expression interface.
func (c *Coalesce) Children() []sql.Expression {
	return c.args
}

// WithChildren implements the Expression interface.
func (c *Coalesce) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) == 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), 1)
	}
	return NewCoalesce(children...)
}

// Tag implements the Expression interface.
func (*Coalesce) Tag() sql.Tag { return sql.TagNone }
