package expression

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/poizan42/go-query-rewriter/sql"
)

// ErrEmptyCustomName is returned when a custom expression is built
// without a payload name.
var ErrEmptyCustomName = errors.NewKind("custom expression requires a non-empty name")

// Custom is an expression kind the rewriting pipeline does not know the
// internals of: an opaque payload emitted as a function call in the
// generated SQL. Whether the expression can yield NULL is declared at
// construction and is authoritative; the nullability processor never
// derives it from the children.
type Custom struct {
	name      string
	typ       sql.Type
	args      []sql.Expression
	neverNull bool
}

var _ sql.Expression = (*Custom)(nil)
var _ sql.Nameable = (*Custom)(nil)

// NewCustom creates a custom expression emitting name(args...). If
// neverNull is set, the expression reports non-nullable regardless of
// its arguments.
func NewCustom(name string, typ sql.Type, neverNull bool, args ...sql.Expression) (*Custom, error) {
	if name == "" {
		return nil, ErrEmptyCustomName.New()
	}
	for _, arg := range args {
		if arg == nil {
			return nil, sql.ErrNilChild.New(name)
		}
	}
	return &Custom{name: name, typ: typ, args: args, neverNull: neverNull}, nil
}

// Name implements the Nameable interface.
func (c *Custom) Name() string { return c.name }

// Type implements the Expression interface.
func (c *Custom) Type() sql.Type { return c.typ }

// IsNullable implements the Expression interface.
func (c *Custom) IsNullable() bool {
	if c.neverNull {
		return false
	}
	for _, arg := range c.args {
		if arg.IsNullable() {
			return true
		}
	}
	return false
}

// Eval implements the Expression interface. The payload is opaque to
// the pipeline and has no compile-time value.
func (c *Custom) Eval(*sql.Context, sql.Params) (interface{}, error) {
	return nil, sql.ErrNotCompileTimeEvaluable.New(c)
}

func (c *Custom) String() string {
	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.name, strings.Join(args, ", "))
}

// Children implements the Expression interface.
func (c *Custom) Children() []sql.Expression {
	return c.args
}

// WithChildren implements the Expression interface.
func (c *Custom) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(c.args) {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), len(c.args))
	}
	nc := *c
	nc.args = children
	return &nc, nil
}

// Tag implements the Expression interface.
func (c *Custom) Tag() sql.Tag {
	if c.neverNull {
		return sql.TagNeverNull
	}
	return sql.TagNone
}
