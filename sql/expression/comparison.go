package expression

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

type comparison struct {
	BinaryExpression
}

// Compare the two given values using the type of the left expression.
// Either operand being NULL yields NULL, reported as (0, true, nil).
func (c *comparison) compare(ctx *sql.Context, params sql.Params) (int, bool, error) {
	left, err := c.Left.Eval(ctx, params)
	if err != nil {
		return 0, false, err
	}
	if left == nil {
		return 0, true, nil
	}

	right, err := c.Right.Eval(ctx, params)
	if err != nil {
		return 0, false, err
	}
	if right == nil {
		return 0, true, nil
	}

	typ := c.Left.Type()
	if typ == sql.Null {
		typ = c.Right.Type()
	}
	cmp, err := sql.Compare(typ, left, right)
	return cmp, false, err
}

// Type implements the Expression interface.
func (*comparison) Type() sql.Type {
	return sql.Boolean
}

// Equals is a comparison that checks an expression is equal to another.
type Equals struct {
	comparison
}

var _ sql.Expression = (*Equals)(nil)

// NewEquals returns a new Equals expression.
func NewEquals(left, right sql.Expression) *Equals {
	return &Equals{comparison{BinaryExpression{Left: left, Right: right}}}
}

// Eval implements the Expression interface.
func (e *Equals) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	cmp, null, err := e.compare(ctx, params)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	return cmp == 0, nil
}

// WithChildren implements the Expression interface.
func (e *Equals) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 2)
	}
	return NewEquals(children[0], children[1]), nil
}

func (e *Equals) String() string {
	return fmt.Sprintf("%s = %s", e.Left, e.Right)
}

// LessThan is a comparison that checks an expression is less than another.
type LessThan struct {
	comparison
}

var _ sql.Expression = (*LessThan)(nil)

// NewLessThan returns a new LessThan expression.
func NewLessThan(left, right sql.Expression) *LessThan {
	return &LessThan{comparison{BinaryExpression{Left: left, Right: right}}}
}

// Eval implements the Expression interface.
func (e *LessThan) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	cmp, null, err := e.compare(ctx, params)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	return cmp < 0, nil
}

// WithChildren implements the Expression interface.
func (e *LessThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 2)
	}
	return NewLessThan(children[0], children[1]), nil
}

func (e *LessThan) String() string {
	return fmt.Sprintf("%s < %s", e.Left, e.Right)
}

// GreaterThan is a comparison that checks an expression is greater than
// another.
type GreaterThan struct {
	comparison
}

var _ sql.Expression = (*GreaterThan)(nil)

// NewGreaterThan returns a new GreaterThan expression.
func NewGreaterThan(left, right sql.Expression) *GreaterThan {
	return &GreaterThan{comparison{BinaryExpression{Left: left, Right: right}}}
}

// Eval implements the Expression interface.
func (e *GreaterThan) Eval(ctx *sql.Context, params sql.Params) (interface{}, error) {
	cmp, null, err := e.compare(ctx, params)
	if err != nil {
		return nil, err
	}
	if null {
		return nil, nil
	}
	return cmp > 0, nil
}

// WithChildren implements the Expression interface.
func (e *GreaterThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 2)
	}
	return NewGreaterThan(children[0], children[1]), nil
}

func (e *GreaterThan) String() string {
	return fmt.Sprintf("%s > %s", e.Left, e.Right)
}
