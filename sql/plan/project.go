package plan

import (
	"fmt"
	"strings"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Project is a projection of one or more expressions over a child node.
type Project struct {
	UnaryNode
	// Projections are the expressions projected, in output order.
	Projections []sql.Expression
}

var _ sql.Node = (*Project)(nil)
var _ sql.Expressioner = (*Project)(nil)

// NewProject creates a projection.
func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{
		UnaryNode:   UnaryNode{Child: child},
		Projections: projections,
	}
}

// Schema implements the Node interface.
func (p *Project) Schema() sql.Schema {
	schema := make(sql.Schema, len(p.Projections))
	for i, e := range p.Projections {
		schema[i] = expressionToColumn(e)
	}
	return schema
}

// WithChildren implements the Node interface.
func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 1)
	}
	return NewProject(p.Projections, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (p *Project) Expressions() []sql.Expression {
	return p.Projections
}

// WithExpressions implements the Expressioner interface.
func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.Projections) {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(exprs), len(p.Projections))
	}
	return NewProject(exprs, p.Child), nil
}

func (p *Project) String() string {
	exprs := make([]string, len(p.Projections))
	for i, e := range p.Projections {
		exprs[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)\n └─ %s", strings.Join(exprs, ", "), p.Child)
}

func expressionToColumn(e sql.Expression) *sql.Column {
	var name string
	if n, ok := e.(sql.Nameable); ok {
		name = n.Name()
	} else {
		name = e.String()
	}

	var source string
	if t, ok := e.(interface{ Table() string }); ok {
		source = t.Table()
	}

	return &sql.Column{
		Name:     name,
		Source:   source,
		Type:     e.Type(),
		Nullable: e.IsNullable(),
	}
}
