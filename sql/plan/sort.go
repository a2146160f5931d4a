package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// Sort is the sort node.
type Sort struct {
	UnaryNode
	SortFields sql.SortFields
}

var _ sql.Node = (*Sort)(nil)
var _ sql.Expressioner = (*Sort)(nil)

// NewSort creates a new Sort node.
func NewSort(fields sql.SortFields, child sql.Node) *Sort {
	return &Sort{
		UnaryNode:  UnaryNode{Child: child},
		SortFields: fields,
	}
}

// WithChildren implements the Node interface.
func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return NewSort(s.SortFields, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (s *Sort) Expressions() []sql.Expression {
	return s.SortFields.Columns()
}

// WithExpressions implements the Expressioner interface.
func (s *Sort) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	fields, err := s.SortFields.WithColumns(exprs...)
	if err != nil {
		return nil, err
	}
	return NewSort(fields, s.Child), nil
}

func (s *Sort) String() string {
	return fmt.Sprintf("Sort(%s)\n └─ %s", s.SortFields, s.Child)
}
