package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// SubqueryAlias is a node that wraps a query as a named sub-query in
// the FROM clause. Pushing a select into a sub-query pins its ordering
// and grouping semantics when the query is composed further.
type SubqueryAlias struct {
	UnaryNode
	name string
}

var _ sql.Node = (*SubqueryAlias)(nil)
var _ sql.Nameable = (*SubqueryAlias)(nil)

// NewSubqueryAlias creates a new SubqueryAlias node.
func NewSubqueryAlias(name string, child sql.Node) (*SubqueryAlias, error) {
	if child == nil {
		return nil, sql.ErrNilChild.New("SubqueryAlias")
	}
	return &SubqueryAlias{UnaryNode: UnaryNode{Child: child}, name: name}, nil
}

// Name implements the Nameable interface.
func (s *SubqueryAlias) Name() string { return s.name }

// WithChildren implements the Node interface.
func (s *SubqueryAlias) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return NewSubqueryAlias(s.name, children[0])
}

func (s *SubqueryAlias) String() string {
	return fmt.Sprintf("SubqueryAlias(%s)\n └─ %s", s.name, s.Child)
}
