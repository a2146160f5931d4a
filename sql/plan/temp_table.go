package plan

import (
	"fmt"

	"github.com/poizan42/go-query-rewriter/sql"
)

// TempTable is a reference to a session-scoped temp table whose name
// was resolved from the temp table context. It replaces a tagged
// TableScan during optimization. Temp tables are connection-scoped and
// never schema-qualified. The node is opaque: its contents are not
// analyzable, and a temp table read is never absent, so it is also
// marked never-null.
type TempTable struct {
	name   string
	alias  string
	schema sql.Schema
}

var _ sql.Node = (*TempTable)(nil)
var _ sql.Nameable = (*TempTable)(nil)

// NewTempTable creates a resolved temp table reference.
func NewTempTable(name, alias string, schema sql.Schema) (*TempTable, error) {
	if name == "" {
		return nil, sql.ErrNilChild.New("temp table name")
	}
	return &TempTable{name: name, alias: alias, schema: schema}, nil
}

// Name implements the Nameable interface. This is the resolved,
// execution-time name, e.g. "#tmp1".
func (t *TempTable) Name() string { return t.name }

// Alias returns the alias of the reference, or its name when not
// aliased.
func (t *TempTable) Alias() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// Schema implements the Node interface.
func (t *TempTable) Schema() sql.Schema { return t.schema }

// Children implements the Node interface.
func (*TempTable) Children() []sql.Node { return nil }

// WithChildren implements the Node interface.
func (t *TempTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}
	return t, nil
}

// Tag implements the Node interface.
func (*TempTable) Tag() sql.Tag { return sql.TagOpaque | sql.TagNeverNull }

func (t *TempTable) String() string {
	return fmt.Sprintf("TempTable(%s)", t.name)
}
