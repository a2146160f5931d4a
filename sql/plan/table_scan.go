package plan

import (
	"fmt"
	"strings"

	"github.com/poizan42/go-query-rewriter/sql"
)

// TableScan is a reference to an ordinary table. It optionally carries
// a schema qualifier, dialect table hints attached by the
// bulk-operation visitor, and a temp-table key tagged by the builder
// for later resolution against the temp table context.
type TableScan struct {
	name      string
	qualifier string
	alias     string
	schema    sql.Schema
	hints     []string
	tempKey   sql.HintKey
}

var _ sql.Node = (*TableScan)(nil)
var _ sql.Nameable = (*TableScan)(nil)

// NewTableScan creates a reference to the named table with the given
// schema.
func NewTableScan(name string, schema sql.Schema) *TableScan {
	return &TableScan{name: name, schema: schema}
}

// Name implements the Nameable interface.
func (t *TableScan) Name() string { return t.name }

// Qualifier returns the schema qualifier, if any.
func (t *TableScan) Qualifier() string { return t.qualifier }

// Alias returns the alias of the table, or its name when not aliased.
func (t *TableScan) Alias() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// Hints returns the dialect table hints attached to the reference.
func (t *TableScan) Hints() []string { return t.hints }

// TempKey returns the temp table key the reference was tagged with, or
// the empty key.
func (t *TableScan) TempKey() sql.HintKey { return t.tempKey }

// WithQualifier returns a copy of the reference with the given schema
// qualifier.
func (t *TableScan) WithQualifier(qualifier string) *TableScan {
	nt := *t
	nt.qualifier = qualifier
	return &nt
}

// WithAlias returns a copy of the reference with the given alias.
func (t *TableScan) WithAlias(alias string) *TableScan {
	nt := *t
	nt.alias = alias
	return &nt
}

// WithHints returns a copy of the reference with the given hints
// attached.
func (t *TableScan) WithHints(hints []string) *TableScan {
	nt := *t
	nt.hints = append([]string(nil), hints...)
	return &nt
}

// WithTempKey returns a copy of the reference tagged to be resolved
// against the temp table context under the given key.
func (t *TableScan) WithTempKey(key sql.HintKey) *TableScan {
	nt := *t
	nt.tempKey = key
	return &nt
}

// Schema implements the Node interface.
func (t *TableScan) Schema() sql.Schema { return t.schema }

// Children implements the Node interface.
func (*TableScan) Children() []sql.Node { return nil }

// WithChildren implements the Node interface.
func (t *TableScan) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}
	return t, nil
}

// Tag implements the Node interface.
func (*TableScan) Tag() sql.Tag { return sql.TagNone }

func (t *TableScan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table(%s)", t.name)
	if t.alias != "" {
		fmt.Fprintf(&b, " as %s", t.alias)
	}
	if len(t.hints) > 0 {
		fmt.Fprintf(&b, " hints=[%s]", strings.Join(t.hints, ","))
	}
	if t.tempKey != "" {
		fmt.Fprintf(&b, " tempKey=%s", t.tempKey)
	}
	return b.String()
}
