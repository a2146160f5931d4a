package plan

import (
	"fmt"
	"strings"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
)

// Delete marks a query shape as a bulk delete: the wrapped select's
// rows are deleted from the target table, and the result shape becomes
// a single int64 affected-row count. The original select is kept as the
// child so the structural constraints can be re-checked at generation
// time.
type Delete struct {
	UnaryNode
	// Table is the resolved delete target.
	Table *TableScan
	// Where is the combined predicate of the select, or nil.
	Where sql.Expression
}

var _ sql.Node = (*Delete)(nil)

// NewDelete lowers the given select shape into a Delete node. The shape
// is validated: see DeleteTarget for the constraints.
func NewDelete(child sql.Node) (*Delete, error) {
	table, where, err := DeleteTarget(child)
	if err != nil {
		return nil, err
	}
	return &Delete{
		UnaryNode: UnaryNode{Child: child},
		Table:     table,
		Where:     where,
	}, nil
}

// Schema implements the Node interface. A bulk delete produces a single
// affected-row count.
func (d *Delete) Schema() sql.Schema {
	return sql.Schema{{
		Name:     "affected",
		Type:     sql.Int64,
		Nullable: false,
	}}
}

// WithChildren implements the Node interface.
func (d *Delete) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), 1)
	}
	return NewDelete(children[0])
}

func (d *Delete) String() string {
	return fmt.Sprintf("Delete(%s)\n └─ %s", d.Table.Name(), d.Child)
}

// DeleteTarget resolves the target table and combined predicate of a
// bulk delete over the given select shape. It fails with a fatal,
// shape-specific error when the shape cannot be translated to a single
// DELETE statement:
//
//   - DISTINCT, GROUP BY, HAVING, LIMIT and OFFSET are each rejected;
//   - the query must reference at least one source table;
//   - projected columns must be plain column references;
//   - all projected columns must originate from exactly one table.
//
// ORDER BY is allowed and ignored: row order has no effect on the rows
// a DELETE removes.
func DeleteTarget(n sql.Node) (*TableScan, sql.Expression, error) {
	var (
		projections []sql.Expression
		sawProject  bool
		predicates  []sql.Expression
		tables      []*TableScan
	)

	var walk func(sql.Node) error
	walk = func(n sql.Node) error {
		switch n := n.(type) {
		case *Distinct:
			return sql.ErrDeleteOnDistinct.New()
		case *GroupBy:
			return sql.ErrDeleteOnGroupBy.New()
		case *Having:
			return sql.ErrDeleteOnHaving.New()
		case *Limit:
			return sql.ErrDeleteOnLimit.New()
		case *Offset:
			return sql.ErrDeleteOnOffset.New()
		case *Project:
			// Only the outermost projection shapes the result.
			if !sawProject {
				sawProject = true
				projections = n.Projections
			}
			return walk(n.Child)
		case *Filter:
			predicates = append(predicates, n.Expression)
			return walk(n.Child)
		case *Sort:
			return walk(n.Child)
		case *TableScan:
			tables = append(tables, n)
			return nil
		default:
			for _, child := range n.Children() {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if err := walk(n); err != nil {
		return nil, nil, err
	}

	if len(tables) == 0 {
		return nil, nil, sql.ErrDeleteNoTable.New()
	}

	target, err := resolveDeleteTable(projections, tables)
	if err != nil {
		return nil, nil, err
	}

	return target, expression.JoinAnd(predicates...), nil
}

func resolveDeleteTable(projections []sql.Expression, tables []*TableScan) (*TableScan, error) {
	if len(projections) == 0 {
		if len(tables) > 1 {
			return nil, sql.ErrDeleteMultipleTables.New(tableNames(tables))
		}
		return tables[0], nil
	}

	var sources []string
	seen := make(map[string]struct{})
	for _, p := range projections {
		field, ok := p.(*expression.GetField)
		if !ok {
			return nil, sql.ErrDeleteComputedColumn.New(p)
		}
		source := field.Table()
		if source == "" {
			continue
		}
		if _, ok := seen[source]; !ok {
			seen[source] = struct{}{}
			sources = append(sources, source)
		}
	}

	switch len(sources) {
	case 0:
		// Columns carry no table: fall back to the single-table rule.
		if len(tables) > 1 {
			return nil, sql.ErrDeleteMultipleTables.New(tableNames(tables))
		}
		return tables[0], nil
	case 1:
		for _, t := range tables {
			if t.Alias() == sources[0] || t.Name() == sources[0] {
				return t, nil
			}
		}
		return nil, sql.ErrDeleteNoTable.New()
	default:
		return nil, sql.ErrDeleteMultipleTables.New(strings.Join(sources, ", "))
	}
}

func tableNames(tables []*TableScan) string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}
