package gen

import (
	"fmt"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/expression"
	"github.com/poizan42/go-query-rewriter/sql/plan"
)

// Result is the output of SQL text generation: the statement text and
// the parameter names in placeholder order.
type Result struct {
	SQL      string
	Bindings []string
}

// Generator emits dialect-specific SQL text for a finalized tree. A
// generator is single-use per statement; NewGenerator is cheap.
type Generator struct {
	dialect  Dialect
	bindings []string
}

// NewGenerator creates a generator for the given dialect.
func NewGenerator(dialect Dialect) *Generator {
	return &Generator{dialect: dialect}
}

// Generate walks the tree and returns the SQL text and ordered
// parameter bindings. A bulk delete at the top of the tree pre-empts
// normal SELECT emission and produces a DELETE batch instead.
func (g *Generator) Generate(ctx *sql.Context, n sql.Node) (*Result, error) {
	span, _ := ctx.Span("generate", opentracing.Tag{Key: "dialect", Value: g.dialect.Name()})
	defer span.Finish()

	g.bindings = nil

	var b strings.Builder
	var err error
	if del, ok := n.(*plan.Delete); ok {
		err = g.deleteStmt(&b, del)
	} else {
		err = g.selectStmt(&b, n)
	}
	if err != nil {
		return nil, err
	}

	return &Result{SQL: b.String(), Bindings: g.bindings}, nil
}

// selectParts is the clause decomposition of one select statement.
type selectParts struct {
	distinct    bool
	projections []sql.Expression
	source      sql.Node
	where       []sql.Expression
	groupBy     []sql.Expression
	having      []sql.Expression
	orderBy     sql.SortFields
	limit       *int64
	offset      *int64
}

func decompose(n sql.Node) selectParts {
	var parts selectParts
	for {
		switch cur := n.(type) {
		case *plan.Project:
			if parts.projections == nil {
				parts.projections = cur.Projections
			}
			n = cur.Child
		case *plan.Distinct:
			parts.distinct = true
			n = cur.Child
		case *plan.Filter:
			parts.where = append(parts.where, cur.Expression)
			n = cur.Child
		case *plan.Sort:
			if parts.orderBy == nil {
				parts.orderBy = cur.SortFields
			}
			n = cur.Child
		case *plan.GroupBy:
			parts.groupBy = append(parts.groupBy, cur.Grouping...)
			n = cur.Child
		case *plan.Having:
			parts.having = append(parts.having, cur.Cond)
			n = cur.Child
		case *plan.Limit:
			if parts.limit == nil {
				l := cur.Limit
				parts.limit = &l
			}
			n = cur.Child
		case *plan.Offset:
			if parts.offset == nil {
				o := cur.Offset
				parts.offset = &o
			}
			n = cur.Child
		default:
			parts.source = n
			return parts
		}
	}
}

func (g *Generator) selectStmt(b *strings.Builder, n sql.Node) error {
	parts := decompose(n)

	b.WriteString("SELECT ")
	if parts.distinct {
		b.WriteString("DISTINCT ")
	}

	if len(parts.projections) == 0 {
		b.WriteString("*")
	} else {
		for i, e := range parts.projections {
			if i > 0 {
				b.WriteString(", ")
			}
			s, err := g.expr(e)
			if err != nil {
				return err
			}
			b.WriteString(s)
		}
	}

	b.WriteString(" FROM ")
	if err := g.source(b, parts.source); err != nil {
		return err
	}

	if len(parts.where) > 0 {
		s, err := g.expr(expression.JoinAnd(parts.where...))
		if err != nil {
			return err
		}
		b.WriteString(" WHERE " + s)
	}

	if len(parts.groupBy) > 0 {
		cols := make([]string, len(parts.groupBy))
		for i, e := range parts.groupBy {
			s, err := g.expr(e)
			if err != nil {
				return err
			}
			cols[i] = s
		}
		b.WriteString(" GROUP BY " + strings.Join(cols, ", "))
	}

	if len(parts.having) > 0 {
		s, err := g.expr(expression.JoinAnd(parts.having...))
		if err != nil {
			return err
		}
		b.WriteString(" HAVING " + s)
	}

	if len(parts.orderBy) > 0 {
		s, err := g.orderBy(parts.orderBy)
		if err != nil {
			return err
		}
		b.WriteString(" ORDER BY " + s)
	}

	if clause := g.dialect.LimitClause(parts.limit, parts.offset); clause != "" {
		b.WriteString(" " + clause)
	}

	return nil
}

// source emits a FROM-clause row source: a table reference, temp table
// reference, sub-query or join.
func (g *Generator) source(b *strings.Builder, n sql.Node) error {
	switch n := n.(type) {
	case *plan.TableScan:
		if key := n.TempKey(); key != "" {
			// The bulk-operation visitor never saw a binding for this
			// tag, so the reference cannot be resolved.
			return sql.ErrTempTableNotBound.New(key)
		}
		name := g.dialect.QuoteIdentifier(n.Name())
		if q := n.Qualifier(); q != "" {
			name = g.dialect.QuoteIdentifier(q) + "." + name
		}
		b.WriteString(name)
		if n.Alias() != n.Name() {
			b.WriteString(" AS " + g.dialect.QuoteIdentifier(n.Alias()))
		}
		if clause := g.dialect.TableHintClause(n.Hints()); clause != "" {
			b.WriteString(" " + clause)
		}
		return nil

	case *plan.TempTable:
		// Temp tables are connection-scoped: the resolved name is
		// emitted as-is, never schema-qualified.
		b.WriteString(g.dialect.QuoteIdentifier(n.Name()))
		if n.Alias() != n.Name() {
			b.WriteString(" AS " + g.dialect.QuoteIdentifier(n.Alias()))
		}
		return nil

	case *plan.SubqueryAlias:
		b.WriteString("(")
		if err := g.selectStmt(b, n.Child); err != nil {
			return err
		}
		b.WriteString(") AS " + g.dialect.QuoteIdentifier(n.Name()))
		return nil

	case *plan.OpaqueTable:
		b.WriteString("(")
		if err := g.selectStmt(b, n.Child); err != nil {
			return err
		}
		b.WriteString(") AS " + g.dialect.QuoteIdentifier(n.Name()))
		return nil

	case *plan.Join:
		if err := g.source(b, n.Left); err != nil {
			return err
		}
		switch n.Op {
		case plan.JoinLeft:
			b.WriteString(" LEFT JOIN ")
		default:
			b.WriteString(" INNER JOIN ")
		}
		if err := g.source(b, n.Right); err != nil {
			return err
		}
		cond, err := g.expr(n.Cond)
		if err != nil {
			return err
		}
		b.WriteString(" ON " + cond)
		return nil

	default:
		return sql.ErrUnknownNodeKind.New(n)
	}
}

// deleteStmt emits a bulk delete batch: the DELETE statement followed
// by the dialect's rows-affected statement. The structural constraints
// checked at translation time are re-checked here against the wrapped
// select, guarding against trees built by a path that skipped the
// translator.
func (g *Generator) deleteStmt(b *strings.Builder, d *plan.Delete) error {
	if _, _, err := plan.DeleteTarget(d.Child); err != nil {
		return err
	}

	name := g.dialect.QuoteIdentifier(d.Table.Name())
	if q := d.Table.Qualifier(); q != "" {
		name = g.dialect.QuoteIdentifier(q) + "." + name
	}
	b.WriteString("DELETE FROM " + name)

	if d.Where != nil {
		s, err := g.expr(d.Where)
		if err != nil {
			return err
		}
		b.WriteString(" WHERE " + s)
	}

	b.WriteString("; " + g.dialect.RowsAffectedStatement())
	return nil
}

func (g *Generator) orderBy(fields sql.SortFields) (string, error) {
	rendered := make([]string, len(fields))
	for i, f := range fields {
		s, err := g.expr(f.Column)
		if err != nil {
			return "", err
		}
		rendered[i] = s + " " + f.Order.String()
	}
	return strings.Join(rendered, ", "), nil
}

// expr emits one scalar expression. Unrecognized custom kinds fall
// through to function-call emission.
func (g *Generator) expr(e sql.Expression) (string, error) {
	switch e := e.(type) {
	case *expression.Literal:
		return g.literal(e)

	case *expression.BindVar:
		g.bindings = append(g.bindings, e.Name)
		return g.dialect.Placeholder(len(g.bindings)-1, e.Name), nil

	case *expression.GetField:
		name := g.dialect.QuoteIdentifier(e.Name())
		if e.Table() != "" {
			name = g.dialect.QuoteIdentifier(e.Table()) + "." + name
		}
		return name, nil

	case *expression.Equals:
		return g.binary(e.Left, "=", e.Right)

	case *expression.LessThan:
		return g.binary(e.Left, "<", e.Right)

	case *expression.GreaterThan:
		return g.binary(e.Left, ">", e.Right)

	case *expression.Plus:
		return g.binary(e.Left, "+", e.Right)

	case *expression.And:
		s, err := g.binary(e.Left, "AND", e.Right)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil

	case *expression.Or:
		s, err := g.binary(e.Left, "OR", e.Right)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil

	case *expression.Not:
		s, err := g.expr(e.Child)
		if err != nil {
			return "", err
		}
		return "NOT (" + s + ")", nil

	case *expression.IsNull:
		s, err := g.expr(e.Child)
		if err != nil {
			return "", err
		}
		return s + " IS NULL", nil

	case *expression.Coalesce:
		args, err := g.exprList(e.Children())
		if err != nil {
			return "", err
		}
		return "COALESCE(" + args + ")", nil

	case *expression.RowNumber:
		return g.rowNumber(e)

	case *expression.RowNumberOrdering:
		// The accumulator is only valid as input to window-function
		// emission; reaching it here means an internal caller broke
		// the contract.
		return "", sql.ErrOrderingNotConsumed.New()

	case *expression.Custom:
		args, err := g.exprList(e.Children())
		if err != nil {
			return "", err
		}
		return e.Name() + "(" + args + ")", nil

	default:
		return "", sql.ErrUnknownNodeKind.New(e)
	}
}

// rowNumber is the only emission path that consumes a row-number
// ordering accumulator.
func (g *Generator) rowNumber(e *expression.RowNumber) (string, error) {
	var b strings.Builder
	b.WriteString("ROW_NUMBER() OVER (")
	if partition := e.PartitionBy(); len(partition) > 0 {
		cols, err := g.exprList(partition)
		if err != nil {
			return "", err
		}
		b.WriteString("PARTITION BY " + cols + " ")
	}
	ordering, err := g.orderBy(e.Ordering().Fields())
	if err != nil {
		return "", err
	}
	b.WriteString("ORDER BY " + ordering + ")")
	return b.String(), nil
}

func (g *Generator) binary(left sql.Expression, op string, right sql.Expression) (string, error) {
	l, err := g.expr(left)
	if err != nil {
		return "", err
	}
	r, err := g.expr(right)
	if err != nil {
		return "", err
	}
	return l + " " + op + " " + r, nil
}

func (g *Generator) exprList(exprs []sql.Expression) (string, error) {
	rendered := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := g.expr(e)
		if err != nil {
			return "", err
		}
		rendered[i] = s
	}
	return strings.Join(rendered, ", "), nil
}

func (g *Generator) literal(l *expression.Literal) (string, error) {
	switch v := l.Value().(type) {
	case nil:
		return "NULL", nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	default:
		return fmt.Sprint(v), nil
	}
}
