// Package gen walks a finalized relational tree and emits
// dialect-specific SQL text together with the ordered list of parameter
// bindings.
package gen

import (
	stdsql "database/sql"
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownDialect is returned when no dialect is registered under the
// requested name.
var ErrUnknownDialect = errors.NewKind("unknown dialect %q")

// Dialect captures the syntax differences between target databases.
type Dialect interface {
	// Name returns the name of the dialect.
	Name() string
	// QuoteIdentifier delimits an identifier, escaping embedded
	// delimiters.
	QuoteIdentifier(id string) string
	// Placeholder returns the parameter placeholder for the given
	// zero-based position and parameter name.
	Placeholder(pos int, name string) string
	// RowsAffectedStatement returns the statement appended to a bulk
	// delete batch to read the affected-row count.
	RowsAffectedStatement() string
	// TableHintClause renders the table hint clause, or the empty
	// string when the dialect does not support table hints.
	TableHintClause(hints []string) string
	// LimitClause renders the limit/offset clause. Either argument may
	// be nil.
	LimitClause(limit, offset *int64) string
	// Arg wraps a bound value as a database/sql argument matching the
	// dialect's placeholder style.
	Arg(name string, value interface{}) interface{}
}

// ForName returns the dialect registered under the given name.
func ForName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlserver", "mssql":
		return SQLServer{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	default:
		return nil, ErrUnknownDialect.New(name)
	}
}

// SQLServer is the T-SQL dialect.
type SQLServer struct{}

// Name implements the Dialect interface.
func (SQLServer) Name() string { return "sqlserver" }

// QuoteIdentifier implements the Dialect interface.
func (SQLServer) QuoteIdentifier(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// Placeholder implements the Dialect interface.
func (SQLServer) Placeholder(_ int, name string) string {
	return "@" + name
}

// RowsAffectedStatement implements the Dialect interface.
func (SQLServer) RowsAffectedStatement() string {
	return "SELECT @@ROWCOUNT"
}

// Arg implements the Dialect interface. T-SQL placeholders are named,
// so values are passed as named arguments.
func (SQLServer) Arg(name string, value interface{}) interface{} {
	return stdsql.Named(name, value)
}

// TableHintClause implements the Dialect interface.
func (SQLServer) TableHintClause(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return "WITH (" + strings.Join(hints, ", ") + ")"
}

// LimitClause implements the Dialect interface.
func (SQLServer) LimitClause(limit, offset *int64) string {
	if limit == nil && offset == nil {
		return ""
	}
	var off int64
	if offset != nil {
		off = *offset
	}
	clause := fmt.Sprintf("OFFSET %d ROWS", off)
	if limit != nil {
		clause += fmt.Sprintf(" FETCH NEXT %d ROWS ONLY", *limit)
	}
	return clause
}

// SQLite is the SQLite dialect.
type SQLite struct{}

// Name implements the Dialect interface.
func (SQLite) Name() string { return "sqlite" }

// QuoteIdentifier implements the Dialect interface.
func (SQLite) QuoteIdentifier(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// Placeholder implements the Dialect interface.
func (SQLite) Placeholder(int, string) string {
	return "?"
}

// RowsAffectedStatement implements the Dialect interface.
func (SQLite) RowsAffectedStatement() string {
	return "SELECT changes()"
}

// Arg implements the Dialect interface. SQLite placeholders are
// positional, so the value is passed through.
func (SQLite) Arg(_ string, value interface{}) interface{} {
	return value
}

// TableHintClause implements the Dialect interface. SQLite has no table
// hints; hint entries are dropped.
func (SQLite) TableHintClause([]string) string {
	return ""
}

// LimitClause implements the Dialect interface.
func (SQLite) LimitClause(limit, offset *int64) string {
	switch {
	case limit != nil && offset != nil:
		return fmt.Sprintf("LIMIT %d OFFSET %d", *limit, *offset)
	case limit != nil:
		return fmt.Sprintf("LIMIT %d", *limit)
	case offset != nil:
		return fmt.Sprintf("LIMIT -1 OFFSET %d", *offset)
	default:
		return ""
	}
}
