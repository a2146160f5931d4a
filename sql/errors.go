package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidType is returned when there is an unexpected type at
	// some part of the tree.
	ErrInvalidType = errors.NewKind("invalid type: %s")

	// ErrInvalidChildrenNumber is returned when the WithChildren method
	// of a node or expression is called with an invalid number of
	// arguments.
	ErrInvalidChildrenNumber = errors.NewKind("%T: invalid children number, got %d, expected %d")

	// ErrInvalidChildType is returned when the WithChildren method of a
	// node or expression is called with an invalid child type. This
	// error is indicative of a bug.
	ErrInvalidChildType = errors.NewKind("%T: invalid child type, got %T, expected %T")

	// ErrNilChild is returned when a node or expression is constructed
	// with a nil required argument.
	ErrNilChild = errors.NewKind("%s: child must not be nil")

	// ErrUnboundParameter is returned when an expression references a
	// parameter the caller did not bind.
	ErrUnboundParameter = errors.NewKind("unbound parameter %q in query")

	// ErrNotCompileTimeEvaluable is returned when Eval is called on an
	// expression that needs row data, such as a column reference.
	ErrNotCompileTimeEvaluable = errors.NewKind("expression %s cannot be evaluated at compile time")

	// ErrDeleteOnDistinct is returned when a bulk delete is requested
	// over a query using DISTINCT.
	ErrDeleteOnDistinct = errors.NewKind("bulk delete over a DISTINCT query is not supported")

	// ErrDeleteNoTable is returned when a bulk delete target cannot be
	// determined because the query references no source table.
	ErrDeleteNoTable = errors.NewKind("bulk delete requires a query with exactly one source table, but the query references none")

	// ErrDeleteMultipleTables is returned when the projected columns of
	// a bulk delete originate from more than one table.
	ErrDeleteMultipleTables = errors.NewKind("bulk delete requires all columns to originate from one table, but found columns from: %s")

	// ErrDeleteOnGroupBy is returned when a bulk delete is requested
	// over a query using GROUP BY.
	ErrDeleteOnGroupBy = errors.NewKind("bulk delete over a query with GROUP BY is not supported")

	// ErrDeleteOnHaving is returned when a bulk delete is requested
	// over a query using HAVING.
	ErrDeleteOnHaving = errors.NewKind("bulk delete over a query with HAVING is not supported")

	// ErrDeleteOnLimit is returned when a bulk delete is requested over
	// a query using LIMIT.
	ErrDeleteOnLimit = errors.NewKind("bulk delete over a query with LIMIT is not supported")

	// ErrDeleteOnOffset is returned when a bulk delete is requested
	// over a query using OFFSET.
	ErrDeleteOnOffset = errors.NewKind("bulk delete over a query with OFFSET is not supported")

	// ErrDeleteComputedColumn is returned when a projected column of a
	// bulk delete is not a plain column reference.
	ErrDeleteComputedColumn = errors.NewKind("bulk delete requires plain column references, but %s is a computed expression")

	// ErrNotAQuery is returned when a builder operation that needs a
	// query shape receives a scalar.
	ErrNotAQuery = errors.NewKind("%s does not resolve to a query shape")

	// ErrUnknownBuilderOp is returned when the translator receives a
	// builder call whose operation token is not registered.
	ErrUnknownBuilderOp = errors.NewKind("unknown builder operation token %d")

	// ErrGroupJoinNotFlattened is returned when a group join is not
	// followed by a flatten, leaving it without a relational form.
	ErrGroupJoinNotFlattened = errors.NewKind("group join must be flattened before translation can complete")

	// ErrNoTableReference is returned when an operation needs a table
	// reference the query does not have.
	ErrNoTableReference = errors.NewKind("query has no table reference to attach %s")

	// ErrAmbiguousTableReference is returned when an operation needs a
	// single table reference and the query has more than one.
	ErrAmbiguousTableReference = errors.NewKind("query has %d table references, cannot choose one to attach %s")

	// ErrTempTableNotBound is returned at generation time when a query
	// was tagged to read from a temp table but no name was bound for
	// the key in the temp table context.
	ErrTempTableNotBound = errors.NewKind("no temp table name bound for key %q")

	// ErrOrderingNotConsumed is returned when a row-number ordering
	// accumulator reaches SQL text generation without having been
	// consumed by a window function. This is a contract violation by an
	// internal caller, not a user error.
	ErrOrderingNotConsumed = errors.NewKind("internal error: row-number ordering accumulator reached SQL generation unconsumed; it must be wrapped by a window function")

	// ErrEmptyOrdering is returned when a row-number ordering is
	// constructed or appended with no sort fields.
	ErrEmptyOrdering = errors.NewKind("row-number ordering requires at least one sort field")

	// ErrUnknownNodeKind is returned by the generator when it reaches a
	// node kind it has no emission rule for.
	ErrUnknownNodeKind = errors.NewKind("no SQL emission rule for node of type %T")
)
