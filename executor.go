package rewriter

import (
	stdsql "database/sql"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/poizan42/go-query-rewriter/sql"
)

// ErrMissingBinding is returned when a compiled statement references a
// parameter that has no bound value.
var ErrMissingBinding = errors.NewKind("no value bound for parameter %q")

// Args assembles the database/sql argument list for a compiled
// statement, in placeholder order, wrapped per the engine's dialect.
func (e *Engine) Args(compiled *Compiled, params sql.Params) ([]interface{}, error) {
	args := make([]interface{}, len(compiled.Bindings))
	for i, name := range compiled.Bindings {
		v, ok := params[name]
		if !ok {
			return nil, ErrMissingBinding.New(name)
		}
		args[i] = e.Dialect.Arg(name, v)
	}
	return args, nil
}

// ExecDelete runs a compiled bulk delete batch and returns the number
// of affected rows. The batch's trailing rows-affected statement yields
// a single-row, single-column result, so the count is read with a
// QueryRow rather than from the driver's Result.
func (e *Engine) ExecDelete(ctx *sql.Context, db *stdsql.DB, compiled *Compiled, params sql.Params) (int64, error) {
	span, ctx := ctx.Span("exec_delete")
	defer span.Finish()

	args, err := e.Args(compiled, params)
	if err != nil {
		return 0, err
	}

	var affected int64
	if err := db.QueryRowContext(ctx, compiled.SQL, args...).Scan(&affected); err != nil {
		return 0, err
	}
	return affected, nil
}
