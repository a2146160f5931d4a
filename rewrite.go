// Package rewriter compiles composable query descriptions into
// dialect-specific SQL text. A query built with the builder package is
// lowered to a relational tree, rewritten by the optimizer based on the
// null pattern of its bound parameters and the compilation's
// side-channel contexts, and finally rendered by the generator for the
// engine's dialect. Plans whose rewrites depend only on the null
// pattern are cached and reused across executions.
package rewriter

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/analyzer"
	"github.com/poizan42/go-query-rewriter/sql/builder"
	"github.com/poizan42/go-query-rewriter/sql/gen"
)

const defaultPlanCacheSize = 1024

// Compiled is the result of compiling a query: the SQL text, the
// parameter names in placeholder order, and whether the plan was
// eligible for the plan cache.
type Compiled struct {
	SQL      string
	Bindings []string
	CanCache bool
}

// Engine ties the optimizer, a dialect and the plan cache together. An
// Engine is safe for concurrent use.
type Engine struct {
	Optimizer *analyzer.Optimizer
	Dialect   gen.Dialect
	cache     *sql.PlanCache
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithOptimizer replaces the default optimizer.
func WithOptimizer(o *analyzer.Optimizer) EngineOption {
	return func(e *Engine) { e.Optimizer = o }
}

// WithPlanCacheSize sets the number of compiled plans retained. A size
// of zero disables caching.
func WithPlanCacheSize(size uint) EngineOption {
	return func(e *Engine) {
		if size == 0 {
			e.cache = nil
			return
		}
		e.cache = sql.NewPlanCache(size)
	}
}

// New creates an Engine for the given dialect with the default
// optimizer and plan cache.
func New(dialect gen.Dialect, opts ...EngineOption) *Engine {
	e := &Engine{
		Optimizer: analyzer.NewDefault(),
		Dialect:   dialect,
		cache:     sql.NewPlanCache(defaultPlanCacheSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CacheStats returns the plan cache hit and miss counters.
func (e *Engine) CacheStats() (hits, misses uint64) {
	if e.cache == nil {
		return 0, 0
	}
	return e.cache.Stats()
}

// Compile translates, optimizes and renders the query for the engine's
// dialect. The cache key covers the untranslated tree, the null
// pattern of the bound parameters and the side-channel contexts, so a
// hit is only possible when every input the rewrites depend on matches.
// Compilations that request parameter inlining depend on the concrete
// parameter values and never touch the cache.
func (e *Engine) Compile(ctx *sql.Context, q *builder.Query, comp *analyzer.Compilation) (*Compiled, error) {
	span, ctx := ctx.Span("compile")
	defer span.Finish()

	node := q.Node()

	var key uint64
	useCache := e.cache != nil && !comp.InlineParams
	if useCache {
		key = sql.CacheKey(
			e.Dialect.Name()+"\x00"+node.String(),
			comp.Params.NullPattern(),
			comp.ContextSignature(),
		)
		if cached, err := e.cache.Get(key); err == nil {
			return cached.(*Compiled), nil
		}
	}

	lowered, err := builder.Translate(node)
	if err != nil {
		return nil, err
	}

	optimized, canCache, err := e.Optimizer.Optimize(ctx, lowered, comp)
	if err != nil {
		return nil, err
	}

	result, err := gen.NewGenerator(e.Dialect).Generate(ctx, optimized)
	if err != nil {
		return nil, err
	}

	compiled := &Compiled{
		SQL:      result.SQL,
		Bindings: result.Bindings,
		CanCache: canCache,
	}
	if useCache && canCache {
		e.cache.Put(key, compiled)
	}
	return compiled, nil
}
