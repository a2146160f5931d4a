// Package analyzer implements the parameter-based optimizer: a fixed
// pipeline of rewriting rules applied to a relational tree before SQL
// generation. Rules are pure; a rule either returns a new tree or the
// tree it was given, never a partially mutated one.
package analyzer

import (
	"os"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

const debugOptimizerKey = "DEBUG_OPTIMIZER"

const maxOptimizationIterations = 8

// ErrMaxOptimizationIters is thrown when the optimization iterations
// are exceeded.
var ErrMaxOptimizationIters = errors.NewKind("exceeded max optimization iterations (%d)")

// RuleFunc is the function to be applied in a rule.
type RuleFunc func(*sql.Context, *Optimizer, *Compilation, sql.Node) (sql.Node, transform.TreeIdentity, error)

// Rule to transform nodes.
type Rule struct {
	// Name of the rule.
	Name string
	// Apply transforms a node.
	Apply RuleFunc
}

// Compilation carries the per-execution inputs of one optimization:
// the bound parameter values and the side-channel contexts for table
// hints and temp table names. The contexts are read-only within the
// pipeline and discarded after SQL generation.
type Compilation struct {
	// Params maps parameter names to bound values.
	Params sql.Params
	// Hints is the table hint side channel, possibly empty.
	Hints *sql.TableHintContext
	// TempTables is the temp table name side channel, possibly empty.
	TempTables *sql.TempTableContext
	// InlineParams requests inlining of bound parameter values into
	// the tree. Inlined plans are never cacheable.
	InlineParams bool

	cacheable bool
}

// NewCompilation creates the per-execution state for one optimization.
func NewCompilation(params sql.Params, hints *sql.TableHintContext, temps *sql.TempTableContext) *Compilation {
	return &Compilation{
		Params:     params,
		Hints:      hints,
		TempTables: temps,
		cacheable:  true,
	}
}

// MarkUncacheable records that a rewrite used information that is not
// stable across executions sharing a parameter null pattern.
func (c *Compilation) MarkUncacheable() {
	c.cacheable = false
}

// Cacheable reports whether the optimized plan can be reused across
// executions sharing a parameter null pattern and context keys.
func (c *Compilation) Cacheable() bool {
	return c.cacheable
}

// ContextSignature returns the deterministic encoding of the
// side-channel context keys, used as part of the plan-cache key.
func (c *Compilation) ContextSignature() string {
	return c.Hints.Signature() + "|" + c.TempTables.Signature()
}

// Optimizer rewrites relational trees by applying batches of rules.
type Optimizer struct {
	// Whether to log various debugging messages.
	Debug bool
	// Whether to output the plan at each step of the optimizer.
	Verbose  bool
	debugCtx []string
	// Batches of rules to apply, in order.
	Batches []*Batch
}

// NewDefault creates an Optimizer with the default batches: the
// baseline simplifier, the nullability processor, and the
// bulk-operation visitor.
func NewDefault() *Optimizer {
	_, debug := os.LookupEnv(debugOptimizerKey)
	return &Optimizer{
		Debug: debug,
		Batches: []*Batch{
			{
				Desc:       "baseline",
				Iterations: maxOptimizationIterations,
				Rules: []Rule{
					{"fold_constants", foldConstants},
					{"inline_params", inlineParams},
				},
			},
			{
				Desc:       "nullability",
				Iterations: 1,
				Rules: []Rule{
					{"process_nullability", processNullability},
				},
			},
			{
				Desc:       "bulk-ops",
				Iterations: 1,
				Rules: []Rule{
					{"apply_bulk_operations", applyBulkOperations},
				},
			},
		},
	}
}

// Log prints an INFO message to the log with the given message and args
// if the optimizer is in debug mode.
func (o *Optimizer) Log(msg string, args ...interface{}) {
	if o != nil && o.Debug {
		if len(o.debugCtx) > 0 {
			ctx := strings.Join(o.debugCtx, "/")
			logrus.Infof("%s: "+msg, append([]interface{}{ctx}, args...)...)
		} else {
			logrus.Infof(msg, args...)
		}
	}
}

// LogNode prints the node given if Verbose logging is enabled.
func (o *Optimizer) LogNode(n sql.Node) {
	if o != nil && n != nil && o.Verbose {
		if len(o.debugCtx) > 0 {
			logrus.Infof("%s:\n%s", strings.Join(o.debugCtx, "/"), n.String())
		} else {
			logrus.Infof("%s", n.String())
		}
	}
}

// PushDebugContext pushes the given context string onto the context
// stack, to use when logging debug messages.
func (o *Optimizer) PushDebugContext(msg string) {
	if o != nil {
		o.debugCtx = append(o.debugCtx, msg)
	}
}

// PopDebugContext pops a context message off the context stack.
func (o *Optimizer) PopDebugContext() {
	if o != nil && len(o.debugCtx) > 0 {
		o.debugCtx = o.debugCtx[:len(o.debugCtx)-1]
	}
}

// Optimize the node and all its children for the given compilation.
// Returns the rewritten tree and whether the result is reusable across
// executions sharing the compilation's null pattern and context keys.
func (o *Optimizer) Optimize(ctx *sql.Context, n sql.Node, comp *Compilation) (sql.Node, bool, error) {
	span, ctx := ctx.Span("optimize", opentracing.Tags{
		"plan": n.String(),
	})
	defer span.Finish()

	prev := n
	var err error
	o.Log("starting optimization of node of type: %T", n)
	for _, batch := range o.Batches {
		o.PushDebugContext(batch.Desc)
		prev, err = batch.Eval(ctx, o, comp, prev)
		o.PopDebugContext()
		if ErrMaxOptimizationIters.Is(err) {
			o.Log(err.Error())
			continue
		}
		if err != nil {
			return nil, false, err
		}
	}

	span.SetTag("canCache", comp.Cacheable())
	return prev, comp.Cacheable(), nil
}
