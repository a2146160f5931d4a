package analyzer

import (
	"github.com/poizan42/go-query-rewriter/sql"
	"github.com/poizan42/go-query-rewriter/sql/transform"
)

// Batch executes a set of rules a specific number of times. When this
// number of times is reached, the actual node and
// ErrMaxOptimizationIters is returned.
type Batch struct {
	Desc       string
	Iterations int
	Rules      []Rule
}

// Eval executes the rules of the batch, repeating while any rule keeps
// changing the tree, up to the configured number of iterations.
func (b *Batch) Eval(ctx *sql.Context, o *Optimizer, comp *Compilation, n sql.Node) (sql.Node, error) {
	if b.Iterations == 0 {
		return n, nil
	}

	cur, same, err := b.evalOnce(ctx, o, comp, n)
	if err != nil {
		return nil, err
	}

	for i := 1; !same; i++ {
		if i >= b.Iterations {
			return cur, ErrMaxOptimizationIters.New(b.Iterations)
		}
		cur, same, err = b.evalOnce(ctx, o, comp, cur)
		if err != nil {
			return nil, err
		}
	}

	return cur, nil
}

func (b *Batch) evalOnce(ctx *sql.Context, o *Optimizer, comp *Compilation, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	result := n
	same := transform.SameTree
	for _, rule := range b.Rules {
		o.Log("evaluating rule %s", rule.Name)
		next, sameN, err := rule.Apply(ctx, o, comp, result)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !sameN {
			o.LogNode(next)
		}
		result = next
		same = same && sameN
	}
	return result, same, nil
}
