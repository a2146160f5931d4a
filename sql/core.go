package sql

import (
	"fmt"
	"sort"
)

// Tag carries pipeline capabilities fixed at node construction. Tags
// are authoritative: the rewriting pipeline never re-derives them from
// a node's structure.
type Tag uint8

const (
	// TagNone marks an ordinary, fully analyzable node.
	TagNone Tag = 0
	// TagNeverNull forces the node's nullability to false, overriding
	// any structural derivation from its children.
	TagNeverNull Tag = 1 << iota
	// TagOpaque marks a node whose internal structure is intentionally
	// not analyzable; tree walks must not descend into it.
	TagOpaque
)

// Params is the read-only mapping from parameter name to bound value
// for one execution. A nil value means the parameter is bound to NULL.
type Params map[string]interface{}

// NullPattern returns a deterministic encoding of which parameters are
// bound to NULL. Plans rewritten from nullability information alone are
// reusable across executions sharing a pattern.
func (p Params) NullPattern() string {
	if len(p) == 0 {
		return ""
	}
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	pattern := make([]byte, 0, len(p)*4)
	for _, name := range names {
		pattern = append(pattern, name...)
		if p[name] == nil {
			pattern = append(pattern, '\x00')
		} else {
			pattern = append(pattern, '\x01')
		}
	}
	return string(pattern)
}

// Expression is a node in a scalar expression tree. Expressions are
// immutable; WithChildren returns a new expression and shares unchanged
// children by reference.
type Expression interface {
	fmt.Stringer
	// Type returns the type of the expression.
	Type() Type
	// IsNullable returns whether the expression can evaluate to NULL.
	IsNullable() bool
	// Eval evaluates the expression against the given parameter
	// bindings. Only subtrees free of column references can be
	// evaluated at compile time.
	Eval(ctx *Context, params Params) (interface{}, error)
	// Children returns the children of this expression.
	Children() []Expression
	// WithChildren returns a copy of this expression with the children
	// replaced. It must return an error if the number of children is
	// wrong for the expression kind.
	WithChildren(children ...Expression) (Expression, error)
	// Tag returns the pipeline capabilities of the expression.
	Tag() Tag
}

// Node is a node in a relational tree. Nodes are immutable in the same
// way expressions are.
type Node interface {
	fmt.Stringer
	// Schema returns the schema of the rows the node produces.
	Schema() Schema
	// Children returns the child nodes.
	Children() []Node
	// WithChildren returns a copy of this node with the children
	// replaced.
	WithChildren(children ...Node) (Node, error)
	// Tag returns the pipeline capabilities of the node.
	Tag() Tag
}

// Expressioner is implemented by nodes that hold scalar expressions.
type Expressioner interface {
	// Expressions returns the expressions the node holds, in a stable
	// order.
	Expressions() []Expression
	// WithExpressions returns a copy of the node with the expressions
	// replaced, in the same order Expressions returns them.
	WithExpressions(exprs ...Expression) (Node, error)
}

// Nameable is something with a name.
type Nameable interface {
	Name() string
}
