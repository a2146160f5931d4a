// Package builder provides the declarative query builder and the
// method translator that lowers builder-level operations into primitive
// tree nodes. Operations are recognized by static tokens the builder
// inserts at the call site, never by matching method names at runtime.
package builder

import (
	"github.com/poizan42/go-query-rewriter/sql"
)

// Op is the token identifying a builder-level operation.
type Op uint8

const (
	opInvalid Op = iota
	// OpSubquery pushes the current select into a nested sub-query.
	OpSubquery
	// OpGroupJoin pairs each left row with the group of matching right
	// rows. It has no relational form of its own and must be flattened.
	OpGroupJoin
	// OpFlatten flattens a group join into row pairs, optionally
	// keeping left rows without matches.
	OpFlatten
	// OpDelete turns the query shape into a bulk delete.
	OpDelete
	// OpTempTable tags the query's table reference for resolution
	// against the temp table context.
	OpTempTable
)

func (op Op) String() string {
	switch op {
	case OpSubquery:
		return "subquery"
	case OpGroupJoin:
		return "groupJoin"
	case OpFlatten:
		return "flatten"
	case OpDelete:
		return "delete"
	case OpTempTable:
		return "tempTable"
	default:
		return "invalid"
	}
}

// lowerFunc lowers one recognized builder call into primitive nodes.
type lowerFunc func(*Call) (sql.Node, error)

// The registry of recognized operations is built statically in
// translate.go; there is no runtime registration surface.
