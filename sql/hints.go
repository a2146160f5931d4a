package sql

import (
	"sort"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrEmptyHintKey is returned when a side-channel context is built with
// an empty key or an empty value list.
var ErrEmptyHintKey = errors.NewKind("side-channel context: %s must not be empty")

// HintKey is the caller-chosen logical key matched against table
// references in the tree. For table hints the key is the table name;
// for temp tables it is the tag given to the builder.
type HintKey string

// TableHintContext is the per-execution side channel mapping table
// references to dialect-specific table hints. It is created before each
// execution, read-only within the pipeline, and discarded after SQL
// generation.
type TableHintContext struct {
	hints map[HintKey][]string
}

// NewTableHintContext builds a hint context from the given entries.
// Keys and hint lists must be non-empty.
func NewTableHintContext(entries map[HintKey][]string) (*TableHintContext, error) {
	hints := make(map[HintKey][]string, len(entries))
	for key, list := range entries {
		if key == "" {
			return nil, ErrEmptyHintKey.New("table hint key")
		}
		if len(list) == 0 {
			return nil, ErrEmptyHintKey.New("table hint list for key " + string(key))
		}
		hints[key] = append([]string(nil), list...)
	}
	return &TableHintContext{hints: hints}, nil
}

// Empty reports whether the context carries no entries. The optimizer
// uses this as a cheap presence check before constructing the
// bulk-operation visitor.
func (c *TableHintContext) Empty() bool {
	return c == nil || len(c.hints) == 0
}

// Hints returns the hint list bound to the given key.
func (c *TableHintContext) Hints(key HintKey) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	list, ok := c.hints[key]
	return list, ok
}

// Signature returns a deterministic encoding of the context keys, used
// as part of the plan-cache key.
func (c *TableHintContext) Signature() string {
	if c.Empty() {
		return ""
	}
	keys := make([]string, 0, len(c.hints))
	for key := range c.hints {
		keys = append(keys, string(key)+"="+strings.Join(c.hints[key], ","))
	}
	sort.Strings(keys)
	return "hints:" + strings.Join(keys, ";")
}

// TempTableContext is the per-execution side channel mapping logical
// keys to resolved temp table names. Names are only known at execution
// time and are never embedded in builder expressions.
type TempTableContext struct {
	names map[HintKey]string
}

// NewTempTableContext builds a temp table context from the given
// entries. Keys and names must be non-empty.
func NewTempTableContext(entries map[HintKey]string) (*TempTableContext, error) {
	names := make(map[HintKey]string, len(entries))
	for key, name := range entries {
		if key == "" {
			return nil, ErrEmptyHintKey.New("temp table key")
		}
		if name == "" {
			return nil, ErrEmptyHintKey.New("temp table name for key " + string(key))
		}
		names[key] = name
	}
	return &TempTableContext{names: names}, nil
}

// Empty reports whether the context carries no entries.
func (c *TempTableContext) Empty() bool {
	return c == nil || len(c.names) == 0
}

// Name returns the temp table name bound to the given key.
func (c *TempTableContext) Name(key HintKey) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[key]
	return name, ok
}

// Signature returns a deterministic encoding of the context entries,
// used as part of the plan-cache key.
func (c *TempTableContext) Signature() string {
	if c.Empty() {
		return ""
	}
	keys := make([]string, 0, len(c.names))
	for key, name := range c.names {
		keys = append(keys, string(key)+"="+name)
	}
	sort.Strings(keys)
	return "temps:" + strings.Join(keys, ";")
}
