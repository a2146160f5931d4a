package sql

import (
	"fmt"
	"strings"
)

// SortOrder represents the order of a sort (ascending or descending).
type SortOrder byte

const (
	// Ascending order.
	Ascending SortOrder = 1
	// Descending order.
	Descending SortOrder = 2
)

func (s SortOrder) String() string {
	switch s {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "invalid SortOrder"
	}
}

// SortField is an expression by which a query or window is sorted.
type SortField struct {
	// Column is the expression to sort by.
	Column Expression
	// Order is the order of the sort.
	Order SortOrder
}

func (s SortField) String() string {
	return fmt.Sprintf("%s %s", s.Column, s.Order)
}

// SortFields is an ordered list of sort fields.
type SortFields []SortField

func (sf SortFields) String() string {
	fields := make([]string, len(sf))
	for i, f := range sf {
		fields[i] = f.String()
	}
	return strings.Join(fields, ", ")
}

// Columns returns the column expressions of the sort fields, in order.
func (sf SortFields) Columns() []Expression {
	columns := make([]Expression, len(sf))
	for i, f := range sf {
		columns[i] = f.Column
	}
	return columns
}

// WithColumns returns a copy of the sort fields with the column
// expressions replaced, preserving each field's order.
func (sf SortFields) WithColumns(columns ...Expression) (SortFields, error) {
	if len(columns) != len(sf) {
		return nil, ErrInvalidChildrenNumber.New(sf, len(columns), len(sf))
	}
	fields := make(SortFields, len(sf))
	for i, f := range sf {
		fields[i] = SortField{Column: columns[i], Order: f.Order}
	}
	return fields, nil
}
