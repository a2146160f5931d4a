package sql

// Column is the definition of a column produced by a node.
type Column struct {
	// Name is the name of the column.
	Name string
	// Source is the name of the table this column came from, if any.
	Source string
	// Type is the type of the column.
	Type Type
	// Nullable is whether the column can contain NULL.
	Nullable bool
}

// Check whether the column is equal to another one.
func (c *Column) Check(other *Column) bool {
	return c.Name == other.Name &&
		c.Source == other.Source &&
		c.Type == other.Type &&
		c.Nullable == other.Nullable
}

// Schema is the definition of the rows a node produces.
type Schema []*Column

// Equals whether the schema is equal to another one.
func (s Schema) Equals(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Check(other[i]) {
			return false
		}
	}
	return true
}

// Sources returns the distinct source table names referenced by the
// schema, in first-appearance order.
func (s Schema) Sources() []string {
	var sources []string
	seen := make(map[string]struct{}, len(s))
	for _, c := range s {
		if c.Source == "" {
			continue
		}
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		sources = append(sources, c.Source)
	}
	return sources
}

// AsNullable returns a copy of the schema with every column marked
// nullable. Used for the right side of a left join, whose values are
// absent for unmatched rows even when the column itself is declared
// non-nullable.
func (s Schema) AsNullable() Schema {
	ns := make(Schema, len(s))
	for i, c := range s {
		nc := *c
		nc.Nullable = true
		ns[i] = &nc
	}
	return ns
}
