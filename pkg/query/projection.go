// Package query builds parameterized PostgreSQL statements from projection maps.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified table columns and keeps
// the projection order for SELECT lists.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns map[string]string
	order   []string
}

func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps a column to a view field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns[field] = qualified
	p.order = append(p.order, qualified)
	return p
}

// Name returns the schema-qualified table without its alias.
func (p *ProjectionMap) Name() string {
	return fmt.Sprintf("%s.%s", p.schema, p.table)
}

func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the schema-qualified table with its alias.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view field to its qualified column. Unknown fields are
// returned unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}
