package query

import "strings"

// ProjectionMap maps view-level field names onto qualified table columns.
// Field names are the identifiers clients sort and filter by; columns are
// what ends up in generated SQL.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a projection for schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers column under the view name field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.fields[field] = qualified
	p.fields[strings.ToLower(field)] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference used in FROM clauses.
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a view name to its qualified column. Unknown names are returned unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.lookup(field); ok {
		return col
	}
	return field
}

// Has reports whether field is a projected view name (case-insensitive).
func (p *ProjectionMap) Has(field string) bool {
	_, ok := p.lookup(field)
	return ok
}

// Columns returns the projected columns as a comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the projected columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.columns))
	copy(list, p.columns)
	return list
}

func (p *ProjectionMap) lookup(field string) (string, bool) {
	if col, ok := p.fields[field]; ok {
		return col, true
	}
	col, ok := p.fields[strings.ToLower(field)]
	return col, ok
}
