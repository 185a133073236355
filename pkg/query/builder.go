package query

import (
	"fmt"
	"strings"
)

type condition struct {
	clause string
	args   []any
}

// SortField is a view field with a direction.
type SortField struct {
	Field      string
	Descending bool
}

// Builder constructs SELECT statements with automatic parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sorts       []SortField
	defaultSort SortField
}

// NewBuilder creates a Builder ordering by defaultSort unless OrderBy is called.
func NewBuilder(projection *ProjectionMap, defaultSort SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// Build returns a SELECT of every matching row.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		b.buildOrderBy(),
	)
	return sql, args
}

// BuildLimit returns a SELECT of at most limit matching rows.
func (b *Builder) BuildLimit(limit int) (string, []any) {
	sql, args := b.Build()
	return fmt.Sprintf("%s LIMIT %d", sql, limit), args
}

func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where)
	return sql, args
}

// BuildPage returns a windowed SELECT. Pages past the end yield no rows.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	sql, args := b.Build()
	offset := (page - 1) * pageSize
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", sql, pageSize, offset), args
}

// BuildSingle returns a SELECT matching field = value in addition to any
// existing conditions.
func (b *Builder) BuildSingle(field string, value any) (string, []any) {
	b.WhereEquals(field, value)
	where, args := b.buildWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(),
		b.projection.Table(),
		where,
	)
	return sql, args
}

// OrderBy appends a sort key. Empty fields are ignored.
func (b *Builder) OrderBy(field string, descending bool) *Builder {
	if field != "" {
		b.sorts = append(b.sorts, SortField{Field: field, Descending: descending})
	}
	return b
}

// WhereEquals adds an equality condition. Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if value == nil {
		return b
	}
	return b.where(fmt.Sprintf("%s = $%%d", b.projection.Column(field)), value)
}

// WhereGTE adds an inclusive lower bound.
func (b *Builder) WhereGTE(field string, value any) *Builder {
	return b.where(fmt.Sprintf("%s >= $%%d", b.projection.Column(field)), value)
}

// WhereLT adds an exclusive upper bound.
func (b *Builder) WhereLT(field string, value any) *Builder {
	return b.where(fmt.Sprintf("%s < $%%d", b.projection.Column(field)), value)
}

// WhereContains adds a case-insensitive ILIKE condition. Nil or empty values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.where(fmt.Sprintf("%s ILIKE $%%d", b.projection.Column(field)), "%"+*value+"%")
}

// WhereIn adds an IN condition. Empty slices are ignored.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = "$%d"
	}
	clause := fmt.Sprintf("%s IN (%s)", b.projection.Column(field), strings.Join(placeholders, ", "))
	return b.where(clause, values...)
}

func (b *Builder) where(clause string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

func (b *Builder) buildOrderBy() string {
	sorts := b.sorts
	if len(sorts) == 0 {
		sorts = []SortField{b.defaultSort}
	}

	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		dir := "ASC"
		if s.Descending {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s %s", b.projection.Column(s.Field), dir))
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	idx := 1

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, "$%d", fmt.Sprintf("$%d", idx), 1)
			args = append(args, arg)
			idx++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
