package query

import (
	"fmt"
	"strings"
)

// Update builds a sparse UPDATE touching only the columns that were Set.
// The statement returns the projection's columns.
type Update struct {
	projection *ProjectionMap
	sets       []string
	args       []any
	where      []string
}

func NewUpdate(projection *ProjectionMap) *Update {
	return &Update{projection: projection}
}

// Set assigns an unqualified column.
func (u *Update) Set(column string, value any) *Update {
	u.args = append(u.args, value)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", column, len(u.args)))
	return u
}

// SetExpr assigns an unqualified column to a SQL expression such as NOW().
func (u *Update) SetExpr(column, expr string) *Update {
	u.sets = append(u.sets, fmt.Sprintf("%s = %s", column, expr))
	return u
}

// Where adds an equality condition on a view field.
func (u *Update) Where(field string, value any) *Update {
	u.args = append(u.args, value)
	u.where = append(u.where, fmt.Sprintf("%s = $%d", u.projection.Column(field), len(u.args)))
	return u
}

// Empty reports whether no column has been assigned.
func (u *Update) Empty() bool {
	return len(u.sets) == 0
}

func (u *Update) Build() (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "UPDATE %s SET %s", u.projection.Table(), strings.Join(u.sets, ", "))
	if len(u.where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(u.where, " AND "))
	}
	sb.WriteString(" RETURNING " + u.projection.Columns())
	return sb.String(), u.args
}
