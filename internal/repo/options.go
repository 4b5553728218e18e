package repo

import (
	"fmt"
	"strings"
)

// Filter is one column predicate. A nil Value matches NULL, a slice value
// is a membership test, anything else is plain equality. Filters are ANDed.
type Filter struct {
	Column string
	Value  any
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// ListOptions shape a List query: filters, ordering, optional limit.
type ListOptions struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
}

// Eq returns an equality (or IN / IS NULL, depending on value) filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Asc and Desc return ORDER BY terms.
func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// buildClauses renders WHERE/ORDER BY/LIMIT for opts, with placeholders
// starting at $1. Column names come from repo code, never from callers.
func buildClauses(opts ListOptions) (string, []any) {
	var sb strings.Builder
	var args []any

	if len(opts.Filters) > 0 {
		sb.WriteString(" WHERE ")
		for i, f := range opts.Filters {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			switch {
			case f.Value == nil:
				fmt.Fprintf(&sb, "%s IS NULL", f.Column)
			case isSlice(f.Value):
				args = append(args, f.Value)
				fmt.Fprintf(&sb, "%s = ANY($%d)", f.Column, len(args))
			default:
				args = append(args, f.Value)
				fmt.Fprintf(&sb, "%s = $%d", f.Column, len(args))
			}
		}
	}

	if len(opts.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range opts.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(o.Column)
			if o.Desc {
				sb.WriteString(" DESC")
			}
		}
	}

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	return sb.String(), args
}

func isSlice(v any) bool {
	switch v.(type) {
	case []string, []int, []int64, []any:
		return true
	}
	return false
}
