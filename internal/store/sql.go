package store

import (
	"fmt"
	"strings"

	"jobboard/api/internal/query"
)

// sqlFilter renders q's predicates as a WHERE clause with positional
// arguments starting at $1. allowed guards against unknown columns.
func sqlFilter(q query.Query, allowed map[string]bool) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	column := func(name string) (string, error) {
		if !allowed[name] {
			return "", fmt.Errorf("column %q is not filterable", name)
		}
		return name, nil
	}

	for _, p := range q.Predicates {
		switch p.Op {
		case query.OpAnyContains:
			needle := arg(likePattern(fmt.Sprint(p.Value)))
			var ors []string
			for _, f := range p.Fields {
				col, err := column(f)
				if err != nil {
					return "", nil, err
				}
				ors = append(ors, fmt.Sprintf("%s ILIKE %s", col, needle))
			}
			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
			continue
		}

		col, err := column(p.Field)
		if err != nil {
			return "", nil, err
		}
		switch p.Op {
		case query.OpEq:
			clauses = append(clauses, fmt.Sprintf("%s = %s", col, arg(p.Value)))
		case query.OpContains:
			clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", col, arg(likePattern(fmt.Sprint(p.Value)))))
		case query.OpIn:
			clauses = append(clauses, fmt.Sprintf("%s = ANY(%s)", col, arg(p.Values)))
		case query.OpOverlaps:
			clauses = append(clauses, fmt.Sprintf("%s && %s::text[]", col, arg(p.Values)))
		case query.OpGte:
			clauses = append(clauses, fmt.Sprintf("%s >= %s", col, arg(p.Value)))
		default:
			return "", nil, fmt.Errorf("unsupported operator %d on %s", p.Op, col)
		}
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// sqlOrder renders the ORDER BY clause. created_at DESC and then id break
// ties so paging is stable.
func sqlOrder(s query.Sort, allowed map[string]bool) (string, error) {
	if !allowed[s.Field] {
		return "", fmt.Errorf("column %q is not sortable", s.Field)
	}
	dir := "DESC"
	if s.Ascending {
		dir = "ASC"
	}
	if s.Field == query.FieldCreatedAt {
		return fmt.Sprintf(" ORDER BY created_at %s, id", dir), nil
	}
	return fmt.Sprintf(" ORDER BY %s %s, created_at DESC, id", s.Field, dir), nil
}

// likePattern wraps s for a substring ILIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
