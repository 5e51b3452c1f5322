// Package query turns listing parameters into a store-independent
// description of filters, sort order and paging.
//
// Every store driver translates a Query into its own filter language. The
// Matches and Less methods are the reference semantics and are used as-is
// by the in-memory driver.
package query

import (
	"math"
	"strings"
	"time"
)

// Storage field names. Drivers map these onto columns.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldIndustry      = "industry"
	FieldLocation      = "location"
	FieldRating        = "rating"
	FieldFeatured      = "featured"
	FieldJobTypes      = "job_types"
	FieldOpenPositions = "open_positions"
	FieldCompanyID     = "company_id"
	FieldJobType       = "job_type"
	FieldIsActive      = "is_active"
	FieldCreatedAt     = "created_at"
)

// Op is the comparison applied by a Predicate.
type Op int

const (
	// OpEq matches when the field equals Value (string or bool).
	OpEq Op = iota
	// OpContains is a case-insensitive substring match of Value against a string field.
	OpContains
	// OpIn matches when the string field is one of Values.
	OpIn
	// OpOverlaps matches when the list field shares at least one element with Values.
	OpOverlaps
	// OpGte matches when the numeric field is >= Value (float64).
	OpGte
	// OpAnyContains is OpContains OR'ed across Fields.
	OpAnyContains
)

// Predicate is one AND'ed condition of a Query.
type Predicate struct {
	Field  string
	Fields []string // OpAnyContains only
	Op     Op
	Value  any
	Values []string // OpIn, OpOverlaps
}

// Sort orders results on a single field.
type Sort struct {
	Field     string
	Ascending bool
}

// Query is the full listing request handed to a store.
type Query struct {
	Predicates []Predicate
	Sort       Sort
	Page       int
	Limit      int
}

// Skip is the number of matching rows before the requested page. It
// saturates at math.MaxInt instead of overflowing.
func (q Query) Skip() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// End is the inclusive index of the last row on the requested page, capped
// at math.MaxInt-1 so that End()-Skip()+1 never overflows.
func (q Query) End() int {
	skip := q.Skip()
	if q.Limit <= 0 || q.Limit > math.MaxInt-1-skip {
		return math.MaxInt - 1
	}
	return skip + q.Limit - 1
}

// With returns a copy of q with p appended.
func (q Query) With(p Predicate) Query {
	preds := make([]Predicate, 0, len(q.Predicates)+1)
	preds = append(preds, q.Predicates...)
	q.Predicates = append(preds, p)
	return q
}

// FieldFunc resolves a storage field name on a record. It returns nil for
// unknown fields.
type FieldFunc func(field string) any

// Matches reports whether the record behind get satisfies every predicate.
func (q Query) Matches(get FieldFunc) bool {
	for _, p := range q.Predicates {
		if !p.Matches(get) {
			return false
		}
	}
	return true
}

// Matches evaluates a single predicate.
func (p Predicate) Matches(get FieldFunc) bool {
	switch p.Op {
	case OpEq:
		return get(p.Field) == p.Value
	case OpContains:
		s, _ := get(p.Field).(string)
		needle, _ := p.Value.(string)
		return containsFold(s, needle)
	case OpIn:
		s, _ := get(p.Field).(string)
		for _, v := range p.Values {
			if s == v {
				return true
			}
		}
		return false
	case OpOverlaps:
		list, _ := get(p.Field).([]string)
		for _, have := range list {
			for _, want := range p.Values {
				if have == want {
					return true
				}
			}
		}
		return false
	case OpGte:
		threshold, _ := p.Value.(float64)
		n, ok := toFloat(get(p.Field))
		return ok && n >= threshold
	case OpAnyContains:
		needle, _ := p.Value.(string)
		for _, f := range p.Fields {
			s, _ := get(f).(string)
			if containsFold(s, needle) {
				return true
			}
		}
		return false
	}
	return false
}

// Less reports whether record a sorts before record b under q.Sort.
func (q Query) Less(a, b FieldFunc) bool {
	c := compare(a(q.Sort.Field), b(q.Sort.Field))
	if q.Sort.Ascending {
		return c < 0
	}
	return c > 0
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func compare(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		tb, _ := b.(time.Time)
		return ta.Compare(tb)
	}
	if sa, ok := a.(string); ok {
		sb, _ := b.(string)
		return strings.Compare(sa, sb)
	}
	fa, _ := toFloat(a)
	fb, _ := toFloat(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	}
	return 0
}
