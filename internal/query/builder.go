package query

import (
	"strconv"
	"strings"
)

// Paging defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// JobParams are the raw query-string inputs of a job listing.
type JobParams struct {
	CompanyID string
	JobType   string
	Location  string
	IsActive  string
	Page      string
	Limit     string
}

// CompanyParams are the raw query-string inputs of a company listing.
// Industries, Locations and JobTypes come from repeatable parameters.
type CompanyParams struct {
	Search     string
	Industries []string
	Locations  []string
	JobTypes   []string
	MinRating  string
	Featured   string
	SortOrder  string
	Page       string
	Limit      string
}

// ForJobs builds the job listing query, newest first.
func ForJobs(p JobParams) Query {
	q := Query{
		Sort:  Sort{Field: FieldCreatedAt},
		Page:  parsePositive(p.Page, DefaultPage),
		Limit: parsePositive(p.Limit, DefaultLimit),
	}
	if p.CompanyID != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldCompanyID, Op: OpEq, Value: p.CompanyID})
	}
	if p.JobType != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldJobType, Op: OpEq, Value: p.JobType})
	}
	if p.Location != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldLocation, Op: OpContains, Value: p.Location})
	}
	if p.IsActive == "true" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldIsActive, Op: OpEq, Value: true})
	}
	return q
}

// ForCompanies builds the company listing query, sorted on openPositions.
func ForCompanies(p CompanyParams) Query {
	q := Query{
		Sort:  Sort{Field: FieldOpenPositions, Ascending: p.SortOrder == "asc"},
		Page:  parsePositive(p.Page, DefaultPage),
		Limit: parsePositive(p.Limit, DefaultLimit),
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Predicates = append(q.Predicates, Predicate{
			Fields: []string{FieldName, FieldDescription, FieldIndustry},
			Op:     OpAnyContains,
			Value:  s,
		})
	}
	if v := nonEmpty(p.Industries); len(v) > 0 {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldIndustry, Op: OpIn, Values: v})
	}
	if v := nonEmpty(p.Locations); len(v) > 0 {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldLocation, Op: OpIn, Values: v})
	}
	if v := nonEmpty(p.JobTypes); len(v) > 0 {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldJobTypes, Op: OpOverlaps, Values: v})
	}
	if r, err := strconv.ParseFloat(p.MinRating, 64); err == nil && r > 0 {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldRating, Op: OpGte, Value: r})
	}
	if p.Featured == "true" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldFeatured, Op: OpEq, Value: true})
	}
	return q
}

// parsePositive falls back to def for missing, malformed or non-positive input.
func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
