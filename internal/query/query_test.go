package query_test

import (
	"testing"
	"time"

	"jobboard/api/internal/query"
)

type record map[string]any

func (r record) get(field string) any { return r[field] }

// ── ForJobs ─────────────────────────────────────────────────────────────────

func TestForJobs_Defaults(t *testing.T) {
	q := query.ForJobs(query.JobParams{})
	if q.Page != 1 || q.Limit != 10 {
		t.Errorf("page/limit = %d/%d, want 1/10", q.Page, q.Limit)
	}
	if q.Skip() != 0 {
		t.Errorf("Skip() = %d, want 0", q.Skip())
	}
	if len(q.Predicates) != 0 {
		t.Errorf("expected no predicates, got %d", len(q.Predicates))
	}
	if q.Sort.Field != query.FieldCreatedAt || q.Sort.Ascending {
		t.Errorf("sort = %+v, want created_at descending", q.Sort)
	}
}

func TestForJobs_Skip(t *testing.T) {
	q := query.ForJobs(query.JobParams{Page: "3", Limit: "20"})
	if q.Skip() != 40 {
		t.Errorf("Skip() = %d, want 40", q.Skip())
	}
}

func TestSkipAndEnd_Saturate(t *testing.T) {
	const maxInt = int(^uint(0) >> 1)
	cases := []struct {
		name      string
		page      int
		limit     int
		skip, end int
	}{
		{"first page", 1, 10, 0, 9},
		{"third page", 3, 20, 40, 59},
		{"huge limit", 1, maxInt, 0, maxInt - 1},
		{"huge limit second page", 2, maxInt - 1, maxInt - 1, maxInt - 1},
		{"huge page", maxInt / 2, 4, maxInt, maxInt - 1},
		{"both huge", 1 << 62, maxInt - 1, maxInt, maxInt - 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := query.Query{Page: c.page, Limit: c.limit}
			if got := q.Skip(); got != c.skip {
				t.Errorf("Skip() = %d, want %d", got, c.skip)
			}
			if got := q.End(); got != c.end {
				t.Errorf("End() = %d, want %d", got, c.end)
			}
			if q.Skip() < 0 || q.End() < 0 {
				t.Error("paging offsets must never go negative")
			}
		})
	}
}

func TestForJobs_HugePagingParsesWithoutOverflow(t *testing.T) {
	q := query.ForJobs(query.JobParams{Page: "4611686018427387904", Limit: "9223372036854775806"})
	if q.Skip() < 0 || q.End() < q.Skip()-1 {
		t.Errorf("Skip/End = %d/%d", q.Skip(), q.End())
	}
}

func TestForJobs_NonsensicalPaging(t *testing.T) {
	cases := []struct{ page, limit string }{
		{"0", "-5"},
		{"-1", "0"},
		{"abc", "1.5"},
	}
	for _, c := range cases {
		q := query.ForJobs(query.JobParams{Page: c.page, Limit: c.limit})
		if q.Page != query.DefaultPage || q.Limit != query.DefaultLimit {
			t.Errorf("page=%q limit=%q → %d/%d, want defaults", c.page, c.limit, q.Page, q.Limit)
		}
	}
}

func TestForJobs_IsActiveOnlyTrueLiteral(t *testing.T) {
	for _, v := range []string{"", "false", "TRUE", "1", "yes"} {
		q := query.ForJobs(query.JobParams{IsActive: v})
		if len(q.Predicates) != 0 {
			t.Errorf("isActive=%q should not filter, got %+v", v, q.Predicates)
		}
	}
	q := query.ForJobs(query.JobParams{IsActive: "true"})
	inactive := record{query.FieldIsActive: false}
	active := record{query.FieldIsActive: true}
	if q.Matches(inactive.get) || !q.Matches(active.get) {
		t.Error("isActive=true should keep only active jobs")
	}
}

func TestForJobs_LocationCaseInsensitiveSubstring(t *testing.T) {
	q := query.ForJobs(query.JobParams{Location: "seattle"})
	if !q.Matches(record{query.FieldLocation: "Seattle, WA"}.get) {
		t.Error("seattle should match \"Seattle, WA\"")
	}
	if q.Matches(record{query.FieldLocation: "Portland, OR"}.get) {
		t.Error("seattle should not match \"Portland, OR\"")
	}
}

func TestForJobs_ExactMatches(t *testing.T) {
	q := query.ForJobs(query.JobParams{CompanyID: "c1", JobType: "Remote"})
	cases := []struct {
		rec  record
		want bool
	}{
		{record{query.FieldCompanyID: "c1", query.FieldJobType: "Remote"}, true},
		{record{query.FieldCompanyID: "c2", query.FieldJobType: "Remote"}, false},
		{record{query.FieldCompanyID: "c1", query.FieldJobType: "remote"}, false},
	}
	for i, c := range cases {
		if got := q.Matches(c.rec.get); got != c.want {
			t.Errorf("case %d: Matches = %v, want %v", i, got, c.want)
		}
	}
}

func TestForJobs_SortNewestFirst(t *testing.T) {
	q := query.ForJobs(query.JobParams{})
	older := record{query.FieldCreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := record{query.FieldCreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	if !q.Less(newer.get, older.get) {
		t.Error("newer job should sort before older job")
	}
}

// ── ForCompanies ────────────────────────────────────────────────────────────

func TestForCompanies_Search(t *testing.T) {
	q := query.ForCompanies(query.CompanyParams{Search: "CLOUD"})
	cases := []struct {
		rec  record
		want bool
	}{
		{record{query.FieldName: "CloudCo"}, true},
		{record{query.FieldDescription: "we build cloud things"}, true},
		{record{query.FieldIndustry: "Cloud Infrastructure"}, true},
		{record{query.FieldName: "Acme", query.FieldLocation: "Cloud City"}, false},
	}
	for i, c := range cases {
		if got := q.Matches(c.rec.get); got != c.want {
			t.Errorf("case %d: Matches = %v, want %v", i, got, c.want)
		}
	}
}

func TestForCompanies_Membership(t *testing.T) {
	q := query.ForCompanies(query.CompanyParams{
		Industries: []string{"Fintech", "Health"},
		JobTypes:   []string{"Remote"},
	})
	match := record{query.FieldIndustry: "Health", query.FieldJobTypes: []string{"Full-time", "Remote"}}
	wrongIndustry := record{query.FieldIndustry: "Retail", query.FieldJobTypes: []string{"Remote"}}
	noJobType := record{query.FieldIndustry: "Fintech", query.FieldJobTypes: []string{"Contract"}}
	if !q.Matches(match.get) {
		t.Error("expected match")
	}
	if q.Matches(wrongIndustry.get) {
		t.Error("industry outside the set should not match")
	}
	if q.Matches(noJobType.get) {
		t.Error("jobTypes without overlap should not match")
	}
}

func TestForCompanies_BlankRepeatedValuesIgnored(t *testing.T) {
	q := query.ForCompanies(query.CompanyParams{Locations: []string{"", "  "}})
	if len(q.Predicates) != 0 {
		t.Errorf("expected no predicates, got %+v", q.Predicates)
	}
}

func TestForCompanies_MinRating(t *testing.T) {
	if q := query.ForCompanies(query.CompanyParams{MinRating: "0"}); len(q.Predicates) != 0 {
		t.Error("minRating=0 should not filter")
	}
	if q := query.ForCompanies(query.CompanyParams{MinRating: "high"}); len(q.Predicates) != 0 {
		t.Error("malformed minRating should not filter")
	}
	q := query.ForCompanies(query.CompanyParams{MinRating: "3.5"})
	if !q.Matches(record{query.FieldRating: 3.5}.get) {
		t.Error("rating 3.5 should pass minRating 3.5")
	}
	if q.Matches(record{query.FieldRating: 3.4}.get) {
		t.Error("rating 3.4 should fail minRating 3.5")
	}
}

func TestForCompanies_Featured(t *testing.T) {
	q := query.ForCompanies(query.CompanyParams{Featured: "true"})
	if q.Matches(record{query.FieldFeatured: false}.get) {
		t.Error("featured=true should drop non-featured companies")
	}
	if q := query.ForCompanies(query.CompanyParams{Featured: "false"}); len(q.Predicates) != 0 {
		t.Error("featured=false should not filter")
	}
}

func TestForCompanies_SortOrder(t *testing.T) {
	few := record{query.FieldOpenPositions: 1}
	many := record{query.FieldOpenPositions: 9}

	desc := query.ForCompanies(query.CompanyParams{})
	if !desc.Less(many.get, few.get) {
		t.Error("default sort should put the most open positions first")
	}
	asc := query.ForCompanies(query.CompanyParams{SortOrder: "asc"})
	if !asc.Less(few.get, many.get) {
		t.Error("asc sort should put the fewest open positions first")
	}
}

func TestWith_DoesNotAlias(t *testing.T) {
	base := query.ForJobs(query.JobParams{JobType: "Remote"})
	a := base.With(query.Predicate{Field: query.FieldCompanyID, Op: query.OpEq, Value: "a"})
	b := base.With(query.Predicate{Field: query.FieldCompanyID, Op: query.OpEq, Value: "b"})
	if a.Predicates[1].Value != "a" || b.Predicates[1].Value != "b" {
		t.Errorf("With shared backing arrays: %+v / %+v", a.Predicates, b.Predicates)
	}
	if len(base.Predicates) != 1 {
		t.Errorf("base mutated: %+v", base.Predicates)
	}
}
