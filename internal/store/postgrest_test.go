package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"jobboard/api/internal/query"
	"jobboard/api/internal/store"
)

// restServer is a minimal PostgREST stand-in that records the query string
// of every request and answers with canned bodies.
type restServer struct {
	mu      sync.Mutex
	queries map[string]url.Values // by path
	rpcBody map[string]any
}

func newRESTServer(t *testing.T) (*restServer, *store.PostgREST) {
	t.Helper()
	rs := &restServer{queries: map[string]url.Values{}}
	srv := httptest.NewServer(http.HandlerFunc(rs.serve))
	t.Cleanup(srv.Close)

	p, err := store.NewPostgREST(srv.URL, "service-key")
	if err != nil {
		t.Fatal(err)
	}
	return rs, p
}

func (rs *restServer) serve(w http.ResponseWriter, r *http.Request) {
	rs.mu.Lock()
	rs.queries[r.URL.Path] = r.URL.Query()
	rs.mu.Unlock()

	switch r.URL.Path {
	case "/rest/v1/companies":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "10-11/25")
		io.WriteString(w, `[
			{"id":"c1","name":"Acme","logo":"","industry":"Software","location":"Remote","open_positions":3,"rating":4.5,"featured":true,"description":"d","job_types":["Remote"],"created_at":"2026-01-02T00:00:00Z","updated_at":"2026-01-02T00:00:00Z"},
			{"id":"c2","name":"Globex","logo":"","industry":"Energy","location":"Springfield","open_positions":3,"rating":3,"featured":false,"description":"d","job_types":null,"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}
		]`)
	case "/rest/v1/jobs":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "*/0")
		io.WriteString(w, `[]`)
	case "/rest/v1/rpc/adjust_open_positions":
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		rs.mu.Lock()
		rs.rpcBody = body
		rs.mu.Unlock()
		if body["p_company_id"] == "missing" {
			io.WriteString(w, "0")
			return
		}
		io.WriteString(w, "1")
	default:
		http.NotFound(w, r)
	}
}

func (rs *restServer) query(path string) url.Values {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.queries[path]
}

// orderColumns reduces "a.desc.nullslast,b.asc.nullslast" to ["a.desc", "b.asc"].
func orderColumns(order string) []string {
	var out []string
	for _, term := range strings.Split(order, ",") {
		parts := strings.Split(term, ".")
		if len(parts) >= 2 {
			out = append(out, parts[0]+"."+parts[1])
		}
	}
	return out
}

func TestPostgREST_ListCompanies(t *testing.T) {
	rs, p := newRESTServer(t)
	q := query.ForCompanies(query.CompanyParams{Page: "2", Limit: "10"})

	companies, total, err := p.ListCompanies(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if total != 25 || len(companies) != 2 {
		t.Fatalf("got %d companies, total %d; want 2, 25", len(companies), total)
	}
	if companies[0].OpenPositions != 3 || companies[1].JobTypes == nil {
		t.Errorf("decoded companies = %+v", companies)
	}

	sent := rs.query("/rest/v1/companies")
	got := strings.Join(orderColumns(sent.Get("order")), ",")
	if want := "open_positions.desc,created_at.desc,id.asc"; got != want {
		t.Errorf("order = %q (raw %q), want %q", got, sent.Get("order"), want)
	}
	if sent.Get("offset") != "10" || sent.Get("limit") != "10" {
		t.Errorf("offset/limit = %s/%s, want 10/10", sent.Get("offset"), sent.Get("limit"))
	}
}

func TestPostgREST_ListJobsOrder(t *testing.T) {
	rs, p := newRESTServer(t)
	jobs, total, err := p.ListJobs(context.Background(), query.ForJobs(query.JobParams{}))
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(jobs) != 0 {
		t.Errorf("got %d jobs, total %d", len(jobs), total)
	}
	got := strings.Join(orderColumns(rs.query("/rest/v1/jobs").Get("order")), ",")
	if want := "created_at.desc,id.asc"; got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestPostgREST_HugePagingStaysNonNegative(t *testing.T) {
	const maxInt = int(^uint(0) >> 1)
	rs, p := newRESTServer(t)
	q := query.ForJobs(query.JobParams{})
	q.Page, q.Limit = 1<<62, maxInt-1

	if _, _, err := p.ListJobs(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	sent := rs.query("/rest/v1/jobs")
	if strings.HasPrefix(sent.Get("offset"), "-") || strings.HasPrefix(sent.Get("limit"), "-") {
		t.Errorf("offset/limit = %s/%s, want non-negative", sent.Get("offset"), sent.Get("limit"))
	}
}

func TestPostgREST_AdjustOpenPositions(t *testing.T) {
	rs, p := newRESTServer(t)
	ctx := context.Background()

	if err := p.AdjustOpenPositions(ctx, "c1", -1); err != nil {
		t.Fatal(err)
	}
	rs.mu.Lock()
	body := rs.rpcBody
	rs.mu.Unlock()
	if body["p_company_id"] != "c1" || body["p_delta"] != float64(-1) {
		t.Errorf("rpc body = %v", body)
	}

	if err := p.AdjustOpenPositions(ctx, "missing", 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPostgREST_ContextCancelled(t *testing.T) {
	_, p := newRESTServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := p.ListCompanies(ctx, query.ForCompanies(query.CompanyParams{})); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
