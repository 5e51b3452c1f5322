package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"

	"jobboard/api/internal/query"
	"jobboard/api/models"
)

// PostgREST is a Store backed by a Supabase PostgREST endpoint.
//
// postgrest-go has no context support, so ctx is only checked before each
// round trip.
type PostgREST struct {
	client *postgrest.Client
	// rpcMu serializes Rpc calls, which report errors through the shared
	// client.ClientError field.
	rpcMu sync.Mutex
}

// NewPostgREST initializes a PostgREST client for the given Supabase project.
func NewPostgREST(supabaseURL, serviceKey string) (*PostgREST, error) {
	if supabaseURL == "" || serviceKey == "" {
		return nil, errors.New("postgrest driver requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
	}

	client := postgrest.NewClient(strings.TrimRight(supabaseURL, "/")+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize PostgREST client: %w", client.ClientError)
	}
	return &PostgREST{client: client}, nil
}

func (p *PostgREST) Driver() string { return DriverPostgREST }

func (p *PostgREST) Close() {}

func (p *PostgREST) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _, err := p.client.From(companiesTable).Select("id", "", false).Limit(1, "").Execute()
	if err != nil {
		return fmt.Errorf("postgrest ping failed: %w", err)
	}
	return nil
}

func (p *PostgREST) CreateCompany(ctx context.Context, c *models.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var results []companyRow
	body, _, err := p.client.From(companiesTable).
		Insert(companyInsert(c), false, "", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("decode inserted company: %w", err)
	}
	if len(results) == 0 {
		return errors.New("insert company: empty representation")
	}
	*c = results[0].model()
	return nil
}

func (p *PostgREST) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var results []companyRow
	body, _, err := p.client.From(companiesTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode company %s: %w", id, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	c := results[0].model()
	return &c, nil
}

func (p *PostgREST) GetCompanies(ctx context.Context, ids []string) (map[string]models.Company, error) {
	out := make(map[string]models.Company, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var results []companyRow
	body, _, err := p.client.From(companiesTable).
		Select("*", "", false).
		In("id", ids).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("get companies: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	for _, r := range results {
		out[r.ID] = r.model()
	}
	return out, nil
}

func (p *PostgREST) ListCompanies(ctx context.Context, q query.Query) ([]models.Company, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	f, err := applyFilters(p.client.From(companiesTable).Select("*", "exact", false), q, companyColumns)
	if err != nil {
		return nil, 0, err
	}
	var results []companyRow
	body, total, err := applyOrder(f, q.Sort).
		Range(q.Skip(), q.End(), "").
		Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, 0, fmt.Errorf("decode companies: %w", err)
	}
	companies := make([]models.Company, 0, len(results))
	for _, r := range results {
		companies = append(companies, r.model())
	}
	return companies, total, nil
}

func (p *PostgREST) ListCompanyIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var results []struct {
		ID string `json:"id"`
	}
	body, _, err := p.client.From(companiesTable).
		Select("id", "", false).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list company ids: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode company ids: %w", err)
	}
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// AdjustOpenPositions calls the adjust_open_positions SQL function (see
// migrations/001_init.sql), which performs the increment in one statement
// and returns the number of rows it touched.
func (p *PostgREST) AdjustOpenPositions(ctx context.Context, companyID string, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.rpcMu.Lock()
	p.client.ClientError = nil
	body := p.client.Rpc("adjust_open_positions", "", map[string]interface{}{
		"p_company_id": companyID,
		"p_delta":      delta,
	})
	rpcErr := p.client.ClientError
	p.rpcMu.Unlock()

	if rpcErr != nil {
		return fmt.Errorf("adjust open positions for %s: %w", companyID, rpcErr)
	}
	affected, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return fmt.Errorf("adjust open positions for %s: unexpected response %q", companyID, body)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgREST) SetOpenPositions(ctx context.Context, companyID string, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, count, err := p.client.From(companiesTable).
		Update(map[string]interface{}{"open_positions": n, "updated_at": time.Now().UTC()}, "minimal", "exact").
		Eq("id", companyID).
		Execute()
	if err != nil {
		return fmt.Errorf("set open positions for %s: %w", companyID, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgREST) CreateJob(ctx context.Context, j *models.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var results []jobRow
	body, _, err := p.client.From(jobsTable).
		Insert(jobInsert(j), false, "", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("decode inserted job: %w", err)
	}
	if len(results) == 0 {
		return errors.New("insert job: empty representation")
	}
	*j = results[0].model()
	return nil
}

func (p *PostgREST) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var results []jobRow
	body, _, err := p.client.From(jobsTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	j := results[0].model()
	return &j, nil
}

func (p *PostgREST) ListJobs(ctx context.Context, q query.Query) ([]models.Job, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	f, err := applyFilters(p.client.From(jobsTable).Select("*", "exact", false), q, jobColumns)
	if err != nil {
		return nil, 0, err
	}
	var results []jobRow
	body, total, err := applyOrder(f, q.Sort).
		Range(q.Skip(), q.End(), "").
		Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, 0, fmt.Errorf("decode jobs: %w", err)
	}
	jobs := make([]models.Job, 0, len(results))
	for _, r := range results {
		jobs = append(jobs, r.model())
	}
	return jobs, total, nil
}

func (p *PostgREST) CountJobs(ctx context.Context, companyID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	_, count, err := p.client.From(jobsTable).
		Select("id", "exact", true).
		Eq("company_id", companyID).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("count jobs for %s: %w", companyID, err)
	}
	return count, nil
}

func (p *PostgREST) UpdateJob(ctx context.Context, id string, u models.JobUpdate) (*models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := jobUpdateColumns(u)
	data["updated_at"] = time.Now().UTC()

	var results []jobRow
	body, _, err := p.client.From(jobsTable).
		Update(data, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("update job %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode updated job %s: %w", id, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	j := results[0].model()
	return &j, nil
}

func (p *PostgREST) DeleteJob(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, count, err := p.client.From(jobsTable).
		Delete("minimal", "exact").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// applyFilters translates q's predicates into PostgREST operators.
func applyFilters(f *postgrest.FilterBuilder, q query.Query, allowed map[string]bool) (*postgrest.FilterBuilder, error) {
	if !allowed[q.Sort.Field] {
		return nil, fmt.Errorf("column %q is not sortable", q.Sort.Field)
	}
	for _, p := range q.Predicates {
		if p.Op == query.OpAnyContains {
			var ors []string
			for _, field := range p.Fields {
				if !allowed[field] {
					return nil, fmt.Errorf("column %q is not filterable", field)
				}
				ors = append(ors, fmt.Sprintf("%s.ilike.%s", field, quoteValue(ilikePattern(fmt.Sprint(p.Value)))))
			}
			f = f.Or(strings.Join(ors, ","), "")
			continue
		}
		if !allowed[p.Field] {
			return nil, fmt.Errorf("column %q is not filterable", p.Field)
		}
		switch p.Op {
		case query.OpEq:
			f = f.Eq(p.Field, fmt.Sprint(p.Value))
		case query.OpContains:
			f = f.Ilike(p.Field, ilikePattern(fmt.Sprint(p.Value)))
		case query.OpIn:
			f = f.In(p.Field, p.Values)
		case query.OpOverlaps:
			f = f.Filter(p.Field, "ov", arrayLiteral(p.Values))
		case query.OpGte:
			f = f.Gte(p.Field, fmt.Sprint(p.Value))
		default:
			return nil, fmt.Errorf("unsupported operator %d on %s", p.Op, p.Field)
		}
	}
	return f, nil
}

// applyOrder sorts on s and breaks ties the same way sqlOrder does, so
// consecutive pages never repeat or skip rows with equal sort keys.
func applyOrder(f *postgrest.FilterBuilder, s query.Sort) *postgrest.FilterBuilder {
	f = f.Order(s.Field, &postgrest.OrderOpts{Ascending: s.Ascending})
	if s.Field != query.FieldCreatedAt {
		f = f.Order(query.FieldCreatedAt, &postgrest.OrderOpts{Ascending: false})
	}
	return f.Order("id", &postgrest.OrderOpts{Ascending: true})
}

// ilikePattern builds a PostgREST substring pattern; '*' is its wildcard.
func ilikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, ``)
	return "*" + r.Replace(s) + "*"
}

// quoteValue double-quotes a value inside an or=(...) tree so commas and
// parentheses in user input are not parsed as syntax.
func quoteValue(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// arrayLiteral renders a Postgres text[] literal.
func arrayLiteral(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteValue(v)
	}
	return "{" + strings.Join(quoted, ",") + "}"
}
