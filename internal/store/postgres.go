package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/api/internal/query"
	"jobboard/api/models"
)

// uuid columns are cast to text so they scan into plain strings.
const (
	companySelect = `SELECT id::text AS id, name, logo, industry, location, open_positions, rating,
		featured, description, job_types, created_at, updated_at FROM companies`
	companyReturning = ` RETURNING id::text AS id, name, logo, industry, location, open_positions, rating,
		featured, description, job_types, created_at, updated_at`
	jobSelect = `SELECT id::text AS id, company_id::text AS company_id, title, description, location, job_type, salary,
		requirements, application_deadline, is_active, created_at, updated_at FROM jobs`
	jobReturning = ` RETURNING id::text AS id, company_id::text AS company_id, title, description, location, job_type, salary,
		requirements, application_deadline, is_active, created_at, updated_at`
)

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates and verifies a pgxpool connection pool.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres driver requires DATABASE_URL")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Driver() string { return DriverPostgres }

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Close() { p.pool.Close() }

func (p *Postgres) CreateCompany(ctx context.Context, c *models.Company) error {
	cols, args := insertArgs(companyInsert(c))
	rows, err := p.pool.Query(ctx,
		fmt.Sprintf("INSERT INTO companies (%s) VALUES (%s)", cols, placeholders(len(args)))+companyReturning,
		args...)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[companyRow])
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	*c = row.model()
	return nil
}

func (p *Postgres) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	rows, err := p.pool.Query(ctx, companySelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[companyRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	c := row.model()
	return &c, nil
}

func (p *Postgres) GetCompanies(ctx context.Context, ids []string) (map[string]models.Company, error) {
	out := make(map[string]models.Company, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := p.pool.Query(ctx, companySelect+` WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get companies: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[companyRow])
	if err != nil {
		return nil, fmt.Errorf("get companies: %w", err)
	}
	for _, r := range found {
		out[r.ID] = r.model()
	}
	return out, nil
}

func (p *Postgres) ListCompanies(ctx context.Context, q query.Query) ([]models.Company, int64, error) {
	where, args, err := sqlFilter(q, companyColumns)
	if err != nil {
		return nil, 0, err
	}
	order, err := sqlOrder(q.Sort, companyColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM companies`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	n := len(args)
	rows, err := p.pool.Query(ctx,
		companySelect+where+order+fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2),
		append(args, q.Limit, q.Skip())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[companyRow])
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}

	companies := make([]models.Company, 0, len(found))
	for _, r := range found {
		companies = append(companies, r.model())
	}
	return companies, total, nil
}

func (p *Postgres) ListCompanyIDs(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT id::text FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list company ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list company ids: %w", err)
	}
	return ids, nil
}

func (p *Postgres) AdjustOpenPositions(ctx context.Context, companyID string, delta int) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE companies
		 SET open_positions = GREATEST(open_positions + $2, 0),
		     updated_at     = NOW()
		 WHERE id = $1`,
		companyID, delta)
	if err != nil {
		return fmt.Errorf("adjust open positions for %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SetOpenPositions(ctx context.Context, companyID string, n int) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE companies SET open_positions = $2, updated_at = NOW() WHERE id = $1`,
		companyID, n)
	if err != nil {
		return fmt.Errorf("set open positions for %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CreateJob(ctx context.Context, j *models.Job) error {
	cols, args := insertArgs(jobInsert(j))
	rows, err := p.pool.Query(ctx,
		fmt.Sprintf("INSERT INTO jobs (%s) VALUES (%s)", cols, placeholders(len(args)))+jobReturning,
		args...)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[jobRow])
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	*j = row.model()
	return nil
}

func (p *Postgres) GetJob(ctx context.Context, id string) (*models.Job, error) {
	rows, err := p.pool.Query(ctx, jobSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[jobRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	j := row.model()
	return &j, nil
}

func (p *Postgres) ListJobs(ctx context.Context, q query.Query) ([]models.Job, int64, error) {
	where, args, err := sqlFilter(q, jobColumns)
	if err != nil {
		return nil, 0, err
	}
	order, err := sqlOrder(q.Sort, jobColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	n := len(args)
	rows, err := p.pool.Query(ctx,
		jobSelect+where+order+fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2),
		append(args, q.Limit, q.Skip())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[jobRow])
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]models.Job, 0, len(found))
	for _, r := range found {
		jobs = append(jobs, r.model())
	}
	return jobs, total, nil
}

func (p *Postgres) CountJobs(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM jobs WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count jobs for %s: %w", companyID, err)
	}
	return n, nil
}

func (p *Postgres) UpdateJob(ctx context.Context, id string, u models.JobUpdate) (*models.Job, error) {
	data := jobUpdateColumns(u)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	for _, k := range keys {
		args = append(args, data[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}

	rows, err := p.pool.Query(ctx,
		`UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE id = $1`+jobReturning,
		args...)
	if err != nil {
		return nil, fmt.Errorf("update job %s: %w", id, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[jobRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update job %s: %w", id, err)
	}
	j := row.model()
	return &j, nil
}

func (p *Postgres) DeleteJob(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// insertArgs flattens a column map into a sorted column list and its values.
func insertArgs(data map[string]interface{}) (string, []any) {
	cols := make([]string, 0, len(data))
	for k := range data {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	args := make([]any, 0, len(cols))
	for _, k := range cols {
		args = append(args, data[k])
	}
	return strings.Join(cols, ", "), args
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}
