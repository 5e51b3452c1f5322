// Package store persists companies and jobs.
//
// Drivers:
//
//	memory    → in-process maps (development, tests)
//	postgrest → Supabase PostgREST over HTTP
//	postgres  → direct SQL through a pgx pool
package store

import (
	"context"
	"errors"
	"fmt"

	"jobboard/api/internal/query"
	"jobboard/api/models"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Companies is the company half of a Store.
type Companies interface {
	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	// GetCompanies returns the companies with the given ids keyed by id.
	// Unknown ids are simply absent from the map.
	GetCompanies(ctx context.Context, ids []string) (map[string]models.Company, error)
	ListCompanies(ctx context.Context, q query.Query) ([]models.Company, int64, error)
	ListCompanyIDs(ctx context.Context) ([]string, error)
	// AdjustOpenPositions atomically adds delta to the counter, never going below zero.
	AdjustOpenPositions(ctx context.Context, companyID string, delta int) error
	SetOpenPositions(ctx context.Context, companyID string, n int) error
}

// Jobs is the job half of a Store.
type Jobs interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context, q query.Query) ([]models.Job, int64, error)
	CountJobs(ctx context.Context, companyID string) (int64, error)
	UpdateJob(ctx context.Context, id string, u models.JobUpdate) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// Store is the full persistence contract used by the handlers.
type Store interface {
	Companies
	Jobs
	Ping(ctx context.Context) error
	Close()
	Driver() string
}

// Options configures Open.
type Options struct {
	Driver      string
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
}

// Open returns the Store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverPostgREST:
		return NewPostgREST(opts.SupabaseURL, opts.SupabaseKey)
	case DriverPostgres:
		return NewPostgres(ctx, opts.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}

// Driver names accepted by Open.
const (
	DriverMemory    = "memory"
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
)
