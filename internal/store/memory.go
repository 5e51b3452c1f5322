package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobboard/api/internal/query"
	"jobboard/api/models"
)

// Memory is a Store kept entirely in process memory.
type Memory struct {
	mu        sync.RWMutex
	companies map[string]models.Company
	jobs      map[string]models.Job
	now       func() time.Time
	last      time.Time
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{
		companies: make(map[string]models.Company),
		jobs:      make(map[string]models.Job),
		now:       time.Now,
	}
}

// Driver implements Store.
func (m *Memory) Driver() string { return DriverMemory }

// Ping implements Store.
func (m *Memory) Ping(context.Context) error { return nil }

// Close implements Store.
func (m *Memory) Close() {}

// stamp returns a strictly increasing creation time so insertion order is
// preserved even when the clock does not advance between calls.
func (m *Memory) stamp() time.Time {
	t := m.now().UTC()
	if !t.After(m.last) {
		t = m.last.Add(time.Microsecond)
	}
	m.last = t
	return t
}

func (m *Memory) CreateCompany(_ context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = m.stamp()
	c.UpdatedAt = c.CreatedAt
	if c.JobTypes == nil {
		c.JobTypes = []string{}
	}
	m.companies[c.ID] = cloneCompany(*c)
	return nil
}

func (m *Memory) GetCompany(_ context.Context, id string) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.companies[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = cloneCompany(c)
	return &c, nil
}

func (m *Memory) GetCompanies(_ context.Context, ids []string) (map[string]models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]models.Company, len(ids))
	for _, id := range ids {
		if c, ok := m.companies[id]; ok {
			out[id] = cloneCompany(c)
		}
	}
	return out, nil
}

func (m *Memory) ListCompanies(_ context.Context, q query.Query) ([]models.Company, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.Company
	for _, c := range m.companies {
		if q.Matches(companyFields(c)) {
			matched = append(matched, cloneCompany(c))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := companyFields(matched[i]), companyFields(matched[j])
		if q.Less(a, b) {
			return true
		}
		if q.Less(b, a) {
			return false
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, q), int64(len(matched)), nil
}

func (m *Memory) ListCompanyIDs(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.companies))
	for id := range m.companies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) AdjustOpenPositions(_ context.Context, companyID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[companyID]
	if !ok {
		return ErrNotFound
	}
	c.OpenPositions = max(c.OpenPositions+delta, 0)
	c.UpdatedAt = m.now().UTC()
	m.companies[companyID] = c
	return nil
}

func (m *Memory) SetOpenPositions(_ context.Context, companyID string, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[companyID]
	if !ok {
		return ErrNotFound
	}
	c.OpenPositions = n
	c.UpdatedAt = m.now().UTC()
	m.companies[companyID] = c
	return nil
}

func (m *Memory) CreateJob(_ context.Context, j *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j.ID = uuid.NewString()
	j.CreatedAt = m.stamp()
	j.UpdatedAt = j.CreatedAt
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	m.jobs[j.ID] = cloneJob(*j)
	return nil
}

func (m *Memory) GetJob(_ context.Context, id string) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	j = cloneJob(j)
	return &j, nil
}

func (m *Memory) ListJobs(_ context.Context, q query.Query) ([]models.Job, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.Job
	for _, j := range m.jobs {
		if q.Matches(jobFields(j)) {
			matched = append(matched, cloneJob(j))
		}
	}
	sort.SliceStable(matched, func(i, k int) bool {
		a, b := jobFields(matched[i]), jobFields(matched[k])
		if q.Less(a, b) {
			return true
		}
		if q.Less(b, a) {
			return false
		}
		return matched[i].ID < matched[k].ID
	})
	return page(matched, q), int64(len(matched)), nil
}

func (m *Memory) CountJobs(_ context.Context, companyID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (m *Memory) UpdateJob(_ context.Context, id string, u models.JobUpdate) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Apply(&j)
	j.UpdatedAt = m.now().UTC()
	m.jobs[id] = cloneJob(j)
	j = cloneJob(j)
	return &j, nil
}

func (m *Memory) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func page[T any](items []T, q query.Query) []T {
	out := make([]T, 0)
	start := q.Skip()
	if start < 0 || start >= len(items) {
		return out
	}
	end := len(items)
	if q.Limit > 0 && q.Limit < len(items)-start {
		end = start + q.Limit
	}
	return append(out, items[start:end]...)
}

func companyFields(c models.Company) query.FieldFunc {
	return func(field string) any {
		switch field {
		case query.FieldName:
			return c.Name
		case query.FieldDescription:
			return c.Description
		case query.FieldIndustry:
			return c.Industry
		case query.FieldLocation:
			return c.Location
		case query.FieldRating:
			return c.Rating
		case query.FieldFeatured:
			return c.Featured
		case query.FieldJobTypes:
			return c.JobTypes
		case query.FieldOpenPositions:
			return c.OpenPositions
		case query.FieldCreatedAt:
			return c.CreatedAt
		}
		return nil
	}
}

func jobFields(j models.Job) query.FieldFunc {
	return func(field string) any {
		switch field {
		case query.FieldCompanyID:
			return j.CompanyID
		case query.FieldJobType:
			return j.JobType
		case query.FieldLocation:
			return j.Location
		case query.FieldIsActive:
			return j.IsActive
		case query.FieldCreatedAt:
			return j.CreatedAt
		}
		return nil
	}
}

func cloneCompany(c models.Company) models.Company {
	c.JobTypes = append([]string{}, c.JobTypes...)
	return c
}

func cloneJob(j models.Job) models.Job {
	j.Requirements = append([]string{}, j.Requirements...)
	if j.Salary != nil {
		s := *j.Salary
		j.Salary = &s
	}
	if j.ApplicationDeadline != nil {
		d := *j.ApplicationDeadline
		j.ApplicationDeadline = &d
	}
	return j
}
