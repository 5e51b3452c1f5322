// Package counter keeps Company.openPositions roughly in step with the jobs
// posted under each company.
//
// The counter means "jobs ever created minus jobs deleted". Job updates,
// including isActive toggles, never touch it. Adjustments run after the job
// write has already succeeded and are best-effort: callers log a failure and
// leave it for Reconcile to repair.
package counter

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"jobboard/api/internal/store"
)

// Maintainer applies counter adjustments against a store.
type Maintainer struct {
	companies store.Companies
	jobs      store.Jobs
	log       *logrus.Logger
}

// New returns a Maintainer.
func New(companies store.Companies, jobs store.Jobs, log *logrus.Logger) *Maintainer {
	return &Maintainer{companies: companies, jobs: jobs, log: log}
}

// JobCreated increments the owning company's counter.
func (m *Maintainer) JobCreated(ctx context.Context, companyID string) error {
	return m.adjust(ctx, companyID, 1)
}

// JobDeleted decrements the owning company's counter, never below zero.
func (m *Maintainer) JobDeleted(ctx context.Context, companyID string) error {
	return m.adjust(ctx, companyID, -1)
}

func (m *Maintainer) adjust(ctx context.Context, companyID string, delta int) error {
	if err := m.companies.AdjustOpenPositions(ctx, companyID, delta); err != nil {
		return fmt.Errorf("adjust openPositions by %d for %s: %w", delta, companyID, err)
	}
	return nil
}

// Reconcile recomputes a company's counter from the jobs that reference it
// and returns the stored value.
func (m *Maintainer) Reconcile(ctx context.Context, companyID string) (int, error) {
	if _, err := m.companies.GetCompany(ctx, companyID); err != nil {
		return 0, err
	}
	n, err := m.jobs.CountJobs(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("count jobs for %s: %w", companyID, err)
	}
	if err := m.companies.SetOpenPositions(ctx, companyID, int(n)); err != nil {
		return 0, err
	}
	m.log.WithFields(logrus.Fields{
		"company_id":     companyID,
		"open_positions": n,
	}).Info("openPositions reconciled")
	return int(n), nil
}
