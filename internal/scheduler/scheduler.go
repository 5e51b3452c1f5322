// Package scheduler wires up the cron job that periodically recomputes every
// company's openPositions counter.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"jobboard/api/internal/counter"
	"jobboard/api/internal/store"
	"jobboard/api/internal/worker"
)

// Submitter accepts background tasks. *worker.Dispatcher satisfies it.
type Submitter interface {
	Submit(task worker.Task) error
}

// ReconcileTask recomputes one company's counter.
type ReconcileTask struct {
	Maintainer *counter.Maintainer
	CompanyID  string
}

func (t ReconcileTask) ID() string { return "reconcile:" + t.CompanyID }

func (t ReconcileTask) Run(ctx context.Context) error {
	_, err := t.Maintainer.Reconcile(ctx, t.CompanyID)
	return err
}

// Scheduler wraps robfig/cron and fans reconcile passes out to the worker pool.
type Scheduler struct {
	cron       *cron.Cron
	spec       string // cron spec, e.g. "@every 6h"
	companies  store.Companies
	maintainer *counter.Maintainer
	pool       Submitter
	log        *logrus.Logger
}

// New creates a Scheduler firing on spec.
func New(spec string, companies store.Companies, maintainer *counter.Maintainer, pool Submitter, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		spec:       spec,
		companies:  companies,
		maintainer: maintainer,
		pool:       pool,
		log:        log,
	}
}

// Start registers the reconcile pass and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.ReconcileAll(ctx); err != nil {
			s.log.WithError(err).Error("[scheduler] Reconcile pass failed")
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Infof("[scheduler] Cron started, spec: %s", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running pass to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("[scheduler] Cron stopped")
}

// ReconcileAll queues a ReconcileTask for every company and returns how
// many were queued. Companies that do not fit in the queue are skipped
// until the next pass.
func (s *Scheduler) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.companies.ListCompanyIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list company ids: %w", err)
	}

	queued := 0
	for _, id := range ids {
		task := ReconcileTask{Maintainer: s.maintainer, CompanyID: id}
		if err := s.pool.Submit(task); err != nil {
			s.log.WithField("company_id", id).WithError(err).Warn("[scheduler] Reconcile task not queued")
			continue
		}
		queued++
	}
	s.log.Infof("[scheduler] Queued %d of %d reconcile task(s)", queued, len(ids))
	return queued, nil
}
