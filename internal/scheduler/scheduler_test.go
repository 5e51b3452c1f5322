package scheduler_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"jobboard/api/internal/counter"
	"jobboard/api/internal/scheduler"
	"jobboard/api/internal/store"
	"jobboard/api/internal/worker"
	"jobboard/api/models"
)

// inlinePool runs tasks synchronously on Submit.
type inlinePool struct {
	ran []string
}

func (p *inlinePool) Submit(task worker.Task) error {
	p.ran = append(p.ran, task.ID())
	return task.Run(context.Background())
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestReconcileAll(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	log := quietLogger()

	drifted := models.Company{Name: "Drifted", OpenPositions: 10}
	empty := models.Company{Name: "Empty", OpenPositions: 3}
	for _, c := range []*models.Company{&drifted, &empty} {
		if err := s.CreateCompany(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	job := models.Job{CompanyID: drifted.ID, Title: "t", Description: "d", Location: "l", JobType: models.JobTypeContract}
	if err := s.CreateJob(ctx, &job); err != nil {
		t.Fatal(err)
	}

	pool := &inlinePool{}
	sched := scheduler.New("@every 1h", s, counter.New(s, s, log), pool, log)

	queued, err := sched.ReconcileAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if queued != 2 || len(pool.ran) != 2 {
		t.Errorf("queued = %d, ran = %v; want 2", queued, pool.ran)
	}

	got, _ := s.GetCompany(ctx, drifted.ID)
	if got.OpenPositions != 1 {
		t.Errorf("Drifted openPositions = %d, want 1", got.OpenPositions)
	}
	got, _ = s.GetCompany(ctx, empty.ID)
	if got.OpenPositions != 0 {
		t.Errorf("Empty openPositions = %d, want 0", got.OpenPositions)
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := store.NewMemory()
	log := quietLogger()
	sched := scheduler.New("every so often", s, counter.New(s, s, log), &inlinePool{}, log)
	if err := sched.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestReconcileTask_ID(t *testing.T) {
	task := scheduler.ReconcileTask{CompanyID: "abc"}
	if task.ID() != "reconcile:abc" {
		t.Errorf("ID() = %q", task.ID())
	}
}
