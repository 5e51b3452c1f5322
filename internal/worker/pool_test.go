package worker_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"jobboard/api/internal/worker"
)

type countTask struct {
	id   string
	wg   *sync.WaitGroup
	mu   *sync.Mutex
	seen map[string]int
	err  error
}

func (t countTask) ID() string { return t.id }

func (t countTask) Run(context.Context) error {
	defer t.wg.Done()
	t.mu.Lock()
	t.seen[t.id]++
	t.mu.Unlock()
	return t.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDispatcher_RunsEveryTaskOnce(t *testing.T) {
	d := worker.NewDispatcher(3, 20, quietLogger())
	d.Run(context.Background())
	defer d.Stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]int)
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		var err error
		if i%3 == 0 {
			err = errors.New("boom")
		}
		task := countTask{id: fmt.Sprintf("task-%d", i), wg: &wg, mu: &mu, seen: seen, err: err}
		if err := d.Submit(task); err != nil {
			t.Fatalf("Submit(%s): %v", task.id, err)
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tasks did not finish in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 10 {
		t.Errorf("ran %d distinct tasks, want 10", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("%s ran %d times", id, n)
		}
	}
}

type blockingTask struct{ release chan struct{} }

func (blockingTask) ID() string { return "blocking" }

func (b blockingTask) Run(context.Context) error {
	<-b.release
	return nil
}

func TestDispatcher_QueueFull(t *testing.T) {
	// Not started: nothing drains the queue.
	d := worker.NewDispatcher(1, 1, quietLogger())
	release := make(chan struct{})
	defer close(release)

	if err := d.Submit(blockingTask{release}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := d.Submit(blockingTask{release}); !errors.Is(err, worker.ErrQueueFull) {
		t.Errorf("second submit err = %v, want ErrQueueFull", err)
	}
}

func TestDispatcher_SubmitAfterStop(t *testing.T) {
	d := worker.NewDispatcher(2, 4, quietLogger())
	d.Run(context.Background())
	d.Stop()
	d.Stop() // idempotent

	var wg sync.WaitGroup
	task := countTask{id: "late", wg: &wg, mu: &sync.Mutex{}, seen: map[string]int{}}
	if err := d.Submit(task); !errors.Is(err, worker.ErrStopped) {
		t.Errorf("err = %v, want ErrStopped", err)
	}
}
