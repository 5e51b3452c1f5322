// Package worker runs background tasks on a fixed pool of goroutines.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by Submit when the task queue has no free slot.
var ErrQueueFull = errors.New("task queue full")

// ErrStopped is returned by Submit after Stop has been called.
var ErrStopped = errors.New("dispatcher stopped")

// Task is a unit of background work.
type Task interface {
	Run(ctx context.Context) error
	ID() string
}

// Worker pulls tasks from the dispatcher's pool of worker channels.
type Worker struct {
	ID         int
	WorkerPool chan chan Task // Shared pool this worker registers its channel in
	TaskChan   chan Task      // Receives tasks dispatched to this worker
	quit       <-chan struct{}
	log        *logrus.Logger
}

// NewWorker creates a new Worker.
func NewWorker(id int, workerPool chan chan Task, quit <-chan struct{}, log *logrus.Logger) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		TaskChan:   make(chan Task),
		quit:       quit,
		log:        log,
	}
}

// Start makes the Worker listen for tasks until quit is closed.
func (w Worker) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			// Register the current worker's task channel to the pool.
			select {
			case w.WorkerPool <- w.TaskChan:
			case <-w.quit:
				return
			}

			select {
			case task := <-w.TaskChan:
				entry := w.log.WithFields(logrus.Fields{"worker": w.ID, "task": task.ID()})
				if err := task.Run(ctx); err != nil {
					entry.WithError(err).Error("Task failed")
				} else {
					entry.Debug("Task finished")
				}
			case <-w.quit:
				return
			}
		}
	}()
}

// Dispatcher manages a pool of workers and hands queued tasks to them.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Task
	TaskQueue  chan Task

	log     *logrus.Logger
	quit    chan struct{}
	wg      sync.WaitGroup
	stopMu  sync.RWMutex
	stopped bool
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(maxWorkers, queueSize int, log *logrus.Logger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Task, maxWorkers),
		TaskQueue:  make(chan Task, queueSize),
		log:        log,
		quit:       make(chan struct{}),
	}
}

// Run starts the workers and the dispatch loop. ctx is handed to every task.
func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Infof("Dispatcher starting with %d workers", d.MaxWorkers)
	for i := 1; i <= d.MaxWorkers; i++ {
		NewWorker(i, d.WorkerPool, d.quit, d.log).Start(ctx, &d.wg)
	}

	d.wg.Add(1)
	go d.dispatch()
}

// dispatch waits for a free worker for every queued task.
func (d *Dispatcher) dispatch() {
	defer d.wg.Done()
	for {
		select {
		case task := <-d.TaskQueue:
			select {
			case taskChan := <-d.WorkerPool:
				select {
				case taskChan <- task:
				case <-d.quit:
					return
				}
			case <-d.quit:
				d.log.WithField("task", task.ID()).Warn("Dispatcher stopped before task ran")
				return
			}
		case <-d.quit:
			return
		}
	}
}

// Submit enqueues a task without blocking.
func (d *Dispatcher) Submit(task Task) error {
	d.stopMu.RLock()
	defer d.stopMu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.TaskQueue <- task:
		d.log.WithField("task", task.ID()).Debug("Task submitted")
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop signals every worker to exit after its current task and waits for
// them. Queued tasks that have not started are dropped.
func (d *Dispatcher) Stop() {
	d.stopMu.Lock()
	if d.stopped {
		d.stopMu.Unlock()
		return
	}
	d.stopped = true
	d.stopMu.Unlock()

	d.log.Info("Dispatcher: initiating shutdown")
	close(d.quit)
	d.wg.Wait()
	d.log.Info("Dispatcher: all workers have stopped")
}
