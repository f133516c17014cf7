package services

import (
	"context"
	"sync"
	"time"
)

const (
	taskQueueDepth  = 256
	taskMaxAttempts = 3
	taskRetryDelay  = 2 * time.Second
	taskTimeout     = 10 * time.Second
)

type task struct {
	name string
	run  func(ctx context.Context) error
}

// TaskQueue runs best-effort side effects (streak updates, badge evaluation)
// off the commit critical path. Each task gets a few attempts with a fixed
// delay; exhausted tasks are dropped with a logged warning, never surfaced.
type TaskQueue struct {
	ch   chan task
	wg   sync.WaitGroup
	once sync.Once
}

// NewTaskQueue creates a queue and starts its single worker goroutine.
func NewTaskQueue() *TaskQueue {
	q := &TaskQueue{ch: make(chan task, taskQueueDepth)}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Enqueue schedules a task. When the queue is saturated the task runs inline
// once, so a slow worker degrades to fire-and-forget instead of blocking the
// commit response.
func (q *TaskQueue) Enqueue(name string, run func(ctx context.Context) error) {
	select {
	case q.ch <- task{name: name, run: run}:
	default:
		warnf("task queue full, running %s inline", name)
		q.attempt(task{name: name, run: run}, 1)
	}
}

// Close stops the worker after draining queued tasks.
func (q *TaskQueue) Close() {
	q.once.Do(func() { close(q.ch) })
	q.wg.Wait()
}

func (q *TaskQueue) worker() {
	defer q.wg.Done()
	for t := range q.ch {
		for attempt := 1; attempt <= taskMaxAttempts; attempt++ {
			if q.attempt(t, attempt) {
				break
			}
			if attempt < taskMaxAttempts {
				time.Sleep(taskRetryDelay)
			} else {
				warnf("task %s dropped after %d attempts", t.name, taskMaxAttempts)
			}
		}
	}
}

func (q *TaskQueue) attempt(t task, attempt int) bool {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()
	if err := t.run(ctx); err != nil {
		warnf("task %s attempt %d failed: %v", t.name, attempt, err)
		return false
	}
	return true
}
