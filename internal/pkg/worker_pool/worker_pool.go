package worker_pool

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrPoolCanceled = errors.New("worker pool is canceled; task not accepted")

type TaskFunc func(ctx context.Context) (any, error)

// Task pairs a task function with the ID its result is reported under.
type Task struct {
	ID string
	Fn TaskFunc
}

// TaskResult holds the outcome of a finished task (its ID, result value, or error).
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

type workItem struct {
	id string
	fn TaskFunc
}

// WorkerPool runs submitted tasks on a fixed number of goroutines.
// ResultsCh is closed once every worker has exited.
type WorkerPool struct {
	tasksCh     chan workItem
	ResultsCh   chan TaskResult
	ctx         context.Context
	cancelFunc  context.CancelFunc
	workers     sync.WaitGroup
	stopOnError bool
	log         *log.Logger
}

// NewWorkerPool initializes the worker pool with the given number of workers.
// If stopOnError is true, the pool will cancel on the first task error.
func NewWorkerPool(parentCtx context.Context, numWorkers int, stopOnError bool, logger *log.Logger) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(parentCtx)
	wp := &WorkerPool{
		tasksCh:     make(chan workItem),
		ResultsCh:   make(chan TaskResult),
		ctx:         ctx,
		cancelFunc:  cancel,
		stopOnError: stopOnError,
		log:         logger,
	}
	wp.workers.Add(numWorkers)
	for i := 1; i <= numWorkers; i++ {
		go wp.worker(i)
	}
	logger.Debugf("worker pool started with %d workers", numWorkers)

	go func() {
		wp.workers.Wait()
		logger.Debug("all workers exited, closing results channel")
		close(wp.ResultsCh)
	}()
	return wp
}

// Submit adds a new task to the pool. It blocks until a worker is free and
// returns ErrPoolCanceled once the pool is stopped.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) error {
	select {
	case <-wp.ctx.Done():
		wp.log.Warnf("Submit rejected for task %s: pool is shutting down", id)
		return ErrPoolCanceled
	default:
	}

	select {
	case wp.tasksCh <- workItem{id: id, fn: taskFn}:
		return nil
	case <-wp.ctx.Done():
		wp.log.Warnf("Submit failed for task %s: pool was canceled", id)
		return ErrPoolCanceled
	}
}

// RunAll submits every task and collects their results in submission order.
// Tasks that never ran (pool canceled first) carry ErrPoolCanceled. Task IDs
// must be unique.
func (wp *WorkerPool) RunAll(tasks []Task) []TaskResult {
	index := make(map[string]int, len(tasks))
	results := make([]TaskResult, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
		results[i] = TaskResult{ID: t.ID, Err: ErrPoolCanceled}
	}

	submitted := make(chan int, 1)
	go func() {
		n := 0
		for _, t := range tasks {
			if err := wp.Submit(t.ID, t.Fn); err != nil {
				break
			}
			n++
		}
		submitted <- n
	}()

	received, pending := 0, -1
	for pending < 0 || received < pending {
		select {
		case n := <-submitted:
			pending = n
		case res, ok := <-wp.ResultsCh:
			if !ok {
				return results
			}
			if i, found := index[res.ID]; found {
				results[i] = res
			}
			received++
		}
	}
	return results
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.workers.Done()
	for {
		select {
		case <-wp.ctx.Done():
			wp.log.Debugf("worker %d exiting due to cancellation", workerID)
			return
		case task := <-wp.tasksCh:
			wp.log.Debugf("worker %d starting task %s", workerID, task.id)
			result, err := task.fn(wp.ctx)
			if err != nil {
				wp.log.Errorf("task %s failed: %v", task.id, err)
			}

			select {
			case wp.ResultsCh <- TaskResult{ID: task.id, Result: result, Err: err}:
			case <-wp.ctx.Done():
				wp.log.Warnf("dropping result of task %s: pool was canceled", task.id)
				return
			}

			if err != nil && wp.stopOnError {
				wp.log.Warnf("StopOnError active - canceling pool due to error in task %s", task.id)
				wp.cancelFunc()
			}
		}
	}
}

// Stop cancels the pool context. Workers exit after their current task.
func (wp *WorkerPool) Stop() {
	wp.log.Debug("stop invoked: canceling worker pool")
	wp.cancelFunc()
}
