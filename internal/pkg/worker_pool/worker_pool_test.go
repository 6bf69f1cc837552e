package worker_pool

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllKeepsSubmissionOrder(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 3, false, log.New())
	defer pool.Stop()

	var tasks []Task
	for i := 0; i < 6; i++ {
		i := i
		tasks = append(tasks, Task{
			ID: fmt.Sprintf("task-%d", i),
			Fn: func(ctx context.Context) (any, error) {
				// later tasks finish first
				time.Sleep(time.Duration(6-i) * time.Millisecond)
				return i * 10, nil
			},
		})
	}

	results := pool.RunAll(tasks)
	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("task-%d", i), res.ID)
		assert.NoError(t, res.Err)
		assert.Equal(t, i*10, res.Result)
	}
}

func TestRunAllReportsTaskErrors(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 2, false, log.New())
	defer pool.Stop()

	boom := errors.New("boom")
	results := pool.RunAll([]Task{
		{ID: "ok", Fn: func(ctx context.Context) (any, error) { return "fine", nil }},
		{ID: "fail", Fn: func(ctx context.Context) (any, error) { return nil, boom }},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "fine", results[0].Result)
	assert.ErrorIs(t, results[1].Err, boom)
}

func TestRunAllEmpty(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, false, log.New())
	defer pool.Stop()

	assert.Empty(t, pool.RunAll(nil))
}

func TestStopOnErrorCancelsRemainingTasks(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, true, log.New())
	defer pool.Stop()

	var ran atomic.Int32
	boom := errors.New("boom")
	results := pool.RunAll([]Task{
		{ID: "first", Fn: func(ctx context.Context) (any, error) { ran.Add(1); return nil, boom }},
		{ID: "second", Fn: func(ctx context.Context) (any, error) { ran.Add(1); return nil, nil }},
		{ID: "third", Fn: func(ctx context.Context) (any, error) { ran.Add(1); return nil, nil }},
	})

	require.Len(t, results, 3)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.ErrorIs(t, results[2].Err, ErrPoolCanceled)
	assert.Less(t, ran.Load(), int32(3))
}

func TestSubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(context.Background(), 1, false, log.New())
	pool.Stop()

	err := pool.Submit("late", func(ctx context.Context) (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrPoolCanceled)

	// results channel is closed once the workers are gone
	select {
	case _, ok := <-pool.ResultsCh:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("results channel was not closed")
	}
}
