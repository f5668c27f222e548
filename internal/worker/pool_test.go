package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockResult implements Result
type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

// mockJob implements Job
type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32 // atomic counter
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool(t *testing.T) {
	p1 := NewPool(context.Background(), 5)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(context.Background(), 0)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool(context.Background(), -1)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}
}

func TestPool_Execution(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	var executed int32
	count := 10

	for i := 0; i < count; i++ {
		pool.Submit(&mockJob{executed: &executed})
	}

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}

	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

// concurrencyJob tracks max concurrent executions
type concurrencyJob struct {
	mu       *sync.Mutex
	active   *int
	peak     *int
	duration time.Duration
}

func (j *concurrencyJob) Execute(ctx context.Context) Result {
	j.mu.Lock()
	*j.active++
	if *j.active > *j.peak {
		*j.peak = *j.active
	}
	j.mu.Unlock()

	time.Sleep(j.duration)

	j.mu.Lock()
	*j.active--
	j.mu.Unlock()

	return &mockResult{}
}

func TestPool_ConcurrencyLimit(t *testing.T) {
	workers := 3
	pool := NewPool(context.Background(), workers)
	pool.Start()

	var mu sync.Mutex
	active, peak := 0, 0

	for i := 0; i < 12; i++ {
		pool.Submit(&concurrencyJob{
			mu:       &mu,
			active:   &active,
			peak:     &peak,
			duration: 20 * time.Millisecond,
		})
	}

	pool.Wait()

	mu.Lock()
	defer mu.Unlock()
	if peak > workers {
		t.Errorf("expected at most %d concurrent jobs, observed %d", workers, peak)
	}
	if peak == 0 {
		t.Error("expected at least one job to run")
	}
}

func TestPool_BacklogLargerThanChannelCapacity(t *testing.T) {
	// Every source is submitted before Wait is called, so the pool must keep
	// draining results while submissions continue. With one worker the channel
	// buffers hold only a handful of jobs; a large backlog verifies Submit
	// never wedges against a full results channel.
	pool := NewPool(context.Background(), 1)
	pool.Start()

	var executed int32
	count := 64

	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < count; i++ {
			pool.Submit(&mockJob{executed: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != count {
			t.Errorf("expected %d results, got %d", count, len(results))
		}
		if atomic.LoadInt32(&executed) != int32(count) {
			t.Errorf("expected %d executed jobs, got %d", count, executed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Submit/Wait wedged: pool stopped draining results during submission")
	}
}

func TestPool_ParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	pool.Start()

	var executed int32
	for i := 0; i < 4; i++ {
		pool.Submit(&mockJob{duration: time.Minute, executed: &executed})
	}

	time.Sleep(10 * time.Millisecond)
	cancel()

	done := make(chan []Result, 1)
	go func() { done <- pool.Wait() }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected cancellation to unblock Wait")
	}

	if atomic.LoadInt32(&executed) == 0 {
		t.Error("expected at least one job to have started before cancellation")
	}
}

func TestPool_ErrorsPropagate(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(&mockJob{})
	pool.Submit(&mockJob{shouldErr: true})
	pool.Submit(&mockJob{shouldErr: true})

	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("expected 2 failed results, got %d", failures)
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	var executed int32
	pool.Submit(&mockJob{duration: time.Second, executed: &executed})

	// Give the worker a moment to pick up the job, then cancel
	time.Sleep(10 * time.Millisecond)
	pool.Shutdown()

	if atomic.LoadInt32(&executed) != 1 {
		t.Errorf("expected the in-flight job to have started, got %d", executed)
	}
}
