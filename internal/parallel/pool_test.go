package parallel

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestExecutionStats(t *testing.T) {
	stats := NewExecutionStats()

	if stats.TasksSubmitted != 0 {
		t.Errorf("expected 0 tasks submitted initially, got %d", stats.TasksSubmitted)
	}

	stats.RecordTaskSubmitted()
	if stats.TasksSubmitted != 1 {
		t.Errorf("expected 1 task submitted, got %d", stats.TasksSubmitted)
	}

	stats.RecordTaskCompleted(100 * time.Millisecond)
	if stats.TasksCompleted != 1 {
		t.Errorf("expected 1 task completed, got %d", stats.TasksCompleted)
	}

	err := context.DeadlineExceeded
	stats.RecordTaskFailed(err)
	if stats.TasksFailed != 1 {
		t.Errorf("expected 1 task failed, got %d", stats.TasksFailed)
	}
	if stats.LastError != err {
		t.Errorf("expected last error %v, got %v", err, stats.LastError)
	}

	stats.RecordQueueDepth(10)
	if stats.PeakQueueDepth != 10 {
		t.Errorf("expected peak queue depth 10, got %d", stats.PeakQueueDepth)
	}

	stats.Finalize()
	if stats.TotalExecutionTime <= 0 {
		t.Errorf("expected positive total execution time, got %v", stats.TotalExecutionTime)
	}
}

func TestWorkerPoolWithStats(t *testing.T) {
	pool := NewWorkerPool(4)

	stats := pool.GetStats()
	if stats == nil {
		t.Fatal("expected non-nil stats")
	}

	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
		}
		if err := pool.Submit(ctx, task); err != nil {
			t.Errorf("failed to submit task: %v", err)
		}
	}

	wg.Wait()
	pool.Shutdown()

	finalStats := stats.GetStats()
	if finalStats.TasksSubmitted != 5 {
		t.Errorf("expected 5 tasks submitted, got %d", finalStats.TasksSubmitted)
	}
	if finalStats.TasksCompleted != 5 {
		t.Errorf("expected 5 tasks completed, got %d", finalStats.TasksCompleted)
	}
}

func TestWorkerPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Shutdown()

	err := pool.Submit(context.Background(), func() {})
	if err != ErrPoolShutdown {
		t.Errorf("expected ErrPoolShutdown, got %v", err)
	}
}

func TestRunBatch(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown()

	jobs := make([]EvalJob, 0, 5)
	for i := 0; i < 5; i++ {
		i := i
		jobs = append(jobs, EvalJob{
			Name: fmt.Sprintf("job-%d", i),
			Run: func() (string, error) {
				return fmt.Sprintf("result-%d", i), nil
			},
		})
	}

	results, err := RunBatch(pool, jobs)
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for i, r := range results {
		wantName := fmt.Sprintf("job-%d", i)
		wantOutput := fmt.Sprintf("result-%d", i)
		if r.Name != wantName || r.Output != wantOutput {
			t.Errorf("result %d: got {%s %s}, want {%s %s}", i, r.Name, r.Output, wantName, wantOutput)
		}
	}
}

func TestRunBatchPropagatesError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown()

	boom := fmt.Errorf("boom")
	jobs := []EvalJob{
		{Name: "ok", Run: func() (string, error) { return "fine", nil }},
		{Name: "bad", Run: func() (string, error) { return "", boom }},
	}

	_, err := RunBatch(pool, jobs)
	if err != boom {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func BenchmarkWorkerPool(b *testing.B) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			task := func() {
				time.Sleep(1 * time.Millisecond)
			}
			pool.Submit(ctx, task)
		}
	})
}
