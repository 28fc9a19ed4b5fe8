// Package parallel runs independent term evaluations concurrently, one
// Heap per job. Evaluating a term graph here is synchronous and
// non-blocking per job (spec.md §1's call-by-need reduction loop never
// waits on another goroutine), so this package carries only what a
// bounded fan-out of independent jobs needs: a worker pool and its
// execution statistics. See DESIGN.md for what was dropped from the
// teacher's blocking-search scheduler and why.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerPool manages a fixed-size pool of goroutines that run submitted
// tasks. Unlike a blocking constraint search, a batch of term
// evaluations is a known, bounded set of independent jobs, so the pool
// here is static: no dynamic scaling, no work stealing, no deadlock
// detection. Those only earn their complexity when tasks can block on
// each other.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once

	stats *ExecutionStats
}

// NewWorkerPool creates a worker pool with the given number of workers.
// maxWorkers <= 0 defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*4),
		shutdownChan: make(chan struct{}),
		stats:        NewExecutionStats(),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for task := range wp.taskChan {
		startTime := time.Now()
		func() {
			defer func() {
				if r := recover(); r != nil {
					wp.stats.RecordTaskFailed(fmt.Errorf("task panicked: %v", r))
				}
			}()
			task()
			wp.stats.RecordTaskCompleted(time.Since(startTime))
		}()
	}
}

// Submit queues task for execution, blocking if the pool's queue is
// full until a slot opens, ctx is cancelled, or the pool is shut down.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.stats.RecordTaskSubmitted()

	select {
	case <-wp.shutdownChan:
		wp.stats.RecordTaskCancelled()
		return ErrPoolShutdown
	default:
	}

	select {
	case wp.taskChan <- task:
		wp.stats.RecordQueueDepth(len(wp.taskChan))
		return nil
	case <-ctx.Done():
		wp.stats.RecordTaskCancelled()
		return ctx.Err()
	case <-wp.shutdownChan:
		wp.stats.RecordTaskCancelled()
		return ErrPoolShutdown
	}
}

// Shutdown waits for queued and in-flight tasks to finish, then stops
// all workers. Safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		close(wp.taskChan)
		wp.workerWg.Wait()
		wp.stats.Finalize()
	})
}

// GetQueueDepth returns the number of tasks currently queued.
func (wp *WorkerPool) GetQueueDepth() int { return len(wp.taskChan) }

// GetMaxWorkers returns the pool's worker count.
func (wp *WorkerPool) GetMaxWorkers() int { return wp.maxWorkers }

// GetStats returns the pool's execution statistics collector.
func (wp *WorkerPool) GetStats() *ExecutionStats { return wp.stats }

// ErrPoolShutdown is returned when submitting to a shut-down pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// EvalJob names one independent term evaluation to run as part of a
// batch. Run builds, evaluates, and formats its own term graph against
// its own Heap; jobs share nothing, so they need no synchronization
// between each other beyond the pool's worker limit.
type EvalJob struct {
	Name string
	Run  func() (string, error)
}

// EvalResult is one job's outcome.
type EvalResult struct {
	Name   string
	Output string
}

// RunBatch submits every job to pool and waits for all of them to
// finish, returning results in the same order jobs were given
// regardless of completion order. A failing job does not stop the
// others: every job runs, and if any failed, the results are returned
// together with the first error in job order.
func RunBatch(pool *WorkerPool, jobs []EvalJob) ([]EvalResult, error) {
	results := make([]EvalResult, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	ctx := context.Background()

	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			out, err := job.Run()
			results[i] = EvalResult{Name: job.Name, Output: out}
			errs[i] = err
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ExecutionStats collects statistics for one WorkerPool's lifetime:
// task counts, queue depth, and timing, the way a batch run reports
// what it did without needing a full tracing setup.
type ExecutionStats struct {
	mu sync.RWMutex

	StartTime          time.Time
	EndTime            time.Time
	TotalExecutionTime time.Duration

	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64
	TasksCancelled int64

	PeakQueueDepth    int
	AverageQueueDepth float64

	TasksPerSecond      float64
	AverageTaskDuration time.Duration

	LastError  error
	ErrorCount int64

	queueDepthHistory   []int
	taskDurationHistory []time.Duration
}

// NewExecutionStats creates a statistics collector with its clock
// started.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		StartTime:           time.Now(),
		queueDepthHistory:   make([]int, 0, 256),
		taskDurationHistory: make([]time.Duration, 0, 256),
	}
}

// RecordTaskSubmitted records that a task was submitted for execution.
func (es *ExecutionStats) RecordTaskSubmitted() {
	atomic.AddInt64(&es.TasksSubmitted, 1)
}

// RecordTaskCompleted records a successfully completed task and its duration.
func (es *ExecutionStats) RecordTaskCompleted(duration time.Duration) {
	atomic.AddInt64(&es.TasksCompleted, 1)
	es.mu.Lock()
	es.taskDurationHistory = append(es.taskDurationHistory, duration)
	es.mu.Unlock()
}

// RecordTaskFailed records a task that panicked or otherwise errored.
func (es *ExecutionStats) RecordTaskFailed(err error) {
	atomic.AddInt64(&es.TasksFailed, 1)
	atomic.AddInt64(&es.ErrorCount, 1)
	es.mu.Lock()
	es.LastError = err
	es.mu.Unlock()
}

// RecordTaskCancelled records a task that never ran because its context
// was cancelled or the pool shut down first.
func (es *ExecutionStats) RecordTaskCancelled() {
	atomic.AddInt64(&es.TasksCancelled, 1)
}

// RecordQueueDepth records a queue depth sample for the peak/average report.
func (es *ExecutionStats) RecordQueueDepth(depth int) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if depth > es.PeakQueueDepth {
		es.PeakQueueDepth = depth
	}
	es.queueDepthHistory = append(es.queueDepthHistory, depth)
}

// Finalize computes derived statistics (averages, throughput) once a
// pool has been shut down. Calling GetStats before Finalize is fine;
// the derived fields are simply still zero.
func (es *ExecutionStats) Finalize() {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.EndTime = time.Now()
	es.TotalExecutionTime = es.EndTime.Sub(es.StartTime)

	if len(es.queueDepthHistory) > 0 {
		total := 0
		for _, d := range es.queueDepthHistory {
			total += d
		}
		es.AverageQueueDepth = float64(total) / float64(len(es.queueDepthHistory))
	}

	if len(es.taskDurationHistory) > 0 {
		var total time.Duration
		for _, d := range es.taskDurationHistory {
			total += d
		}
		es.AverageTaskDuration = total / time.Duration(len(es.taskDurationHistory))
	}

	if es.TotalExecutionTime > 0 {
		es.TasksPerSecond = float64(es.TasksCompleted) / es.TotalExecutionTime.Seconds()
	}
}

// GetStats returns a point-in-time copy of the statistics, safe to read
// while the pool keeps running.
func (es *ExecutionStats) GetStats() ExecutionStats {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return ExecutionStats{
		StartTime:           es.StartTime,
		EndTime:             es.EndTime,
		TotalExecutionTime:  es.TotalExecutionTime,
		TasksSubmitted:      atomic.LoadInt64(&es.TasksSubmitted),
		TasksCompleted:      atomic.LoadInt64(&es.TasksCompleted),
		TasksFailed:         atomic.LoadInt64(&es.TasksFailed),
		TasksCancelled:      atomic.LoadInt64(&es.TasksCancelled),
		PeakQueueDepth:      es.PeakQueueDepth,
		AverageQueueDepth:   es.AverageQueueDepth,
		TasksPerSecond:      es.TasksPerSecond,
		AverageTaskDuration: es.AverageTaskDuration,
		LastError:           es.LastError,
		ErrorCount:          atomic.LoadInt64(&es.ErrorCount),
		queueDepthHistory:   append([]int(nil), es.queueDepthHistory...),
		taskDurationHistory: append([]time.Duration(nil), es.taskDurationHistory...),
	}
}

// String renders a human-readable summary of the statistics.
func (es *ExecutionStats) String() string {
	stats := es.GetStats()

	lastErrorStr := "none"
	if stats.LastError != nil {
		lastErrorStr = stats.LastError.Error()
	}

	return fmt.Sprintf("ExecutionStats{\n"+
		"  Duration: %v\n"+
		"  Tasks: %d submitted, %d completed, %d failed, %d cancelled\n"+
		"  Queue: peak=%d, avg=%.1f\n"+
		"  Performance: %.1f tasks/sec, avg_task_time=%v\n"+
		"  Errors: %d total, last=%s\n"+
		"}",
		stats.TotalExecutionTime,
		stats.TasksSubmitted, stats.TasksCompleted, stats.TasksFailed, stats.TasksCancelled,
		stats.PeakQueueDepth, stats.AverageQueueDepth,
		stats.TasksPerSecond, stats.AverageTaskDuration,
		stats.ErrorCount, lastErrorStr)
}
