package scanner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ProgressFunc receives monotonically increasing tallies after every task.
// It may be invoked from multiple worker goroutines at once.
type ProgressFunc func(completed, discovered, errors int64)

// Stats are the final counters for a run. Discovered counts raw findings
// before any display deduplication.
type Stats struct {
	Total      int
	Discovered int64
	Errors     int64
}

// Runner executes a task list on a fixed-size worker pool with an optional
// inter-request delay.
type Runner struct {
	Threads  int
	Delay    time.Duration
	Logger   *zap.SugaredLogger
	Progress ProgressFunc
}

// Run drives all tasks through the pool batch by batch and returns every
// non-nil probe result in batch completion order. Batching only controls
// progress granularity; the batch sizing aims for roughly twenty updates
// across the run. Cancelling ctx stops submission after the current batch.
func (r *Runner) Run(ctx context.Context, tasks []Task, prober *Prober) ([]Result, Stats) {
	threads := r.Threads
	if threads <= 0 {
		threads = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if r.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(r.Delay), 1)
	}

	var completed, discovered, errored atomic.Int64

	sem := make(chan struct{}, threads)
	var mu sync.Mutex
	results := make([]Result, 0)

	runTask := func(task Task) {
		defer func() {
			done := completed.Add(1)
			if r.Progress != nil {
				r.Progress(done, discovered.Load(), errored.Load())
			}
		}()

		if err := limiter.Wait(ctx); err != nil {
			errored.Add(1)
			return
		}

		res, err := prober.Probe(ctx, task)
		if err != nil {
			errored.Add(1)
			if r.Logger != nil {
				r.Logger.Debugw("probe failed", "url", task.URL, "error", err)
			}
			return
		}
		if res == nil {
			return
		}

		discovered.Add(1)
		mu.Lock()
		results = append(results, *res)
		mu.Unlock()
	}

	for _, batch := range batchTasks(tasks) {
		if ctx.Err() != nil {
			break
		}
		var wg sync.WaitGroup
		for _, task := range batch {
			wg.Add(1)
			go func(t Task) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				runTask(t)
			}(task)
		}
		wg.Wait()
	}

	stats := Stats{
		Total:      len(tasks),
		Discovered: discovered.Load(),
		Errors:     errored.Load(),
	}
	return results, stats
}

// batchTasks splits the task list so that roughly twenty progress checkpoints
// occur over a run, with batch sizes clamped to [1, 10].
func batchTasks(tasks []Task) [][]Task {
	size := len(tasks) / 20
	if size < 1 {
		size = 1
	}
	if size > 10 {
		size = 10
	}

	batches := make([][]Task, 0, (len(tasks)+size-1)/size)
	for start := 0; start < len(tasks); start += size {
		end := start + size
		if end > len(tasks) {
			end = len(tasks)
		}
		batches = append(batches, tasks[start:end])
	}
	return batches
}
