package cmd

import (
	"sync"
	"testing"
)

func TestProgressPrinterConcurrentUpdates(t *testing.T) {
	p := newProgressPrinter(100, "acme")
	p.Start()
	defer p.Stop()

	var wg sync.WaitGroup
	for i := int64(1); i <= 100; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			p.Update(n, n/2, 0)
		}(i)
	}
	wg.Wait()

	p.mu.Lock()
	completed := p.completed
	p.mu.Unlock()
	if completed < 1 || completed > 100 {
		t.Errorf("completed = %d, want a value reported by some update", completed)
	}
}

func TestProgressPrinterZeroTotal(t *testing.T) {
	p := newProgressPrinter(0, "acme")
	if p.total != 1 {
		t.Errorf("total = %d, zero totals must be clamped to avoid division by zero", p.total)
	}
	p.Start()
	p.Stop()
}

func TestProgressPrinterStopIdempotent(t *testing.T) {
	p := newProgressPrinter(10, "acme")
	p.Start()
	p.Stop()
	p.Stop() // second stop must not panic
}
