package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// progressPrinter renders a single-line progress display on stderr so that
// machine-readable output on stdout stays clean. Counter updates arrive from
// worker goroutines; the printer itself runs on one goroutine.
type progressPrinter struct {
	total      int
	target     string
	mu         sync.Mutex
	completed  int64
	discovered int64
	errors     int64
	updates    chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
}

func newProgressPrinter(total int, target string) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		total:   total,
		target:  target,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

// Update records the latest tallies. Safe for concurrent use.
func (p *progressPrinter) Update(completed, discovered, errors int64) {
	p.mu.Lock()
	p.completed = completed
	p.discovered = discovered
	p.errors = errors
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 100))
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	completed := p.completed
	discovered := p.discovered
	errors := p.errors
	p.mu.Unlock()

	percent := (float64(completed) / float64(p.total)) * 100

	line := fmt.Sprintf("\r[%s] Endpoints: %d/%d (%.0f%%) Discovered:%d Errors:%d",
		p.target, completed, p.total, percent, discovered, errors)
	fmt.Fprintf(os.Stderr, "%s", line)
}
