package engine

import (
	"log"
	"time"
)

// StartSweeper runs one reconciliation immediately, then repeats on the
// configured interval until Stop is called. Ticks run one at a time on a
// single goroutine: a tick due while the previous one is still running is
// simply delivered after it finishes, never concurrently, and missed ticks
// are not replayed — each sweep works from current state only. A failed
// sweep is logged and the next tick proceeds unaffected.
func (e *Engine) StartSweeper() {
	e.sweep()

	go func() {
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.sweep()
			case <-e.stopCh:
				return
			}
		}
	}()
}

func (e *Engine) sweep() {
	if n, err := e.ReconcileAll(time.Now()); err != nil {
		log.Printf("sweep error: %v", err)
	} else if n > 0 {
		log.Printf("sweep: completed %d reminders", n)
	}
}

// Stop shuts down the background sweeper. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}
