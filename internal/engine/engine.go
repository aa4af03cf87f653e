package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/lazypower/selfcare/internal/llm"
	"github.com/lazypower/selfcare/internal/store"
)

// ErrNotConfigured is returned by Suggest and Chat when no generation
// provider was configured at startup.
var ErrNotConfigured = errors.New("generation service not configured")

// Engine owns the reminder lifecycle and AI-assisted responses: it decides
// when reminders transition to completed, runs the background sweep, and
// orchestrates prompt construction and generation.
type Engine struct {
	DB  *store.DB
	Gen *llm.Generator

	// Pick selects a random index for generic prompt selection; replace to
	// make selection deterministic in tests.
	Pick func(n int) int

	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates an Engine. gen may be nil, which disables Suggest and Chat.
func New(db *store.DB, gen *llm.Generator, sweepInterval time.Duration) *Engine {
	return &Engine{
		DB:       db,
		Gen:      gen,
		Pick:     llm.DefaultPick,
		interval: sweepInterval,
		stopCh:   make(chan struct{}),
	}
}
