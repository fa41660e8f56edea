package alert

import (
	"sync"
	"time"
)

// Engine owns the delivered-alert history and decides which candidates are
// worth delivering. A repeat of the same (symbol, kind) within the cooldown
// window is suppressed. History is bounded: once the cap is exceeded the
// oldest entries are dropped regardless of cooldown status, so a very old
// alert may re-fire slightly early. That is the accepted memory/correctness
// tradeoff.
type Engine struct {
	mu       sync.Mutex
	history  []Alert
	cooldown time.Duration
	limit    int
	now      func() time.Time
}

func NewEngine(cooldown time.Duration, historyLimit int) *Engine {
	return &Engine{
		cooldown: cooldown,
		limit:    historyLimit,
		now:      time.Now,
	}
}

// Admit filters candidates against the history and records the survivors.
// Output preserves input order. An alert admitted earlier in the same call
// is already visible to later scans, so in-batch duplicates are suppressed
// too.
func (e *Engine) Admit(candidates []Alert) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var admitted []Alert

	for _, cand := range candidates {
		if e.isDuplicate(cand, now) {
			continue
		}
		admitted = append(admitted, cand)
		e.history = append(e.history, cand)
	}

	if len(e.history) > e.limit {
		e.history = e.history[len(e.history)-e.limit:]
	}

	return admitted
}

func (e *Engine) isDuplicate(cand Alert, now time.Time) bool {
	for _, prev := range e.history {
		if prev.Symbol == cand.Symbol && prev.Kind == cand.Kind &&
			now.Sub(prev.Timestamp) < e.cooldown {
			return true
		}
	}
	return false
}

// Recent returns up to n delivered alerts, newest first.
func (e *Engine) Recent(n int) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n > len(e.history) {
		n = len(e.history)
	}
	out := make([]Alert, 0, n)
	for i := len(e.history) - 1; i >= len(e.history)-n; i-- {
		out = append(out, e.history[i])
	}
	return out
}
