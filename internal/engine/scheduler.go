package engine

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/arena"
)

// Ticker delivers periodic ticks. *time.Ticker is adapted by NewTimeTicker;
// tests supply their own to step time by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// timerHandle identifies one armed timer. At most one is live per engine.
type timerHandle struct {
	gen  uint64
	stop chan struct{}
}

// armLocked cancels any live handle and starts a new ticking goroutine.
func (e *Engine) armLocked() {
	e.disarmLocked()
	e.gen++
	h := &timerHandle{gen: e.gen, stop: make(chan struct{})}
	e.handle = h
	t := e.newTicker(e.state.Config.TickPeriod())
	e.log.Debug("timer armed", "game", e.state.GameID, "gen", h.gen, "period", e.state.Config.TickPeriod())
	go e.run(h, t)
}

// disarmLocked cancels the live handle, if any.
func (e *Engine) disarmLocked() {
	if e.handle == nil {
		return
	}
	close(e.handle.stop)
	e.log.Debug("timer disarmed", "game", e.state.GameID, "gen", e.handle.gen)
	e.handle = nil
}

func (e *Engine) run(h *timerHandle, t Ticker) {
	defer t.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-t.C():
			if !e.fire(h) {
				return
			}
		}
	}
}

// fire runs one scheduled tick. It reports false once h is no longer live.
func (e *Engine) fire(h *timerHandle) bool {
	e.mu.Lock()
	// A tick that raced with cancellation is dropped
	if e.handle != h || e.state.Status != arena.StatusPlaying {
		e.mu.Unlock()
		return false
	}
	e.tickLocked()
	live := e.handle == h
	e.unlockAndEmit()
	return live
}
