package engine

import (
	"slices"
	"sync"

	"github.com/vovakirdan/snake-arena/internal/arena"
)

// Observer receives a full copy of the state after every change. Observers
// run on the goroutine that made the change, one emission at a time, and
// must not call back into the engine synchronously. Use a Feed to hand
// snapshots to another goroutine.
type Observer func(arena.State)

// Subscribe registers o and returns a function that removes it.
func (e *Engine) Subscribe(o Observer) (unsubscribe func()) {
	e.obsMu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = o
	e.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.obsMu.Lock()
			delete(e.observers, id)
			e.obsMu.Unlock()
		})
	}
}

// unlockAndEmit copies the state, releases e.mu and delivers the copy to
// every observer. emitMu is taken before e.mu is released so emissions
// reach observers in the order the changes happened.
func (e *Engine) unlockAndEmit() {
	snap := e.state.Clone()
	e.emitMu.Lock()
	e.mu.Unlock()
	defer e.emitMu.Unlock()

	e.obsMu.RLock()
	ids := make([]int, 0, len(e.observers))
	for id := range e.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	obs := make([]Observer, 0, len(ids))
	for _, id := range ids {
		obs = append(obs, e.observers[id])
	}
	e.obsMu.RUnlock()

	for i, o := range obs {
		if i == 0 {
			o(snap)
			continue
		}
		o(snap.Clone())
	}
}

// Feed is a buffered subscription. When the buffer is full the oldest
// snapshot is dropped, so a slow reader only ever misses stale frames.
type Feed struct {
	events      chan arena.State
	mu          sync.Mutex
	closed      bool
	unsubscribe func()
}

// Feed subscribes a new buffered feed. bufferSize below 1 means 16.
func (e *Engine) Feed(bufferSize int) *Feed {
	if bufferSize < 1 {
		bufferSize = 16
	}
	f := &Feed{events: make(chan arena.State, bufferSize)}
	f.unsubscribe = e.Subscribe(f.send)
	return f
}

func (f *Feed) send(st arena.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	select {
	case f.events <- st:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-f.events:
		default:
		}
		select {
		case f.events <- st:
		default:
		}
	}
}

// Events returns the channel snapshots arrive on. It is closed by Close.
func (f *Feed) Events() <-chan arena.State {
	return f.events
}

// Close unsubscribes the feed and closes its channel. Safe to call more than once.
func (f *Feed) Close() {
	f.unsubscribe()
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
}
