// Package engine owns the authoritative game state and advances it one tick
// at a time. All commands and ticks are serialised by a single mutex, and
// every state change is published to observers as an independent copy.
package engine

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-arena/internal/ai"
	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// Policy chooses the next heading for an AI snake. It is handed copies, so
// changes it makes to its arguments never reach the game.
type Policy func(rng arena.Rand, cfg config.GameConfig, s arena.Snake, foods []arena.Food, all []arena.Snake) core.Direction

// Engine runs one game. It is safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	state     arena.State
	rng       arena.Rand
	policy    Policy
	log       *log.Logger
	newTicker TickerFunc
	handle    *timerHandle
	gen       uint64
	closed    bool

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
	emitMu    sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRand sets the randomness source shared by the AI and food placement.
// By default a math/rand source is seeded from the config.
func WithRand(r arena.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithPolicy replaces the AI decision function.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithTicker replaces the time source that drives the scheduler.
func WithTicker(f TickerFunc) Option {
	return func(e *Engine) {
		if f != nil {
			e.newTicker = f
		}
	}
}

// WithObserver registers an observer before the initial snapshot is emitted.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.obsMu.Lock()
			e.observers[e.nextObs] = o
			e.nextObs++
			e.obsMu.Unlock()
		}
	}
}

// New validates cfg and builds a game in the waiting state. The initial
// snapshot is emitted to observers registered with WithObserver.
func New(cfg config.GameConfig, opts ...Option) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		policy:    ai.Decide,
		log:       log.New(io.Discard),
		newTicker: NewTimeTicker,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(core.ResolveSeed(cfg.Seed)))
	}

	e.mu.Lock()
	e.resetLocked(cfg.Clone())
	e.log.Info("game created",
		"game", e.state.GameID,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"ai", cfg.Players.AI,
		"food", cfg.FoodCount,
		"speed", cfg.TickPeriod(),
	)
	e.unlockAndEmit()
	return e, nil
}

// Config returns the game configuration.
func (e *Engine) Config() config.GameConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Config.Clone()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() arena.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Status returns the current lifecycle phase.
func (e *Engine) Status() arena.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Status
}

// Start moves a waiting or paused game to playing and arms the timer.
// It does nothing while playing or after game over.
func (e *Engine) Start() {
	e.mu.Lock()
	if !e.startLocked(arena.StatusWaiting, arena.StatusPaused) {
		e.mu.Unlock()
		return
	}
	e.unlockAndEmit()
}

// Pause stops ticking and keeps the state. It only affects a playing game.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.pauseLocked() {
		e.mu.Unlock()
		return
	}
	e.unlockAndEmit()
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	e.mu.Lock()
	if !e.startLocked(arena.StatusPaused) {
		e.mu.Unlock()
		return
	}
	e.unlockAndEmit()
}

// TogglePause pauses a playing game or resumes a paused one.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	if !e.pauseLocked() && !e.startLocked(arena.StatusPaused) {
		e.mu.Unlock()
		return
	}
	e.unlockAndEmit()
}

func (e *Engine) startLocked(from ...arena.Status) bool {
	if e.closed || !slices.Contains(from, e.state.Status) {
		return false
	}
	prev := e.state.Status
	e.state.Status = arena.StatusPlaying
	e.armLocked()
	e.log.Info("game started", "game", e.state.GameID, "from", prev)
	return true
}

func (e *Engine) pauseLocked() bool {
	if e.state.Status != arena.StatusPlaying {
		return false
	}
	e.disarmLocked()
	e.state.Status = arena.StatusPaused
	e.log.Info("game paused", "game", e.state.GameID, "tick", e.state.Tick)
	return true
}

// Reset returns the game to its starting layout in the waiting state.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.disarmLocked()
	e.resetLocked(e.state.Config)
	e.log.Info("game reset", "game", e.state.GameID)
	e.unlockAndEmit()
}

// ChangeDirection sets the heading a living snake uses on the next tick.
// It reports false when the snake is unknown or dead, or when dir would
// reverse it.
func (e *Engine) ChangeDirection(id string, dir core.Direction) bool {
	e.mu.Lock()
	s := e.findLocked(id)
	if s == nil || !s.Alive || !arena.IsValidDirection(*s, dir) {
		e.mu.Unlock()
		return false
	}
	if s.Direction == dir {
		e.mu.Unlock()
		return true
	}
	s.Direction = dir
	e.unlockAndEmit()
	return true
}

// ChangePlayerDirection steers the human snake.
func (e *Engine) ChangePlayerDirection(dir core.Direction) bool {
	return e.ChangeDirection(config.PlayerID, dir)
}

// SetSkin attaches a cosmetic skin identifier to any snake, dead or alive.
func (e *Engine) SetSkin(id, skin string) bool {
	e.mu.Lock()
	s := e.findLocked(id)
	if s == nil {
		e.mu.Unlock()
		return false
	}
	s.Skin = skin
	e.unlockAndEmit()
	return true
}

// Step runs a single tick immediately, outside the timer. It reports false
// unless the game is playing.
func (e *Engine) Step() bool {
	e.mu.Lock()
	if e.state.Status != arena.StatusPlaying {
		e.mu.Unlock()
		return false
	}
	e.tickLocked()
	e.unlockAndEmit()
	return true
}

// Close disarms the timer for good. Later Start calls do nothing.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disarmLocked()
	e.closed = true
}

func (e *Engine) resetLocked(cfg config.GameConfig) {
	e.state = arena.NewState(cfg)
	e.state.GameID = uuid.New().String()
	e.state.FillFood(e.rng)
}

func (e *Engine) findLocked(id string) *arena.Snake {
	for i := range e.state.Snakes {
		if e.state.Snakes[i].ID == id {
			return &e.state.Snakes[i]
		}
	}
	return nil
}
