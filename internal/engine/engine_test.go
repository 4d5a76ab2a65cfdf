package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/snake-arena/internal/ai"
	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// manualTicker only fires when the test says so.
type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicker) C() <-chan time.Time { return m.c }

func (m *manualTicker) Stop() {
	m.once.Do(func() { close(m.stopped) })
}

// fire delivers one tick. It reports false if nobody is listening.
func (m *manualTicker) fire() bool {
	select {
	case m.c <- time.Now():
		return true
	case <-m.stopped:
		return false
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

func (m *manualTicker) waitStopped(t *testing.T) {
	t.Helper()
	select {
	case <-m.stopped:
	case <-time.After(time.Second):
		t.Fatal("ticker was not stopped")
	}
}

type harness struct {
	e       *Engine
	tickers chan *manualTicker
}

func newHarness(t *testing.T, cfg config.GameConfig, opts ...Option) *harness {
	t.Helper()
	h := &harness{tickers: make(chan *manualTicker, 16)}
	base := []Option{
		WithRand(rand.New(rand.NewSource(1))),
		WithTicker(func(time.Duration) Ticker {
			mt := newManualTicker()
			h.tickers <- mt
			return mt
		}),
	}
	e, err := New(cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(e.Close)
	h.e = e
	return h
}

func (h *harness) mutate(fn func(st *arena.State)) {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	fn(&h.e.state)
}

func (h *harness) ticker(t *testing.T) *manualTicker {
	t.Helper()
	select {
	case mt := <-h.tickers:
		return mt
	case <-time.After(time.Second):
		t.Fatal("no ticker was armed")
		return nil
	}
}

func keepHeading(_ arena.Rand, _ config.GameConfig, s arena.Snake, _ []arena.Food, _ []arena.Snake) core.Direction {
	return s.Direction
}

func smallConfig(aiCount int) config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Board = config.BoardConfig{Width: 10, Height: 10}
	cfg.Players.AI = aiCount
	return cfg
}

func body(coords ...int) []core.Point {
	out := make([]core.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, core.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Board.Width = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidBoard) {
		t.Errorf("New() error = %v, expected ErrInvalidBoard", err)
	}
}

func TestInitialSnapshot(t *testing.T) {
	var got []arena.State
	h := newHarness(t, config.DefaultGameConfig(), WithObserver(func(st arena.State) {
		got = append(got, st)
	}))

	if len(got) != 1 {
		t.Fatalf("observer called %d times on construction, expected 1", len(got))
	}
	st := got[0]
	if st.Status != arena.StatusWaiting || st.GameID == "" || st.Tick != 0 {
		t.Errorf("unexpected initial state: status=%s id=%q tick=%d", st.Status, st.GameID, st.Tick)
	}
	if len(st.Snakes) != 4 || len(st.Foods) != 5 {
		t.Errorf("got %d snakes and %d foods, expected 4 and 5", len(st.Snakes), len(st.Foods))
	}
	if h.e.Step() {
		t.Error("Step() ran while waiting")
	}
}

func TestObserverOptionSharesRegistry(t *testing.T) {
	var order []string
	h := newHarness(t, smallConfig(1), WithObserver(func(arena.State) {
		order = append(order, "option")
	}))
	unsubscribe := h.e.Subscribe(func(arena.State) {
		order = append(order, "subscribe")
	})

	order = nil
	h.e.Start()
	if len(order) != 2 || order[0] != "option" || order[1] != "subscribe" {
		t.Errorf("order = %v, expected [option subscribe]", order)
	}

	unsubscribe()
	order = nil
	h.e.Pause()
	if len(order) != 1 || order[0] != "option" {
		t.Errorf("order = %v after unsubscribe, expected [option]", order)
	}
}

func TestScenarioPlayerMovesRight(t *testing.T) {
	cfg := smallConfig(1)
	config.ApplyDifficultyPreset(&cfg, config.DifficultyEasy)
	h := newHarness(t, cfg)
	h.mutate(func(st *arena.State) {
		st.Foods = []arena.Food{{Position: core.Point{X: 0, Y: 0}, Type: arena.FoodNormal}}
	})

	h.e.Start()
	if !h.e.Step() {
		t.Fatal("Step() did not run while playing")
	}

	player, _ := h.e.Snapshot().Player()
	if player.Head() != (core.Point{X: 6, Y: 5}) {
		t.Errorf("player head = %v, expected (6,5)", player.Head())
	}
	if player.Len() != 3 || player.Score != 0 {
		t.Errorf("player len=%d score=%d, expected 3 and 0", player.Len(), player.Score)
	}
}

func TestScenarioEatFood(t *testing.T) {
	h := newHarness(t, smallConfig(1), WithPolicy(keepHeading))
	target := core.Point{X: 6, Y: 5}
	h.mutate(func(st *arena.State) {
		st.Foods = []arena.Food{{Position: target, Type: arena.FoodNormal}}
	})

	h.e.Start()
	h.e.Step()

	st := h.e.Snapshot()
	player, _ := st.Player()
	if player.Score != 10 {
		t.Errorf("score = %d, expected 10", player.Score)
	}
	if player.Len() != 4 {
		t.Errorf("len = %d, expected 4", player.Len())
	}
	if arena.FoodAt(st.Foods, target) >= 0 {
		t.Error("eaten food is still on the board")
	}
	if len(st.Foods) != st.Config.FoodCount {
		t.Errorf("foods = %d, expected %d", len(st.Foods), st.Config.FoodCount)
	}
}

func TestPolicyGetsCopies(t *testing.T) {
	scribble := func(_ arena.Rand, _ config.GameConfig, s arena.Snake, foods []arena.Food, all []arena.Snake) core.Direction {
		for i := range all {
			all[i].Body[0] = core.Point{X: -1, Y: -1}
			all[i].Score = 999
		}
		for i := range foods {
			foods[i].Position = core.Point{X: -1, Y: -1}
		}
		return s.Direction
	}
	h := newHarness(t, smallConfig(1), WithPolicy(scribble))
	food := core.Point{X: 0, Y: 0}
	h.mutate(func(st *arena.State) {
		st.Foods = []arena.Food{{Position: food, Type: arena.FoodNormal}}
	})

	h.e.Start()
	h.e.Step()

	st := h.e.Snapshot()
	player, _ := st.Player()
	if !player.Alive || player.Head() != (core.Point{X: 6, Y: 5}) {
		t.Errorf("player alive=%v head=%v, expected alive at (6,5)", player.Alive, player.Head())
	}
	for _, s := range st.Snakes {
		if s.Score != 0 {
			t.Errorf("%s score = %d, expected 0", s.ID, s.Score)
		}
	}
	if arena.FoodAt(st.Foods, food) < 0 {
		t.Error("food moved by the policy")
	}
}

func TestSpecialFoodScoresTwenty(t *testing.T) {
	h := newHarness(t, smallConfig(1), WithPolicy(keepHeading))
	h.mutate(func(st *arena.State) {
		st.Foods = []arena.Food{{Position: core.Point{X: 6, Y: 5}, Type: arena.FoodSpecial}}
	})
	h.e.Start()
	h.e.Step()
	if p, _ := h.e.Snapshot().Player(); p.Score != 20 {
		t.Errorf("score = %d, expected 20", p.Score)
	}
}

func TestScenarioWallDeath(t *testing.T) {
	h := newHarness(t, smallConfig(2), WithPolicy(keepHeading))
	h.mutate(func(st *arena.State) {
		st.Snakes[0].Body = body(0, 5, 1, 5, 2, 5)
		st.Snakes[0].Direction = core.Left
	})

	h.e.Start()
	h.e.Step()

	st := h.e.Snapshot()
	player, _ := st.Player()
	if player.Alive {
		t.Fatal("player survived leaving the board")
	}
	want := body(-1, 5, 0, 5, 1, 5, 2, 5)
	if !reflect.DeepEqual(player.Body, want) {
		t.Errorf("dead body = %v, expected %v", player.Body, want)
	}
	if st.Status != arena.StatusPlaying {
		t.Errorf("status = %s, two AI are still alive", st.Status)
	}

	// Dead snakes ignore steering and stay in the roster
	if h.e.ChangePlayerDirection(core.Up) {
		t.Error("ChangePlayerDirection() accepted a dead snake")
	}
	h.e.Step()
	if p, _ := h.e.Snapshot().Player(); !reflect.DeepEqual(p.Body, want) {
		t.Errorf("dead body moved to %v", p.Body)
	}
}

func TestScenarioMutualCollisionEndsGame(t *testing.T) {
	h := newHarness(t, smallConfig(2), WithPolicy(keepHeading))
	h.mutate(func(st *arena.State) {
		st.Snakes[0].Body = body(3, 2, 2, 2, 1, 2)
		st.Snakes[0].Direction = core.Right
		st.Snakes[1].Body = body(5, 2, 6, 2, 7, 2)
		st.Snakes[1].Direction = core.Left
		st.Foods = nil
		st.FillFood(h.e.rng)
	})
	feed := h.e.Feed(64)
	defer feed.Close()

	h.e.Start()
	mt := h.ticker(t)
	if !mt.fire() {
		t.Fatal("scheduler did not accept a tick")
	}

	var final arena.State
	timeout := time.After(time.Second)
	for final.Status != arena.StatusGameOver {
		select {
		case final = <-feed.Events():
		case <-timeout:
			t.Fatal("no game over snapshot")
		}
	}

	if final.Winner != "ai-1" {
		t.Errorf("winner = %q, expected ai-1", final.Winner)
	}
	for _, id := range []string{"player", "ai-0"} {
		if s, _ := final.Snake(id); s.Alive {
			t.Errorf("%s should have died in the head-on collision", id)
		}
	}

	mt.waitStopped(t)
	if mt.fire() {
		t.Error("a tick was accepted after game over")
	}
	if got := h.e.Snapshot().Tick; got != final.Tick {
		t.Errorf("tick advanced to %d after game over", got)
	}
	if h.e.Step() {
		t.Error("Step() ran after game over")
	}
	h.e.Start()
	if h.e.Status() != arena.StatusGameOver {
		t.Error("Start() left game over")
	}
}

func TestLastTwoDieTogetherNoWinner(t *testing.T) {
	h := newHarness(t, smallConfig(1), WithPolicy(keepHeading))
	h.mutate(func(st *arena.State) {
		st.Snakes[0].Body = body(3, 2, 2, 2, 1, 2)
		st.Snakes[0].Direction = core.Right
		st.Snakes[1].Body = body(5, 2, 6, 2, 7, 2)
		st.Snakes[1].Direction = core.Left
	})
	h.e.Start()
	h.e.Step()

	st := h.e.Snapshot()
	if st.Status != arena.StatusGameOver || st.Winner != "" {
		t.Errorf("status=%s winner=%q, expected gameOver with no winner", st.Status, st.Winner)
	}
}

func TestCollisionUsesProvisionalBodies(t *testing.T) {
	h := newHarness(t, smallConfig(2), WithPolicy(keepHeading))
	// ai-0 moves its head into the cell the player's tail leaves this tick.
	// The provisional player body still covers it, so ai-0 dies.
	h.mutate(func(st *arena.State) {
		st.Snakes[0].Body = body(5, 5, 4, 5, 3, 5)
		st.Snakes[0].Direction = core.Right
		st.Snakes[1].Body = body(3, 6, 3, 7, 3, 8)
		st.Snakes[1].Direction = core.Up
		st.Foods = nil
	})
	h.e.Start()
	h.e.Step()

	st := h.e.Snapshot()
	if p, _ := st.Player(); !p.Alive {
		t.Error("player should survive")
	}
	if a, _ := st.Snake("ai-0"); a.Alive {
		t.Error("ai-0 should die on the provisional tail")
	}
}

func TestChangeDirectionRejectsReversal(t *testing.T) {
	h := newHarness(t, smallConfig(1))
	for _, cur := range core.Directions {
		h.mutate(func(st *arena.State) { st.Snakes[0].Direction = cur })
		if h.e.ChangePlayerDirection(cur.Opposite()) {
			t.Errorf("reversal %v -> %v was accepted", cur, cur.Opposite())
		}
		if p, _ := h.e.Snapshot().Player(); p.Direction != cur {
			t.Errorf("direction changed to %v, expected %v", p.Direction, cur)
		}
	}

	h.mutate(func(st *arena.State) { st.Snakes[0].Direction = core.Right })
	if !h.e.ChangePlayerDirection(core.Up) {
		t.Error("turn was rejected")
	}
	if h.e.ChangeDirection("ghost", core.Up) {
		t.Error("unknown snake was accepted")
	}
	if h.e.ChangeDirection(config.PlayerID, core.Direction(9)) {
		t.Error("out of range direction was accepted")
	}
}

func TestDirectionChangeAppliesOnNextTick(t *testing.T) {
	h := newHarness(t, smallConfig(1), WithPolicy(keepHeading))
	h.e.Start()
	h.e.ChangePlayerDirection(core.Down)
	if p, _ := h.e.Snapshot().Player(); p.Head() != (core.Point{X: 5, Y: 5}) {
		t.Fatalf("head moved before a tick: %v", p.Head())
	}
	h.e.Step()
	if p, _ := h.e.Snapshot().Player(); p.Head() != (core.Point{X: 5, Y: 6}) {
		t.Errorf("head = %v, expected (5,6)", p.Head())
	}
}

func TestInvalidAIHeadingIgnored(t *testing.T) {
	for name, bad := range map[string]core.Direction{
		"reversal":     core.Right,
		"out of range": core.Direction(7),
	} {
		t.Run(name, func(t *testing.T) {
			policy := func(arena.Rand, config.GameConfig, arena.Snake, []arena.Food, []arena.Snake) core.Direction {
				return bad
			}
			h := newHarness(t, smallConfig(1), WithPolicy(policy))
			before, _ := h.e.Snapshot().Snake("ai-0")
			h.e.Start()
			h.e.Step()
			after, _ := h.e.Snapshot().Snake("ai-0")
			if after.Direction != core.Left {
				t.Errorf("direction = %v, expected LEFT", after.Direction)
			}
			if after.Head() != before.Head().Move(core.Left) {
				t.Errorf("head = %v, expected %v", after.Head(), before.Head().Move(core.Left))
			}
		})
	}
}

func TestPauseAndStartAreIdempotent(t *testing.T) {
	var mu sync.Mutex
	emissions := 0
	h := newHarness(t, smallConfig(1), WithObserver(func(arena.State) {
		mu.Lock()
		emissions++
		mu.Unlock()
	}))
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return emissions
	}

	h.e.Start()
	first := h.ticker(t)
	afterStart, n := h.e.Snapshot(), count()
	h.e.Start()
	if count() != n || !sameGame(afterStart, h.e.Snapshot()) {
		t.Error("second Start() changed something")
	}
	select {
	case <-h.tickers:
		t.Error("second Start() armed another timer")
	default:
	}

	h.e.Pause()
	first.waitStopped(t)
	afterPause, n := h.e.Snapshot(), count()
	h.e.Pause()
	if count() != n || !sameGame(afterPause, h.e.Snapshot()) {
		t.Error("second Pause() changed something")
	}
	if h.e.Step() {
		t.Error("Step() ran while paused")
	}

	h.e.Resume()
	if h.e.Status() != arena.StatusPlaying {
		t.Fatalf("status = %s after Resume()", h.e.Status())
	}
	second := h.ticker(t)
	if first.fire() {
		t.Error("the cancelled ticker still delivers ticks")
	}

	h.e.TogglePause()
	second.waitStopped(t)
	if h.e.Status() != arena.StatusPaused {
		t.Errorf("status = %s after TogglePause()", h.e.Status())
	}
	h.e.TogglePause()
	if h.e.Status() != arena.StatusPlaying {
		t.Errorf("status = %s after second TogglePause()", h.e.Status())
	}
}

func TestResumeOnlyFromPaused(t *testing.T) {
	h := newHarness(t, smallConfig(1))
	h.e.Resume()
	if h.e.Status() != arena.StatusWaiting {
		t.Errorf("Resume() from waiting gave %s", h.e.Status())
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t, smallConfig(1), WithPolicy(keepHeading))
	h.mutate(func(st *arena.State) {
		st.Foods = []arena.Food{{Position: core.Point{X: 6, Y: 5}, Type: arena.FoodNormal}}
	})
	h.e.Start()
	mt := h.ticker(t)
	h.e.Step()
	h.e.SetSkin(config.PlayerID, "dragon")
	before := h.e.Snapshot()

	h.e.Reset()
	mt.waitStopped(t)

	st := h.e.Snapshot()
	if st.Status != arena.StatusWaiting || st.Tick != 0 || st.Winner != "" {
		t.Errorf("reset state: status=%s tick=%d winner=%q", st.Status, st.Tick, st.Winner)
	}
	if st.GameID == before.GameID {
		t.Error("Reset() kept the game id")
	}
	if st.TotalScore() != 0 {
		t.Errorf("scores not cleared: %d", st.TotalScore())
	}
	if p, _ := st.Player(); p.Head() != (core.Point{X: 5, Y: 5}) || p.Skin != arena.DefaultPlayerSkin {
		t.Errorf("player not back at spawn: %+v", p)
	}
	if len(st.Foods) != st.Config.FoodCount {
		t.Errorf("foods = %d after reset", len(st.Foods))
	}
}

func TestSetSkin(t *testing.T) {
	h := newHarness(t, smallConfig(1))
	if !h.e.SetSkin("ai-0", "ninja") {
		t.Fatal("SetSkin() rejected a known snake")
	}
	if s, _ := h.e.Snapshot().Snake("ai-0"); s.Skin != "ninja" {
		t.Errorf("skin = %q, expected ninja", s.Skin)
	}
	if h.e.SetSkin("ghost", "ninja") {
		t.Error("SetSkin() accepted an unknown snake")
	}
}

func TestObserversCannotCorruptState(t *testing.T) {
	h := newHarness(t, smallConfig(1))
	unsubscribe := h.e.Subscribe(func(st arena.State) {
		st.Snakes[0].Body[0] = core.Point{X: 99, Y: 99}
		st.Snakes[0].Score = 1000
		st.Foods = nil
	})
	h.e.SetSkin(config.PlayerID, "ice")
	unsubscribe()

	st := h.e.Snapshot()
	if p, _ := st.Player(); p.Head() != (core.Point{X: 5, Y: 5}) || p.Score != 0 {
		t.Errorf("observer mutation leaked into the engine: %+v", p)
	}
	if len(st.Foods) == 0 {
		t.Error("observer cleared the engine's foods")
	}
}

func TestUnsubscribe(t *testing.T) {
	h := newHarness(t, smallConfig(1))
	calls := 0
	unsubscribe := h.e.Subscribe(func(arena.State) { calls++ })
	h.e.SetSkin(config.PlayerID, "ice")
	unsubscribe()
	unsubscribe()
	h.e.SetSkin(config.PlayerID, "fire")
	if calls != 1 {
		t.Errorf("observer called %d times, expected 1", calls)
	}
}

func TestFeedDropsOldest(t *testing.T) {
	h := newHarness(t, smallConfig(1))
	feed := h.e.Feed(1)
	for _, skin := range []string{"ice", "fire", "gold"} {
		h.e.SetSkin(config.PlayerID, skin)
	}
	st := <-feed.Events()
	if p, _ := st.Player(); p.Skin != "gold" {
		t.Errorf("feed kept %q, expected the newest snapshot", p.Skin)
	}
	feed.Close()
	feed.Close()
	if _, ok := <-feed.Events(); ok {
		t.Error("feed channel still open after Close()")
	}
	h.e.SetSkin(config.PlayerID, "ninja")
}

func TestDeterminism(t *testing.T) {
	run := func() []arena.State {
		cfg := config.DefaultGameConfig()
		steer := rand.New(rand.NewSource(5))
		e, err := New(cfg, WithRand(rand.New(rand.NewSource(99))), WithTicker(func(time.Duration) Ticker {
			return newManualTicker()
		}))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		defer e.Close()

		var states []arena.State
		e.Start()
		for i := 0; i < 300 && e.Step(); i++ {
			st := e.Snapshot()
			if p, ok := st.Player(); ok && p.Alive {
				e.ChangePlayerDirection(ai.Decide(steer, cfg, p, st.Foods, st.Snakes))
			}
			st.GameID = ""
			states = append(states, st)
		}
		return states
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs lasted %d and %d ticks", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("runs diverged at tick %d", a[i].Tick)
		}
	}
}

func TestInvariantsOverManyTicks(t *testing.T) {
	h := newHarness(t, config.DefaultGameConfig())
	h.e.Start()
	prev := h.e.Snapshot()

	for range 2000 {
		if !h.e.Step() {
			h.e.Reset()
			h.e.Start()
			prev = h.e.Snapshot()
			continue
		}
		st := h.e.Snapshot()

		if len(st.Foods) != st.Config.FoodCount {
			t.Fatalf("tick %d: %d foods, expected %d", st.Tick, len(st.Foods), st.Config.FoodCount)
		}
		seen := make(map[core.Point]bool)
		for _, f := range st.Foods {
			if seen[f.Position] {
				t.Fatalf("tick %d: two foods at %v", st.Tick, f.Position)
			}
			seen[f.Position] = true
		}

		for i, s := range st.Snakes {
			old := prev.Snakes[i]
			if !s.Alive {
				continue
			}
			if s.Len() < config.StartLength {
				t.Fatalf("tick %d: %s shrank to %d", st.Tick, s.ID, s.Len())
			}
			gained := s.Score - old.Score
			switch gained {
			case 0:
				if s.Len() != old.Len() {
					t.Fatalf("tick %d: %s length %d -> %d without eating", st.Tick, s.ID, old.Len(), s.Len())
				}
			case 10, 20:
				if s.Len() != old.Len()+1 {
					t.Fatalf("tick %d: %s length %d -> %d after eating", st.Tick, s.ID, old.Len(), s.Len())
				}
			default:
				t.Fatalf("tick %d: %s gained %d points", st.Tick, s.ID, gained)
			}
		}
		prev = st
	}
}

func sameGame(a, b arena.State) bool {
	return reflect.DeepEqual(a, b)
}
