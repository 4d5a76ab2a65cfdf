package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/ai"
	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/engine"
)

var flagTicks int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game and print the leaderboard",
	Long: `Run a game without a terminal UI. The player snake is steered by
the AI policy at the medium tier. The game stops at game over or after
--ticks ticks, whichever comes first.

The same --seed and config always produce the same result.

Examples:
  arena simulate
  arena simulate --ticks 1000 --seed 42
  arena simulate --ai 5 --difficulty hard --seed 7`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 500, "Maximum number of ticks")
	addGameFlags(simulateCmd)
}

// idleTicker never fires; the simulation drives the engine with Step.
type idleTicker struct{}

func (idleTicker) C() <-chan time.Time { return nil }
func (idleTicker) Stop()               {}

// Simulate plays cfg for at most ticks ticks and returns the final state.
// cfg.Seed must be non-zero for a reproducible run.
func Simulate(cfg config.GameConfig, ticks int) (arena.State, error) {
	eng, err := engine.New(cfg, engine.WithTicker(func(time.Duration) engine.Ticker { return idleTicker{} }))
	if err != nil {
		return arena.State{}, err
	}
	defer eng.Close()

	pilot := rand.New(rand.NewSource(cfg.Seed + 1))
	eng.Start()
	for i := 0; i < ticks; i++ {
		st := eng.Snapshot()
		if self, ok := st.Player(); ok && self.Alive {
			self.Difficulty = config.DifficultyMedium
			eng.ChangePlayerDirection(ai.Decide(pilot, cfg, self, st.Foods, st.Snakes))
		}
		if !eng.Step() {
			break
		}
	}
	return eng.Snapshot(), nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("arena-sim", "")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig(logger, applyGameFlags)
	if err != nil {
		fail("%v", err)
	}
	cfg.Seed = core.ResolveSeed(cfg.Seed)

	st, err := Simulate(cfg, flagTicks)
	if err != nil {
		fail("%v", err)
	}

	winner := st.Winner
	if winner == "" {
		winner = "none"
	}
	fmt.Printf("Seed %d, %d ticks, status %s, winner %s\n", cfg.Seed, st.Tick, st.Status, winner)
	fmt.Println()

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-4s  %s\n", "Rank", "Snake", "Tier", "Score", "Len", "State")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-4s  %s\n", "----", "-----", "----", "-----", "---", "-----")
	for i, s := range st.Leaderboard() {
		tier, state := string(s.Difficulty), "alive"
		if !s.IsAI {
			tier = "-"
		}
		if !s.Alive {
			state = "dead"
		}
		fmt.Printf("  %-4d  %-8s  %-6s  %-6d  %-4d  %s\n", i+1, s.ID, tier, s.Score, s.Len(), state)
	}

	if longest, ok := st.LongestSnake(); ok {
		fmt.Println()
		fmt.Printf("Longest: %s (%d)  Total score: %d\n", longest.ID, longest.Len(), st.TotalScore())
	}
}
