package main

import (
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/engine"
	"github.com/vovakirdan/snake-arena/internal/platform/tui"
	"github.com/vovakirdan/snake-arena/internal/skins"
)

var (
	flagDifficulty string
	flagAI         int
	flagFood       int
	flagSpeed      int
	flagSkin       string
)

// panelWidth is the space the side panel needs next to the board.
const panelWidth = 40

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game against AI snakes in the terminal.

Controls:
  Arrows/WASD  - Steer
  Enter        - Start (restart after game over)
  Space/P      - Pause/resume
  R            - Reset
  Tab          - Next skin
  Q/Ctrl+C     - Quit

Logs go to ~/.snake-arena/arena.log unless --log-file is set.

Examples:
  arena play
  arena play --difficulty hard
  arena play --ai 4 --food 8 --speed 120
  arena play --skin dragon
  arena play --skin random
  arena play --config ./my-arena.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagSkin, "skin", "", "Player skin id, or 'random' (see 'arena skins')")
}

// resolveSkin turns the --skin value into a registered skin id.
func resolveSkin(name string, seed int64) (string, error) {
	if name == "random" {
		return skins.Random(rand.New(rand.NewSource(core.ResolveSeed(seed)))).ID, nil
	}
	sk, err := skins.Get(name)
	if err != nil {
		return "", err
	}
	return sk.ID, nil
}

// addGameFlags registers the arena tuning flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Make every AI play easy, medium or hard")
	cmd.Flags().IntVar(&flagAI, "ai", 0, "Number of AI opponents (0 = use config)")
	cmd.Flags().IntVar(&flagFood, "food", 0, "Food items on the board (0 = use config)")
	cmd.Flags().IntVar(&flagSpeed, "speed", 0, "Tick period in milliseconds (0 = use config)")
}

// applyGameFlags copies the play-style flags onto cfg.
func applyGameFlags(cfg *config.GameConfig) error {
	if flagAI > 0 {
		cfg.Players.AI = flagAI
	}
	if flagFood > 0 {
		cfg.FoodCount = flagFood
	}
	if flagSpeed > 0 {
		cfg.GameSpeedMS = flagSpeed
	}
	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyDifficultyPreset(cfg, d)
	}
	return nil
}

func runPlay(_ *cobra.Command, _ []string) {
	logFile := ""
	if dir, err := config.StateDir(); err == nil {
		logFile = filepath.Join(dir, "arena.log")
	}
	logger, closeLog, err := newLogger("arena", logFile)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig(logger, applyGameFlags)
	if err != nil {
		fail("%v", err)
	}

	// Warn early if the board will not fit the terminal
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fail("play needs an interactive terminal; try 'arena simulate'")
	}
	if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
		needW, needH := cfg.Board.Width+2+panelWidth, cfg.Board.Height+4
		if w < needW || h < needH {
			logger.Warn("terminal smaller than the arena", "have", [2]int{w, h}, "need", [2]int{needW, needH})
		}
	}

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		fail("%v", err)
	}
	defer eng.Close()

	if flagSkin != "" {
		id, skinErr := resolveSkin(flagSkin, cfg.Seed)
		if skinErr != nil {
			fail("%v; run 'arena skins' to list them", skinErr)
		}
		eng.SetSkin(config.PlayerID, id)
	}

	if err := tui.Run(eng); err != nil {
		fail("running game: %v", err)
	}
}
