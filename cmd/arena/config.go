package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a game would use, as YAML, after applying
--config, --seed and the play flags. Use the output as a starting point
for ~/.snake-arena/config.yaml.

Examples:
  arena config
  arena config --ai 4 > ~/.snake-arena/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	addGameFlags(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("arena", "")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig(logger, applyGameFlags)
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(data)
	if ws := config.Warnings(cfg); len(ws) > 0 {
		fmt.Fprintf(os.Stderr, "%d warning(s) logged above\n", len(ws))
	}
}
