package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/skins"
)

var flagRarity string

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "List available skins",
	Long: `Shows every registered snake skin. Press Tab in game to cycle through them.

Examples:
  arena skins
  arena skins --rarity epic`,
	Args: cobra.NoArgs,
	Run:  runSkins,
}

func init() {
	skinsCmd.Flags().StringVar(&flagRarity, "rarity", "", "Only show one tier: common, rare, epic, legendary")
}

func runSkins(_ *cobra.Command, _ []string) {
	all := skins.List()
	if flagRarity != "" {
		all = skins.ByRarity(skins.Rarity(strings.ToLower(flagRarity)))
		if len(all) == 0 {
			fail("no skins with rarity %q", flagRarity)
		}
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range all {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Println("Available skins:")
	fmt.Println()
	fmt.Printf("  %-*s  %-9s  %-8s  %s\n", maxIDLen, "ID", "Rarity", "Preview", "Description")
	fmt.Printf("  %-*s  %-9s  %-8s  %s\n", maxIDLen, "--", "------", "-------", "-----------")
	for _, s := range all {
		preview := string(s.Head)
		for i := 1; i < 5; i++ {
			preview += string(s.SegmentRune(i))
		}
		fmt.Printf("  %-*s  %-9s  %-8s  %s\n", maxIDLen, s.ID, s.Rarity, preview, s.Description)
	}
}
