// slidelink is a grid sliding puzzle: slide pieces along their row until
// same-colored pieces touch and link into blocks.
//
// Usage:
//
//	slidelink play            - Play in a desktop window
//	slidelink term            - Play in the terminal
//	slidelink serve           - Start SSH server for remote play
//	slidelink levels          - List available levels
//	slidelink history         - Browse recorded sessions
//	slidelink prefs           - Show or change preferences
//	slidelink snapshot        - Render a board to PNG or text
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.slidelink/configs, ./configs)
//	--db <path>         - Database path (default from config)
//	--seed <value>      - RNG seed for the color shuffle
//	--engine <id>       - Puzzle engine (default: reference)
//	--levels <dir>      - Level directory (default: built-in levels)
//	--level <id>        - Level to open (default: first)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import engines to register them
	_ "github.com/vovakirdan/slidelink/internal/engine/reference"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagEngine   string
	flagLevels   string
	flagLevel    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slidelink",
	Short: "slidelink - slide pieces until they link up",
	Long: `slidelink is a grid puzzle: click a piece, then click the cell left or
right of it to slide it. Pieces of the same color that touch link into
blocks, and blocks move together.

Available commands:
  play      - Play in a desktop window
  term      - Play in the terminal (mouse required)
  serve     - Start SSH server for remote play
  levels    - List available levels
  history   - Browse recorded sessions
  prefs     - Show or change preferences
  snapshot  - Render a board to PNG or text

Examples:
  slidelink play
  slidelink term --level 02-stacks
  slidelink serve --addr :2323
  slidelink prefs random-colors on
  slidelink snapshot --out board.png --click 10,8 --click 9,8`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagEngine, "engine", "reference", "Puzzle engine id")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level directory (default from config, else built-in)")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level id to open (default: first level)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(snapshotCmd)
}
