package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slidelink/internal/platform/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded sessions",
	Long: `Show recorded sessions per level in a table.

Controls:
  Up/Down/j/k   - Scroll
  Tab/Shift+Tab - Next / previous level
  Q/Esc         - Quit`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func runHistory(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	ids, err := a.levels.ListIDs()
	if err != nil {
		a.close()
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(a.store, ids, width, height); err != nil {
		a.close()
		fail("%v", err)
	}
}
