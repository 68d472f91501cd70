package main

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slidelink/internal/platform/tui"
	"github.com/vovakirdan/slidelink/internal/platform/window"
)

var flagScale float64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a desktop window",
	Long: `Open the board in a desktop window.

Controls:
  Click piece, then click left/right of it - Slide
  U/Z        - Undo
  R          - Restart level
  N/] P/[    - Next / previous level
  Esc        - Clear selection
  C          - Copy board as text
  Q          - Quit

Examples:
  slidelink play
  slidelink play --level 03-connectors --scale 1.5
  slidelink play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	Long: `Play in the terminal. Each cell is four characters wide and two lines
tall; the terminal needs mouse support. Logs go to term.log next to the
database.

Controls are the same as for play; press ? for help.

Examples:
  slidelink term
  slidelink term --level 02-stacks`,
	Args: cobra.NoArgs,
	Run:  runTerm,
}

func init() {
	playCmd.Flags().Float64Var(&flagScale, "scale", 0, "Window scale (default from config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	env, err := a.env(clipboard.WriteAll)
	if err != nil {
		fail("%v", err)
	}

	scale := flagScale
	if scale == 0 {
		scale = a.cfg.Window.Scale
	}

	if err := window.Run(env, a.runtime(), scale, a.cfg.Window.Title); err != nil {
		a.close()
		fail("running window: %v", err)
	}
}

func runTerm(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	if f, logErr := a.logToFile("term.log"); logErr == nil {
		defer f.Close()
	}

	var copyFn func(string) error
	if !clipboard.Unsupported {
		copyFn = clipboard.WriteAll
	}
	env, err := a.env(copyFn)
	if err != nil {
		fail("%v", err)
	}

	cfg := a.runtime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	if err := tui.Run(env, cfg); err != nil {
		a.close()
		fail("running terminal UI: %v", err)
	}
}
