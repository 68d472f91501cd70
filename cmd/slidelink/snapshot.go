package main

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slidelink/internal/atlas"
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/play"
	"github.com/vovakirdan/slidelink/internal/render"
)

var (
	flagOut      string
	flagAtlasOut string
	flagText     bool
	flagFlat     bool
	flagPNGScale float64
	flagClicks   []string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render a board to PNG or text",
	Long: `Open a level without a window, replay clicks, and write the board.

Clicks are board cells "x,y", applied in order through the same selection
logic as the front-ends: click a piece, then the cell next to it.

Examples:
  slidelink snapshot --text
  slidelink snapshot --out board.png --png-scale 0.5
  slidelink snapshot --level 01-first-steps --click 10,8 --click 9,8 --text
  slidelink snapshot --atlas-out atlas.png`,
	Args: cobra.NoArgs,
	Run:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&flagOut, "out", "", "Write the board as PNG to this path")
	snapshotCmd.Flags().StringVar(&flagAtlasOut, "atlas-out", "", "Write the atlas in use as PNG to this path")
	snapshotCmd.Flags().BoolVar(&flagText, "text", false, "Print the board as text")
	snapshotCmd.Flags().BoolVar(&flagFlat, "flat", false, "Draw flat colors instead of atlas tiles")
	snapshotCmd.Flags().Float64Var(&flagPNGScale, "png-scale", 1, "Scale of the PNG output")
	snapshotCmd.Flags().StringArrayVar(&flagClicks, "click", nil, "Board cell to click, as x,y (repeatable)")
}

func runSnapshot(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	if err := snapshot(a); err != nil {
		a.close()
		fail("%v", err)
	}
}

func snapshot(a *app) error {
	env, err := a.env(nil)
	if err != nil {
		return err
	}
	cfg := a.runtime()

	pal, err := play.NewPalette(env.Palette, cfg.Seed, a.logger)
	if err != nil {
		return err
	}
	eng, id, err := play.OpenLevel(env.Levels, cfg.Engine, cfg.LevelID, a.logger)
	if err != nil {
		return err
	}

	var tiles image.Image
	if !flagFlat || flagAtlasOut != "" {
		res := <-atlas.LoadAsync(env.AtlasPath, pal, a.logger)
		if res.Err != nil {
			return res.Err
		}
		tiles = res.Image
	}

	bg, _ := pal.ColumnColor(pal.BackgroundColumn())
	raster := render.NewRaster(nil, bg)
	s := play.New(eng, pal, raster, play.Options{LevelID: id, Render: env.Render}, a.logger)
	defer s.Close()

	for _, c := range flagClicks {
		x, y, err := parseCell(c)
		if err != nil {
			return err
		}
		s.ClickCell(x, y, core.InBoard(x, y))
	}

	if !flagFlat {
		raster.SetAtlas(tiles)
		s.AtlasLoaded()
	}

	if flagOut != "" {
		if err := writeFile(flagOut, func(f *os.File) error { return raster.WritePNG(f, flagPNGScale) }); err != nil {
			return err
		}
		a.logger.Info("board written", "path", flagOut, "level", id)
	}
	if flagAtlasOut != "" {
		if err := writeFile(flagAtlasOut, func(f *os.File) error { return atlas.Encode(f, tiles) }); err != nil {
			return err
		}
		a.logger.Info("atlas written", "path", flagAtlasOut)
	}
	if flagText || (flagOut == "" && flagAtlasOut == "") {
		fmt.Print(s.Dump())
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// parseCell parses "x,y" board coordinates.
func parseCell(s string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("click %q: expected x,y", s)
	}
	if x, err = strconv.Atoi(strings.TrimSpace(xs)); err != nil {
		return 0, 0, fmt.Errorf("click %q: %w", s, err)
	}
	if y, err = strconv.Atoi(strings.TrimSpace(ys)); err != nil {
		return 0, 0, fmt.Errorf("click %q: %w", s, err)
	}
	return x, y, nil
}
