// Package window runs the board in a desktop window with ebiten. The board is
// drawn into an offscreen image only when the session redraws; each frame just
// scales that image onto the window.
package window

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/slidelink/internal/atlas"
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/play"
)

// hudHeight is the strip below the board used for the HUD text.
const hudHeight = 40

// statusTimeout is how long a status message stays in the HUD.
const statusTimeout = 3 * time.Second

// keyActions binds keys to session actions.
var keyActions = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyU, core.ActionUndo},
	{ebiten.KeyZ, core.ActionUndo},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyN, core.ActionNextLevel},
	{ebiten.KeyBracketRight, core.ActionNextLevel},
	{ebiten.KeyP, core.ActionPrevLevel},
	{ebiten.KeyBracketLeft, core.ActionPrevLevel},
	{ebiten.KeyEscape, core.ActionDeselect},
	{ebiten.KeyC, core.ActionCopy},
	{ebiten.KeyQ, core.ActionQuit},
}

// Game implements ebiten.Game for one board session.
type Game struct {
	env     play.Env
	config  core.RuntimeConfig
	scale   float64
	session *play.Session
	surface *surface
	atlasCh <-chan atlas.Result
	bg      color.RGBA
	started time.Time
	closed  bool

	status      string
	statusUntil time.Time
}

// New opens cfg.LevelID on cfg.Engine and starts loading the atlas in the
// background. scale is the window pixels per board pixel.
func New(env play.Env, cfg core.RuntimeConfig, scale float64) (*Game, error) {
	if scale <= 0 {
		scale = 1
	}
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	pal, err := play.NewPalette(env.Palette, cfg.Seed, env.Logger)
	if err != nil {
		return nil, err
	}
	eng, levelID, err := play.OpenLevel(env.Levels, cfg.Engine, cfg.LevelID, env.Logger)
	if err != nil {
		return nil, err
	}
	cfg.LevelID = levelID

	bg, _ := pal.ColumnColor(pal.BackgroundColumn())
	surf := newSurface(bg)
	return &Game{
		env:     env,
		config:  cfg,
		scale:   scale,
		session: play.New(eng, pal, surf, play.Options{LevelID: levelID, Render: env.Render}, env.Logger),
		surface: surf,
		atlasCh: atlas.LoadAsync(env.AtlasPath, pal, env.Logger),
		bg:      bg,
		started: time.Now(),
	}, nil
}

// Update handles input once per tick.
func (g *Game) Update() error {
	if res, ok := atlas.Poll(g.atlasCh); ok {
		g.atlasArrived(res)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.session.Click(mx, my, boardView(g.scale))
	}

	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			if err := g.apply(ka.action); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) atlasArrived(res atlas.Result) {
	if res.Err != nil || res.Image == nil {
		g.env.Logger.Warn("atlas load failed, staying in flat mode", "err", res.Err)
		return
	}
	g.surface.SetAtlas(res.Image)
	g.session.AtlasLoaded()
}

// apply runs a key action. Quitting returns ebiten.Termination.
func (g *Game) apply(action core.Action) error {
	switch action {
	case core.ActionQuit:
		g.finish()
		return ebiten.Termination
	case core.ActionUndo:
		if !g.session.Undo() {
			g.setStatus("nothing to undo")
		}
	case core.ActionRestart:
		g.env.Record(g.session, g.config.Engine, "window", g.started)
		g.session.Restart()
		g.started = time.Now()
	case core.ActionNextLevel:
		g.switchLevel(1)
	case core.ActionPrevLevel:
		g.switchLevel(-1)
	case core.ActionDeselect:
		g.session.Deselect()
	case core.ActionCopy:
		g.copyBoard()
	}
	return nil
}

// finish records the game and frees it. Later calls do nothing.
func (g *Game) finish() {
	if g.closed {
		return
	}
	g.closed = true
	g.env.Record(g.session, g.config.Engine, "window", g.started)
	g.session.Close()
}

func (g *Game) switchLevel(offset int) {
	id, err := play.StepLevel(g.env.Levels, g.session.LevelID(), offset)
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	next, id, err := play.OpenLevel(g.env.Levels, g.config.Engine, id, g.env.Logger)
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	g.env.Record(g.session, g.config.Engine, "window", g.started)
	g.session.Reopen(next, id)
	g.config.LevelID = id
	g.started = time.Now()
}

func (g *Game) copyBoard() {
	if g.env.Copy == nil {
		g.setStatus("clipboard unavailable")
		return
	}
	if err := g.env.Copy(g.session.Dump()); err != nil {
		g.env.Logger.Warn("copy failed", "err", err)
		g.setStatus("copy failed")
		return
	}
	g.setStatus("board copied")
}

func (g *Game) setStatus(text string) {
	g.status = text
	g.statusUntil = time.Now().Add(statusTimeout)
}

// Draw scales the offscreen board onto the window and prints the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(g.scale, g.scale)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.surface.img, &op)

	status := ""
	if time.Now().Before(g.statusUntil) {
		status = g.status
	}
	ebitenutil.DebugPrintAt(screen, hudText(g.session.LevelID(), g.session.Stats(), status), 6, boardView(g.scale).Max.Y+4)
}

// Layout keeps a fixed logical size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	v := boardView(g.scale)
	return v.Dx(), v.Dy() + hudHeight
}

// boardView is the logical screen rectangle the board is drawn into.
func boardView(scale float64) image.Rectangle {
	return image.Rect(0, 0, int(float64(core.BoardPixelsW)*scale), int(float64(core.BoardPixelsH)*scale))
}

func hudText(levelID string, st core.Stats, status string) string {
	mode := "flat"
	if st.AtlasLoaded {
		mode = "tiled"
	}
	line := fmt.Sprintf("%s  moves %d  actions %d  undo %d  blocks %d  [%s]",
		levelID, st.Moves, st.Actions, st.UndoAvail, st.BlockCount, mode)
	if status != "" {
		line += "\n" + status
	} else {
		line += "\nU undo  R restart  N/P level  C copy  Q quit"
	}
	return line
}

// Run opens the window and blocks until it is closed.
func Run(env play.Env, cfg core.RuntimeConfig, scale float64, title string) error {
	g, err := New(env, cfg, scale)
	if err != nil {
		return err
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetScreenClearedEveryFrame(true)

	// Closing the window skips the quit key, so record here too.
	defer g.finish()
	return ebiten.RunGame(g)
}
