package play

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/levels"
	"github.com/vovakirdan/slidelink/internal/palette"
	"github.com/vovakirdan/slidelink/internal/render"
	"github.com/vovakirdan/slidelink/internal/storage"
)

// Env is what front-ends share with the rest of the process.
type Env struct {
	Levels    *levels.Loader
	Palette   palette.Config
	Render    render.Options
	AtlasPath string
	Store     *storage.Store // nil disables session history
	Logger    *log.Logger
	// Copy puts text on the clipboard; nil disables copying.
	Copy func(string) error
}

// Record saves the current game of s to history. Games without a single
// action are not recorded.
func (e Env) Record(s *Session, engineID, origin string, started time.Time) {
	if e.Store == nil {
		return
	}
	st := s.Stats()
	if st.Actions == 0 {
		return
	}
	_, err := e.Store.SaveSession(storage.SessionRecord{
		LevelID:    st.LevelID,
		Engine:     engineID,
		Origin:     origin,
		Moves:      st.Moves,
		Actions:    st.Actions,
		BlockCount: st.BlockCount,
		Duration:   int(time.Since(started).Seconds()),
	})
	if err != nil {
		e.logger().Warn("could not save session", "err", err)
	}
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}
