package atlas

import (
	"image"

	"github.com/charmbracelet/log"
)

// Result is the outcome of an asynchronous load.
type Result struct {
	Image     image.Image
	Generated bool
	Err       error
}

// LoadAsync loads the atlas at path on a new goroutine. When path is empty or
// the file cannot be used, the atlas is generated from colors instead. The
// returned channel delivers exactly one Result and is then closed.
func LoadAsync(path string, colors Colors, logger *log.Logger) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- loadOrGenerate(path, colors, logger)
	}()
	return ch
}

func loadOrGenerate(path string, colors Colors, logger *log.Logger) Result {
	if path != "" {
		img, err := Load(path)
		if err == nil {
			logger.Info("atlas loaded", "path", path)
			return Result{Image: img}
		}
		logger.Warn("atlas unavailable, generating", "path", path, "err", err)
	}
	return Result{Image: Generate(colors), Generated: true}
}

// Poll returns the pending result without blocking. ok is false while the load
// is still running or after the result has been taken.
func Poll(ch <-chan Result) (res Result, ok bool) {
	select {
	case res, ok = <-ch:
		return res, ok
	default:
		return Result{}, false
	}
}
