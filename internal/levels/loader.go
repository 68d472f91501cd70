// Package levels loads puzzle boards from a directory or from the built-in set.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/slidelink/internal/levels/formats"
)

//go:embed default/*.yaml
var defaultFS embed.FS

// ErrNotFound is returned when no level has the requested id.
var ErrNotFound = errors.New("levels: level not found")

// Level is a parsed level plus where it came from.
type Level struct {
	formats.Level
	FilePath string
}

// Loader loads levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader returns a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin returns a loader over the embedded default levels.
func Builtin() *Loader {
	sub, err := fs.Sub(defaultFS, "default")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded defaults: %v", err))
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// Open returns a directory loader when dir is set, else the built-in one.
func Open(dir string) *Loader {
	if dir == "" {
		return Builtin()
	}
	return NewLoader(dir)
}

// Root names where levels are read from.
func (l *Loader) Root() string { return l.root }

// LoadAll loads every level file, sorted by id. A file that fails to parse
// aborts the load with an error naming the file.
func (l *Loader) LoadAll() ([]Level, error) {
	var out []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}
		lvl, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if prev, dup := seen[lvl.ID]; dup {
			return fmt.Errorf("levels: duplicate id %q in %s and %s", lvl.ID, prev, p)
		}
		seen[lvl.ID] = p
		out = append(out, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading %s: %w", p, err)
	}
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing %s: %w", p, err)
	}
	return Level{Level: parsed, FilePath: p}, nil
}

// LoadByID returns the level with the given id. An empty id selects the first
// level.
func (l *Loader) LoadByID(id string) (Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	if len(all) == 0 {
		return Level{}, fmt.Errorf("%w: %s is empty", ErrNotFound, l.root)
	}
	if id == "" {
		return all[0], nil
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level ids in order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Neighbor returns the id offset steps away from id in the sorted list,
// wrapping around.
func Neighbor(ids []string, id string, offset int) string {
	if len(ids) == 0 {
		return id
	}
	cur := 0
	for i, v := range ids {
		if v == id {
			cur = i
			break
		}
	}
	n := len(ids)
	return ids[((cur+offset)%n+n)%n]
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
