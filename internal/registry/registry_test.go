package registry_test

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	_ "github.com/vovakirdan/slidelink/internal/engine/reference"
	"github.com/vovakirdan/slidelink/internal/levels"
	"github.com/vovakirdan/slidelink/internal/registry"
)

func TestReferenceEngineRegistered(t *testing.T) {
	if !registry.Exists("reference") {
		t.Fatal("reference engine not registered")
	}
	found := false
	for _, info := range registry.List() {
		if info.ID == "reference" && info.Title != "" {
			found = true
		}
	}
	if !found {
		t.Error("List does not include the reference engine")
	}
}

func TestCreate(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	eng, err := registry.Create("reference", lvl, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	h := eng.New()
	defer eng.Free(h)
	if eng.BlockCount(h) == 0 {
		t.Error("built-in level has no blocks")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := registry.Create("nope", levels.Level{}, nil)
	if !errors.Is(err, registry.ErrUnknownEngine) {
		t.Errorf("err = %v, expected ErrUnknownEngine", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	registry.Register("reference", "again", nil)
}
