package palette

import (
	"image/color"
	"io"
	"math/rand"
	"sort"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDefaultTable(t *testing.T) {
	table := Default()
	if len(table) != Size {
		t.Fatalf("Default() has %d entries, expected %d", len(table), Size)
	}
	for i, e := range table {
		if e.Column != i {
			t.Errorf("entry %d column = %d, expected %d", i, e.Column, i)
		}
	}
	if Hex(table[NoColorIdx].Color) != "#090710" {
		t.Errorf("background = %s, expected #090710", Hex(table[NoColorIdx].Color))
	}
	if Hex(table[WallIdx].Color) != "#8c8c8c" {
		t.Errorf("wall = %s, expected #8c8c8c", Hex(table[WallIdx].Color))
	}
}

func TestResolveOffsetsPastReserved(t *testing.T) {
	p, err := New(Config{}, nil, quietLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	table := Default()

	for i := 0; i < Size-Reserved; i++ {
		if got := p.ResolveDisplayColor(i, false); got != table[i+Reserved].Color {
			t.Errorf("ResolveDisplayColor(%d) = %s, expected %s", i, Hex(got), Hex(table[i+Reserved].Color))
		}
		if got := p.ResolveAtlasColumn(i); got != i+Reserved {
			t.Errorf("ResolveAtlasColumn(%d) = %d, expected %d", i, got, i+Reserved)
		}
	}
}

func TestResolveBlackUsesBackground(t *testing.T) {
	p, _ := New(Config{}, nil, quietLogger())
	if got := p.ResolveDisplayColor(3, true); got != Default()[NoColorIdx].Color {
		t.Errorf("black piece color = %s, expected background", Hex(got))
	}
}

func TestResolveOutOfRangeFallsBack(t *testing.T) {
	p, _ := New(Config{}, nil, quietLogger())

	for _, idx := range []int{-1, Size - Reserved, 100} {
		if got := p.ResolveDisplayColor(idx, false); got != Fallback {
			t.Errorf("ResolveDisplayColor(%d) = %s, expected fallback", idx, Hex(got))
		}
		if got := p.ResolveAtlasColumn(idx); got != p.BackgroundColumn() {
			t.Errorf("ResolveAtlasColumn(%d) = %d, expected background column", idx, got)
		}
	}
}

func TestShuffleKeepsReservedEntries(t *testing.T) {
	orig := Default()
	for seed := int64(1); seed <= 50; seed++ {
		p, err := New(Config{RandomColors: true}, rand.New(rand.NewSource(seed)), quietLogger())
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		got := p.Entries()

		for i := 0; i < Reserved; i++ {
			if got[i] != orig[i] {
				t.Fatalf("seed %d: reserved entry %d changed: %+v -> %+v", seed, i, orig[i], got[i])
			}
		}

		if !sameMultiset(orig[Reserved:], got[Reserved:]) {
			t.Fatalf("seed %d: shuffled entries are not a permutation of the originals", seed)
		}
	}
}

func TestShufflePermutes(t *testing.T) {
	orig := Default()
	moved := false
	for seed := int64(1); seed <= 20 && !moved; seed++ {
		p, _ := New(Config{RandomColors: true}, rand.New(rand.NewSource(seed)), quietLogger())
		for i, e := range p.Entries() {
			if e != orig[i] {
				moved = true
				break
			}
		}
	}
	if !moved {
		t.Error("20 shuffles never changed the order")
	}
}

func TestNoShuffleWithoutPreference(t *testing.T) {
	p, _ := New(Config{RandomColors: false}, rand.New(rand.NewSource(7)), quietLogger())
	orig := Default()
	for i, e := range p.Entries() {
		if e != orig[i] {
			t.Errorf("entry %d changed without the preference", i)
		}
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	if _, err := New(Config{Table: Default()[:5]}, nil, quietLogger()); err == nil {
		t.Error("expected error for short table")
	}
	bad := Default()
	bad[4].Column = core.AtlasColumns
	if _, err := New(Config{Table: bad}, nil, quietLogger()); err == nil {
		t.Error("expected error for out-of-range column")
	}
}

func TestColumnColorFollowsShuffle(t *testing.T) {
	p, _ := New(Config{RandomColors: true}, rand.New(rand.NewSource(3)), quietLogger())
	for i := 0; i < Size-Reserved; i++ {
		col := p.ResolveAtlasColumn(i)
		c, ok := p.ColumnColor(col)
		if !ok {
			t.Fatalf("ColumnColor(%d) not found", col)
		}
		if c != p.ResolveDisplayColor(i, false) {
			t.Errorf("color index %d: column color %s != display color %s", i, Hex(c), Hex(p.ResolveDisplayColor(i, false)))
		}
	}
}

func TestIsBlackPiece(t *testing.T) {
	tests := []struct {
		name       string
		canConnect core.ConnMask
		connected  core.ConnMask
		want       bool
	}{
		{"not a piece", core.ConnNone, core.ConnNone, false},
		{"full connector saturated", core.ConnAll, core.ConnAll, false},
		{"partial saturated", core.ConnLeft | core.ConnRight, core.ConnLeft | core.ConnRight, true},
		{"single saturated", core.ConnUp, core.ConnUp, true},
		{"partial unsaturated", core.ConnLeft | core.ConnRight, core.ConnLeft, false},
		{"empty potential", core.ConnEmpty, core.ConnEmpty, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBlackPiece(tc.canConnect, tc.connected); got != tc.want {
				t.Errorf("IsBlackPiece(%s, %s) = %v, expected %v", tc.canConnect, tc.connected, got, tc.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#32cd32")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c != (color.RGBA{R: 0x32, G: 0xcd, B: 0x32, A: 0xff}) {
		t.Errorf("ParseHex = %v", c)
	}
	if _, err := ParseHex("green"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func sameMultiset(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(e Entry) string { return Hex(e.Color) + string(rune('0'+e.Column)) }
	ka := make([]string, len(a))
	kb := make([]string, len(b))
	for i := range a {
		ka[i] = key(a[i])
		kb[i] = key(b[i])
	}
	sort.Strings(ka)
	sort.Strings(kb)
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}
