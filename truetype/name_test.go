package truetype

import (
	"testing"

	"github.com/mibigo/ttfont/internal/fonttest"
)

func TestFamilyNameDecodesWindowsRecord(t *testing.T) {
	cfg := fonttest.Config{
		UnitsPerEm: 1000,
		XMax:       1000, YMax: 1000,
		Glyphs:     []fonttest.Glyph{{}},
		Cmap:       map[rune]uint16{},
		CmapFormat: 4,
		FamilyName: "Example Sans",
	}
	data := fonttest.Build(cfg)
	f, l := openLoader(t, data)
	defer f.Close()

	if got := l.FamilyName(f); got != "Example Sans" {
		t.Fatalf("FamilyName() = %q, want %q", got, "Example Sans")
	}
}

func TestFamilyNameEmptyWhenAbsent(t *testing.T) {
	cfg := fonttest.Config{
		UnitsPerEm: 1000,
		XMax:       1000, YMax: 1000,
		Glyphs:     []fonttest.Glyph{{}},
		Cmap:       map[rune]uint16{},
		CmapFormat: 4,
	}
	data := fonttest.Build(cfg)
	f, l := openLoader(t, data)
	defer f.Close()

	if got := l.FamilyName(f); got != "" {
		t.Fatalf("FamilyName() = %q, want \"\"", got)
	}
}
