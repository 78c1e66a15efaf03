package truetype

import (
	"errors"
	"testing"

	"github.com/mibigo/ttfont"
	"github.com/mibigo/ttfont/internal/fonttest"
	"github.com/stretchr/testify/require"
)

func TestLoadGlyphSimpleOutline(t *testing.T) {
	cfg := fonttest.Config{
		UnitsPerEm: 1000,
		XMax:       1000, YMax: 1000,
		Glyphs: []fonttest.Glyph{
			{},
			{
				Contours: []fonttest.Contour{{
					{X: 10, Y: 10, On: true},
					{X: 110, Y: 10, On: true},
					{X: 60, Y: 210, On: true},
				}},
				AdvanceWidth:    512,
				LeftSideBearing: 3,
			},
		},
		Cmap:       map[rune]uint16{'T': 1},
		CmapFormat: 4,
	}
	data := fonttest.Build(cfg)
	f, l := openLoader(t, data)
	defer f.Close()

	g, err := l.LoadGlyph(f, 1)
	if err != nil {
		t.Fatalf("LoadGlyph(1): %v", err)
	}
	if g.NumContours() != 1 {
		t.Fatalf("NumContours() = %d, want 1", g.NumContours())
	}
	if len(g.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3", len(g.Points))
	}
	want := []ttfont.Point{
		{X: 10, Y: 10, OnCurve: true},
		{X: 110, Y: 10, OnCurve: true},
		{X: 60, Y: 210, OnCurve: true},
	}
	for i, p := range want {
		if g.Points[i] != p {
			t.Fatalf("Points[%d] = %+v, want %+v", i, g.Points[i], p)
		}
	}
	if g.AdvanceWidth != 512 || g.LeftSideBearing != 3 {
		t.Fatalf("metrics = (%d,%d), want (512,3)", g.AdvanceWidth, g.LeftSideBearing)
	}
}

func TestLoadGlyphEmptyOutline(t *testing.T) {
	cfg := fonttest.Config{
		UnitsPerEm: 1000,
		XMax:       1000, YMax: 1000,
		Glyphs: []fonttest.Glyph{
			{AdvanceWidth: 200}, // glyph 0: space, no contours
		},
		Cmap:       map[rune]uint16{' ': 0},
		CmapFormat: 4,
	}
	data := fonttest.Build(cfg)
	f, l := openLoader(t, data)
	defer f.Close()

	g, err := l.LoadGlyph(f, 0)
	if err != nil {
		t.Fatalf("LoadGlyph(0): %v", err)
	}
	if !g.Empty() {
		t.Fatalf("space glyph = %+v, want Empty()", g)
	}
	if g.AdvanceWidth != 200 {
		t.Fatalf("AdvanceWidth = %d, want 200", g.AdvanceWidth)
	}
}

func TestLoadGlyphRejectsPointCountOverMaxp(t *testing.T) {
	cfg := fonttest.Config{
		UnitsPerEm: 1000,
		XMax:       1000, YMax: 1000,
		Glyphs: []fonttest.Glyph{
			{},
			{
				Contours: []fonttest.Contour{{
					{X: 0, Y: 0, On: true},
					{X: 10, Y: 0, On: true},
					{X: 10, Y: 10, On: true},
				}},
			},
		},
		Cmap:       map[rune]uint16{'T': 1},
		CmapFormat: 4,
	}
	data := fonttest.Build(cfg)
	offset, size, ok := findTable(data, "maxp")
	if !ok {
		t.Fatal("fixture has no maxp table")
	}
	data[offset+size-2] = 0
	data[offset+size-1] = 1 // maxPoints = 1, below this glyph's 3 points

	f, l := openLoader(t, data)
	defer f.Close()

	_, err := l.LoadGlyph(f, 1)
	if !errors.Is(err, ttfont.KindCorrupted) {
		t.Fatalf("LoadGlyph over maxp.maxPoints = %v, want KindCorrupted", err)
	}
}

func TestLoadGlyphCompoundTranslatesComponents(t *testing.T) {
	cfg := fonttest.Config{
		UnitsPerEm: 1000,
		XMax:       1000, YMax: 1000,
		Glyphs: []fonttest.Glyph{
			{}, // 0: .notdef
			{ // 1: a single-contour "dot"
				Contours: []fonttest.Contour{{
					{X: 0, Y: 0, On: true},
					{X: 10, Y: 0, On: true},
					{X: 10, Y: 10, On: true},
					{X: 0, Y: 10, On: true},
				}},
				AdvanceWidth: 20,
			},
			{ // 2: two copies of glyph 1, translated apart
				Components: []fonttest.Component{
					{GlyphIndex: 1, DX: 0, DY: 0},
					{GlyphIndex: 1, DX: 100, DY: 50},
				},
				AdvanceWidth: 150,
			},
		},
		Cmap:       map[rune]uint16{'D': 2},
		CmapFormat: 4,
	}
	data := fonttest.Build(cfg)
	f, l := openLoader(t, data)
	defer f.Close()

	g, err := l.LoadGlyph(f, 2)
	require.NoError(t, err)
	require.Len(t, g.Points, 8, "two 4-point components")
	require.Equal(t, 2, g.NumContours())

	require.Equal(t, ttfont.Point{X: 0, Y: 0, OnCurve: true}, g.Points[0], "first component is untranslated")
	require.Equal(t, ttfont.Point{X: 100, Y: 50, OnCurve: true}, g.Points[4], "second component translated by (100,50)")
	require.Equal(t, ttfont.Point{X: 110, Y: 50, OnCurve: true}, g.Points[5])

	// contourEnds must be concatenated with the point offset applied to
	// the second component's own contour-end indices.
	require.Equal(t, []uint32{3, 7}, g.ContourEnds)
}
