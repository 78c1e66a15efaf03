package truetype

import (
	"errors"
	"testing"

	"github.com/mibigo/ttfont"
	"github.com/mibigo/ttfont/internal/fonttest"
)

func minimalConfig() fonttest.Config {
	return fonttest.Config{
		UnitsPerEm: 2048,
		XMin:       -100, YMin: -50, XMax: 900, YMax: 1000,
		Ascender: 1900, Descender: -400, LineGap: 50,
		Glyphs: []fonttest.Glyph{
			{},
			{
				Contours: []fonttest.Contour{{
					{X: 0, Y: 0, On: true},
					{X: 200, Y: 0, On: true},
					{X: 200, Y: 200, On: true},
					{X: 0, Y: 200, On: true},
				}},
				AdvanceWidth:    1024,
				LeftSideBearing: 10,
			},
		},
		Cmap:       map[rune]uint16{'Z': 1},
		CmapFormat: 4,
	}
}

func openLoader(t *testing.T, data []byte) (*ttfont.Font, *Loader) {
	t.Helper()
	f, err := ttfont.Open(ttfont.NewReader(data))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l, ok := f.Loader().(*Loader)
	if !ok {
		t.Fatalf("Font.Loader() is not a *truetype.Loader: %T", f.Loader())
	}
	return f, l
}

func TestIsValidRejectsNonTableDirectory(t *testing.T) {
	l := &Loader{}
	if l.IsValid(ttfont.NewReader([]byte("not a font"))) {
		t.Fatal("IsValid accepted non-TrueType bytes")
	}
}

func TestIsValidAcceptsWellFormedDirectory(t *testing.T) {
	data := fonttest.Build(minimalConfig())
	l := &Loader{}
	if !l.IsValid(ttfont.NewReader(data)) {
		t.Fatal("IsValid rejected a well-formed fixture")
	}
}

func TestInitParsesHeadMaxpHhea(t *testing.T) {
	data := fonttest.Build(minimalConfig())
	f, l := openLoader(t, data)
	defer f.Close()

	if l.unitsPerEm != 2048 {
		t.Fatalf("unitsPerEm = %d, want 2048", l.unitsPerEm)
	}
	if l.longOffsets != locaFormatShort {
		t.Fatalf("longOffsets = %d, want locaFormatShort", l.longOffsets)
	}
	if l.glyphNum != 2 {
		t.Fatalf("glyphNum = %d, want 2", l.glyphNum)
	}
	if l.maxPoints != 4 {
		t.Fatalf("maxPoints = %d, want 4", l.maxPoints)
	}
	if f.XMin != -100 || f.YMax != 1000 {
		t.Fatalf("bbox = (XMin=%d YMax=%d), want (-100, 1000)", f.XMin, f.YMax)
	}
	if f.Ascender != 1900 || f.Descender != -400 || f.LineGap != 50 {
		t.Fatalf("hhea metrics = (%d,%d,%d), want (1900,-400,50)", f.Ascender, f.Descender, f.LineGap)
	}
	if l.advanceWidthNum != 2 {
		t.Fatalf("advanceWidthNum = %d, want 2", l.advanceWidthNum)
	}
}

func TestIsValidRejectsMissingRequiredTable(t *testing.T) {
	data := fonttest.Build(minimalConfig())
	recPos, ok := findTableRecord(data, "cmap")
	if !ok {
		t.Fatal("fixture has no cmap table to corrupt")
	}
	// Overwrite the cmap tag itself so the directory no longer names a
	// required table; readTableDirectory (and so IsValid) must reject it.
	copy(data[recPos:recPos+4], []byte("xxxx"))

	l := &Loader{}
	if l.IsValid(ttfont.NewReader(data)) {
		t.Fatal("IsValid accepted a directory missing a required table tag")
	}
}

func TestInitRejectsBadIndexToLocFormat(t *testing.T) {
	data := fonttest.Build(minimalConfig())
	offset, size, ok := findTable(data, "head")
	if !ok {
		t.Fatal("fixture has no head table")
	}
	data[offset+size-2] = 0
	data[offset+size-1] = 2 // neither 0 (short) nor 1 (long)

	_, err := ttfont.Open(ttfont.NewReader(data))
	if !errors.Is(err, ttfont.KindCorrupted) {
		t.Fatalf("Open with bad indexToLocFormat = %v, want KindCorrupted", err)
	}
}

// findTable mirrors the fixed sfnt directory layout (tag, checksum,
// offset, size as four big-endian uint32-aligned fields per entry,
// starting at byte 12) to locate a table for corruption in tests.
func findTable(data []byte, tag string) (offset, size int, ok bool) {
	tableNum := int(uint16(data[4])<<8 | uint16(data[5]))
	for i := 0; i < tableNum; i++ {
		rec := data[12+i*16 : 12+i*16+16]
		if string(rec[:4]) == tag {
			o := int(rec[8])<<24 | int(rec[9])<<16 | int(rec[10])<<8 | int(rec[11])
			s := int(rec[12])<<24 | int(rec[13])<<16 | int(rec[14])<<8 | int(rec[15])
			return o, s, true
		}
	}
	return 0, 0, false
}

// findTableRecord returns the byte position of tag's own directory entry
// (not the table data it points to), for tests that need to corrupt the
// tag rather than the table body.
func findTableRecord(data []byte, tag string) (recPos int, ok bool) {
	tableNum := int(uint16(data[4])<<8 | uint16(data[5]))
	for i := 0; i < tableNum; i++ {
		pos := 12 + i*16
		if string(data[pos:pos+4]) == tag {
			return pos, true
		}
	}
	return 0, false
}
