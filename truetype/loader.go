// Package truetype implements ttfont.Loader for the TrueType table format:
// table-directory discovery, maxp/head/hhea/cmap decoding,
// character-to-glyph-index resolution via cmap formats 4 and 12, and
// decoding of simple and compound glyph outlines from glyf via loca.
//
// It registers itself with ttfont on import:
//
//	import _ "github.com/mibigo/ttfont/truetype"
package truetype

import (
	"github.com/mibigo/ttfont"
	"github.com/sirupsen/logrus"
)

func init() {
	ttfont.RegisterLoader(func() ttfont.Loader { return &Loader{} })
}

// requiredTables is the set of tags a stream must carry in its table
// directory to be accepted as TrueType. name and post are required present
// but, per spec, not decoded by this loader beyond their offset.
var requiredTables = []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post"}

const locaFormatShort = 0
const locaFormatLong = 1

// Loader is a ttfont.Loader for TrueType-flavored sfnt streams. Each Font
// gets its own Loader instance (see ttfont.RegisterLoader), so all of this
// state is private to one Font.
type Loader struct {
	tableDir map[string]tableDirEntry

	unitsPerEm      int32
	longOffsets     int32 // head.indexToLocFormat: 0 short, 1 long
	glyphNum        int
	maxPoints       int
	advanceWidthNum int

	cmap cmapTable

	// flags is scratch space for decoding a simple glyph's run-length
	// flags, sized from maxp.maxPoints at Init time.
	flags []byte

	log *logrus.Logger
}

// tableDirEntry is one entry of the sfnt table directory: a 4-byte ASCII
// tag (compared byte-wise, not as an integer, so the result is
// endianness-independent), a checksum, a byte offset and a byte size.
type tableDirEntry struct {
	tag      string
	checksum uint32
	offset   uint32
	size     uint32
}

// IsValid reports whether r looks like a TrueType table directory: a
// well-formed scaler type/table count header whose table tags include
// every entry in requiredTables. It does not mutate any Loader state —
// it's called against a throwaway Loader before one is chosen.
func (l *Loader) IsValid(r *ttfont.Reader) bool {
	_, err := readTableDirectory(r)
	return err == nil
}

// Init walks the table directory, then parses head, maxp, hhea and cmap,
// populating the Font's global metrics.
func (l *Loader) Init(f *ttfont.Font) error {
	l.log = f.Logger()
	r := f.Reader()

	dir, err := readTableDirectory(r)
	if err != nil {
		return err
	}
	l.tableDir = dir

	if err := l.parseHead(r, f); err != nil {
		return err
	}
	if err := l.parseMaxp(r); err != nil {
		return err
	}
	if err := l.parseCmap(r); err != nil {
		return err
	}
	if err := l.parseHhea(r, f); err != nil {
		return err
	}

	l.flags = make([]byte, l.maxPoints)
	return nil
}

// LoadMissing decodes glyph id 0, the conventional TrueType fallback.
func (l *Loader) LoadMissing(f *ttfont.Font) (*ttfont.Glyph, error) {
	return l.LoadGlyph(f, 0)
}

// Free releases the scratch flags buffer.
func (l *Loader) Free() {
	l.flags = nil
	l.tableDir = nil
}

// SizeToPixels converts em_units to device pixels as
// em_units * point_size * dpi / (72 * units_per_em), using integer
// arithmetic throughout (so sub-pixel remainders are simply truncated,
// matching the reference C implementation).
func (l *Loader) SizeToPixels(f *ttfont.Font, pointSize, emUnits int32) int32 {
	return emUnits * pointSize * f.DPI / (72 * l.unitsPerEm)
}

func (l *Loader) tableOffset(tag string) (uint32, bool) {
	e, ok := l.tableDir[tag]
	if !ok {
		return 0, false
	}
	return e.offset, true
}
