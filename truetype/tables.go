package truetype

import (
	"fmt"

	"github.com/mibigo/ttfont"
)

// readTableDirectory parses the sfnt offset subtable and the table
// directory that follows it, returning the tag -> entry map. It returns an
// error (never panics) when a required tag is absent, which is also how
// IsValid tells a TrueType stream apart from anything else: a well-formed
// directory missing a required table is "not TrueType", not "corrupted
// TrueType" — the distinction only matters once a loader has committed to
// this format in Init.
func readTableDirectory(r *ttfont.Reader) (map[string]tableDirEntry, error) {
	r.Skip(4) // scaler type
	tableNum := int(r.ReadU16())
	r.Skip(6) // search range, entry selector, range shift

	dir := make(map[string]tableDirEntry, tableNum)
	tagBuf := make([]byte, 4)
	for i := 0; i < tableNum; i++ {
		r.ReadBytes(tagBuf)
		tag := string(tagBuf)
		e := tableDirEntry{
			tag:      tag,
			checksum: r.ReadU32(),
			offset:   r.ReadU32(),
			size:     r.ReadU32(),
		}
		dir[tag] = e
	}

	for _, tag := range requiredTables {
		if _, ok := dir[tag]; !ok {
			return nil, corrupted("missing required table %q", tag)
		}
	}
	return dir, nil
}

func corrupted(format string, args ...any) error {
	return &ttfont.Error{Kind: ttfont.KindCorrupted, Reason: fmt.Sprintf(format, args...)}
}

// parseHead reads units-per-em, the font-wide bounding box and the
// indexToLocFormat flag (short vs. long loca offsets) out of the head
// table.
func (l *Loader) parseHead(r *ttfont.Reader, f *ttfont.Font) error {
	offset, ok := l.tableOffset("head")
	if !ok {
		return corrupted("missing head table")
	}
	r.Jump(int(offset))
	r.Skip(4 + 4 + 4 + 4) // version, fontRevision, checkSumAdjustment, magicNumber
	r.Skip(2)             // flags
	l.unitsPerEm = int32(r.ReadU16())
	r.Skip(8 + 8) // created, modified
	f.XMin = int32(r.ReadI16())
	f.YMin = int32(r.ReadI16())
	f.XMax = int32(r.ReadI16())
	f.YMax = int32(r.ReadI16())
	r.Skip(2 + 2 + 2) // macStyle, lowestRecPPEM, fontDirectionHint
	switch v := r.ReadI16(); v {
	case 0:
		l.longOffsets = locaFormatShort
	case 1:
		l.longOffsets = locaFormatLong
	default:
		return corrupted("bad indexToLocFormat: %d", v)
	}
	return nil
}

// parseMaxp reads the glyph count and the maximum simple-glyph point
// count, the latter used to size the per-glyph flags scratch buffer and
// to reject a simple glyph with more points than the font declared.
func (l *Loader) parseMaxp(r *ttfont.Reader) error {
	offset, ok := l.tableOffset("maxp")
	if !ok {
		return corrupted("missing maxp table")
	}
	r.Jump(int(offset))
	if v := r.ReadU32(); v != 0x00010000 {
		return corrupted("bad maxp version: 0x%08x", v)
	}
	l.glyphNum = int(r.ReadU16())
	l.maxPoints = int(r.ReadU16())
	l.log.WithField("glyphs", l.glyphNum).Debug("ttf: maxp parsed")
	return nil
}

// parseHhea reads the font-wide ascender/descender/lineGap and the count
// of long horizontal-metric entries in hmtx.
func (l *Loader) parseHhea(r *ttfont.Reader, f *ttfont.Font) error {
	offset, ok := l.tableOffset("hhea")
	if !ok {
		return corrupted("missing hhea table")
	}
	r.Jump(int(offset))
	r.Skip(4) // version
	f.Ascender = int32(r.ReadI16())
	f.Descender = int32(r.ReadI16())
	f.LineGap = int32(r.ReadI16())
	r.Skip(24) // advanceWidthMax..metricDataFormat
	l.advanceWidthNum = int(r.ReadU16())
	if l.advanceWidthNum == 0 {
		return corrupted("numberOfHMetrics is zero")
	}
	return nil
}
