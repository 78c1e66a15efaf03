package truetype

import "github.com/mibigo/ttfont"

// cmapTable records which cmap subtable was selected and where its payload
// starts, so get_glyph_id can replay it on every lookup without
// re-scanning the subtable list. Only the Unicode platform (platform id 0)
// with a format 4 or format 12 subtable is resolved; platform id 3
// (Microsoft) subtables are skipped without being recorded.
type cmapTable struct {
	format     uint16 // 0 means "no supported subtable found"
	dataOffset int    // absolute offset of the subtable body
	groupNum   uint32 // format 12 only
}

// parseCmap scans the cmap's encoding subtables and selects the best one:
// format 12 is preferred over format 4 when both are present, since format
// 12 covers the full Unicode range including non-BMP code points. Ties
// within the same format go to whichever subtable is encountered last, as
// in the reference implementation's simple "keep scanning and overwrite"
// loop.
func (l *Loader) parseCmap(r *ttfont.Reader) error {
	cmapStart, ok := l.tableOffset("cmap")
	if !ok {
		return corrupted("missing cmap table")
	}

	r.Jump(int(cmapStart))
	r.Skip(2) // version, always 0
	subtableNum := int(r.ReadU16())

	for i := 0; i < subtableNum; i++ {
		r.Jump(int(cmapStart) + 4 + i*8)
		platformID := r.ReadU16()
		platformSpecificID := r.ReadU16()
		subtableOffset := r.ReadU32()

		if platformID == 3 {
			// Reserved for future use; recorded nowhere, matching spec.
			continue
		}
		if platformID != 0 || (platformSpecificID != 3 && platformSpecificID != 4) {
			continue
		}

		r.Jump(int(cmapStart) + int(subtableOffset))
		format := r.ReadU16()

		switch format {
		case 4:
			r.ReadU16() // length
			r.ReadU16() // language
			// A format 12 subtable, wherever it appeared, always outranks
			// format 4: don't let a later format 4 subtable undo it.
			if l.cmap.format != 12 {
				l.cmap = cmapTable{format: 4, dataOffset: r.Pos()}
			}
		case 12:
			r.Skip(2)   // reserved
			r.ReadU32() // length
			r.ReadU32() // language
			groupNum := r.ReadU32()
			// Format 12 always wins, and among multiple format 12
			// subtables the last one encountered wins.
			l.cmap = cmapTable{format: 12, dataOffset: r.Pos(), groupNum: groupNum}
		}
	}

	l.log.WithField("format", l.cmap.format).Debug("ttf: cmap subtable selected")
	return nil
}

// getGlyphID resolves a code point through whichever cmap subtable
// parseCmap selected. If no supported subtable was found, it returns
// codePoint unchanged — the reference implementation's documented
// fallback ("try this glyph id and let the glyph loader decide") rather
// than 0, which would always resolve to the missing glyph.
func (l *Loader) getGlyphID(r *ttfont.Reader, codePoint uint32) uint32 {
	switch l.cmap.format {
	case 4:
		return l.getGlyphIDFormat4(r, codePoint)
	case 12:
		return l.getGlyphIDFormat12(r, codePoint)
	default:
		return codePoint
	}
}

func (l *Loader) getGlyphIDFormat4(r *ttfont.Reader, codePoint uint32) uint32 {
	r.Jump(l.cmap.dataOffset)
	segCount := int(r.ReadU16()) / 2
	r.Skip(6) // searchRange, entrySelector, rangeShift

	for i := 0; i < segCount; i++ {
		endChar := uint32(r.ReadU16())
		savedPos := r.Pos()
		if endChar < codePoint {
			continue
		}
		r.Skip(segCount * 2) // remaining end codes + reservedPad
		startChar := uint32(r.ReadU16())
		if startChar > codePoint {
			r.Jump(savedPos)
			continue
		}
		r.Skip(segCount*2 - 2)
		delta := r.ReadU16()
		r.Skip(segCount*2 - 2)
		idRangeOffset := r.ReadU16()
		if idRangeOffset == 0 {
			return (uint32(delta) + codePoint) & 0xFFFF
		}
		r.Skip(int(idRangeOffset) + 2*int(codePoint-startChar) - 2)
		return uint32(delta) + uint32(r.ReadU16())
	}
	return codePoint
}

func (l *Loader) getGlyphIDFormat12(r *ttfont.Reader, codePoint uint32) uint32 {
	r.Jump(l.cmap.dataOffset)
	for i := uint32(0); i < l.cmap.groupNum; i++ {
		startChar := r.ReadU32()
		endChar := r.ReadU32()
		startIndex := r.ReadU32()
		if codePoint >= startChar && codePoint <= endChar {
			return codePoint - startChar + startIndex
		}
	}
	return codePoint
}

// GetGlyphID implements ttfont.Loader.
func (l *Loader) GetGlyphID(f *ttfont.Font, codePoint uint32) uint32 {
	return l.getGlyphID(f.Reader(), codePoint)
}
