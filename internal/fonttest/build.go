// Package fonttest builds minimal, hand-assembled TrueType byte streams
// for use as test fixtures, since this module ships no binary .ttf assets.
// It is not part of the public API.
package fonttest

import (
	"bytes"
	"encoding/binary"
)

// Pt is one outline point for a fixture glyph.
type Pt struct {
	X, Y int16
	On   bool
}

// Contour is a closed sequence of points.
type Contour []Pt

// Component is one entry of a compound glyph, always encoded with
// ARG_1_AND_2_ARE_WORDS | ARGS_ARE_XY_VALUES for simplicity.
type Component struct {
	GlyphIndex uint16
	DX, DY     int16
}

// Glyph is one entry of the font's glyph set. Exactly one of Contours or
// Components should be set; a Glyph with neither is a zero-contour glyph
// (e.g. space).
type Glyph struct {
	Contours        []Contour
	Components      []Component
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Config describes a fixture font.
type Config struct {
	UnitsPerEm                   int16
	XMin, YMin, XMax, YMax       int16
	Ascender, Descender, LineGap int16
	Glyphs                       []Glyph
	LongLoca                     bool

	// Cmap maps a code point to a glyph id. CmapFormat is 4 or 12.
	Cmap      map[rune]uint16
	CmapFormat int

	FamilyName string // if set, a name table id=1 Windows record is emitted
}

type builder struct {
	cfg Config
}

// Build assembles cfg into a complete sfnt byte stream.
func Build(cfg Config) []byte {
	b := builder{cfg: cfg}
	return b.build()
}

const requiredTableCount = 9

func (b *builder) build() []byte {
	tables := map[string][]byte{
		"head": b.buildHead(),
		"maxp": b.buildMaxp(),
		"hhea": b.buildHhea(),
		"hmtx": b.buildHmtx(),
		"name": b.buildName(),
		"post": {0, 3, 0, 0},
	}
	glyf, loca := b.buildGlyfLoca()
	tables["glyf"] = glyf
	tables["loca"] = loca
	tables["cmap"] = b.buildCmap()

	order := []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post"}

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(0x00010000))
	binary.Write(&out, binary.BigEndian, uint16(len(order)))
	binary.Write(&out, binary.BigEndian, uint16(0)) // searchRange
	binary.Write(&out, binary.BigEndian, uint16(0)) // entrySelector
	binary.Write(&out, binary.BigEndian, uint16(0)) // rangeShift

	headerLen := 12 + len(order)*16
	offset := headerLen
	type entry struct {
		tag    string
		offset int
		size   int
	}
	var entries []entry
	for _, tag := range order {
		data := tables[tag]
		entries = append(entries, entry{tag, offset, len(data)})
		offset += len(data)
	}
	for _, e := range entries {
		out.WriteString(e.tag)
		binary.Write(&out, binary.BigEndian, uint32(0)) // checksum, unverified
		binary.Write(&out, binary.BigEndian, uint32(e.offset))
		binary.Write(&out, binary.BigEndian, uint32(e.size))
	}
	for _, tag := range order {
		out.Write(tables[tag])
	}
	return out.Bytes()
}

func (b *builder) buildHead() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(0x00010000)) // version
	binary.Write(&out, binary.BigEndian, uint32(0))          // fontRevision
	binary.Write(&out, binary.BigEndian, uint32(0))          // checkSumAdjustment
	binary.Write(&out, binary.BigEndian, uint32(0x5F0F3CF5)) // magicNumber
	binary.Write(&out, binary.BigEndian, uint16(0))          // flags
	binary.Write(&out, binary.BigEndian, uint16(b.cfg.UnitsPerEm))
	binary.Write(&out, binary.BigEndian, uint64(0)) // created
	binary.Write(&out, binary.BigEndian, uint64(0)) // modified
	binary.Write(&out, binary.BigEndian, b.cfg.XMin)
	binary.Write(&out, binary.BigEndian, b.cfg.YMin)
	binary.Write(&out, binary.BigEndian, b.cfg.XMax)
	binary.Write(&out, binary.BigEndian, b.cfg.YMax)
	binary.Write(&out, binary.BigEndian, uint16(0)) // macStyle
	binary.Write(&out, binary.BigEndian, uint16(0)) // lowestRecPPEM
	binary.Write(&out, binary.BigEndian, int16(0))  // fontDirectionHint
	if b.cfg.LongLoca {
		binary.Write(&out, binary.BigEndian, int16(1))
	} else {
		binary.Write(&out, binary.BigEndian, int16(0))
	}
	return out.Bytes()
}

func (b *builder) buildMaxp() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(0x00010000))
	binary.Write(&out, binary.BigEndian, uint16(len(b.cfg.Glyphs)))
	binary.Write(&out, binary.BigEndian, uint16(b.maxPoints()))
	return out.Bytes()
}

func (b *builder) maxPoints() int {
	max := 0
	for _, g := range b.cfg.Glyphs {
		n := 0
		for _, c := range g.Contours {
			n += len(c)
		}
		if n > max {
			max = n
		}
	}
	return max
}

func (b *builder) buildHhea() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(0x00010000)) // version
	binary.Write(&out, binary.BigEndian, b.cfg.Ascender)
	binary.Write(&out, binary.BigEndian, b.cfg.Descender)
	binary.Write(&out, binary.BigEndian, b.cfg.LineGap)
	out.Write(make([]byte, 24))
	binary.Write(&out, binary.BigEndian, uint16(len(b.cfg.Glyphs))) // numberOfHMetrics
	return out.Bytes()
}

func (b *builder) buildHmtx() []byte {
	var out bytes.Buffer
	for _, g := range b.cfg.Glyphs {
		binary.Write(&out, binary.BigEndian, g.AdvanceWidth)
		binary.Write(&out, binary.BigEndian, g.LeftSideBearing)
	}
	return out.Bytes()
}

func (b *builder) buildGlyfLoca() (glyf, loca []byte) {
	var g bytes.Buffer
	offsets := make([]uint32, 0, len(b.cfg.Glyphs)+1)
	for _, gl := range b.cfg.Glyphs {
		offsets = append(offsets, uint32(g.Len()))
		var one bytes.Buffer
		b.writeGlyph(&one, gl)
		if one.Len()%2 != 0 {
			// Every glyph is padded to an even length: the short loca
			// format stores offset/2, so an odd-length glyph would
			// otherwise silently round-trip truncated by one byte.
			one.WriteByte(0)
		}
		g.Write(one.Bytes())
	}
	offsets = append(offsets, uint32(g.Len()))

	var l bytes.Buffer
	if b.cfg.LongLoca {
		for _, o := range offsets {
			binary.Write(&l, binary.BigEndian, o)
		}
	} else {
		for _, o := range offsets {
			binary.Write(&l, binary.BigEndian, uint16(o/2))
		}
	}
	return g.Bytes(), l.Bytes()
}

func (b *builder) writeGlyph(out *bytes.Buffer, g Glyph) {
	if len(g.Components) > 0 {
		b.writeCompoundGlyph(out, g)
		return
	}
	if len(g.Contours) == 0 {
		return
	}
	xmin, ymin, xmax, ymax := boundsOf(g.Contours)
	binary.Write(out, binary.BigEndian, int16(len(g.Contours)))
	binary.Write(out, binary.BigEndian, xmin)
	binary.Write(out, binary.BigEndian, ymin)
	binary.Write(out, binary.BigEndian, xmax)
	binary.Write(out, binary.BigEndian, ymax)

	end := -1
	for _, c := range g.Contours {
		end += len(c)
		binary.Write(out, binary.BigEndian, uint16(end))
	}
	binary.Write(out, binary.BigEndian, uint16(0)) // instructionLength

	var pts []Pt
	for _, c := range g.Contours {
		pts = append(pts, c...)
	}

	// Point coordinates are delta-encoded from the previous point (the
	// first point's delta is from the origin), same as the real format:
	// an absolute X/Y here would only happen to decode right for a
	// glyph's very first point.
	dxs := make([]int16, len(pts))
	dys := make([]int16, len(pts))
	var prevX, prevY int16
	for i, p := range pts {
		dxs[i] = p.X - prevX
		dys[i] = p.Y - prevY
		prevX, prevY = p.X, p.Y
	}

	const (
		onCurve       = 1 << 0
		xShortVector  = 1 << 1
		yShortVector  = 1 << 2
		xIsPositive   = 1 << 4
		yIsPositive   = 1 << 5
	)
	for i, p := range pts {
		var flag byte
		if p.On {
			flag |= onCurve
		}
		flag |= xShortVector | yShortVector
		if dxs[i] >= 0 {
			flag |= xIsPositive
		}
		if dys[i] >= 0 {
			flag |= yIsPositive
		}
		out.WriteByte(flag)
	}
	for _, d := range dxs {
		out.WriteByte(absByte(d))
	}
	for _, d := range dys {
		out.WriteByte(absByte(d))
	}
}

// absByte converts a delta to its single-byte magnitude. Callers are
// expected to keep fixture coordinates close enough together that every
// delta fits the short-vector (one byte) form; there is no long-vector
// fallback here since every fixture in this package controls its own
// point spacing.
func absByte(v int16) byte {
	if v < 0 {
		v = -v
	}
	return byte(v)
}

func (b *builder) writeCompoundGlyph(out *bytes.Buffer, g Glyph) {
	binary.Write(out, binary.BigEndian, int16(-1))
	binary.Write(out, binary.BigEndian, int16(0))
	binary.Write(out, binary.BigEndian, int16(0))
	binary.Write(out, binary.BigEndian, int16(0))
	binary.Write(out, binary.BigEndian, int16(0))

	const (
		argWords = 1 << 0
		argsXY   = 1 << 1
		more     = 1 << 5
	)
	for i, c := range g.Components {
		flags := uint16(argWords | argsXY)
		if i < len(g.Components)-1 {
			flags |= more
		}
		binary.Write(out, binary.BigEndian, flags)
		binary.Write(out, binary.BigEndian, c.GlyphIndex)
		binary.Write(out, binary.BigEndian, c.DX)
		binary.Write(out, binary.BigEndian, c.DY)
	}
}

func boundsOf(contours []Contour) (xmin, ymin, xmax, ymax int16) {
	first := true
	for _, c := range contours {
		for _, p := range c {
			if first {
				xmin, xmax, ymin, ymax = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < xmin {
				xmin = p.X
			}
			if p.X > xmax {
				xmax = p.X
			}
			if p.Y < ymin {
				ymin = p.Y
			}
			if p.Y > ymax {
				ymax = p.Y
			}
		}
	}
	return
}

func (b *builder) buildCmap() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint16(0)) // version
	binary.Write(&out, binary.BigEndian, uint16(1)) // numTables
	binary.Write(&out, binary.BigEndian, uint16(0)) // platformID Unicode
	binary.Write(&out, binary.BigEndian, uint16(3)) // platformSpecificID
	subtableOffset := uint32(4 + 8)
	binary.Write(&out, binary.BigEndian, subtableOffset)

	if b.cfg.CmapFormat == 12 {
		out.Write(b.buildCmapFormat12())
	} else {
		out.Write(b.buildCmapFormat4())
	}
	return out.Bytes()
}

type cmapPair struct {
	code rune
	gid  uint16
}

func (b *builder) sortedCmap() []cmapPair {
	pairs := make([]cmapPair, 0, len(b.cfg.Cmap))
	for c, g := range b.cfg.Cmap {
		pairs = append(pairs, cmapPair{c, g})
	}
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j-1].code > pairs[j].code; j-- {
			pairs[j-1], pairs[j] = pairs[j], pairs[j-1]
		}
	}
	return pairs
}

func (b *builder) buildCmapFormat4() []byte {
	pairs := b.sortedCmap()
	segCount := len(pairs) + 1 // + terminator segment
	var end, start, delta, rangeOff bytes.Buffer
	for _, p := range pairs {
		binary.Write(&end, binary.BigEndian, uint16(p.code))
		binary.Write(&start, binary.BigEndian, uint16(p.code))
		binary.Write(&delta, binary.BigEndian, uint16(p.gid)-uint16(p.code))
		binary.Write(&rangeOff, binary.BigEndian, uint16(0))
	}
	binary.Write(&end, binary.BigEndian, uint16(0xFFFF))
	binary.Write(&start, binary.BigEndian, uint16(0xFFFF))
	binary.Write(&delta, binary.BigEndian, uint16(1))
	binary.Write(&rangeOff, binary.BigEndian, uint16(0))

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint16(4))              // format
	binary.Write(&out, binary.BigEndian, uint16(0))               // length, unused by the loader
	binary.Write(&out, binary.BigEndian, uint16(0))               // language
	binary.Write(&out, binary.BigEndian, uint16(segCount*2))
	binary.Write(&out, binary.BigEndian, uint16(0)) // searchRange
	binary.Write(&out, binary.BigEndian, uint16(0)) // entrySelector
	binary.Write(&out, binary.BigEndian, uint16(0)) // rangeShift
	out.Write(end.Bytes())
	binary.Write(&out, binary.BigEndian, uint16(0)) // reservedPad
	out.Write(start.Bytes())
	out.Write(delta.Bytes())
	out.Write(rangeOff.Bytes())
	return out.Bytes()
}

func (b *builder) buildCmapFormat12() []byte {
	pairs := b.sortedCmap()
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint16(12))
	binary.Write(&out, binary.BigEndian, uint16(0)) // reserved
	binary.Write(&out, binary.BigEndian, uint32(0)) // length, unused
	binary.Write(&out, binary.BigEndian, uint32(0)) // language
	binary.Write(&out, binary.BigEndian, uint32(len(pairs)))
	for _, p := range pairs {
		binary.Write(&out, binary.BigEndian, uint32(p.code))
		binary.Write(&out, binary.BigEndian, uint32(p.code))
		binary.Write(&out, binary.BigEndian, uint32(p.gid))
	}
	return out.Bytes()
}

func (b *builder) buildName() []byte {
	if b.cfg.FamilyName == "" {
		return []byte{0, 0, 0, 0, 0, 6}
	}
	utf16 := toUTF16BE(b.cfg.FamilyName)

	var records bytes.Buffer
	binary.Write(&records, binary.BigEndian, uint16(3)) // platformID Windows
	binary.Write(&records, binary.BigEndian, uint16(1)) // encodingID
	binary.Write(&records, binary.BigEndian, uint16(0x409))
	binary.Write(&records, binary.BigEndian, uint16(1)) // nameID family
	binary.Write(&records, binary.BigEndian, uint16(len(utf16)))
	binary.Write(&records, binary.BigEndian, uint16(0)) // offset into storage

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint16(0)) // format
	binary.Write(&out, binary.BigEndian, uint16(1)) // count
	storageOffset := uint16(6 + records.Len())
	binary.Write(&out, binary.BigEndian, storageOffset)
	out.Write(records.Bytes())
	out.Write(utf16)
	return out.Bytes()
}

func toUTF16BE(s string) []byte {
	var out bytes.Buffer
	for _, r := range s {
		if r <= 0xFFFF {
			binary.Write(&out, binary.BigEndian, uint16(r))
		}
	}
	return out.Bytes()
}
