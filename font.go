// Package ttfont decodes glyph geometry from a font byte stream on demand,
// indexing glyphs by code point through a pluggable format layer.
//
// Open a Font from a reader, then call GetGlyph with Unicode code points as
// they're needed; decoded glyphs are cached for the Font's lifetime. The
// package itself registers no format loaders — import a format package
// such as github.com/mibigo/ttfont/truetype for its side effect to make
// Open recognize that format.
package ttfont

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Font owns a reader, the loader selected for it, a sorted glyph cache, a
// fallback "missing" glyph, and global metrics read out of the font at
// Init time. A Font is exclusively owned by one goroutine at a time:
// GetGlyph mutates both the cache and the reader's cursor, so concurrent
// calls on the same Font are undefined. Independent Fonts opened from
// independent Readers over the same bytes are safe to use concurrently.
type Font struct {
	reader *Reader
	loader Loader

	cache   glyphCache
	missing *Glyph

	DPI int32

	XMin, XMax, YMin, YMax int32
	Ascender, Descender    int32
	LineGap                int32

	log *logrus.Logger
}

// maxFontSize bounds how large a stream Open will accept, as a cheap
// guard against treating an arbitrarily huge input as a font before any
// table has even been validated.
const maxFontSize = 64 << 20

// Open probes every registered loader's IsValid against r, installs the
// first match, and lets it populate the Font's metrics and missing-glyph
// fallback. Returns a KindCorrupted error for empty input, a KindOutOfMem
// error for input larger than maxFontSize, a KindUnknownType error if no
// loader claims the stream, or whatever error the winning loader's Init
// or LoadMissing produces (typically KindCorrupted).
func Open(r *Reader, opts ...Option) (*Font, error) {
	if r.Len() == 0 {
		return nil, corruptedf("empty input")
	}
	if r.Len() > maxFontSize {
		return nil, outOfMem("input exceeds maximum font size")
	}
	cfg := newOpenConfig(opts)

	var chosen Loader
	for _, newLoader := range registeredLoaders {
		cand := newLoader()
		r.Jump(0)
		if cand.IsValid(r) {
			chosen = cand
			break
		}
	}
	if chosen == nil {
		return nil, &Error{Kind: KindUnknownType, Reason: "no registered loader recognized this stream"}
	}

	f := &Font{
		reader: r,
		loader: chosen,
		DPI:    cfg.dpi,
		log:    cfg.logger,
	}

	r.Jump(0)
	if err := chosen.Init(f); err != nil {
		return nil, err
	}

	missing, err := chosen.LoadMissing(f)
	if err != nil {
		return nil, err
	}
	f.missing = missing

	return f, nil
}

// OpenFile reads path whole and opens a Font over it, the way the
// reference tools take a font file straight off the command line. Unlike
// Open, a failure to read the file itself is reported as KindOpenFile
// rather than KindUnknownType or KindCorrupted.
func OpenFile(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindOpenFile, Reason: err.Error()}
	}
	return Open(NewReader(data), opts...)
}

// Logger returns the logger a Loader should use for diagnostics.
func (f *Font) Logger() *logrus.Logger { return f.log }

// Reader returns the Font's underlying byte reader, for a Loader's use.
func (f *Font) Reader() *Reader { return f.reader }

// Loader returns the format loader Open selected for this Font. Callers
// that need format-specific extras beyond the Loader interface (e.g. the
// TrueType loader's FamilyName) type-assert the result themselves.
func (f *Font) Loader() Loader { return f.loader }

// GetGlyph resolves codePoint to a Glyph, decoding and caching it on first
// request. It never returns nil: any failure to resolve or decode the
// glyph yields the font's missing-glyph fallback instead, matching the
// reference implementation's "never surface a decode error to the
// caller" contract (see errors.go and spec.md §7).
func (f *Font) GetGlyph(codePoint uint32) *Glyph {
	res := f.cache.search(codePoint)
	if res.found {
		return f.cache.glyphs[res.index]
	}

	glyphID := f.loader.GetGlyphID(f, codePoint)
	glyph, err := f.loader.LoadGlyph(f, glyphID)
	if err != nil {
		return f.missing
	}

	glyph.CodePoint = codePoint
	idx := f.cache.insert(res.insertAt, glyph)
	return f.cache.glyphs[idx]
}

// SizeToPixels converts a glyph-space measurement (em_units) to device
// pixels for the given point size, delegating to the format loader's own
// em-square notion.
func (f *Font) SizeToPixels(pointSize, emUnits int32) int32 {
	return f.loader.SizeToPixels(f, pointSize, emUnits)
}

// Close releases the loader's scratch state. It does not close any
// underlying io.Reader the caller used to produce the byte buffer — Font
// never owned that, only the Reader wrapping its bytes.
func (f *Font) Close() error {
	if f.loader != nil {
		f.loader.Free()
	}
	return nil
}
