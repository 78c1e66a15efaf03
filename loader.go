package ttfont

// Loader is the fixed capability set every font format must provide. The
// Font facade probes a static, ordered list of registered loaders via
// IsValid and delegates every subsequent operation to whichever one
// claims the stream — a closed tagged variant in spirit, expressed as an
// interface because loaders register themselves from independent packages
// (see RegisterLoader) rather than being enumerated in one place.
type Loader interface {
	// IsValid probes the reader, leaving the cursor anywhere, and reports
	// whether this loader claims the stream. Must not mutate any state
	// outside the reader's cursor.
	IsValid(r *Reader) bool

	// Init populates the loader's private state and the Font's global
	// metrics from the reader. May allocate scratch buffers. IsValid
	// returning true is a promise that Init will not fail on a
	// well-formed stream.
	Init(f *Font) error

	// LoadMissing produces the fallback glyph for unknown code points
	// (conventionally glyph id 0).
	LoadMissing(f *Font) (*Glyph, error)

	// GetGlyphID resolves a code point to a glyph id. What it returns when
	// no mapping exists is up to the loader: the TrueType loader returns
	// the code point itself, not glyph 0.
	GetGlyphID(f *Font, codePoint uint32) uint32

	// LoadGlyph decodes the glyph with the given id.
	LoadGlyph(f *Font, glyphID uint32) (*Glyph, error)

	// SizeToPixels converts em-units to device pixels for this format's
	// notion of em-square.
	SizeToPixels(f *Font, pointSize, emUnits int32) int32

	// Free releases any scratch state the loader allocated in Init.
	Free()
}

// loaderFactory constructs a fresh, unprobed Loader instance. Each Font
// gets its own Loader instance so that loader-private scratch state
// (sized from e.g. maxp.maxPoints) isn't shared across fonts.
type loaderFactory func() Loader

var registeredLoaders []loaderFactory

// RegisterLoader adds a format loader to the static, ordered probe list.
// Format packages call this from an init() func — the same registry
// pattern as image.RegisterFormat — so that importing a format package for
// its side effect (a blank import, `_ "github.com/mibigo/ttfont/truetype"`)
// is enough to make Open recognize it. The first registered loader whose
// IsValid returns true wins; order of registration is probe order.
func RegisterLoader(newLoader func() Loader) {
	registeredLoaders = append(registeredLoaders, newLoader)
}
