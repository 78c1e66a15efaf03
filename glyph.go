package ttfont

// Point is a single on/off-curve coordinate in the font's em-square, as
// produced by a Loader and consumed by a rasterizer this package does not
// provide.
type Point struct {
	X, Y    int32
	OnCurve bool
}

// Glyph is a decoded outline plus its layout metrics. CodePoint is stamped
// on by the cache, not the loader — a Loader only ever knows glyph ids.
type Glyph struct {
	CodePoint uint32

	// ContourEnds holds, for each contour, the inclusive index of its final
	// point within Points. It is strictly increasing and every entry is
	// < len(Points).
	ContourEnds []uint32
	Points      []Point

	XMin, YMin, XMax, YMax int16

	AdvanceWidth    uint16
	LeftSideBearing int16
}

// NumContours returns the number of contours in the glyph.
func (g *Glyph) NumContours() int { return len(g.ContourEnds) }

// Empty reports whether the glyph carries no outline (e.g. space).
func (g *Glyph) Empty() bool { return len(g.Points) == 0 }
