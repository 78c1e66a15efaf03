package ttfont

import "sort"

// glyphCache is a sorted sequence of decoded glyphs keyed by code point,
// append-sorted: every insertion preserves "strictly increasing by
// CodePoint". There is no eviction; glyphs live for the Font's lifetime.
//
// The reference C implementation threads the miss-side binary search
// result through a font field (expected_glyph_pos) that the inserter reads
// back. Per spec.md §9's own recommendation, this port instead returns the
// position explicitly from search as part of a found/not-found result, so
// there's no hidden mutable side channel between search and insert.
type glyphCache struct {
	// glyphs holds pointers, not values, so that a *Glyph handed back by
	// Font.GetGlyph stays valid (same address) across later insertions of
	// other code points, even though the backing slice itself reallocates
	// as it grows.
	glyphs []*Glyph
}

// searchResult is the outcome of searching the cache for a code point.
type searchResult struct {
	found    bool
	index    int // valid index into glyphs when found
	insertAt int // where to Insert when !found
}

// search looks for codePoint in the cache. It mirrors the reference
// implementation's shortcut checks (empty cache, below-first, above-last)
// before falling back to binary search, rather than calling sort.Search
// unconditionally, since those shortcuts are what let an empty or
// out-of-range cache report its insertion point without a search at all.
func (c *glyphCache) search(codePoint uint32) searchResult {
	n := len(c.glyphs)
	if n == 0 {
		return searchResult{insertAt: 0}
	}
	if codePoint < c.glyphs[0].CodePoint {
		return searchResult{insertAt: 0}
	}
	if codePoint > c.glyphs[n-1].CodePoint {
		return searchResult{insertAt: n}
	}

	i := sort.Search(n, func(i int) bool {
		return c.glyphs[i].CodePoint >= codePoint
	})
	if i < n && c.glyphs[i].CodePoint == codePoint {
		return searchResult{found: true, index: i}
	}
	return searchResult{insertAt: i}
}

// insert inserts g at pos, shifting later elements right by one, and
// returns the index g now lives at (== pos). The caller must have derived
// pos from a prior searchResult.insertAt for the same CodePoint, or the
// strictly-sorted invariant breaks.
func (c *glyphCache) insert(pos int, g *Glyph) int {
	c.glyphs = append(c.glyphs, nil)
	copy(c.glyphs[pos+1:], c.glyphs[pos:])
	c.glyphs[pos] = g
	return pos
}

// len reports how many glyphs are currently cached.
func (c *glyphCache) len() int { return len(c.glyphs) }
