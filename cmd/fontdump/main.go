// Command fontdump loads a TrueType font and prints a summary of its
// global metrics and the glyphs resolved for the code points given on the
// command line. It exists for inspecting a font file while developing
// against this package, not as a general-purpose font tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mibigo/ttfont"
	"github.com/mibigo/ttfont/truetype"
	"github.com/sirupsen/logrus"
)

var (
	fontFile = flag.String("font", "", "filename of font to dump")
	dpi      = flag.Int("dpi", 72, "DPI to use for size-to-pixel conversions")
	points   = flag.String("points", "A", "code points to resolve, one rune each")
	verbose  = flag.Bool("v", false, "log parser diagnostics")
)

func main() {
	flag.Parse()
	if *fontFile == "" {
		fmt.Fprintln(os.Stderr, "usage: fontdump -font FILE [-points STRING] [-dpi N] [-v]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*fontFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdump: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	r := ttfont.NewReader(data)
	f, err := ttfont.Open(r, ttfont.WithDPI(int32(*dpi)), ttfont.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontdump: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Printf("bounds: (%d,%d)-(%d,%d)\n", f.XMin, f.YMin, f.XMax, f.YMax)
	fmt.Printf("ascender: %d  descender: %d  line gap: %d\n", f.Ascender, f.Descender, f.LineGap)

	if loader, ok := f.Loader().(*truetype.Loader); ok {
		if name := loader.FamilyName(f); name != "" {
			fmt.Printf("family: %s\n", name)
		}
	}

	for _, c := range *points {
		g := f.GetGlyph(uint32(c))
		fmt.Printf("U+%04X: %d contours, %d points, advance %d\n",
			c, g.NumContours(), len(g.Points), g.AdvanceWidth)
	}
}
