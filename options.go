package ttfont

import "github.com/sirupsen/logrus"

// Option configures a Font at Open time. The functional-options shape
// follows the teacher's truetype/face.go Options struct, adapted from a
// plain struct to funcs so zero-valued fields (a DPI of 0) can't silently
// mean "unset" instead of "72".
type Option func(*openConfig)

type openConfig struct {
	dpi    int32
	logger *logrus.Logger
}

// WithDPI sets the resolution used by SizeToPixels conversions. The
// default is 72, the value at which one point converts to one pixel.
func WithDPI(dpi int32) Option {
	return func(c *openConfig) { c.dpi = dpi }
}

// WithLogger attaches a logger that loaders use for parse-time diagnostics
// at Debug level. The TrueType loader logs the maxp glyph count and the
// selected cmap subtable format; it logs nothing about the table
// directory walk or compound glyph assembly. The zero value discards
// everything.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *openConfig) { c.logger = logger }
}

func newOpenConfig(opts []Option) *openConfig {
	c := &openConfig{dpi: 72}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = discardLogger()
	}
	return c
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
