package slidescene

import (
	"golang.org/x/image/font"
	"golang.org/x/text/width"
)

// TextMeasurer computes the advance width of a piece of text. The engine
// never rasterizes glyphs; measurement is the only font-metric dependency.
type TextMeasurer interface {
	// Measure returns the width in pixels of text set in the given family
	// at sizePx pixels.
	Measure(text, family string, sizePx float64, italic, bold bool) float64
}

// HeuristicMeasurer approximates text width without font files: narrow
// runes advance by roughly half the font size, East-Asian wide and
// full-width runes by the full size. It is deterministic and is the
// default measurer when no fonts are configured.
type HeuristicMeasurer struct {
	// NarrowFactor is the advance of a narrow rune as a fraction of the
	// font size. Zero means the default 0.5.
	NarrowFactor float64
}

// Measure implements TextMeasurer.
func (m *HeuristicMeasurer) Measure(text, family string, sizePx float64, italic, bold bool) float64 {
	narrow := m.NarrowFactor
	if narrow <= 0 {
		narrow = 0.5
	}
	var units float64
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			units += 1
		default:
			units += narrow
		}
	}
	w := units * sizePx
	if bold {
		w *= 1.05
	}
	return w
}

// FontMeasurer measures text against real font files loaded through a
// FontCache, using unhinted metrics so wrapping matches design-time layout.
type FontMeasurer struct {
	Cache *FontCache
	// Fallback handles text whose font cannot be found. Nil falls back to
	// a HeuristicMeasurer.
	Fallback TextMeasurer
}

// NewFontMeasurer creates a FontMeasurer over the given cache.
func NewFontMeasurer(cache *FontCache) *FontMeasurer {
	return &FontMeasurer{Cache: cache, Fallback: &HeuristicMeasurer{}}
}

// Measure implements TextMeasurer.
func (m *FontMeasurer) Measure(text, family string, sizePx float64, italic, bold bool) float64 {
	if m.Cache != nil {
		if face := m.Cache.GetMeasureFace(family, sizePx, bold, italic); face != nil {
			return float64(font.MeasureString(face, text)) / 64
		}
	}
	fb := m.Fallback
	if fb == nil {
		fb = &HeuristicMeasurer{}
	}
	return fb.Measure(text, family, sizePx, italic, bold)
}
