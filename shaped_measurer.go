package slidescene

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedMeasurer measures text through full HarfBuzz shaping, so advance
// widths account for kerning pairs and ligature substitution. Fonts are
// registered explicitly from raw bytes; text in an unregistered family
// falls back to the Fallback measurer.
//
// ShapedMeasurer is safe for concurrent use: parsed font.Font values are
// read-only, and HarfbuzzShaper instances (which hold mutable buffers) are
// pooled per call.
type ShapedMeasurer struct {
	mu    sync.RWMutex
	fonts map[string]*font.Font // lowercase family -> parsed font

	shaperPool sync.Pool

	// Fallback handles unregistered families. Nil falls back to a
	// HeuristicMeasurer.
	Fallback TextMeasurer
}

// NewShapedMeasurer creates an empty ShapedMeasurer.
func NewShapedMeasurer() *ShapedMeasurer {
	return &ShapedMeasurer{
		fonts: make(map[string]*font.Font),
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		Fallback: &HeuristicMeasurer{},
	}
}

// RegisterFont parses TrueType/OpenType font data and registers it under
// the given family name.
func (m *ShapedMeasurer) RegisterFont(family string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	m.mu.Lock()
	m.fonts[strings.ToLower(family)] = face.Font
	m.mu.Unlock()
	return nil
}

// Measure implements TextMeasurer.
func (m *ShapedMeasurer) Measure(text, family string, sizePx float64, italic, bold bool) float64 {
	if text == "" {
		return 0
	}

	m.mu.RLock()
	f, ok := m.fonts[strings.ToLower(family)]
	m.mu.RUnlock()
	if !ok {
		fb := m.Fallback
		if fb == nil {
			fb = &HeuristicMeasurer{}
		}
		return fb.Measure(text, family, sizePx, italic, bold)
	}

	// font.Face is not safe for concurrent use; wrap the shared read-only
	// Font per call.
	face := font.NewFace(f)
	runes := []rune(text)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(sizePx * 64),
		Script:    firstScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	m.shaperPool.Put(shaper)

	var adv fixed.Int26_6
	for _, g := range output.Glyphs {
		adv += g.Advance
	}
	return float64(adv) / 64
}

// firstScript returns the script of the first non-space rune.
func firstScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
