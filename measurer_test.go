package slidescene

import (
	"math"
	"testing"
)

func TestHeuristicMeasurerWidths(t *testing.T) {
	m := &HeuristicMeasurer{}
	tests := []struct {
		name string
		text string
		bold bool
		want float64
	}{
		{"narrow", "abcd", false, 20},
		{"wide runes double", "日本", false, 20},
		{"mixed", "a日", false, 15},
		{"fullwidth", "Ａ", false, 10},
		{"bold factor", "ab", true, 10 * 1.05},
		{"empty", "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Measure(tt.text, "Calibri", 10, false, tt.bold)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHeuristicMeasurerNarrowFactor(t *testing.T) {
	m := &HeuristicMeasurer{NarrowFactor: 0.6}
	if got := m.Measure("ab", "Calibri", 10, false, false); math.Abs(got-12) > 1e-9 {
		t.Errorf("Measure = %v, want 12", got)
	}
}

func TestFontMeasurerFallsBack(t *testing.T) {
	// Without a cache the configured fallback measures everything.
	m := &FontMeasurer{Fallback: &fixedMeasurer{perRune: 7}}
	if got := m.Measure("abc", "Calibri", 10, false, false); got != 21 {
		t.Errorf("Measure = %v, want the fallback's 21", got)
	}

	// A nil fallback degrades to the heuristic.
	m = &FontMeasurer{}
	want := (&HeuristicMeasurer{}).Measure("ab", "Calibri", 10, false, false)
	if got := m.Measure("ab", "Calibri", 10, false, false); got != want {
		t.Errorf("Measure = %v, want the heuristic's %v", got, want)
	}
}

func TestFontMeasurerUnknownFamily(t *testing.T) {
	cache := NewFontCache(t.TempDir())
	m := &FontMeasurer{Cache: cache, Fallback: &fixedMeasurer{perRune: 5}}
	if got := m.Measure("abcd", "definitely-not-a-font", 10, false, false); got != 20 {
		t.Errorf("Measure = %v, want the fallback's 20", got)
	}
}

func TestShapedMeasurerFallsBack(t *testing.T) {
	m := NewShapedMeasurer()
	want := (&HeuristicMeasurer{}).Measure("日本", "Meiryo", 12, false, false)
	if got := m.Measure("日本", "Meiryo", 12, false, false); got != want {
		t.Errorf("Measure = %v, want the heuristic's %v", got, want)
	}

	m.Fallback = &fixedMeasurer{perRune: 4}
	if got := m.Measure("ab", "Meiryo", 12, false, false); got != 8 {
		t.Errorf("Measure = %v, want the custom fallback's 8", got)
	}

	if got := m.Measure("", "Meiryo", 12, false, false); got != 0 {
		t.Errorf("Measure(empty) = %v, want 0", got)
	}
}

func TestShapedMeasurerRejectsBadFont(t *testing.T) {
	m := NewShapedMeasurer()
	if err := m.RegisterFont("broken", []byte("not a font file")); err == nil {
		t.Error("garbage font data registered without error")
	}
}
