package slidescene

import (
	"math"
	"testing"
)

func newTestTableEngine(catalog *TableStyleCatalog) *tableEngine {
	return &tableEngine{text: newTestEngine(10), catalog: catalog}
}

func textCell(s string) *CellDef {
	return &CellDef{Body: &TextBody{
		Paragraphs: []*ParagraphDef{{
			Elements: []ParagraphElement{&RunDef{Text: s}},
		}},
	}}
}

// inches in EMU, for readable table dimensions.
const emuInch = 914400

func TestTableGridSpan(t *testing.T) {
	// A 2x2 grid whose top-left cell spans both columns yields three
	// cells; the merged cell covers the full declared width.
	def := &TableDef{
		Rows: [][]*CellDef{
			{{GridSpan: 2}, {HMerge: true}},
			{{}, {}},
		},
		ColWidths:  []int64{emuInch, 2 * emuInch},
		RowHeights: []int64{emuInch / 2, emuInch / 2},
	}
	cells := newTestTableEngine(nil).layout(def, "slide.shapes.0")
	if len(cells) != 3 {
		t.Fatalf("cell count = %d, want 3", len(cells))
	}

	merged := cells[0]
	wantW := EMUToPixel(3 * emuInch)
	if math.Abs(merged.Pos.W-wantW) > 1e-9 {
		t.Errorf("merged width = %v, want %v", merged.Pos.W, wantW)
	}
	if merged.Pos.X != 0 || merged.Pos.Y != 0 {
		t.Errorf("merged origin = (%v,%v), want (0,0)", merged.Pos.X, merged.Pos.Y)
	}

	// Second row cells sit below the merged one, at their own columns.
	if cells[1].Pos.X != 0 || cells[2].Pos.X != EMUToPixel(emuInch) {
		t.Errorf("second row x = %v, %v", cells[1].Pos.X, cells[2].Pos.X)
	}
}

func TestTableRowSpan(t *testing.T) {
	def := &TableDef{
		Rows: [][]*CellDef{
			{{RowSpan: 2}, {}},
			{{VMerge: true}, {}},
		},
		ColWidths:  []int64{emuInch, emuInch},
		RowHeights: []int64{emuInch, emuInch},
	}
	cells := newTestTableEngine(nil).layout(def, "slide.shapes.0")
	if len(cells) != 3 {
		t.Fatalf("cell count = %d, want 3", len(cells))
	}
	if wantH := EMUToPixel(2 * emuInch); math.Abs(cells[0].Pos.H-wantH) > 1e-9 {
		t.Errorf("spanned height = %v, want %v", cells[0].Pos.H, wantH)
	}
}

func TestTableSpanClamped(t *testing.T) {
	def := &TableDef{
		Rows:       [][]*CellDef{{{GridSpan: 5}, {HMerge: true}}},
		ColWidths:  []int64{emuInch, emuInch},
		RowHeights: []int64{emuInch},
	}
	cells := newTestTableEngine(nil).layout(def, "t")
	if len(cells) != 1 {
		t.Fatalf("cell count = %d, want 1", len(cells))
	}
	if wantW := EMUToPixel(2 * emuInch); math.Abs(cells[0].Pos.W-wantW) > 1e-9 {
		t.Errorf("clamped width = %v, want %v", cells[0].Pos.W, wantW)
	}
}

func TestTableEmpty(t *testing.T) {
	if cells := newTestTableEngine(nil).layout(&TableDef{}, "t"); cells != nil {
		t.Errorf("zero rows produced %d cells", len(cells))
	}
	def := &TableDef{Rows: [][]*CellDef{{}, {}}}
	if cells := newTestTableEngine(nil).layout(def, "t"); cells != nil {
		t.Errorf("zero columns produced %d cells", len(cells))
	}
}

func TestTableCellPaths(t *testing.T) {
	def := &TableDef{
		Rows:       [][]*CellDef{{{}, {}}},
		ColWidths:  []int64{emuInch, emuInch},
		RowHeights: []int64{emuInch},
	}
	cells := newTestTableEngine(nil).layout(def, "slide.shapes.4")
	want := []string{"slide.shapes.4.cells.0", "slide.shapes.4.cells.1"}
	for i, c := range cells {
		if c.Path != want[i] {
			t.Errorf("cell %d path = %q, want %q", i, c.Path, want[i])
		}
	}
}

func bandedCatalog() *TableStyleCatalog {
	return &TableStyleCatalog{
		DefaultID: "default",
		Styles: map[string]*TableStyle{
			"default": {
				Whole:    &TableStylePart{Fill: NewFill().SetSolid(ColorWhite)},
				Band1H:   &TableStylePart{Fill: NewFill().SetSolid(ColorGreen)},
				FirstRow: &TableStylePart{Fill: NewFill().SetSolid(ColorBlue)},
			},
		},
	}
}

func TestTableBanding(t *testing.T) {
	def := &TableDef{
		Rows: [][]*CellDef{
			{{}}, {{}}, {{}},
		},
		ColWidths:  []int64{emuInch},
		RowHeights: []int64{emuInch, emuInch, emuInch},
		StyleID:    "default",
		FirstRow:   true,
		BandRows:   true,
	}
	cells := newTestTableEngine(bandedCatalog()).layout(def, "t")
	if len(cells) != 3 {
		t.Fatalf("cell count = %d", len(cells))
	}
	// Header takes the first-row emphasis; banding starts counting below it.
	if cells[0].Fill.Color != ColorBlue {
		t.Errorf("header fill = %v, want first-row blue", cells[0].Fill.Color)
	}
	if cells[1].Fill.Color != ColorGreen {
		t.Errorf("row 1 fill = %v, want band green", cells[1].Fill.Color)
	}
	if cells[2].Fill.Color != ColorWhite {
		t.Errorf("row 2 fill = %v, want whole-table white", cells[2].Fill.Color)
	}
}

func TestTableCellFillOverridesStyle(t *testing.T) {
	own := NewFill().SetSolid(ColorRed)
	def := &TableDef{
		Rows:       [][]*CellDef{{{Fill: own}}},
		ColWidths:  []int64{emuInch},
		RowHeights: []int64{emuInch},
		StyleID:    "default",
	}
	cells := newTestTableEngine(bandedCatalog()).layout(def, "t")
	if cells[0].Fill != own {
		t.Errorf("cell fill = %v, want the authored fill", cells[0].Fill)
	}
}

func TestTableCellCountersIsolated(t *testing.T) {
	// Auto-numbering restarts in every cell.
	numbered := func() *CellDef {
		return &CellDef{Body: &TextBody{
			Paragraphs: []*ParagraphDef{{
				Props: &ParagraphProps{
					Bullet: &BulletDef{Kind: BulletAutoNum, Scheme: "arabicPeriod"},
				},
				Elements: []ParagraphElement{&RunDef{Text: "item"}},
			}},
		}}
	}
	def := &TableDef{
		Rows:       [][]*CellDef{{numbered(), numbered()}},
		ColWidths:  []int64{2 * emuInch, 2 * emuInch},
		RowHeights: []int64{emuInch},
	}
	cells := newTestTableEngine(nil).layout(def, "t")
	for i, c := range cells {
		if c.Text == nil || len(c.Text.Lines) == 0 {
			t.Fatalf("cell %d: no text", i)
		}
		if got := c.Text.Lines[0].BulletChar; got != "1." {
			t.Errorf("cell %d bullet = %q, want 1.", i, got)
		}
	}
}

func TestTableStyleTextApplied(t *testing.T) {
	bold := true
	catalog := &TableStyleCatalog{
		DefaultID: "s",
		Styles: map[string]*TableStyle{
			"s": {Whole: &TableStylePart{Text: &RunProps{Bold: &bold}}},
		},
	}
	def := &TableDef{
		Rows:       [][]*CellDef{{textCell("hi")}},
		ColWidths:  []int64{2 * emuInch},
		RowHeights: []int64{emuInch},
	}
	cells := newTestTableEngine(catalog).layout(def, "t")
	runs := cells[0].Text.Lines[0].Runs
	if len(runs) == 0 || !runs[0].Font.Bold {
		t.Error("style text defaults not applied to cell runs")
	}
}
