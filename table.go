package slidescene

// Default cell text insets in EMU, used when a cell declares no margins.
const (
	defaultCellInsetLR = 91440
	defaultCellInsetTB = 45720
)

// TableStylePart is the formatting one region of a table style contributes.
type TableStylePart struct {
	Fill    *Fill
	Borders *CellBorderDefs
	Text    *RunProps
}

// TableStyle is one entry of the table-style catalog. Regions overlay in
// order: whole table, banding, first/last column, first/last row.
type TableStyle struct {
	Whole    *TableStylePart
	Band1H   *TableStylePart // odd banded rows
	Band2H   *TableStylePart // even banded rows
	Band1V   *TableStylePart // odd banded columns
	Band2V   *TableStylePart // even banded columns
	FirstRow *TableStylePart
	LastRow  *TableStylePart
	FirstCol *TableStylePart
	LastCol  *TableStylePart
}

// TableStyleCatalog is the immutable table-style lookup table supplied by
// an upstream pass, keyed by style id.
type TableStyleCatalog struct {
	DefaultID string
	Styles    map[string]*TableStyle
}

// Lookup returns the style for id, falling back to the catalog default.
func (c *TableStyleCatalog) Lookup(id string) *TableStyle {
	if c == nil {
		return nil
	}
	if id == "" {
		id = c.DefaultID
	}
	return c.Styles[id]
}

// cellStyleFor resolves the effective style part for the cell at (row, col)
// given the table's banding and emphasis flags.
func cellStyleFor(style *TableStyle, def *TableDef, row, col, numRows, numCols int) TableStylePart {
	var out TableStylePart
	if style == nil {
		return out
	}
	overlay := func(p *TableStylePart) {
		if p == nil {
			return
		}
		if p.Fill != nil {
			out.Fill = p.Fill
		}
		if p.Borders != nil {
			out.Borders = p.Borders
		}
		if p.Text != nil {
			out.Text = p.Text
		}
	}
	overlay(style.Whole)

	// Banding skips emphasized first/last rows and columns when counting
	// parity, per the catalog's banding rules.
	if def.BandRows {
		r := row
		if def.FirstRow {
			r--
		}
		if r >= 0 && !(def.FirstRow && row == 0) && !(def.LastRow && row == numRows-1) {
			if r%2 == 0 {
				overlay(style.Band1H)
			} else {
				overlay(style.Band2H)
			}
		}
	}
	if def.BandCols {
		c := col
		if def.FirstCol {
			c--
		}
		if c >= 0 && !(def.FirstCol && col == 0) && !(def.LastCol && col == numCols-1) {
			if c%2 == 0 {
				overlay(style.Band1V)
			} else {
				overlay(style.Band2V)
			}
		}
	}

	if def.FirstCol && col == 0 {
		overlay(style.FirstCol)
	}
	if def.LastCol && col == numCols-1 {
		overlay(style.LastCol)
	}
	if def.FirstRow && row == 0 {
		overlay(style.FirstRow)
	}
	if def.LastRow && row == numRows-1 {
		overlay(style.LastRow)
	}
	return out
}

// tableEngine lays out one table definition into cell rectangles.
type tableEngine struct {
	text    *TextEngine
	catalog *TableStyleCatalog
}

// layout builds the merge-aware cell list for def. Cells marked as merge
// continuations are skipped entirely; a primary merged cell covers its
// span rectangle and marks every covered grid position so it is never
// visited again. A table with zero rows or columns yields nil.
func (te *tableEngine) layout(def *TableDef, basePath string) []*TableCellNode {
	numRows := len(def.Rows)
	if numRows == 0 {
		return nil
	}
	numCols := 0
	for _, row := range def.Rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return nil
	}

	colW := make([]float64, numCols)
	for i := range colW {
		if i < len(def.ColWidths) {
			colW[i] = EMUToPixel(def.ColWidths[i])
		}
	}
	rowH := make([]float64, numRows)
	for i := range rowH {
		if i < len(def.RowHeights) {
			rowH[i] = EMUToPixel(def.RowHeights[i])
		}
	}

	colX := make([]float64, numCols+1)
	for i := 0; i < numCols; i++ {
		colX[i+1] = colX[i] + colW[i]
	}
	rowY := make([]float64, numRows+1)
	for i := 0; i < numRows; i++ {
		rowY[i+1] = rowY[i] + rowH[i]
	}

	style := te.catalog.Lookup(def.StyleID)

	covered := make([][]bool, numRows)
	for i := range covered {
		covered[i] = make([]bool, numCols)
	}

	var cells []*TableCellNode
	for r := 0; r < numRows; r++ {
		for c := 0; c < len(def.Rows[r]); c++ {
			if covered[r][c] {
				continue
			}
			cell := def.Rows[r][c]
			if cell == nil || cell.HMerge || cell.VMerge {
				continue
			}

			colSpan := cell.GridSpan
			if colSpan < 1 {
				colSpan = 1
			}
			if c+colSpan > numCols {
				colSpan = numCols - c
			}
			rowSpan := cell.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			if r+rowSpan > numRows {
				rowSpan = numRows - r
			}
			for rr := r; rr < r+rowSpan; rr++ {
				for cc := c; cc < c+colSpan; cc++ {
					covered[rr][cc] = true
				}
			}

			pos := Rect{
				X: colX[c],
				Y: rowY[r],
				W: colX[c+colSpan] - colX[c],
				H: rowY[r+rowSpan] - rowY[r],
			}

			part := cellStyleFor(style, def, r, c, numRows, numCols)
			node := &TableCellNode{
				Path: cellPath(basePath, len(cells)),
				Pos:  pos,
			}
			if cell.Fill != nil {
				node.Fill = cell.Fill
			} else {
				node.Fill = part.Fill
			}
			node.Borders = resolveCellBorders(cell.Borders, part.Borders)
			if !cell.Body.IsEmpty() {
				node.Text = te.layoutCellText(cell, part.Text, pos)
			}
			cells = append(cells, node)
		}
	}
	return cells
}

// resolveCellBorders overlays cell-authored borders on the style part's.
func resolveCellBorders(own, styled *CellBorderDefs) CellBorders {
	pick := func(a, b *Stroke) *Stroke {
		if a != nil {
			return a
		}
		return b
	}
	var s CellBorderDefs
	if styled != nil {
		s = *styled
	}
	var o CellBorderDefs
	if own != nil {
		o = *own
	}
	return CellBorders{
		Top:    pick(o.Top, s.Top),
		Right:  pick(o.Right, s.Right),
		Bottom: pick(o.Bottom, s.Bottom),
		Left:   pick(o.Left, s.Left),
	}
}

// layoutCellText runs the text engine over one cell with cell-specific
// padding. Each cell gets its own counter set; numbering never spans
// cells.
func (te *tableEngine) layoutCellText(cell *CellDef, styleText *RunProps, pos Rect) *TextBlock {
	ins := insetsPx{
		l: EMUToPixel(defaultCellInsetLR),
		r: EMUToPixel(defaultCellInsetLR),
		t: EMUToPixel(defaultCellInsetTB),
		b: EMUToPixel(defaultCellInsetTB),
	}
	if m := cell.Margins; m != nil {
		if m.Left != nil {
			ins.l = EMUToPixel(*m.Left)
		}
		if m.Right != nil {
			ins.r = EMUToPixel(*m.Right)
		}
		if m.Top != nil {
			ins.t = EMUToPixel(*m.Top)
		}
		if m.Bottom != nil {
			ins.b = EMUToPixel(*m.Bottom)
		}
	}

	paras := make([]*layoutParagraph, 0, len(cell.Body.Paragraphs))
	for _, p := range cell.Body.Paragraphs {
		lp := &layoutParagraph{Props: p.Props}
		for _, el := range p.Elements {
			switch e := el.(type) {
			case *RunDef:
				f := buildFont(styleText, p.Props, e.Props)
				lp.Runs = append(lp.Runs, layoutRun{Text: e.Text, Font: f})
			case *BreakDef:
				lp.Runs = append(lp.Runs, layoutRun{IsBreak: true})
			}
		}
		paras = append(paras, lp)
	}

	anchor := AnchorTop
	if cell.Body.Props != nil && cell.Body.Props.Anchor != "" {
		anchor = cell.Body.Props.Anchor
	}
	block, _ := te.text.Layout(paras, pos.W, pos.H, ins, anchor, NewListCounters())
	return block
}

// buildFont resolves a run font from, least specific first, the table
// style's text defaults, the paragraph's default run properties and the
// run's own properties.
func buildFont(styleText *RunProps, paraProps *ParagraphProps, runProps *RunProps) Font {
	f := *NewFont()
	applyRunProps(&f, styleText)
	if paraProps != nil {
		applyRunProps(&f, paraProps.DefRPr)
	}
	applyRunProps(&f, runProps)
	return f
}

// applyRunProps overlays authored run properties onto a resolved font.
func applyRunProps(f *Font, p *RunProps) {
	if p == nil {
		return
	}
	if p.Family != "" {
		f.Name = p.Family
	}
	if p.FamilyEA != "" {
		f.NameEA = p.FamilyEA
	}
	if p.Size != nil {
		f.Size = *p.Size
	}
	if p.Bold != nil {
		f.Bold = *p.Bold
	}
	if p.Italic != nil {
		f.Italic = *p.Italic
	}
	if p.Underline != nil {
		f.Underline = *p.Underline
	}
	if p.Strike != nil {
		f.Strikethrough = *p.Strike
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
}
