package slidescene

import (
	"math"
	"testing"
)

func newTestInterp(parts *DiagramParts) *diagramInterp {
	return &diagramInterp{
		parts:  parts,
		frameW: 400,
		frameH: 200,
		base:   Identity(),
		text:   newTestEngine(10),
	}
}

func TestDiagramReplayBindsDataText(t *testing.T) {
	parts := &DiagramParts{
		Data: &DiagramDataPoint{
			Type: "doc",
			Children: []*DiagramDataPoint{
				{ModelID: "n1", Type: "node", Text: "Test Title"},
			},
		},
		Drawing: &DiagramDrawing{Shapes: []*DiagramDrawingShape{{
			ModelID:  "n1",
			Geometry: &GeometryDef{Preset: "rect"},
			Transform: &TransformDef{
				OffsetX: 914400, OffsetY: 0,
				ExtentX: 2 * 914400, ExtentY: 914400,
			},
			Text: "stale literal",
		}}},
	}
	shapes := newTestInterp(parts).run()
	if len(shapes) != 1 {
		t.Fatalf("shape count = %d, want 1", len(shapes))
	}
	if got := shapes[0].Text.PlainText(); got != "Test Title" {
		t.Errorf("replayed text = %q, want data-model text", got)
	}
	// Geometry and transform come straight from the drawing.
	if shapes[0].Pos.W != EMUToPixel(2*914400) {
		t.Errorf("width = %v", shapes[0].Pos.W)
	}
	if shapes[0].Transform.C != EMUToPixel(914400) {
		t.Errorf("x offset = %v", shapes[0].Transform.C)
	}
}

func TestDiagramReplayLiteralFallback(t *testing.T) {
	parts := &DiagramParts{
		Data: &DiagramDataPoint{Type: "doc"},
		Drawing: &DiagramDrawing{Shapes: []*DiagramDrawingShape{{
			ModelID:   "missing",
			Geometry:  &GeometryDef{Preset: "rect"},
			Transform: &TransformDef{ExtentX: 914400, ExtentY: 914400},
			Text:      "Fallback",
		}}},
	}
	shapes := newTestInterp(parts).run()
	if got := shapes[0].Text.PlainText(); got != "Fallback" {
		t.Errorf("text = %q, want the shape's literal", got)
	}
}

func diagramData(texts ...string) *DiagramDataPoint {
	doc := &DiagramDataPoint{Type: "doc"}
	for i, s := range texts {
		doc.Children = append(doc.Children, &DiagramDataPoint{
			ModelID: "n" + itoa(i),
			Type:    "node",
			Text:    s,
		})
	}
	return doc
}

func forEachLayout(alg *DiagramLayoutNode) *DiagramLayoutNode {
	root := &DiagramLayoutNode{Kind: LayoutElem, Name: "root"}
	if alg != nil {
		root.Children = append(root.Children, alg)
	}
	root.Children = append(root.Children, &DiagramLayoutNode{
		Kind:   LayoutForEach,
		Axis:   "ch",
		PtType: "node",
		Children: []*DiagramLayoutNode{
			{Kind: LayoutShape, ShapeType: "roundRect"},
		},
	})
	return root
}

func TestDiagramGenerateForEach(t *testing.T) {
	parts := &DiagramParts{
		Data:   diagramData("Alpha", "Beta", "Gamma"),
		Layout: forEachLayout(nil),
	}
	shapes := newTestInterp(parts).run()
	if len(shapes) != 3 {
		t.Fatalf("shape count = %d, want 3", len(shapes))
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	for i, s := range shapes {
		if got := s.Text.PlainText(); got != want[i] {
			t.Errorf("shape %d text = %q, want %q", i, got, want[i])
		}
	}
}

func TestDiagramForEachTypeFilter(t *testing.T) {
	data := diagramData("Alpha", "Beta")
	data.Children = append(data.Children, &DiagramDataPoint{Type: "parTrans"})
	parts := &DiagramParts{Data: data, Layout: forEachLayout(nil)}
	if shapes := newTestInterp(parts).run(); len(shapes) != 2 {
		t.Errorf("shape count = %d, want transitions filtered out", len(shapes))
	}
}

func TestDiagramLinearAlgorithm(t *testing.T) {
	alg := &DiagramLayoutNode{Kind: LayoutAlg, Algorithm: "lin", Direction: "fromL"}
	parts := &DiagramParts{
		Data:   diagramData("A", "B"),
		Layout: forEachLayout(alg),
	}
	shapes := newTestInterp(parts).run()
	if len(shapes) != 2 {
		t.Fatalf("shape count = %d", len(shapes))
	}
	// Two slots across a 400px frame with default 80px shapes: each shape
	// centers in its slot.
	if math.Abs(shapes[0].Transform.C-60) > 1e-9 {
		t.Errorf("first x = %v, want 60", shapes[0].Transform.C)
	}
	if math.Abs(shapes[1].Transform.C-260) > 1e-9 {
		t.Errorf("second x = %v, want 260", shapes[1].Transform.C)
	}
	if shapes[0].Transform.F != shapes[1].Transform.F {
		t.Error("linear flow changed the cross-axis offset")
	}
}

func TestDiagramUnknownAlgorithmNoop(t *testing.T) {
	alg := &DiagramLayoutNode{Kind: LayoutAlg, Algorithm: "hierChild"}
	parts := &DiagramParts{
		Data:   diagramData("A", "B"),
		Layout: forEachLayout(alg),
	}
	shapes := newTestInterp(parts).run()
	for i, s := range shapes {
		if s.Transform.C != 0 || s.Transform.F != 0 {
			t.Errorf("shape %d moved to (%v,%v)", i, s.Transform.C, s.Transform.F)
		}
	}
}

func TestDiagramChoose(t *testing.T) {
	chooseLayout := func() *DiagramLayoutNode {
		return &DiagramLayoutNode{Kind: LayoutElem, Children: []*DiagramLayoutNode{{
			Kind: LayoutChoose,
			Children: []*DiagramLayoutNode{
				{
					Kind: LayoutIf,
					Cond: &LayoutCondition{Axis: "ch", PtType: "node", Func: "cnt", Op: "gte", Val: 3},
					Children: []*DiagramLayoutNode{
						{Kind: LayoutShape, ShapeType: "ellipse"},
					},
				},
				{
					Kind: LayoutElse,
					Children: []*DiagramLayoutNode{
						{Kind: LayoutShape, ShapeType: "rect"},
						{Kind: LayoutShape, ShapeType: "rect"},
					},
				},
			},
		}}}
	}

	parts := &DiagramParts{Data: diagramData("A", "B"), Layout: chooseLayout()}
	if shapes := newTestInterp(parts).run(); len(shapes) != 2 {
		t.Errorf("2 children: %d shapes, want the else branch's 2", len(shapes))
	}

	parts = &DiagramParts{Data: diagramData("A", "B", "C"), Layout: chooseLayout()}
	if shapes := newTestInterp(parts).run(); len(shapes) != 1 {
		t.Errorf("3 children: %d shapes, want the if branch's 1", len(shapes))
	}
}

func TestDiagramConstraints(t *testing.T) {
	layout := &DiagramLayoutNode{Kind: LayoutElem, Children: []*DiagramLayoutNode{
		{Kind: LayoutConstr, Constraint: &DiagramConstraint{Attr: "w", Fraction: 0.5}},
		{Kind: LayoutConstr, Constraint: &DiagramConstraint{Attr: "h", Fraction: 0.25}},
		{Kind: LayoutShape, ShapeType: "rect"},
	}}
	parts := &DiagramParts{Data: &DiagramDataPoint{Type: "doc"}, Layout: layout}
	shapes := newTestInterp(parts).run()
	if len(shapes) != 1 {
		t.Fatalf("shape count = %d", len(shapes))
	}
	if shapes[0].Pos.W != 200 || shapes[0].Pos.H != 50 {
		t.Errorf("size = %vx%v, want 200x50", shapes[0].Pos.W, shapes[0].Pos.H)
	}
}

func TestDiagramStyleLabels(t *testing.T) {
	layout := &DiagramLayoutNode{Kind: LayoutElem, Children: []*DiagramLayoutNode{
		{Kind: LayoutShape, ShapeType: "rect", StyleLabel: "node1"},
	}}
	parts := &DiagramParts{
		Data:   &DiagramDataPoint{Type: "doc"},
		Layout: layout,
		Colors: map[string]Color{"node1": ColorBlue},
	}
	shapes := newTestInterp(parts).run()
	if shapes[0].Style.Fill == nil || shapes[0].Style.Fill.Color != ColorBlue {
		t.Errorf("fill = %+v, want the catalog color", shapes[0].Style.Fill)
	}
}

func TestDiagramMissingParts(t *testing.T) {
	if shapes := newTestInterp(nil).run(); shapes != nil {
		t.Errorf("nil parts produced %d shapes", len(shapes))
	}
	parts := &DiagramParts{Data: diagramData("A")}
	if shapes := newTestInterp(parts).run(); shapes != nil {
		t.Errorf("missing layout produced %d shapes", len(shapes))
	}
	parts = &DiagramParts{Layout: forEachLayout(nil)}
	if shapes := newTestInterp(parts).run(); shapes != nil {
		t.Errorf("missing data produced %d shapes", len(shapes))
	}
}

func TestDiagramNestedForEach(t *testing.T) {
	// Each nested iteration walks the children of its current point, so a
	// 2x2 tree yields the product of the per-level counts.
	data := &DiagramDataPoint{Type: "doc"}
	for i := 0; i < 2; i++ {
		parent := &DiagramDataPoint{ModelID: "p" + itoa(i), Type: "node"}
		for j := 0; j < 2; j++ {
			parent.Children = append(parent.Children, &DiagramDataPoint{
				ModelID: "c" + itoa(i*2+j),
				Type:    "node",
				Text:    "leaf",
			})
		}
		data.Children = append(data.Children, parent)
	}

	layout := &DiagramLayoutNode{Kind: LayoutElem, Children: []*DiagramLayoutNode{{
		Kind:   LayoutForEach,
		Axis:   "ch",
		PtType: "node",
		Children: []*DiagramLayoutNode{{
			Kind:   LayoutForEach,
			Axis:   "ch",
			PtType: "node",
			Children: []*DiagramLayoutNode{
				{Kind: LayoutShape, ShapeType: "rect"},
			},
		}},
	}}}

	parts := &DiagramParts{Data: data, Layout: layout}
	shapes := newTestInterp(parts).run()
	if len(shapes) != 4 {
		t.Fatalf("shape count = %d, want 2x2 = 4", len(shapes))
	}
	for i, s := range shapes {
		if s.Text.PlainText() != "leaf" {
			t.Errorf("shape %d text = %q", i, s.Text.PlainText())
		}
	}
}
