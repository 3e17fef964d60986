package slidescene

// Diagram composition has two modes. When the package carries a
// pre-rendered drawing part, its shapes are replayed directly with text
// bound back to the data model. Otherwise shapes are generated by
// evaluating the layout-definition tree against the point tree. Both input
// trees are immutable; evaluation only accumulates an output shape list.

// DiagramDataPoint is one node of a diagram's data model point tree.
type DiagramDataPoint struct {
	ModelID  string
	Type     string // "doc", "node", "parTrans", "sibTrans", "pres"
	Text     string
	Children []*DiagramDataPoint
}

// findPoint searches the point tree for the point with the given model id.
func findPoint(p *DiagramDataPoint, modelID string) *DiagramDataPoint {
	if p == nil || modelID == "" {
		return nil
	}
	if p.ModelID == modelID {
		return p
	}
	for _, c := range p.Children {
		if found := findPoint(c, modelID); found != nil {
			return found
		}
	}
	return nil
}

// LayoutNodeKind identifies a layout-definition tree node.
type LayoutNodeKind int

const (
	LayoutElem LayoutNodeKind = iota // a nested layoutNode
	LayoutForEach
	LayoutChoose
	LayoutIf
	LayoutElse
	LayoutShape
	LayoutPresOf
	LayoutAlg
	LayoutConstr
)

// LayoutCondition is a choose/if predicate, e.g. "the count of children of
// a given type compares to a value".
type LayoutCondition struct {
	Axis   string // only "ch" is meaningful
	PtType string // data point type filter; empty matches all
	Func   string // "cnt"
	Op     string // "equ", "neq", "gte", "lte", "gt", "lt"
	Val    int
}

// DiagramConstraint is an explicit numeric size/position constraint,
// expressed as a fraction of the corresponding frame dimension.
type DiagramConstraint struct {
	Attr     string // "w", "h", "l", "t"
	Fraction float64
}

// DiagramLayoutNode is one node of the layout-definition tree.
type DiagramLayoutNode struct {
	Kind LayoutNodeKind
	Name string

	// Selection, for LayoutForEach and LayoutPresOf.
	Axis   string // "self", "ch", "des", ...
	PtType string

	// Predicate, for LayoutIf.
	Cond *LayoutCondition

	// Algorithm, for LayoutAlg.
	Algorithm string // "lin", "sp", "tx", ...
	Direction string // "fromL" or "fromT" flow for the linear algorithm

	// Constraint payload, for LayoutConstr.
	Constraint *DiagramConstraint

	// Shape payload, for LayoutShape.
	ShapeType  string // preset geometry name
	StyleLabel string

	Children []*DiagramLayoutNode
}

// DiagramDrawingShape is one shape of a pre-rendered diagram drawing.
type DiagramDrawingShape struct {
	ModelID    string
	Geometry   *GeometryDef
	Transform  *TransformDef // EMU, relative to the frame origin
	Text       string
	StyleLabel string
}

// DiagramDrawing is an optional pre-rendered drawing part.
type DiagramDrawing struct {
	Shapes []*DiagramDrawingShape
}

// DiagramShapeStyle is one entry of a diagram style catalog.
type DiagramShapeStyle struct {
	Fill      *Fill
	Stroke    *Stroke
	TextColor *Color
}

// DiagramParts bundles the fetched and ingested diagram sub-parts.
type DiagramParts struct {
	Data    *DiagramDataPoint
	Layout  *DiagramLayoutNode
	Drawing *DiagramDrawing
	Colors  map[string]Color
	Styles  map[string]*DiagramShapeStyle
}

// diagramInterp evaluates one diagram into frame-relative shapes.
type diagramInterp struct {
	parts  *DiagramParts
	frameW float64 // pixels
	frameH float64
	base   Matrix // the frame's absolute transform
	text   *TextEngine
}

// run produces the diagram's shape list. Replay wins when a drawing part
// exists; otherwise the layout tree is evaluated against the data model.
func (it *diagramInterp) run() []*ShapeNode {
	if it.parts == nil {
		return nil
	}
	if it.parts.Drawing != nil && len(it.parts.Drawing.Shapes) > 0 {
		return it.replay()
	}
	if it.parts.Layout == nil || it.parts.Data == nil {
		return nil
	}
	shapes := it.evalChildren(it.parts.Layout, it.parts.Data)
	return shapes
}

// replay walks the pre-rendered drawing once, binding each shape's text to
// the data point with the matching model id. The shape's own literal text
// is used only when it is non-empty and no point text is found.
func (it *diagramInterp) replay() []*ShapeNode {
	var out []*ShapeNode
	for _, ds := range it.parts.Drawing.Shapes {
		var x, y, w, h float64
		if ds.Transform != nil {
			x = EMUToPixel(ds.Transform.OffsetX)
			y = EMUToPixel(ds.Transform.OffsetY)
			w = EMUToPixel(ds.Transform.ExtentX)
			h = EMUToPixel(ds.Transform.ExtentY)
		}

		text := ""
		if p := findPoint(it.parts.Data, ds.ModelID); p != nil {
			text = p.Text
		}
		if text == "" && ds.Text != "" {
			text = ds.Text
		}

		node := &ShapeNode{
			Transform: Compose(it.base, Translate(x, y)),
			Pos:       Size{W: w, H: h},
		}
		if ds.Transform != nil {
			node.Rotation = ds.Transform.Rotation
			node.FlipH = ds.Transform.FlipH
			node.FlipV = ds.Transform.FlipV
			if node.Rotation != 0 || node.FlipH || node.FlipV {
				node.Transform = Compose(it.base,
					placement(x, y, w, h, node.Rotation, node.FlipH, node.FlipV))
			}
		}
		geom := BuildGeometry(ds.Geometry, w, h)
		node.Style = it.styleFor(ds.StyleLabel, &geom)
		if text != "" {
			node.Text = it.layoutShapeText(text, w, h)
		}
		out = append(out, node)
	}
	return out
}

// evalChildren evaluates the children of a layoutNode with the current
// data context and returns the accumulated shapes. The data context always
// propagates as the current node, never the root.
func (it *diagramInterp) evalChildren(node *DiagramLayoutNode, ctx *DiagramDataPoint) []*ShapeNode {
	var shapes []*ShapeNode
	var own []*ShapeNode
	var alg *DiagramLayoutNode
	constraints := map[string]float64{}

	dataCtx := ctx
	for _, child := range node.Children {
		switch child.Kind {
		case LayoutPresOf:
			// Only the self axis is supported; other axes resolve to no
			// data context.
			if child.Axis != "self" && child.Axis != "" {
				dataCtx = nil
			}
		case LayoutConstr:
			if c := child.Constraint; c != nil {
				constraints[c.Attr] = c.Fraction
			}
		case LayoutAlg:
			alg = child
		case LayoutShape:
			if s := it.emitShape(child, dataCtx, constraints); s != nil {
				own = append(own, s)
			}
		case LayoutForEach:
			shapes = append(shapes, it.evalForEach(child, dataCtx)...)
		case LayoutChoose:
			shapes = append(shapes, it.evalChoose(child, dataCtx)...)
		case LayoutElem:
			shapes = append(shapes, it.evalChildren(child, dataCtx)...)
		}
	}

	// The algorithm distributes the shapes produced by iteration, not the
	// node's own shape.
	if alg != nil {
		it.applyAlgorithm(alg, shapes)
	}
	return append(own, shapes...)
}

// evalForEach iterates the matching children of the current data context,
// recursing into the nested layout nodes once per iteration and
// concatenating the results.
func (it *diagramInterp) evalForEach(node *DiagramLayoutNode, ctx *DiagramDataPoint) []*ShapeNode {
	if ctx == nil {
		return nil
	}
	var out []*ShapeNode
	for _, dataChild := range ctx.Children {
		if node.PtType != "" && dataChild.Type != node.PtType {
			continue
		}
		for _, layoutChild := range node.Children {
			switch layoutChild.Kind {
			case LayoutElem:
				out = append(out, it.evalChildren(layoutChild, dataChild)...)
			case LayoutForEach:
				out = append(out, it.evalForEach(layoutChild, dataChild)...)
			case LayoutChoose:
				out = append(out, it.evalChoose(layoutChild, dataChild)...)
			case LayoutShape:
				if s := it.emitShape(layoutChild, dataChild, nil); s != nil {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// evalChoose evaluates the first if branch whose predicate holds, or the
// else branch. Only the matching branch is recursed into.
func (it *diagramInterp) evalChoose(node *DiagramLayoutNode, ctx *DiagramDataPoint) []*ShapeNode {
	for _, branch := range node.Children {
		switch branch.Kind {
		case LayoutIf:
			if evalCondition(branch.Cond, ctx) {
				return it.evalChildren(branch, ctx)
			}
		case LayoutElse:
			return it.evalChildren(branch, ctx)
		}
	}
	return nil
}

// evalCondition evaluates a predicate against the current data context.
// An absent condition is true; an absent context counts zero children.
func evalCondition(cond *LayoutCondition, ctx *DiagramDataPoint) bool {
	if cond == nil {
		return true
	}
	switch cond.Func {
	case "cnt", "":
		n := 0
		if ctx != nil {
			for _, c := range ctx.Children {
				if cond.PtType == "" || c.Type == cond.PtType {
					n++
				}
			}
		}
		switch cond.Op {
		case "neq":
			return n != cond.Val
		case "gte":
			return n >= cond.Val
		case "lte":
			return n <= cond.Val
		case "gt":
			return n > cond.Val
		case "lt":
			return n < cond.Val
		default: // equ
			return n == cond.Val
		}
	default:
		// Unknown predicate functions never match, so evaluation falls
		// through to the else branch.
		return false
	}
}

// emitShape terminates recursion with exactly one output shape carrying
// the constrained size, the data point's text and a style reference.
func (it *diagramInterp) emitShape(node *DiagramLayoutNode, ctx *DiagramDataPoint, constraints map[string]float64) *ShapeNode {
	w := it.frameW * 0.2
	h := it.frameH * 0.2
	x, y := 0.0, 0.0
	if constraints != nil {
		if f, ok := constraints["w"]; ok {
			w = f * it.frameW
		}
		if f, ok := constraints["h"]; ok {
			h = f * it.frameH
		}
		if f, ok := constraints["l"]; ok {
			x = f * it.frameW
		}
		if f, ok := constraints["t"]; ok {
			y = f * it.frameH
		}
	}

	geom := BuildGeometry(&GeometryDef{Preset: shapePreset(node)}, w, h)
	s := &ShapeNode{
		Transform: Compose(it.base, Translate(x, y)),
		Pos:       Size{W: w, H: h},
		Style:     it.styleFor(node.StyleLabel, &geom),
	}
	if ctx != nil && ctx.Text != "" {
		s.Text = it.layoutShapeText(ctx.Text, w, h)
	}
	return s
}

func shapePreset(node *DiagramLayoutNode) string {
	if node.ShapeType != "" {
		return node.ShapeType
	}
	return "rect"
}

// styleFor resolves a style label against the style and color catalogs.
func (it *diagramInterp) styleFor(label string, geom *PathSpec) ResolvedStyle {
	style := ResolvedStyle{Geometry: geom}
	if s, ok := it.parts.Styles[label]; ok {
		style.Fill = s.Fill
		style.Stroke = s.Stroke
	}
	if style.Fill == nil {
		if c, ok := it.parts.Colors[label]; ok {
			style.Fill = NewFill().SetSolid(c)
		}
	}
	return style
}

// applyAlgorithm post-processes the accumulated child shapes. The linear
// algorithm distributes shapes along the flow direction in equal slots.
// Unknown algorithm types are a no-op.
func (it *diagramInterp) applyAlgorithm(alg *DiagramLayoutNode, shapes []*ShapeNode) {
	switch alg.Algorithm {
	case "lin":
		n := len(shapes)
		if n == 0 {
			return
		}
		if alg.Direction == "fromT" {
			slot := it.frameH / float64(n)
			for i, s := range shapes {
				y := float64(i)*slot + (slot-s.Pos.H)/2
				s.Transform = Compose(it.base, Translate((it.frameW-s.Pos.W)/2, y))
			}
			return
		}
		// fromL is the default flow.
		slot := it.frameW / float64(n)
		for i, s := range shapes {
			x := float64(i)*slot + (slot-s.Pos.W)/2
			s.Transform = Compose(it.base, Translate(x, (it.frameH-s.Pos.H)/2))
		}
	default:
		// no-op
	}
}

// layoutShapeText centers a single paragraph of text in a diagram shape.
func (it *diagramInterp) layoutShapeText(text string, w, h float64) *TextBlock {
	para := &layoutParagraph{
		Props: &ParagraphProps{Align: AlignCenter},
		Runs:  []layoutRun{{Text: text, Font: *NewFont()}},
	}
	ins := insetsPx{
		l: EMUToPixel(defaultInsetLR), r: EMUToPixel(defaultInsetLR),
		t: EMUToPixel(defaultInsetTB), b: EMUToPixel(defaultInsetTB),
	}
	block, _ := it.text.Layout([]*layoutParagraph{para}, w, h, ins, AnchorCenter, NewListCounters())
	return block
}
