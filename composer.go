package slidescene

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Resources fetches and ingests the external parts a slide references by
// relationship id. Fetch failures degrade the referencing node; they never
// fail the slide.
type Resources interface {
	// Image returns the resolved part path and raw bytes of an image part.
	Image(relID string) (path string, data []byte, err error)
	// ChartData returns the ingested data payload of a chart part.
	ChartData(relID string) (*ChartData, error)
	// DiagramParts returns the ingested diagram sub-parts.
	DiagramParts(ref *DiagramRef) (*DiagramParts, error)
}

// Composer turns slide documents into flattened scenes. A Composer is
// stateless across slides and safe for concurrent use; all per-slide state
// lives in the composition pass.
type Composer struct {
	Measurer  TextMeasurer
	Resources Resources

	// Workers bounds concurrent slide composition in ComposeSlides.
	// Zero or negative uses GOMAXPROCS.
	Workers int
}

func (cp *Composer) workers() int {
	if cp.Workers > 0 {
		return cp.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (cp *Composer) measurer() TextMeasurer {
	if cp.Measurer != nil {
		return cp.Measurer
	}
	return &HeuristicMeasurer{}
}

// ComposeSlide composes one slide into a scene. The node order is master
// decorations, layout decorations, header/footer placeholders, template
// picture placeholders, then the slide's own shapes, so later nodes paint
// over earlier ones.
func (cp *Composer) ComposeSlide(ctx context.Context, sc *SlideContext) (*Scene, error) {
	if sc == nil || sc.Slide == nil {
		return nil, fmt.Errorf("compose: nil slide")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &slideComposition{
		ctx:   sc,
		comp:  cp,
		scene: &Scene{},
		text: &TextEngine{
			Measurer:      cp.measurer(),
			SlideHeightPx: EMUToPixel(sc.HeightEMU),
		},
	}
	c.bg = resolveBackground(sc)
	if c.bg != nil {
		c.bg.Fill = resolveFillColor(c.bg.Fill, sc.Colors)
	}
	c.scene.Background = c.bg

	if sc.Slide.ShowMasterShapes {
		c.counters = NewListCounters()
		c.walk(sc.MasterShapes, Identity(), nil)
		c.counters = NewListCounters()
		c.walk(sc.LayoutShapes, Identity(), nil)
	}
	c.emitTemplatePlaceholders()

	c.counters = NewListCounters()
	c.walk(sc.Slide.Nodes, Identity(), nil)

	return c.scene, nil
}

// ComposeSlides composes many slides concurrently. Slides are isolated:
// each gets its own composition pass, and shared scopes and catalogs are
// only read. The first slide error cancels the remaining work; the error
// is tagged with the slide's ordinal.
func (cp *Composer) ComposeSlides(ctx context.Context, slides []*SlideContext) ([]*Scene, error) {
	scenes := make([]*Scene, len(slides))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cp.workers())
	for i, sc := range slides {
		i, sc := i, sc
		g.Go(func() error {
			scene, err := cp.ComposeSlide(gctx, sc)
			if err != nil {
				ordinal := i + 1
				if sc != nil && sc.Ordinal != 0 {
					ordinal = sc.Ordinal
				}
				return fmt.Errorf("slide %d: %w", ordinal, err)
			}
			scenes[i] = scene
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenes, nil
}

// slideComposition is the per-slide pass state.
type slideComposition struct {
	ctx      *SlideContext
	comp     *Composer
	text     *TextEngine
	scene    *Scene
	bg       *Background
	counters *ListCounters
}

// emit resolves theme color tokens on a finished node and appends it to
// the scene.
func (c *slideComposition) emit(n SceneNode) {
	c.resolveThemeColors(n)
	c.scene.Nodes = append(c.scene.Nodes, n)
}

// resolveThemeColors replaces scheme color tokens in the node's styles with
// concrete colors from the slide's resolver. Without a resolver tokens pass
// through untouched for a downstream consumer.
func (c *slideComposition) resolveThemeColors(n SceneNode) {
	colors := c.ctx.Colors
	if colors == nil {
		return
	}
	switch v := n.(type) {
	case *ShapeNode:
		resolveStyleColors(&v.Style, colors)
	case *TableNode:
		for _, cell := range v.Cells {
			cell.Fill = resolveFillColor(cell.Fill, colors)
			cell.Borders.Top = resolveStrokeColor(cell.Borders.Top, colors)
			cell.Borders.Right = resolveStrokeColor(cell.Borders.Right, colors)
			cell.Borders.Bottom = resolveStrokeColor(cell.Borders.Bottom, colors)
			cell.Borders.Left = resolveStrokeColor(cell.Borders.Left, colors)
		}
	case *PictureNode:
		if v.PlaceholderStyle != nil {
			resolveStyleColors(v.PlaceholderStyle, colors)
		}
	case *DiagramNode:
		for _, s := range v.Shapes {
			resolveStyleColors(&s.Style, colors)
		}
	}
}

func resolveStyleColors(s *ResolvedStyle, colors ColorResolver) {
	s.Fill = resolveFillColor(s.Fill, colors)
	s.Stroke = resolveStrokeColor(s.Stroke, colors)
}

// nextPath reserves the id path for the next emitted node.
func (c *slideComposition) nextPath() string {
	return nodePath(len(c.scene.Nodes))
}

// walk flattens a shape list into scene nodes. Groups never appear in the
// output; their transform composes onto every descendant.
func (c *slideComposition) walk(nodes []*Node, parent Matrix, groupFill *Fill) {
	for _, n := range nodes {
		if n == nil || n.Hidden {
			continue
		}
		c.composeNode(n, parent, groupFill)
	}
}

func (c *slideComposition) composeNode(n *Node, parent Matrix, groupFill *Fill) {
	switch n.Kind {
	case NodeGroup:
		c.composeGroup(n, parent, groupFill)
	case NodeShape:
		c.composeShape(n, parent, groupFill)
	case NodePicture:
		c.composePicture(n, parent)
	case NodeTable:
		c.composeTable(n, parent)
	case NodeChart:
		c.composeChart(n, parent)
	case NodeDiagram:
		c.composeDiagram(n, parent)
	}
}

// composeGroup composes the group's placement with the remap from its
// child coordinate space, then recurses. A group fill authored here feeds
// descendants whose fill type is FillGroup.
func (c *slideComposition) composeGroup(n *Node, parent Matrix, groupFill *Fill) {
	m := parent
	if tf := n.Transform; tf != nil {
		x, y := EMUToPixel(tf.OffsetX), EMUToPixel(tf.OffsetY)
		w, h := EMUToPixel(tf.ExtentX), EMUToPixel(tf.ExtentY)
		m = Compose(parent, placement(x, y, w, h, tf.Rotation, tf.FlipH, tf.FlipV))
		m = Compose(m, childRemap(
			EMUToPixel(tf.ChildOffsetX), EMUToPixel(tf.ChildOffsetY),
			EMUToPixel(tf.ChildExtentX), EMUToPixel(tf.ChildExtentY),
			w, h))
	}
	if n.GroupFill != nil {
		groupFill = n.GroupFill
	}
	c.walk(n.Children, m, groupFill)
}

// nodeFrame resolves a node's effective transform, falling back to the
// inherited placeholder transform when the node authored none. Returns the
// local offset, extent (pixels) and the found transform, or nil.
func nodeFrame(n *Node, chain []*Node) *TransformDef {
	if n.Transform != nil {
		return n.Transform
	}
	for _, t := range chain {
		if t.Transform != nil {
			return t.Transform
		}
	}
	return nil
}

func (c *slideComposition) chainFor(n *Node) []*Node {
	if n.Placeholder == nil {
		return nil
	}
	return placeholderChain(n.Placeholder, c.ctx.Layout, c.ctx.Master)
}

func (c *slideComposition) composeShape(n *Node, parent Matrix, groupFill *Fill) {
	chain := c.chainFor(n)

	tf := nodeFrame(n, chain)
	var x, y, w, h, rot float64
	var flipH, flipV bool
	if tf != nil {
		x, y = EMUToPixel(tf.OffsetX), EMUToPixel(tf.OffsetY)
		w, h = EMUToPixel(tf.ExtentX), EMUToPixel(tf.ExtentY)
		rot, flipH, flipV = tf.Rotation, tf.FlipH, tf.FlipV
	}
	m := Compose(parent, placement(x, y, w, h, rot, flipH, flipV))

	body := n.Body
	if body.IsEmpty() && n.Placeholder != nil {
		body = fallbackBody(chain)
	}
	hasText := !body.IsEmpty()

	geomDef := firstGeometry(n.Geometry, chain)
	var path PathSpec
	switch {
	case geomDef != nil:
		path = BuildGeometry(geomDef, w, h)
	case hasText:
		// A shapeless text box still hosts its text in a rectangle.
		path = TextHostRect(w, h)
	}

	fill := firstFill(n.Fill, chain)
	if n.UseBackgroundFill {
		fill = substituteBackgroundFill(c.bg)
	} else if fill != nil && fill.Type == FillGroup {
		fill = groupFill
	}

	shape := &ShapeNode{
		Path:      c.nextPath(),
		Transform: m,
		Pos:       Size{W: w, H: h},
		Style: ResolvedStyle{
			Geometry: &path,
			Fill:     fill,
			Stroke:   firstStroke(n.Stroke, chain),
			Effect:   firstEffect(n.Effect, chain),
		},
		FlipH:    flipH,
		FlipV:    flipV,
		Rotation: rot,
	}

	if hasText {
		shape.Text = c.layoutBody(body, chain, w, h)
	}
	c.emit(shape)
}

// layoutBody resolves the body cascade and runs text layout in a box of
// the given pixel size.
func (c *slideComposition) layoutBody(body *TextBody, chain []*Node, w, h float64) *TextBlock {
	merged := mergeBodyProps(bodyPropsChain(body, chain))
	l, r, t, b := resolvedInsets(merged)
	ins := insetsPx{
		l: EMUToPixel(l), r: EMUToPixel(r),
		t: EMUToPixel(t), b: EMUToPixel(b),
	}
	anchor := merged.Anchor
	if anchor == "" {
		anchor = AnchorTop
	}

	paras := make([]*layoutParagraph, 0, len(body.Paragraphs))
	for _, p := range body.Paragraphs {
		level := 0
		if p.Props != nil {
			level = p.Props.Level
		}
		eff := mergeParagraphProps(level, c.ctx.Master, c.ctx.Layout, chain, p.Props)
		lp := &layoutParagraph{Props: eff}
		for _, el := range p.Elements {
			switch e := el.(type) {
			case *RunDef:
				lp.Runs = append(lp.Runs, layoutRun{
					Text: e.Text,
					Font: buildFont(nil, eff, e.Props),
				})
			case *BreakDef:
				lp.Runs = append(lp.Runs, layoutRun{IsBreak: true})
			}
		}
		paras = append(paras, lp)
	}

	block, _ := c.text.Layout(paras, w, h, ins, anchor, c.counters)
	return block
}

func (c *slideComposition) composePicture(n *Node, parent Matrix) {
	chain := c.chainFor(n)
	tf := nodeFrame(n, chain)
	var x, y, w, h, rot float64
	var flipH, flipV bool
	if tf != nil {
		x, y = EMUToPixel(tf.OffsetX), EMUToPixel(tf.OffsetY)
		w, h = EMUToPixel(tf.ExtentX), EMUToPixel(tf.ExtentY)
		rot, flipH, flipV = tf.Rotation, tf.FlipH, tf.FlipV
	}
	pic := &PictureNode{
		Path:      c.nextPath(),
		Transform: Compose(parent, placement(x, y, w, h, rot, flipH, flipV)),
		Pos:       Size{W: w, H: h},
		Crop:      n.Picture,
	}
	if len(chain) > 0 {
		pic.PlaceholderStyle = &ResolvedStyle{
			Fill:   firstFill(nil, chain),
			Stroke: firstStroke(nil, chain),
			Effect: firstEffect(nil, chain),
		}
	}
	if n.Picture != nil && n.Picture.ImageRef != "" && c.comp.Resources != nil {
		// A missing image part degrades to an empty frame.
		if path, data, err := c.comp.Resources.Image(n.Picture.ImageRef); err == nil {
			pic.ImagePath = path
			pic.Image = data
		}
	}
	c.emit(pic)
}

func (c *slideComposition) composeTable(n *Node, parent Matrix) {
	if n.Table == nil {
		return
	}
	var x, y, w, h float64
	if tf := n.Transform; tf != nil {
		x, y = EMUToPixel(tf.OffsetX), EMUToPixel(tf.OffsetY)
		w, h = EMUToPixel(tf.ExtentX), EMUToPixel(tf.ExtentY)
	}
	path := c.nextPath()
	te := &tableEngine{text: c.text, catalog: c.ctx.TableStyles}
	c.emit(&TableNode{
		Path:      path,
		Transform: Compose(parent, Translate(x, y)),
		Pos:       Size{W: w, H: h},
		Cells:     te.layout(n.Table, path),
	})
}

func (c *slideComposition) composeChart(n *Node, parent Matrix) {
	if n.Chart == nil {
		return
	}
	var pos Rect
	if tf := n.Transform; tf != nil {
		origin := Compose(parent, Translate(EMUToPixel(tf.OffsetX), EMUToPixel(tf.OffsetY)))
		pos = Rect{
			X: origin.C, Y: origin.F,
			W: EMUToPixel(tf.ExtentX), H: EMUToPixel(tf.ExtentY),
		}
	}
	node := &ChartNode{Path: c.nextPath(), Pos: pos}
	if c.comp.Resources != nil {
		// A missing chart part degrades to a frame without data.
		if data, err := c.comp.Resources.ChartData(n.Chart.RelID); err == nil {
			node.Data = data
		}
	}
	c.emit(node)
}

func (c *slideComposition) composeDiagram(n *Node, parent Matrix) {
	if n.Diagram == nil {
		return
	}
	var x, y, w, h float64
	if tf := n.Transform; tf != nil {
		x, y = EMUToPixel(tf.OffsetX), EMUToPixel(tf.OffsetY)
		w, h = EMUToPixel(tf.ExtentX), EMUToPixel(tf.ExtentY)
	}
	node := &DiagramNode{Path: c.nextPath()}
	if c.comp.Resources != nil {
		// Missing or unreadable diagram parts degrade to an empty diagram.
		if parts, err := c.comp.Resources.DiagramParts(n.Diagram); err == nil {
			it := &diagramInterp{
				parts:  parts,
				frameW: w,
				frameH: h,
				base:   Compose(parent, Translate(x, y)),
				text:   c.text,
			}
			node.Shapes = it.run()
			for _, s := range node.Shapes {
				s.Path = node.Path
			}
		}
	}
	c.emit(node)
}

// emitTemplatePlaceholders renders the placeholders that show through from
// the templates: the date, footer and slide-number slots gated by the
// slide's header/footer flags, and any template placeholder carrying a
// picture. A layout placeholder shadows the master's for the same key, and
// a slide node for the same key covers both.
func (c *slideComposition) emitTemplatePlaceholders() {
	seen := map[string]bool{}
	hf := c.ctx.Slide.HeaderFooter
	for _, scope := range []*Scope{c.ctx.Layout, c.ctx.Master} {
		if scope == nil {
			continue
		}
		for _, n := range scope.Placeholders {
			if n.Placeholder == nil {
				continue
			}
			key := n.Placeholder.Key()
			if seen[key] {
				continue
			}
			seen[key] = true

			visible := false
			switch n.Placeholder.Type {
			case "dt":
				visible = hf.ShowDate
			case "ftr":
				visible = hf.ShowFooter
			case "sldNum":
				visible = hf.ShowSlideNum
			default:
				visible = n.Kind == NodePicture && n.Picture != nil
			}
			if !visible || c.slideCovers(key) {
				continue
			}
			c.counters = NewListCounters()
			c.composeNode(n, Identity(), nil)
		}
	}
}

// slideCovers reports whether the slide supplies its own node for a
// placeholder key.
func (c *slideComposition) slideCovers(key string) bool {
	for _, n := range c.ctx.Slide.Nodes {
		if n.Placeholder != nil && n.Placeholder.Key() == key {
			return true
		}
	}
	return false
}
