package slidescene

// Style cascade resolution. Every property resolves by walking an ordered
// scope list, most specific first: slide, layout, master, built-in default.
// Scalar records take the first defined value; compound records (paragraph
// bullet and default run properties, body anchor) merge per sub-field so a
// more specific scope overrides only the fields it authors.

// Built-in default body insets in EMU (lIns/rIns 0.1", tIns/bIns 0.05").
const (
	defaultInsetLR = 91440
	defaultInsetTB = 45720
)

// PlaceholderDescriptor is the fully resolved inheritance record for one
// placeholder slot.
type PlaceholderDescriptor struct {
	Key      string
	Geometry *GeometryDef
	Fill     *Fill
	Stroke   *Stroke
	Effect   *Shadow
	Body     *BodyProps
	// FallbackText is prompt text inherited from the template, used when
	// the slide authored no body of its own.
	FallbackText *TextBody
	// Transform is the inherited absolute position, used only when the
	// slide node carries no local transform.
	Transform *TransformDef
}

// matchPlaceholder finds the placeholder in one scope matching ref.
// Exact key match wins; otherwise any placeholder whose recorded type
// equals the requested type. In the master scope a key-matched placeholder
// whose recorded type conflicts with the requested type is discarded.
func matchPlaceholder(ref *PlaceholderRef, scope *Scope) *Node {
	if ref == nil || scope == nil {
		return nil
	}
	key := ref.Key()
	for _, n := range scope.Placeholders {
		if n.Placeholder == nil {
			continue
		}
		if n.Placeholder.Key() != key {
			continue
		}
		if scope.Name == "master" && ref.Type != "" && n.Placeholder.Type != "" &&
			!typesCompatible(ref.Type, n.Placeholder.Type) {
			continue
		}
		return n
	}
	if ref.Type == "" {
		return nil
	}
	for _, n := range scope.Placeholders {
		if n.Placeholder != nil && typesCompatible(ref.Type, n.Placeholder.Type) {
			return n
		}
	}
	return nil
}

// typesCompatible reports whether two placeholder types refer to the same
// slot family. Title variants all map to the master's title slot; body
// variants map to the master's body slot.
func typesCompatible(want, have string) bool {
	return normalizePlaceholderType(want) == normalizePlaceholderType(have)
}

func normalizePlaceholderType(t string) string {
	switch t {
	case "ctrTitle", "title":
		return "title"
	case "subTitle", "body":
		return "body"
	default:
		return t
	}
}

// placeholderChain returns the matched template nodes for ref, most
// specific first (layout before master). The slide's own node is not part
// of the chain; callers consult it first.
func placeholderChain(ref *PlaceholderRef, layout, master *Scope) []*Node {
	var chain []*Node
	if n := matchPlaceholder(ref, layout); n != nil {
		chain = append(chain, n)
	}
	if n := matchPlaceholder(ref, master); n != nil {
		chain = append(chain, n)
	}
	return chain
}

// ResolvePlaceholder builds the resolved inheritance record for ref against
// the layout and master scopes.
func ResolvePlaceholder(ref *PlaceholderRef, layout, master *Scope) *PlaceholderDescriptor {
	if ref == nil {
		return nil
	}
	chain := placeholderChain(ref, layout, master)
	if len(chain) == 0 {
		return &PlaceholderDescriptor{Key: ref.Key()}
	}
	d := &PlaceholderDescriptor{Key: ref.Key()}
	for _, n := range chain {
		if d.Geometry == nil {
			d.Geometry = n.Geometry
		}
		if d.Fill == nil {
			d.Fill = n.Fill
		}
		if d.Stroke == nil {
			d.Stroke = n.Stroke
		}
		if d.Effect == nil {
			d.Effect = n.Effect
		}
		if d.Transform == nil {
			d.Transform = n.Transform
		}
	}
	d.FallbackText = fallbackBody(chain)
	d.Body = mergeBodyProps(bodyPropsChain(nil, chain))
	return d
}

// fallbackBody returns the template's prompt text for a placeholder slot,
// the first non-empty body along the inheritance chain.
func fallbackBody(chain []*Node) *TextBody {
	for _, n := range chain {
		if !n.Body.IsEmpty() {
			return n.Body
		}
	}
	return nil
}

// firstGeometry returns the first defined geometry along own → chain.
func firstGeometry(own *GeometryDef, chain []*Node) *GeometryDef {
	if own != nil {
		return own
	}
	for _, n := range chain {
		if n.Geometry != nil {
			return n.Geometry
		}
	}
	return nil
}

// firstFill returns the first defined fill along own → chain.
func firstFill(own *Fill, chain []*Node) *Fill {
	if own != nil {
		return own
	}
	for _, n := range chain {
		if n.Fill != nil {
			return n.Fill
		}
	}
	return nil
}

// firstStroke returns the first defined stroke along own → chain.
func firstStroke(own *Stroke, chain []*Node) *Stroke {
	if own != nil {
		return own
	}
	for _, n := range chain {
		if n.Stroke != nil {
			return n.Stroke
		}
	}
	return nil
}

// firstEffect returns the first defined effect along own → chain.
func firstEffect(own *Shadow, chain []*Node) *Shadow {
	if own != nil {
		return own
	}
	for _, n := range chain {
		if n.Effect != nil {
			return n.Effect
		}
	}
	return nil
}

// bodyPropsChain lists the authored body-properties records, most specific
// first.
func bodyPropsChain(own *TextBody, chain []*Node) []*BodyProps {
	var out []*BodyProps
	if own != nil && own.Props != nil {
		out = append(out, own.Props)
	}
	for _, n := range chain {
		if n.Body != nil && n.Body.Props != nil {
			out = append(out, n.Body.Props)
		}
	}
	return out
}

// mergeBodyProps resolves a body-properties record from a most-specific-
// first chain. Insets and wrap take the whole most specific record that
// defines them; the anchor is resolved independently so a layout may set
// insets while the master still supplies the anchor.
func mergeBodyProps(chain []*BodyProps) *BodyProps {
	out := &BodyProps{}
	for _, p := range chain {
		if p == nil {
			continue
		}
		if out.InsetLeft == nil && p.InsetLeft != nil {
			out.InsetLeft = p.InsetLeft
		}
		if out.InsetRight == nil && p.InsetRight != nil {
			out.InsetRight = p.InsetRight
		}
		if out.InsetTop == nil && p.InsetTop != nil {
			out.InsetTop = p.InsetTop
		}
		if out.InsetBottom == nil && p.InsetBottom != nil {
			out.InsetBottom = p.InsetBottom
		}
		if out.Wrap == nil && p.Wrap != nil {
			out.Wrap = p.Wrap
		}
	}
	// Anchor: independent pass over the same chain.
	for _, p := range chain {
		if p != nil && p.Anchor != "" {
			out.Anchor = p.Anchor
			break
		}
	}
	return out
}

// resolvedInsets returns the effective body insets in EMU.
func resolvedInsets(p *BodyProps) (l, r, t, b int64) {
	l, r, t, b = defaultInsetLR, defaultInsetLR, defaultInsetTB, defaultInsetTB
	if p == nil {
		return
	}
	if p.InsetLeft != nil {
		l = *p.InsetLeft
	}
	if p.InsetRight != nil {
		r = *p.InsetRight
	}
	if p.InsetTop != nil {
		t = *p.InsetTop
	}
	if p.InsetBottom != nil {
		b = *p.InsetBottom
	}
	return
}

// overlayRunProps applies src's authored fields on top of dst.
func overlayRunProps(dst, src *RunProps) {
	if src == nil {
		return
	}
	if src.Family != "" {
		dst.Family = src.Family
	}
	if src.FamilyEA != "" {
		dst.FamilyEA = src.FamilyEA
	}
	if src.Size != nil {
		dst.Size = src.Size
	}
	if src.Bold != nil {
		dst.Bold = src.Bold
	}
	if src.Italic != nil {
		dst.Italic = src.Italic
	}
	if src.Underline != nil {
		dst.Underline = src.Underline
	}
	if src.Strike != nil {
		dst.Strike = src.Strike
	}
	if src.Color != nil {
		dst.Color = src.Color
	}
}

// overlayParagraphProps applies src's authored fields on top of dst.
// Bullet and DefRPr are compound: each merges per sub-field.
func overlayParagraphProps(dst, src *ParagraphProps) {
	if src == nil {
		return
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.MarginLeft != nil {
		dst.MarginLeft = src.MarginLeft
	}
	if src.Indent != nil {
		dst.Indent = src.Indent
	}
	if src.LineSpacing != nil {
		dst.LineSpacing = src.LineSpacing
	}
	if src.SpaceBefore != nil {
		dst.SpaceBefore = src.SpaceBefore
	}
	if src.SpaceAfter != nil {
		dst.SpaceAfter = src.SpaceAfter
	}
	if src.Bullet != nil {
		if dst.Bullet == nil {
			dst.Bullet = &BulletDef{}
		}
		if src.Bullet.Kind != BulletInherit {
			dst.Bullet.Kind = src.Bullet.Kind
		}
		if src.Bullet.Char != "" {
			dst.Bullet.Char = src.Bullet.Char
		}
		if src.Bullet.Scheme != "" {
			dst.Bullet.Scheme = src.Bullet.Scheme
		}
		if src.Bullet.StartAt != 0 {
			dst.Bullet.StartAt = src.Bullet.StartAt
		}
		if src.Bullet.Font != "" {
			dst.Bullet.Font = src.Bullet.Font
		}
		if src.Bullet.Color != nil {
			dst.Bullet.Color = src.Bullet.Color
		}
	}
	if src.DefRPr != nil {
		if dst.DefRPr == nil {
			dst.DefRPr = &RunProps{}
		}
		overlayRunProps(dst.DefRPr, src.DefRPr)
	}
}

// mergeParagraphProps builds the effective paragraph properties for one
// indent level. Merge order is default → master → layout → slide →
// paragraph-authored, last applied wins per sub-field, so the most specific
// scope overrides only what it defines.
func mergeParagraphProps(level int, master, layout *Scope, phChain []*Node, authored *ParagraphProps) *ParagraphProps {
	out := &ParagraphProps{Level: level}
	overlayParagraphProps(out, scopeTextDefault(master, level))
	overlayParagraphProps(out, scopeTextDefault(layout, level))
	// Template placeholder-level defaults, least specific first.
	for i := len(phChain) - 1; i >= 0; i-- {
		overlayParagraphProps(out, placeholderTextDefault(phChain[i], level))
	}
	overlayParagraphProps(out, authored)
	return out
}

func scopeTextDefault(s *Scope, level int) *ParagraphProps {
	if s == nil || level < 0 || level >= len(s.TextDefaults) {
		return nil
	}
	return s.TextDefaults[level]
}

// placeholderTextDefault returns the paragraph props the template node
// authored for the given level, taken from its body's paragraph of that
// level.
func placeholderTextDefault(n *Node, level int) *ParagraphProps {
	if n == nil || n.Body == nil {
		return nil
	}
	for _, p := range n.Body.Paragraphs {
		if p.Props != nil && p.Props.Level == level {
			return p.Props
		}
	}
	return nil
}

// substituteBackgroundFill implements "use background fill": the shape's
// fill becomes the resolved slide background when that background is a flat
// color, otherwise no fill. A background image is never inlined into a
// shape fill.
func substituteBackgroundFill(bg *Background) *Fill {
	if bg != nil && bg.Kind == BackgroundColor && bg.Fill.IsFlat() {
		f := *bg.Fill
		return &f
	}
	return NewFill()
}

// resolveBackground walks slide → layout → master for the first authored
// background, tagging it with its source scope.
func resolveBackground(ctx *SlideContext) *Background {
	if ctx.Slide != nil && ctx.Slide.Background != nil {
		bg := *ctx.Slide.Background
		bg.SourceScope = "slide"
		return &bg
	}
	if ctx.Layout != nil && ctx.Layout.Background != nil {
		bg := *ctx.Layout.Background
		bg.SourceScope = "layout"
		return &bg
	}
	if ctx.Master != nil && ctx.Master.Background != nil {
		bg := *ctx.Master.Background
		bg.SourceScope = "master"
		return &bg
	}
	return nil
}
