package slidescene

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// lineHeightFactor converts a font size into a single-spaced line height.
const lineHeightFactor = 1.2

// autofitGrowLimit is the fraction of the slide height under which a
// center-anchored block may still grow its box to fit.
const autofitGrowLimit = 0.83

// Run is one measured run of laid-out text.
type Run struct {
	Text  string
	Font  Font
	Color Color
}

// Line is one laid-out line. X and StartY position the line inside the
// containing box; Width and Height are the measured line extents.
type Line struct {
	Runs        []Run
	X           float64
	StartY      float64
	Width       float64
	Height      float64
	IsFirstLine bool
	Props       *ParagraphProps
	BulletChar  string
	// BulletX is where the bullet glyph is drawn, left of the line text.
	BulletX float64
}

// TextBlock is the laid-out text of one shape or table cell.
type TextBlock struct {
	Lines       []*Line
	TotalHeight float64
}

// PlainText concatenates the block's run text, separating lines with
// newlines. Useful for assertions and text extraction.
func (b *TextBlock) PlainText() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for i, ln := range b.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range ln.Runs {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

// ListCounters holds one auto-number counter per indentation level. A
// counter set lives for exactly one layout pass over one shape tree
// (master, layout or slide) and never leaks across passes.
type ListCounters struct {
	counts map[int]int
}

// NewListCounters creates an empty counter set.
func NewListCounters() *ListCounters {
	return &ListCounters{counts: make(map[int]int)}
}

// Next advances and returns the counter for level, starting from startAt
// (0 means 1) on first use.
func (c *ListCounters) Next(level, startAt int) int {
	if c.counts == nil {
		c.counts = make(map[int]int)
	}
	n, ok := c.counts[level]
	if !ok {
		if startAt > 0 {
			n = startAt - 1
		}
	}
	n++
	c.counts[level] = n
	return n
}

// layoutRun is an input run with fully resolved formatting.
type layoutRun struct {
	Text    string
	Font    Font
	IsBreak bool
}

// layoutParagraph is an input paragraph with effective (cascade-resolved)
// properties.
type layoutParagraph struct {
	Props *ParagraphProps
	Runs  []layoutRun
}

// TextEngine performs paragraph line-breaking, bullet layout, alignment
// and anchoring for one box.
type TextEngine struct {
	Measurer TextMeasurer
	// SlideHeightPx bounds the autofit growth heuristic.
	SlideHeightPx float64
}

// insets are resolved body insets in pixels.
type insetsPx struct {
	l, r, t, b float64
}

// Layout lays out the given paragraphs in a box of boxW×boxH pixels.
// It returns the laid-out block and the final box height, which may exceed
// boxH when the grow-to-fit special case applies.
func (e *TextEngine) Layout(paras []*layoutParagraph, boxW, boxH float64, ins insetsPx, anchor TextAnchor, counters *ListCounters) (*TextBlock, float64) {
	if counters == nil {
		counters = NewListCounters()
	}
	padW := boxW - ins.l - ins.r
	if padW < 0 {
		padW = 0
	}

	block := &TextBlock{}
	y := 0.0

	for _, para := range paras {
		props := para.Props
		if props == nil {
			props = &ParagraphProps{}
		}
		marginLeft := 0.0
		if props.MarginLeft != nil {
			marginLeft = EMUToPixel(*props.MarginLeft)
		}
		firstIndent := 0.0
		if props.Indent != nil {
			firstIndent = EMUToPixel(*props.Indent)
		}
		spacing := 1.0
		if props.LineSpacing != nil && *props.LineSpacing > 0 {
			spacing = *props.LineSpacing
		}
		if props.SpaceBefore != nil {
			y += PointToPixel(*props.SpaceBefore)
		}

		bulletChar, bulletFont := e.resolveBullet(props, para, counters)
		bulletReserve := 0.0
		if bulletChar != "" {
			bulletReserve = e.measureRun(bulletChar+" ", bulletFont)
		}

		effWidth := func(first bool) float64 {
			w := padW - marginLeft - bulletReserve
			if first {
				w -= firstIndent
			}
			if w < 0 {
				w = 0
			}
			return w
		}

		flushed := 0
		var cur []Run
		curWidth := 0.0

		flush := func() {
			ln := &Line{
				Runs:        cur,
				Width:       curWidth,
				Height:      e.lineHeight(cur, para, spacing),
				IsFirstLine: flushed == 0,
				Props:       props,
				StartY:      y,
			}
			if ln.IsFirstLine {
				ln.BulletChar = bulletChar
			}
			y += ln.Height
			block.Lines = append(block.Lines, ln)
			flushed++
			cur = nil
			curWidth = 0
		}

		for _, run := range para.Runs {
			if run.IsBreak {
				flush()
				continue
			}
			for _, word := range splitWords(run.Text) {
				ww := e.measureRun(word, run.Font)
				// Whitespace tokens are preserved as their own words but
				// never wrapped on their own.
				if !isSpaceToken(word) && len(cur) > 0 && curWidth+ww > effWidth(flushed == 0) {
					flush()
				}
				cur = appendRun(cur, Run{Text: word, Font: run.Font, Color: run.Font.Color})
				curWidth += ww
			}
		}
		// A paragraph always yields at least one line, even when empty.
		flush()

		if props.SpaceAfter != nil {
			y += PointToPixel(*props.SpaceAfter)
		}

		// Horizontal offsets: each line aligns within its own effective
		// width, which is narrower on first lines carrying the extra
		// first-line indent.
		for i := len(block.Lines) - flushed; i < len(block.Lines); i++ {
			ln := block.Lines[i]
			eff := effWidth(ln.IsFirstLine)
			left := ins.l + marginLeft + bulletReserve
			if ln.IsFirstLine {
				left += firstIndent
			}
			switch props.Align {
			case AlignCenter:
				ln.X = left + (eff-ln.Width)/2
			case AlignEnd:
				ln.X = left + eff - ln.Width
			default:
				ln.X = left
			}
			if ln.BulletChar != "" {
				ln.BulletX = ln.X - bulletReserve
			}
		}
	}

	block.TotalHeight = y

	// Grow-to-fit: when the box has no vertical insets and holds more than
	// one line, a top-anchored box (or a center-anchored box whose content
	// stays under the slide-height threshold) is grown to exactly fit the
	// text. This runs after layout and before the caller reads the final
	// box height.
	finalH := boxH
	if ins.t == 0 && ins.b == 0 && len(block.Lines) > 1 {
		grow := anchor == AnchorTop || anchor == "" ||
			(anchor == AnchorCenter && e.SlideHeightPx > 0 && block.TotalHeight < autofitGrowLimit*e.SlideHeightPx)
		if grow && block.TotalHeight > finalH {
			finalH = block.TotalHeight + ins.t + ins.b
		}
	}

	// Vertical placement of the whole block from the container anchor.
	var yOff float64
	switch anchor {
	case AnchorCenter:
		yOff = ins.t + (finalH-ins.t-ins.b-block.TotalHeight)/2
	case AnchorBottom:
		yOff = finalH - ins.b - block.TotalHeight
	default:
		yOff = ins.t
	}
	if yOff != 0 {
		for _, ln := range block.Lines {
			ln.StartY += yOff
		}
	}

	return block, finalH
}

// resolveBullet returns the bullet glyph for a paragraph's first line and
// the font it is measured with.
func (e *TextEngine) resolveBullet(props *ParagraphProps, para *layoutParagraph, counters *ListCounters) (string, Font) {
	font := paragraphFont(para)
	if props.Bullet == nil {
		return "", font
	}
	if props.Bullet.Font != "" {
		font.Name = props.Bullet.Font
	}
	switch props.Bullet.Kind {
	case BulletChar:
		return props.Bullet.Char, font
	case BulletAutoNum:
		n := counters.Next(props.Level, props.Bullet.StartAt)
		return formatAutoNum(props.Bullet.Scheme, n), font
	default:
		return "", font
	}
}

// lineHeight is the maximum run line height on the line; an empty line
// takes its height from the paragraph's font.
func (e *TextEngine) lineHeight(runs []Run, para *layoutParagraph, spacing float64) float64 {
	max := 0.0
	for _, r := range runs {
		h := PointToPixel(r.Font.Size) * lineHeightFactor * spacing
		if h > max {
			max = h
		}
	}
	if max == 0 {
		max = PointToPixel(paragraphFont(para).Size) * lineHeightFactor * spacing
	}
	return max
}

func (e *TextEngine) measureRun(text string, f Font) float64 {
	family := f.Name
	if f.NameEA != "" && hasEastAsian(text) {
		family = f.NameEA
	}
	return e.Measurer.Measure(text, family, PointToPixel(f.Size), f.Italic, f.Bold)
}

// hasEastAsian reports whether any rune is East-Asian wide or full-width,
// which selects the run font's East-Asian family.
func hasEastAsian(s string) bool {
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			return true
		}
	}
	return false
}

// paragraphFont is the font of the paragraph's first run, or the default.
func paragraphFont(para *layoutParagraph) Font {
	for _, r := range para.Runs {
		if !r.IsBreak {
			return r.Font
		}
	}
	return *NewFont()
}

// appendRun appends r, merging it into the previous run when the
// formatting matches.
func appendRun(runs []Run, r Run) []Run {
	if n := len(runs); n > 0 && runs[n-1].Font == r.Font && runs[n-1].Color == r.Color {
		runs[n-1].Text += r.Text
		return runs
	}
	return append(runs, r)
}

// splitWords splits run text into word tokens, preserving each whitespace
// stretch as its own token so visual spacing survives wrapping.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	var inSpace bool
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i == 0 {
			inSpace = sp
			continue
		}
		if sp != inSpace {
			out = append(out, s[start:i])
			start = i
			inSpace = sp
		}
	}
	out = append(out, s[start:])
	return out
}

func isSpaceToken(s string) bool {
	return strings.TrimSpace(s) == ""
}

// formatAutoNum renders an auto-number value for the given numbering
// scheme.
func formatAutoNum(scheme string, n int) string {
	switch scheme {
	case "arabicParenR":
		return itoa(n) + ")"
	case "arabicParenBoth":
		return "(" + itoa(n) + ")"
	case "alphaLcPeriod":
		return toAlpha(n, false) + "."
	case "alphaLcParenR":
		return toAlpha(n, false) + ")"
	case "alphaUcPeriod":
		return toAlpha(n, true) + "."
	case "alphaUcParenR":
		return toAlpha(n, true) + ")"
	case "romanLcPeriod":
		return toRoman(n, false) + "."
	case "romanUcPeriod":
		return toRoman(n, true) + "."
	default: // arabicPeriod and unknown schemes
		return itoa(n) + "."
	}
}

func itoa(n int) string {
	if n < 0 {
		n = 0
	}
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// toAlpha converts 1-based n to a, b, ..., z, aa, ab, ...
func toAlpha(n int, upper bool) string {
	if n < 1 {
		n = 1
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	if upper {
		return strings.ToUpper(string(out))
	}
	return string(out)
}

var romanValues = []struct {
	v int
	s string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func toRoman(n int, upper bool) string {
	if n < 1 {
		n = 1
	}
	var sb strings.Builder
	for _, rv := range romanValues {
		for n >= rv.v {
			sb.WriteString(rv.s)
			n -= rv.v
		}
	}
	if upper {
		return strings.ToUpper(sb.String())
	}
	return sb.String()
}
