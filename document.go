package slidescene

import "fmt"

// NodeKind identifies the kind of a slide tree node. Kinds are decided once
// during ingestion and matched exhaustively; there is no tag-name dispatch
// at composition time.
type NodeKind int

const (
	NodeShape NodeKind = iota
	NodePicture
	NodeGroup
	NodeTable
	NodeChart
	NodeDiagram
)

func (k NodeKind) String() string {
	switch k {
	case NodeShape:
		return "shape"
	case NodePicture:
		return "picture"
	case NodeGroup:
		return "group"
	case NodeTable:
		return "table"
	case NodeChart:
		return "chart"
	case NodeDiagram:
		return "diagram"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TransformDef is an authored shape transform. All lengths are in EMU and
// rotation is in degrees. Child offset/extent describe a group's internal
// coordinate space.
type TransformDef struct {
	OffsetX, OffsetY int64
	ExtentX, ExtentY int64
	Rotation         float64
	FlipH, FlipV     bool

	ChildOffsetX, ChildOffsetY int64
	ChildExtentX, ChildExtentY int64
}

// PlaceholderRef identifies a placeholder slot. A slot is keyed either by
// its explicit index or, when no index was authored, by its semantic type.
type PlaceholderRef struct {
	Type   string // "title", "body", "ctrTitle", "subTitle", "dt", "ftr", "sldNum", "pic", ...
	Idx    int
	HasIdx bool
}

// Key returns the placeholder lookup key. An explicit index always wins
// over the semantic type.
func (p *PlaceholderRef) Key() string {
	if p.HasIdx {
		return fmt.Sprintf("idx_%d", p.Idx)
	}
	return p.Type
}

// PathOp is a custom-geometry path command opcode.
type PathOp int

const (
	PathMoveTo PathOp = iota
	PathLineTo
	PathCubicTo
	PathQuadTo
	PathClose
)

// PathPoint is a point in authored path coordinates (EMU path space).
type PathPoint struct {
	X, Y int64
}

// CustomPathCommand is one command of a custom geometry path.
type CustomPathCommand struct {
	Op  PathOp
	Pts []PathPoint
}

// CustomPath is an authored freeform geometry in its own coordinate space.
type CustomPath struct {
	Width    int64 // path coordinate space width
	Height   int64 // path coordinate space height
	Commands []CustomPathCommand
}

// GeometryDef describes a shape's geometry: either a preset name with
// adjustment values, or a custom path command list.
type GeometryDef struct {
	Preset string         // e.g. "rect", "roundRect", "arc"; empty for custom
	Adjust map[string]int // avLst values, e.g. "adj1" -> 16667
	Custom *CustomPath
}

// Adj returns the named adjustment value, or def when absent.
func (g *GeometryDef) Adj(name string, def int) int {
	if g == nil || g.Adjust == nil {
		return def
	}
	if v, ok := g.Adjust[name]; ok {
		return v
	}
	return def
}

// RunProps holds optional run-level text properties. Nil pointer fields are
// "not authored here" and cascade to the next scope.
type RunProps struct {
	Family    string // empty means unset
	FamilyEA  string
	Size      *float64 // points
	Bold      *bool
	Italic    *bool
	Underline *UnderlineType
	Strike    *bool
	Color     *Color
}

// BulletKind distinguishes bullet flavors.
type BulletKind int

const (
	BulletInherit BulletKind = iota // nothing authored at this scope
	BulletNone
	BulletChar
	BulletAutoNum
)

// BulletDef describes paragraph bullet formatting.
type BulletDef struct {
	Kind    BulletKind
	Char    string // for BulletChar
	Scheme  string // for BulletAutoNum, e.g. "arabicPeriod", "alphaLcParenR"
	StartAt int    // first number for auto-numbering; 0 means 1
	Font    string
	Color   *Color
}

// ParagraphAlign is the horizontal paragraph alignment.
type ParagraphAlign string

const (
	AlignStart  ParagraphAlign = "start"
	AlignCenter ParagraphAlign = "center"
	AlignEnd    ParagraphAlign = "end"
)

// ParagraphProps holds optional paragraph-level properties. Pointer fields
// cascade per sub-field across scopes.
type ParagraphProps struct {
	Align       ParagraphAlign // empty means unset
	Level       int
	MarginLeft  *int64   // EMU
	Indent      *int64   // EMU, first-line extra indent (may be negative)
	LineSpacing *float64 // multiple of single spacing, e.g. 1.0
	SpaceBefore *float64 // points
	SpaceAfter  *float64 // points
	Bullet      *BulletDef
	DefRPr      *RunProps
}

// ParagraphElement is either a RunDef or a BreakDef.
type ParagraphElement interface {
	paragraphElement()
}

// RunDef is an authored text run.
type RunDef struct {
	Text  string
	Props *RunProps
}

func (*RunDef) paragraphElement() {}

// BreakDef is an explicit line break.
type BreakDef struct{}

func (*BreakDef) paragraphElement() {}

// ParagraphDef is one authored paragraph.
type ParagraphDef struct {
	Props    *ParagraphProps
	Elements []ParagraphElement
}

// TextAnchor is the vertical anchoring of a text block within its box.
type TextAnchor string

const (
	AnchorTop    TextAnchor = "t"
	AnchorCenter TextAnchor = "ctr"
	AnchorBottom TextAnchor = "b"
)

// BodyProps holds optional text-body properties (insets, anchor, wrap).
// The anchor cascades independently from the rest of the record.
type BodyProps struct {
	InsetLeft   *int64 // EMU
	InsetRight  *int64
	InsetTop    *int64
	InsetBottom *int64
	Anchor      TextAnchor // empty means unset
	Wrap        *bool
}

// TextBody is a shape's authored text content.
type TextBody struct {
	Props      *BodyProps
	Paragraphs []*ParagraphDef
}

// IsEmpty reports whether the body contains no visible text.
func (b *TextBody) IsEmpty() bool {
	if b == nil {
		return true
	}
	for _, p := range b.Paragraphs {
		for _, el := range p.Elements {
			if r, ok := el.(*RunDef); ok && r.Text != "" {
				return false
			}
		}
	}
	return true
}

// PictureDef holds picture-specific node data.
type PictureDef struct {
	// ImageRef is the relationship id of the image part.
	ImageRef string
	// Crop percentages in 1/1000 of a percent (e.g. 56333 = 56.333%).
	CropLeft, CropTop, CropRight, CropBottom int
	// Alpha is the alphaModFix amount (0-100000); 0 means fully opaque.
	Alpha int
}

// CellMargins are explicit per-cell text margins in EMU; nil fields use the
// fixed default insets.
type CellMargins struct {
	Left, Right, Top, Bottom *int64
}

// CellBorderDefs holds the four borders of a table cell.
type CellBorderDefs struct {
	Top, Right, Bottom, Left *Stroke
}

// CellDef is one authored table cell.
type CellDef struct {
	Body     *TextBody
	Fill     *Fill
	Borders  *CellBorderDefs
	Margins  *CellMargins
	GridSpan int  // horizontal span; values < 1 mean 1
	RowSpan  int  // vertical span; values < 1 mean 1
	HMerge   bool // continuation of a horizontal merge
	VMerge   bool // continuation of a vertical merge
}

// TableDef is an authored table: a dense rows×cols cell grid with declared
// integer column widths and row heights in EMU.
type TableDef struct {
	Rows       [][]*CellDef
	ColWidths  []int64
	RowHeights []int64

	StyleID  string // table style id; empty uses the catalog default
	FirstRow bool   // header row emphasis
	LastRow  bool   // total row emphasis
	FirstCol bool
	LastCol  bool
	BandRows bool
	BandCols bool
}

// ChartRef points at a chart part by relationship id.
type ChartRef struct {
	RelID string
}

// DiagramRef points at the related diagram parts by relationship id.
type DiagramRef struct {
	DataRelID    string
	LayoutRelID  string
	DrawingRelID string // optional pre-rendered drawing
	ColorsRelID  string
	StyleRelID   string
}

// Node is one node of a slide's shape tree, already ingested into typed
// form. Exactly the fields relevant to its Kind are set.
type Node struct {
	Kind      NodeKind
	Name      string
	Hidden    bool
	Transform *TransformDef

	Placeholder *PlaceholderRef

	// Shape fields.
	Geometry          *GeometryDef
	Fill              *Fill
	UseBackgroundFill bool
	Stroke            *Stroke
	Effect            *Shadow
	Body              *TextBody

	// Picture fields.
	Picture *PictureDef

	// Group fields.
	Children  []*Node
	GroupFill *Fill

	// Frame fields.
	Table   *TableDef
	Chart   *ChartRef
	Diagram *DiagramRef
}

// HeaderFooterFlags control visibility of the date, footer and slide number
// placeholders on a slide.
type HeaderFooterFlags struct {
	ShowDate     bool
	ShowFooter   bool
	ShowSlideNum bool
}

// BackgroundKind identifies the resolved background flavor.
type BackgroundKind int

const (
	BackgroundColor BackgroundKind = iota
	BackgroundGradient
	BackgroundImage
)

// Background is an authored or resolved slide background.
type Background struct {
	Kind     BackgroundKind
	Fill     *Fill // solid or gradient
	ImageRef string
	// SourceScope records which scope supplied the background:
	// "slide", "layout" or "master".
	SourceScope string
}

// Scope is one level of the style cascade: the placeholder definitions,
// background and text defaults contributed by a slide, layout or master.
// Scopes are immutable after ingestion and safe for concurrent reads.
type Scope struct {
	Name         string // "slide", "layout" or "master"
	Placeholders []*Node
	Background   *Background
	// TextDefaults are per-indent-level paragraph defaults (index = level).
	TextDefaults []*ParagraphProps
}

// SlideDocument is one slide's ingested shape tree.
type SlideDocument struct {
	Nodes            []*Node
	Background       *Background
	HeaderFooter     HeaderFooterFlags
	ShowMasterShapes bool
}

// SlideContext bundles one slide with its inherited scopes and shared
// immutable catalogs. Different slides may share Layout, Master, Theme and
// TableStyles; those are read-only after ingestion.
type SlideContext struct {
	Ordinal int // 1-based slide number, used for error tagging
	Slide   *SlideDocument
	Layout  *Scope
	Master  *Scope

	// LayoutShapes and MasterShapes are the non-placeholder decoration
	// shapes of the inherited templates, composed behind the slide's own
	// content when ShowMasterShapes is on.
	LayoutShapes []*Node
	MasterShapes []*Node

	Colors      ColorResolver
	TableStyles *TableStyleCatalog

	// Slide dimensions in EMU.
	WidthEMU, HeightEMU int64
}
