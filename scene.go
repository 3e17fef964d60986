package slidescene

import "fmt"

// Size is a node's extent in its own local (post-transform) coordinate
// space, origin at the node's top-left. Once a node carries a transform
// there is no independent x/y.
type Size struct {
	W, H float64
}

// Rect is a position and extent in a parent-local coordinate space,
// used for table cells inside their table node.
type Rect struct {
	X, Y, W, H float64
}

// SceneKind identifies the kind of a scene node.
type SceneKind int

const (
	SceneShape SceneKind = iota
	SceneTable
	ScenePicture
	SceneChart
	SceneDiagram
)

// SceneNode is one flattened, absolutely transformed drawable unit.
// Groups are never emitted; they are expanded during composition.
type SceneNode interface {
	SceneKind() SceneKind
	// NodePath is the stable per-node id path, e.g. "slide.shapes.3".
	// It is derived deterministically from the node's position in the
	// flattened output and is a supported external contract for later
	// re-selection by a host UI.
	NodePath() string
}

// ResolvedStyle is the cascade output for one shape. Each field is
// independently nullable.
type ResolvedStyle struct {
	Geometry *PathSpec
	Fill     *Fill
	Stroke   *Stroke
	Effect   *Shadow
}

// ShapeNode is a resolved vector shape, optionally with laid-out text.
type ShapeNode struct {
	Path      string
	Transform Matrix // full composition from the slide root
	Pos       Size   // local width/height in pixels
	Style     ResolvedStyle
	Text      *TextBlock
	FlipH     bool
	FlipV     bool
	Rotation  float64 // degrees
}

func (n *ShapeNode) SceneKind() SceneKind { return SceneShape }
func (n *ShapeNode) NodePath() string     { return n.Path }

// TableCellNode is one rendered table cell positioned in table-local space.
type TableCellNode struct {
	Path    string
	Pos     Rect
	Fill    *Fill
	Borders CellBorders
	Text    *TextBlock
}

// CellBorders are the four resolved borders of a cell.
type CellBorders struct {
	Top, Right, Bottom, Left *Stroke
}

// TableNode is a resolved table.
type TableNode struct {
	Path      string
	Transform Matrix
	Pos       Size
	Cells     []*TableCellNode
}

func (n *TableNode) SceneKind() SceneKind { return SceneTable }
func (n *TableNode) NodePath() string     { return n.Path }

// PictureNode is a resolved picture frame.
type PictureNode struct {
	Path      string
	Transform Matrix
	Pos       Size
	// PlaceholderStyle carries the inherited frame style when the picture
	// fills a placeholder slot.
	PlaceholderStyle *ResolvedStyle
	// ImagePath is the resolved package part path of the image, when known.
	ImagePath string
	// Image is the raw image data; nil when the part was missing (the
	// picture degrades to an empty frame).
	Image []byte
	Crop  *PictureDef
}

func (n *PictureNode) SceneKind() SceneKind { return ScenePicture }
func (n *PictureNode) NodePath() string     { return n.Path }

// ChartNode is a resolved chart frame; the bitmap charting component that
// consumes Data is an external collaborator.
type ChartNode struct {
	Path string
	Pos  Rect
	Data *ChartData
}

func (n *ChartNode) SceneKind() SceneKind { return SceneChart }
func (n *ChartNode) NodePath() string     { return n.Path }

// DiagramNode is the shape list produced by diagram layout.
type DiagramNode struct {
	Path   string
	Shapes []*ShapeNode
}

func (n *DiagramNode) SceneKind() SceneKind { return SceneDiagram }
func (n *DiagramNode) NodePath() string     { return n.Path }

// Scene is the composition result for one slide: an ordered node list plus
// the resolved background descriptor.
type Scene struct {
	Nodes      []SceneNode
	Background *Background
}

// nodePath builds the id path for the node at flat index i.
func nodePath(i int) string {
	return fmt.Sprintf("slide.shapes.%d", i)
}

// cellPath builds the id path for cell n of the table at path base.
func cellPath(base string, n int) string {
	return fmt.Sprintf("%s.cells.%d", base, n)
}
