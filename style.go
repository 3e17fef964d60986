package slidescene

import "strings"

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g. "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
	ColorRed   = Color{ARGB: "FFFF0000"}
	ColorGreen = Color{ARGB: "FF00FF00"}
	ColorBlue  = Color{ARGB: "FF0000FF"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return Color{ARGB: "FF000000"} // fallback to black
	}
	return Color{ARGB: argb}
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 { return parseHexByte(c.ARGB, 2) }

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 { return parseHexByte(c.ARGB, 4) }

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 { return parseHexByte(c.ARGB, 6) }

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 { return parseHexByte(c.ARGB, 0) }

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// ColorResolver resolves a theme color token (e.g. "accent1", "tx1") into
// a concrete color. The composition pass consults it for fills and strokes
// that name a scheme token; the theme itself lives upstream.
type ColorResolver interface {
	Resolve(token string) (Color, bool)
}

// FillType represents the kind of fill.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
	FillGradientLinear
	FillGradientPath
	FillImage
	// FillGroup inherits the fill of the enclosing group.
	FillGroup
	// FillBackground requests the resolved slide background fill.
	FillBackground
)

// Fill represents a shape or cell fill.
type Fill struct {
	Type     FillType
	Color    Color
	EndColor Color // for gradient fills
	Rotation int   // gradient rotation in degrees
	// ImageRef is the relationship id of the fill image part, for FillImage.
	ImageRef string
	// SchemeColor and EndSchemeColor optionally name theme color tokens.
	// When a ColorResolver is available they take precedence over Color
	// and EndColor at composition time.
	SchemeColor    string
	EndSchemeColor string
}

// NewFill creates a new Fill with no fill.
func NewFill() *Fill {
	return &Fill{Type: FillNone}
}

// SetSolid sets a solid fill.
func (f *Fill) SetSolid(color Color) *Fill {
	f.Type = FillSolid
	f.Color = color
	return f
}

// SetGradientLinear sets a linear gradient fill. Rotation is normalized to 0-359.
func (f *Fill) SetGradientLinear(startColor, endColor Color, rotation int) *Fill {
	f.Type = FillGradientLinear
	f.Color = startColor
	f.EndColor = endColor
	f.Rotation = ((rotation % 360) + 360) % 360
	return f
}

// IsFlat reports whether the fill is a plain solid color.
func (f *Fill) IsFlat() bool {
	return f != nil && f.Type == FillSolid
}

// resolveFillColor replaces any scheme color tokens in f with their resolved
// colors. Cascade records are shared between slides and are never mutated;
// a copy is returned whenever a token is present.
func resolveFillColor(f *Fill, colors ColorResolver) *Fill {
	if f == nil || colors == nil || (f.SchemeColor == "" && f.EndSchemeColor == "") {
		return f
	}
	out := *f
	if f.SchemeColor != "" {
		if c, ok := colors.Resolve(f.SchemeColor); ok {
			out.Color = c
		}
	}
	if f.EndSchemeColor != "" {
		if c, ok := colors.Resolve(f.EndSchemeColor); ok {
			out.EndColor = c
		}
	}
	return &out
}

// StrokeStyle represents the stroke line style.
type StrokeStyle string

const (
	StrokeNone  StrokeStyle = "none"
	StrokeSolid StrokeStyle = "solid"
	StrokeDash  StrokeStyle = "dash"
	StrokeDot   StrokeStyle = "dot"
)

// LineEnd describes an arrowhead at one end of a stroke.
type LineEnd struct {
	Kind   string // "triangle", "arrow", "oval", "diamond", "stealth"
	Width  string // "sm", "med", "lg"
	Length string
}

// Stroke represents a shape outline.
type Stroke struct {
	Style   StrokeStyle
	Width   int64 // in EMU
	Color   Color
	Cap     string // "flat", "rnd", "sq"
	HeadEnd *LineEnd
	TailEnd *LineEnd
	// SchemeColor optionally names a theme color token for Color.
	SchemeColor string
}

// NewStroke creates a new Stroke with no stroke.
func NewStroke() *Stroke {
	return &Stroke{Style: StrokeNone}
}

// WidthPixels returns the stroke width in pixels, at least 1 when the
// stroke is visible.
func (s *Stroke) WidthPixels() float64 {
	if s == nil || s.Style == StrokeNone {
		return 0
	}
	px := EMUToPixel(s.Width)
	if px < 1 {
		px = 1
	}
	return px
}

// resolveStrokeColor replaces a scheme color token in s with its resolved
// color, copying the stroke so shared cascade records stay untouched.
func resolveStrokeColor(s *Stroke, colors ColorResolver) *Stroke {
	if s == nil || colors == nil || s.SchemeColor == "" {
		return s
	}
	c, ok := colors.Resolve(s.SchemeColor)
	if !ok {
		return s
	}
	out := *s
	out.Color = c
	return &out
}

// Shadow represents an outer shadow effect.
type Shadow struct {
	Visible    bool
	Direction  int // in degrees
	Distance   int // in points
	BlurRadius int
	Color      Color
	Alpha      int // 0-100
}

// NewShadow creates a new Shadow.
func NewShadow() *Shadow {
	return &Shadow{
		Color: Color{ARGB: "80000000"},
		Alpha: 50,
	}
}

// Font represents resolved text run formatting.
type Font struct {
	Name          string
	NameEA        string  // East Asian font name
	Size          float64 // in points
	Bold          bool
	Italic        bool
	Underline     UnderlineType
	Strikethrough bool
	Color         Color
}

// UnderlineType represents the underline style.
type UnderlineType string

const (
	UnderlineNone   UnderlineType = "none"
	UnderlineSingle UnderlineType = "sng"
	UnderlineDouble UnderlineType = "dbl"
)

// NewFont creates a new Font with defaults.
func NewFont() *Font {
	return &Font{
		Name:      "Calibri",
		Size:      18,
		Underline: UnderlineNone,
		Color:     ColorBlack,
	}
}
