package slidescene

import "math"

// SegmentOp is a resolved path segment opcode.
type SegmentOp int

const (
	SegMoveTo SegmentOp = iota
	SegLineTo
	SegCubicTo
	SegQuadTo
	SegArc
	SegClose
)

// PathPointF is a point in local shape coordinates (pixels).
type PathPointF struct {
	X, Y float64
}

// PathSegment is one resolved path segment. Point counts per op: MoveTo and
// LineTo carry 1, QuadTo 2 (control, end), CubicTo 3 (two controls, end).
// Arc segments carry the ellipse center/radii and angles instead.
type PathSegment struct {
	Op  SegmentOp
	Pts []PathPointF

	// Elliptical arc parameters, for SegArc.
	Cx, Cy   float64
	Rx, Ry   float64
	StartDeg float64
	SweepDeg float64
}

// PathSpec is a shape's resolved vector path in local coordinates.
type PathSpec struct {
	Segments []PathSegment
	// NoFill marks a path that exists only to host text layout (a
	// shapeless text container); backends must not fill or stroke it.
	NoFill bool
}

// IsEmpty reports whether the path has no segments.
func (p PathSpec) IsEmpty() bool { return len(p.Segments) == 0 }

func moveTo(x, y float64) PathSegment {
	return PathSegment{Op: SegMoveTo, Pts: []PathPointF{{x, y}}}
}

func lineTo(x, y float64) PathSegment {
	return PathSegment{Op: SegLineTo, Pts: []PathPointF{{x, y}}}
}

func quadTo(cx, cy, x, y float64) PathSegment {
	return PathSegment{Op: SegQuadTo, Pts: []PathPointF{{cx, cy}, {x, y}}}
}

func cubicTo(c1x, c1y, c2x, c2y, x, y float64) PathSegment {
	return PathSegment{Op: SegCubicTo, Pts: []PathPointF{{c1x, c1y}, {c2x, c2y}, {x, y}}}
}

func closePath() PathSegment {
	return PathSegment{Op: SegClose}
}

func arcSeg(cx, cy, rx, ry, startDeg, sweepDeg float64) PathSegment {
	return PathSegment{Op: SegArc, Cx: cx, Cy: cy, Rx: rx, Ry: ry, StartDeg: startDeg, SweepDeg: sweepDeg}
}

// polarClockwise converts an angle on an ellipse to a point using the
// screen-space convention of the arc presets: positive angles sweep
// clockwise (y grows down).
func polarClockwise(cx, cy, rx, ry, deg float64) PathPointF {
	rad := deg * math.Pi / 180
	return PathPointF{X: cx + rx*math.Cos(rad), Y: cy + ry*math.Sin(rad)}
}

// polarCounter converts an angle using the inverted-sign convention of the
// blockArc and pie presets.
func polarCounter(cx, cy, rx, ry, deg float64) PathPointF {
	rad := deg * math.Pi / 180
	return PathPointF{X: cx + rx*math.Cos(rad), Y: cy - ry*math.Sin(rad)}
}

// sixtyThousandths converts an OOXML angle (1/60000 degree) to degrees.
func sixtyThousandths(v int) float64 {
	return float64(v) / 60000
}

// BuildGeometry maps a geometry descriptor to a path in local shape
// coordinates for an instance of the given size. An unknown preset yields
// an empty path, never an error.
func BuildGeometry(def *GeometryDef, w, h float64) PathSpec {
	if def == nil {
		return PathSpec{}
	}
	if def.Custom != nil {
		return customPath(def.Custom, w, h)
	}
	switch def.Preset {
	case "rect", "flowChartProcess":
		return rectPath(w, h)
	case "ellipse":
		return ellipsePath(w, h)
	case "line", "straightConnector1":
		return PathSpec{Segments: []PathSegment{moveTo(0, 0), lineTo(w, h)}}
	case "arc":
		return arcPath(def, w, h)
	case "blockArc":
		return blockArcPath(def, w, h)
	case "pie":
		return piePath(def, w, h)
	case "roundRect":
		r := cornerShortSide(def, "adj", 16667, w, h)
		return cornerRectPath(w, h, [4]corner{{round, r}, {round, r}, {round, r}, {round, r}})
	case "round1Rect":
		r := cornerShortSide(def, "adj", 16667, w, h)
		return cornerRectPath(w, h, [4]corner{{plain, 0}, {round, r}, {plain, 0}, {plain, 0}})
	case "round2SameRect":
		r1 := cornerAvgSide(def, "adj1", 16667, w, h)
		r2 := cornerAvgSide(def, "adj2", 0, w, h)
		return cornerRectPath(w, h, [4]corner{{round, r1}, {round, r1}, {round, r2}, {round, r2}})
	case "round2DiagRect":
		r1 := cornerAvgSide(def, "adj1", 16667, w, h)
		r2 := cornerAvgSide(def, "adj2", 0, w, h)
		return cornerRectPath(w, h, [4]corner{{round, r1}, {round, r2}, {round, r1}, {round, r2}})
	case "snip1Rect":
		r := cornerShortSide(def, "adj", 16667, w, h)
		return cornerRectPath(w, h, [4]corner{{plain, 0}, {snip, r}, {plain, 0}, {plain, 0}})
	case "snip2SameRect":
		r1 := cornerAvgSide(def, "adj1", 16667, w, h)
		r2 := cornerAvgSide(def, "adj2", 0, w, h)
		return cornerRectPath(w, h, [4]corner{{snip, r1}, {snip, r1}, {snip, r2}, {snip, r2}})
	case "snip2DiagRect":
		r1 := cornerAvgSide(def, "adj1", 16667, w, h)
		r2 := cornerAvgSide(def, "adj2", 0, w, h)
		return cornerRectPath(w, h, [4]corner{{snip, r1}, {snip, r2}, {snip, r1}, {snip, r2}})
	case "snipRoundRect":
		r1 := cornerAvgSide(def, "adj1", 16667, w, h)
		r2 := cornerAvgSide(def, "adj2", 16667, w, h)
		return cornerRectPath(w, h, [4]corner{{round, r1}, {snip, r2}, {plain, 0}, {plain, 0}})
	default:
		return PathSpec{}
	}
}

// TextHostRect returns the transparent rectangle hosting text layout for a
// shapeless text container.
func TextHostRect(w, h float64) PathSpec {
	p := rectPath(w, h)
	p.NoFill = true
	return p
}

func rectPath(w, h float64) PathSpec {
	return PathSpec{Segments: []PathSegment{
		moveTo(0, 0),
		lineTo(w, 0),
		lineTo(w, h),
		lineTo(0, h),
		closePath(),
	}}
}

// ellipseKappa is the cubic Bezier circle approximation constant.
const ellipseKappa = 0.5522847498

// ellipsePath builds an ellipse as a 4-point Bezier path rather than a
// native ellipse primitive, so it composes uniformly with other presets.
func ellipsePath(w, h float64) PathSpec {
	rx, ry := w/2, h/2
	cx, cy := rx, ry
	kx, ky := rx*ellipseKappa, ry*ellipseKappa
	return PathSpec{Segments: []PathSegment{
		moveTo(cx, 0),
		cubicTo(cx+kx, 0, w, cy-ky, w, cy),
		cubicTo(w, cy+ky, cx+kx, h, cx, h),
		cubicTo(cx-kx, h, 0, cy+ky, 0, cy),
		cubicTo(0, cy-ky, cx-kx, 0, cx, 0),
		closePath(),
	}}
}

// arcPath builds the open arc preset: two adjustment angles in 1/60000
// degree define the start angle and sweep of a single elliptical arc.
func arcPath(def *GeometryDef, w, h float64) PathSpec {
	start := sixtyThousandths(def.Adj("adj1", 16200000))
	sweep := sixtyThousandths(def.Adj("adj2", 5400000))
	cx, cy := w/2, h/2
	from := polarClockwise(cx, cy, cx, cy, start)
	return PathSpec{Segments: []PathSegment{
		moveTo(from.X, from.Y),
		arcSeg(cx, cy, cx, cy, start, sweep),
	}}
}

// blockArcPath builds a ring segment: outer arc, radial line, inner arc,
// close. The third adjustment gives the inner radius as a percentage of
// the outer radius. This preset uses the inverted angle convention.
func blockArcPath(def *GeometryDef, w, h float64) PathSpec {
	start := sixtyThousandths(def.Adj("adj1", 10800000))
	sweep := sixtyThousandths(def.Adj("adj2", 10800000))
	innerPct := float64(def.Adj("adj3", 25000)) / 100000
	cx, cy := w/2, h/2
	rx, ry := cx, cy
	irx, iry := rx*innerPct, ry*innerPct

	outerStart := polarCounter(cx, cy, rx, ry, start)
	innerEnd := polarCounter(cx, cy, irx, iry, start+sweep)
	return PathSpec{Segments: []PathSegment{
		moveTo(outerStart.X, outerStart.Y),
		arcSeg(cx, cy, rx, ry, -start, -sweep),
		lineTo(innerEnd.X, innerEnd.Y),
		arcSeg(cx, cy, irx, iry, -(start + sweep), sweep),
		closePath(),
	}}
}

// piePath builds a filled wedge between two angles, sharing blockArc's
// angle convention.
func piePath(def *GeometryDef, w, h float64) PathSpec {
	start := sixtyThousandths(def.Adj("adj1", 0))
	end := sixtyThousandths(def.Adj("adj2", 16200000))
	sweep := end - start
	cx, cy := w/2, h/2
	from := polarCounter(cx, cy, cx, cy, start)
	return PathSpec{Segments: []PathSegment{
		moveTo(cx, cy),
		lineTo(from.X, from.Y),
		arcSeg(cx, cy, cx, cy, -start, -sweep),
		closePath(),
	}}
}

type cornerKind int

const (
	plain cornerKind = iota
	round
	snip
)

type corner struct {
	kind cornerKind
	r    float64
}

// cornerShortSide derives a corner radius from an adjustment as a fraction
// of the shorter side.
func cornerShortSide(def *GeometryDef, name string, dflt int, w, h float64) float64 {
	frac := float64(def.Adj(name, dflt)) / 100000
	if frac < 0 {
		frac = 0
	}
	return frac * math.Min(w, h)
}

// cornerAvgSide derives a corner radius from an adjustment as a fraction of
// the average of width and height. The two derivations coexist because the
// presets historically disagree; they are intentionally not unified.
func cornerAvgSide(def *GeometryDef, name string, dflt int, w, h float64) float64 {
	frac := float64(def.Adj(name, dflt)) / 100000
	if frac < 0 {
		frac = 0
	}
	return frac * (w + h) / 2
}

// cornerRectPath builds a rectangle whose corners, in order top-left,
// top-right, bottom-right, bottom-left, are plain, rounded or snipped.
// Radii are clamped to half the shorter side. All-plain corners reduce to
// the exact rect path.
func cornerRectPath(w, h float64, corners [4]corner) PathSpec {
	lim := math.Min(w, h) / 2
	for i := range corners {
		if corners[i].r <= 0 {
			corners[i] = corner{plain, 0}
		} else if corners[i].r > lim {
			corners[i].r = lim
		}
	}
	tl, tr, br, bl := corners[0], corners[1], corners[2], corners[3]

	var segs []PathSegment
	segs = append(segs, moveTo(tl.r, 0))
	// Top edge and top-right corner.
	segs = append(segs, lineTo(w-tr.r, 0))
	switch tr.kind {
	case round:
		segs = append(segs, quadTo(w, 0, w, tr.r))
	case snip:
		segs = append(segs, lineTo(w, tr.r))
	}
	// Right edge and bottom-right corner.
	segs = append(segs, lineTo(w, h-br.r))
	switch br.kind {
	case round:
		segs = append(segs, quadTo(w, h, w-br.r, h))
	case snip:
		segs = append(segs, lineTo(w-br.r, h))
	}
	// Bottom edge and bottom-left corner.
	segs = append(segs, lineTo(bl.r, h))
	switch bl.kind {
	case round:
		segs = append(segs, quadTo(0, h, 0, h-bl.r))
	case snip:
		segs = append(segs, lineTo(0, h-bl.r))
	}
	// Left edge and top-left corner.
	segs = append(segs, lineTo(0, tl.r))
	switch tl.kind {
	case round:
		segs = append(segs, quadTo(0, 0, tl.r, 0))
	case snip:
		segs = append(segs, lineTo(tl.r, 0))
	}
	segs = append(segs, closePath())
	return PathSpec{Segments: segs}
}

// customPath scales an authored path from its own coordinate space into the
// instance's actual width and height. A zero path extent scales by 1.
func customPath(cp *CustomPath, w, h float64) PathSpec {
	sx, sy := 1.0, 1.0
	if cp.Width != 0 {
		sx = w / float64(cp.Width)
	}
	if cp.Height != 0 {
		sy = h / float64(cp.Height)
	}
	scale := func(p PathPoint) PathPointF {
		return PathPointF{X: float64(p.X) * sx, Y: float64(p.Y) * sy}
	}

	var segs []PathSegment
	for _, cmd := range cp.Commands {
		switch cmd.Op {
		case PathMoveTo:
			if len(cmd.Pts) >= 1 {
				p := scale(cmd.Pts[0])
				segs = append(segs, moveTo(p.X, p.Y))
			}
		case PathLineTo:
			if len(cmd.Pts) >= 1 {
				p := scale(cmd.Pts[0])
				segs = append(segs, lineTo(p.X, p.Y))
			}
		case PathCubicTo:
			if len(cmd.Pts) >= 3 {
				c1, c2, p := scale(cmd.Pts[0]), scale(cmd.Pts[1]), scale(cmd.Pts[2])
				segs = append(segs, cubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y))
			}
		case PathQuadTo:
			if len(cmd.Pts) >= 2 {
				c, p := scale(cmd.Pts[0]), scale(cmd.Pts[1])
				segs = append(segs, quadTo(c.X, c.Y, p.X, p.Y))
			}
		case PathClose:
			segs = append(segs, closePath())
		}
	}
	return PathSpec{Segments: segs}
}
