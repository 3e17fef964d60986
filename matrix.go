package slidescene

import "math"

// Matrix represents a 2D affine transformation.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping a point as x' = A*x + B*y + C, y' = D*x + E*y + F.
// Matrix is an immutable value type; all operations return new matrices.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians, clockwise in the
// slide's y-down coordinate space).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Compose returns parent·local: the transform that first applies local,
// then parent.
func Compose(parent, local Matrix) Matrix {
	return Matrix{
		A: parent.A*local.A + parent.B*local.D,
		B: parent.A*local.B + parent.B*local.E,
		C: parent.A*local.C + parent.B*local.F + parent.C,
		D: parent.D*local.A + parent.E*local.D,
		E: parent.D*local.B + parent.E*local.E,
		F: parent.D*local.C + parent.E*local.F + parent.F,
	}
}

// Translated returns m composed with a translation.
func (m Matrix) Translated(x, y float64) Matrix {
	return Compose(m, Translate(x, y))
}

// Scaled returns m composed with a scale.
func (m Matrix) Scaled(x, y float64) Matrix {
	return Compose(m, Scale(x, y))
}

// Rotated returns m composed with a rotation (radians).
func (m Matrix) Rotated(angle float64) Matrix {
	return Compose(m, Rotate(angle))
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// placement returns the local placement matrix for a box of size w×h at
// (offX, offY), rotated by rot degrees around its own center and flipped
// as a negative scale through that center. The sequence is: translate to
// offset, translate to center, rotate, flip, translate back from center.
func placement(offX, offY, w, h, rotDeg float64, flipH, flipV bool) Matrix {
	m := Translate(offX, offY)
	if rotDeg == 0 && !flipH && !flipV {
		return m
	}
	cx, cy := w/2, h/2
	m = m.Translated(cx, cy)
	if rotDeg != 0 {
		m = m.Rotated(rotDeg * math.Pi / 180)
	}
	sx, sy := 1.0, 1.0
	if flipH {
		sx = -1
	}
	if flipV {
		sy = -1
	}
	if sx != 1 || sy != 1 {
		m = m.Scaled(sx, sy)
	}
	return m.Translated(-cx, -cy)
}

// childRemap returns the matrix mapping a group's child coordinate space
// into the group's outer space: scale(outerExtent/childExtent) followed by
// translate(-childOffset). A zero child extent would divide by zero, so the
// ratio degrades to 1.
func childRemap(childOffX, childOffY, childExtX, childExtY, extX, extY float64) Matrix {
	sx, sy := 1.0, 1.0
	if childExtX != 0 {
		sx = extX / childExtX
	}
	if childExtY != 0 {
		sy = extY / childExtY
	}
	return Compose(Scale(sx, sy), Translate(-childOffX, -childOffY))
}
