package slidescene

import (
	"math"
	"testing"
)

const matrixEps = 1e-9

func matricesClose(a, b Matrix) bool {
	return math.Abs(a.A-b.A) < matrixEps && math.Abs(a.B-b.B) < matrixEps &&
		math.Abs(a.C-b.C) < matrixEps && math.Abs(a.D-b.D) < matrixEps &&
		math.Abs(a.E-b.E) < matrixEps && math.Abs(a.F-b.F) < matrixEps
}

func TestComposeIdentity(t *testing.T) {
	m := Compose(Translate(12, -5), Rotate(0.7))
	if got := Compose(Identity(), m); !matricesClose(got, m) {
		t.Errorf("Identity·m = %+v, want %+v", got, m)
	}
	if got := Compose(m, Identity()); !matricesClose(got, m) {
		t.Errorf("m·Identity = %+v, want %+v", got, m)
	}
}

func TestComposeAssociative(t *testing.T) {
	a := Translate(100, 50)
	b := Rotate(math.Pi / 3)
	c := Scale(2, 0.5)

	left := Compose(Compose(a, b), c)
	right := Compose(a, Compose(b, c))
	if !matricesClose(left, right) {
		t.Errorf("(a·b)·c = %+v, a·(b·c) = %+v", left, right)
	}

	// The grouped products must also map points identically.
	x1, y1 := left.Apply(7, -3)
	x2, y2 := right.Apply(7, -3)
	if math.Abs(x1-x2) > matrixEps || math.Abs(y1-y2) > matrixEps {
		t.Errorf("point mapping differs: (%v,%v) vs (%v,%v)", x1, y1, x2, y2)
	}
}

func TestComposeOrder(t *testing.T) {
	// parent·local applies local first: translate then scale doubles the
	// offset, scale then translate does not.
	ts := Compose(Scale(2, 2), Translate(10, 0))
	x, y := ts.Apply(0, 0)
	if x != 20 || y != 0 {
		t.Errorf("scale·translate origin = (%v,%v), want (20,0)", x, y)
	}
	st := Compose(Translate(10, 0), Scale(2, 2))
	x, y = st.Apply(0, 0)
	if x != 10 || y != 0 {
		t.Errorf("translate·scale origin = (%v,%v), want (10,0)", x, y)
	}
}

func TestPlacementTranslationOnly(t *testing.T) {
	m := placement(30, 40, 200, 100, 0, false, false)
	if !matricesClose(m, Translate(30, 40)) {
		t.Errorf("unrotated placement = %+v, want pure translation", m)
	}
}

func TestPlacementRotation(t *testing.T) {
	// 180° about the center maps the top-left corner to the bottom-right.
	m := placement(10, 20, 100, 60, 180, false, false)
	x, y := m.Apply(0, 0)
	if math.Abs(x-110) > 1e-6 || math.Abs(y-80) > 1e-6 {
		t.Errorf("rotated corner = (%v,%v), want (110,80)", x, y)
	}
	// The center is the fixed point.
	x, y = m.Apply(50, 30)
	if math.Abs(x-60) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("rotated center = (%v,%v), want (60,50)", x, y)
	}
}

func TestPlacementFlip(t *testing.T) {
	m := placement(0, 0, 100, 50, 0, true, false)
	x, y := m.Apply(0, 0)
	if math.Abs(x-100) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("flipH corner = (%v,%v), want (100,0)", x, y)
	}

	m = placement(0, 0, 100, 50, 0, false, true)
	x, y = m.Apply(0, 0)
	if math.Abs(x) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("flipV corner = (%v,%v), want (0,50)", x, y)
	}
}

func TestChildRemap(t *testing.T) {
	// A child space twice the outer extent is scaled down by half after
	// removing the child offset.
	m := childRemap(100, 50, 400, 200, 200, 100)
	x, y := m.Apply(100, 50)
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("child origin = (%v,%v), want (0,0)", x, y)
	}
	x, y = m.Apply(500, 250)
	if math.Abs(x-200) > 1e-6 || math.Abs(y-100) > 1e-6 {
		t.Errorf("child far corner = (%v,%v), want (200,100)", x, y)
	}
}

func TestChildRemapZeroExtent(t *testing.T) {
	// A zero child extent keeps a unit scale instead of dividing by zero.
	m := childRemap(10, 20, 0, 0, 300, 150)
	x, y := m.Apply(10, 20)
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("remapped origin = (%v,%v), want (0,0)", x, y)
	}
	x, y = m.Apply(110, 120)
	if math.Abs(x-100) > 1e-6 || math.Abs(y-100) > 1e-6 {
		t.Errorf("remapped point = (%v,%v), want (100,100)", x, y)
	}
}

func TestIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity() not reported as identity")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("translation reported as identity")
	}
}
