package dom

import (
	"encoding/binary"
	"math"
	"testing"
)

// apply multiplies a point (x, y, 0, 1) by the matrix.
func apply(m Matrix4, x, y float32) (float32, float32) {
	ox := m[0]*x + m[4]*y + m[12]
	oy := m[1]*x + m[5]*y + m[13]
	return ox, oy
}

func TestIdentity(t *testing.T) {
	x, y := apply(Identity(), 3, 4)
	if x != 3 || y != 4 {
		t.Errorf("identity moved point to (%v, %v)", x, y)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 0)
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestTranslateScale(t *testing.T) {
	m := Translate(10, 20, 0).Mul(Scale(2, 3, 1))
	x, y := apply(m, 1, 1)
	if !near(x, 12) || !near(y, 23) {
		t.Errorf("T*S applied = (%v, %v), want (12, 23)", x, y)
	}
}

func TestRotateZ(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	x, y := apply(m, 1, 0)
	if !near(x, 0) || !near(y, 1) {
		t.Errorf("rotate 90° of (1,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestOrtho(t *testing.T) {
	// Map an 800x600 pixel space onto clip space.
	m := Ortho(0, 800, 600, 0, -1, 1)

	x, y := apply(m, 0, 0)
	if !near(x, -1) || !near(y, 1) {
		t.Errorf("origin maps to (%v, %v), want (-1, 1)", x, y)
	}
	x, y = apply(m, 800, 600)
	if !near(x, 1) || !near(y, -1) {
		t.Errorf("far corner maps to (%v, %v), want (1, -1)", x, y)
	}
	x, y = apply(m, 400, 300)
	if !near(x, 0) || !near(y, 0) {
		t.Errorf("center maps to (%v, %v), want (0, 0)", x, y)
	}
}

func TestTransformsStack(t *testing.T) {
	tr := NewTransforms()
	if tr.Model() != Identity() {
		t.Error("fresh stack should fold to identity")
	}

	tr.Push(Translate(5, 0, 0))
	x, _ := apply(tr.Model(), 0, 0)
	if !near(x, 5) {
		t.Errorf("after push, x = %v, want 5", x)
	}

	tr.Pop()
	if tr.Model() != Identity() {
		t.Error("pop should restore identity")
	}

	// The identity base never pops.
	tr.Pop()
	tr.Pop()
	if tr.Model() != Identity() {
		t.Error("over-popping should keep the identity base")
	}
}

func TestTransformsBindContent(t *testing.T) {
	tr := NewTransforms()
	buf := tr.BindContent()
	if len(buf) != transformBindSize {
		t.Fatalf("bind content is %d bytes, want %d", len(buf), transformBindSize)
	}
	// Column-major identity: m[0] == 1.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf)); got != 1 {
		t.Errorf("first word = %v, want 1", got)
	}
}
