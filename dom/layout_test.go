package dom

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func near(a, b float32) bool { return math32.Abs(a-b) < eps }

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		name string
		box  BoxLayout
		want AspectRatio
	}{
		{"wide", BoxLayout{W: 200, H: 100}, AspectRatio{X: 1, Y: 0.5}},
		{"tall", BoxLayout{W: 100, H: 200}, AspectRatio{X: 0.5, Y: 1}},
		{"square", BoxLayout{W: 100, H: 100}, AspectRatio{X: 1, Y: 1}},
		{"degenerate", BoxLayout{W: 0, H: 100}, AspectRatio{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.AspectRatio()
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("AspectRatio() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToNCC(t *testing.T) {
	// 200x100 box: aspect (1, 0.5). NCC = (p/size) * aspect.
	box := BoxLayout{W: 200, H: 100}
	tests := []struct {
		p    Location
		want Location
	}{
		{Location{0, 0}, Location{0, 0}},
		{Location{200, 100}, Location{1, 0.5}},
		{Location{100, 50}, Location{0.5, 0.25}},
	}
	for _, tt := range tests {
		got := box.ToNCC(tt.p)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("ToNCC(%+v) = %+v, want %+v", tt.p, got, tt.want)
		}
	}
}

func TestToNDC(t *testing.T) {
	// 200x100 box: aspect (1, 0.5). NDC = (p/size) / aspect.
	box := BoxLayout{W: 200, H: 100}
	tests := []struct {
		p    Location
		want Location
	}{
		{Location{0, 0}, Location{0, 0}},
		{Location{200, 100}, Location{1, 2}},
		{Location{100, 25}, Location{0.5, 0.5}},
	}
	for _, tt := range tests {
		got := box.ToNDC(tt.p)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("ToNDC(%+v) = %+v, want %+v", tt.p, got, tt.want)
		}
	}
}

func TestNCCAndNDCDegenerate(t *testing.T) {
	box := BoxLayout{W: 0, H: 0}
	if got := box.ToNCC(Location{10, 10}); got != (Location{}) {
		t.Errorf("degenerate ToNCC = %+v", got)
	}
	if got := box.ToNDC(Location{10, 10}); got != (Location{}) {
		t.Errorf("degenerate ToNDC = %+v", got)
	}
}

func TestToViewport(t *testing.T) {
	box := BoxLayout{X: 10, Y: 20, W: 30, H: 40}
	vp := box.ToViewport()
	if vp.X != 10 || vp.Y != 20 || vp.W != 30 || vp.H != 40 {
		t.Errorf("viewport rect = %+v", vp)
	}
	if vp.MinDepth != 1.0 || vp.MaxDepth != 1.0 {
		t.Errorf("viewport depth = %v..%v, want 1..1", vp.MinDepth, vp.MaxDepth)
	}
	if vp.Empty() {
		t.Error("non-zero viewport reported empty")
	}
}

func TestRootViewport(t *testing.T) {
	vp := RootViewport(Size{Width: 800, Height: 600})
	if vp.X != 0 || vp.Y != 0 || vp.W != 800 || vp.H != 600 {
		t.Errorf("root viewport = %+v", vp)
	}
	if vp.MinDepth != 1.0 || vp.MaxDepth != 1.0 {
		t.Errorf("root viewport depth = %v..%v", vp.MinDepth, vp.MaxDepth)
	}
}

func TestViewportIntersect(t *testing.T) {
	target := RootViewport(Size{Width: 100, Height: 100})

	// A node viewport hanging past the target edge is clipped to it.
	got := (Viewport{X: 80, Y: 90, W: 40, H: 40, MinDepth: 1, MaxDepth: 1}).Intersect(target)
	if !near(got.X, 80) || !near(got.Y, 90) || !near(got.W, 20) || !near(got.H, 10) {
		t.Errorf("clipped viewport = %+v", got)
	}
	if got.MinDepth != 1.0 || got.MaxDepth != 1.0 {
		t.Errorf("clip lost depth: %v..%v", got.MinDepth, got.MaxDepth)
	}

	// Disjoint viewports produce an empty one.
	if got := (Viewport{X: 200, Y: 0, W: 10, H: 10}).Intersect(target); !got.Empty() {
		t.Errorf("disjoint intersect = %+v, want empty", got)
	}

	// An empty target leaves the node viewport alone.
	vp := Viewport{X: 1, Y: 2, W: 3, H: 4}
	if got := vp.Intersect(Viewport{}); got != vp {
		t.Errorf("empty target changed viewport: %+v", got)
	}
}

func TestViewportEmpty(t *testing.T) {
	if !(Viewport{W: 0, H: 10}).Empty() {
		t.Error("zero-width viewport should be empty")
	}
	if !(Viewport{W: 10, H: 0}).Empty() {
		t.Error("zero-height viewport should be empty")
	}
}

func TestQuadVertices(t *testing.T) {
	verts := quadVertices()
	if len(verts) != 6 {
		t.Fatalf("quad has %d vertices, want 6", len(verts))
	}
	for i, v := range verts {
		x, y, z, w := v.Position[0], v.Position[1], v.Position[2], v.Position[3]
		if x < -1 || x > 1 || y < -1 || y > 1 {
			t.Errorf("vertex %d out of clip bounds: %+v", i, v)
		}
		if z != 0 || w != 1 {
			t.Errorf("vertex %d: z=%v w=%v, want 0 and 1", i, z, w)
		}
	}
}

func TestPackVertices(t *testing.T) {
	verts := quadVertices()
	buf := packVertices(verts)
	if len(buf) != len(verts)*boxVertexStride {
		t.Fatalf("packed %d bytes, want %d", len(buf), len(verts)*boxVertexStride)
	}
	// Spot-check the first vertex round-trips little-endian.
	for i, want := range verts[0].Position {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != want {
			t.Errorf("component %d = %v, want %v", i, got, want)
		}
	}
}

func TestBoxVertexLayout(t *testing.T) {
	layouts := boxVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("got %d buffers, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != boxVertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, boxVertexStride)
	}
	if len(l.Attributes) != 1 || l.Attributes[0].ShaderLocation != 0 {
		t.Errorf("attributes = %+v", l.Attributes)
	}
}

func TestBoxLayoutString(t *testing.T) {
	got := BoxLayout{X: 1, Y: 2, W: 3, H: 4}.String()
	if got != "Box<1,2..3,4>" {
		t.Errorf("String() = %q", got)
	}
}
