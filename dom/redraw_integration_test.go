package dom

import (
	"testing"

	"github.com/gogpu/wgpu/hal"

	"github.com/prataprc/cgi"
	"github.com/prataprc/cgi/vgi"
)

// Redraw only records into the frame encoder; submission happens after
// the whole recording callback returns. Node GPU resources, the vertex
// buffer included, must therefore stay alive past draw recording.
// Render two frames through a Screen and read pixels back to make sure
// the submitted passes reference live buffers.
func TestRedrawSubmitsLiveBuffers(t *testing.T) {
	gc, err := vgi.NewBuilder().WithLabel("dom-test").Build()
	if err != nil {
		t.Skipf("GPU not available: %v", err)
	}
	defer gc.Close()

	screen, err := cgi.NewScreen(gc.Device(), gc.Queue(), 64, 64, cgi.WithClear(cgi.Black))
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	defer screen.Close()

	circle := NewCircle(CircleAttrs{Radius: 20, Fill: true})
	circle.State().Style().FG = cgi.Red
	root := NewWin(circle)
	root.Relayout(Size{Width: 64, Height: 64}, 1)

	ctx := NewContext(gc.Device(), gc.Queue())
	defer root.Destroy(ctx)

	if err := screen.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	target := &ColorTarget{View: screen.View(), Format: screen.Format()}
	for frame := 0; frame < 2; frame++ {
		err := screen.Encode(func(encoder hal.CommandEncoder) error {
			return root.Redraw(ctx, encoder, target)
		})
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}

	pixels, err := screen.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	// BGRA8: the circle center at (20,20) carries the red fill.
	idx := (20*64 + 20) * 4
	if pixels[idx+2] == 0 {
		t.Errorf("center pixel missing red component: % x", pixels[idx:idx+4])
	}
}
