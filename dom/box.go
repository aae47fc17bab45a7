package dom

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/box.wgsl
var boxShaderSource string

// boxAttrsBindSize is the byte size of the box attrs uniform:
// origin vec2<f32> + size vec2<f32>.
const boxAttrsBindSize = 16

// BoxAttrs are a box node's shape attributes. The rectangle itself
// comes from the layout box; boxes have no extra shape parameters.
type BoxAttrs struct{}

// Transform2D is the identity; a box has nothing to scale beyond its
// style.
func (a BoxAttrs) Transform2D(Location, float32) BoxAttrs { return a }

// Box is a drawable rectangle node filling its layout box with the
// style foreground color.
type Box struct {
	state State[BoxAttrs]
	gpu   nodeGPU
}

// NewBox creates a box node with the given authored size in pixels.
func NewBox(size Size) *Box {
	b := &Box{
		state: NewState(BoxAttrs{}),
		gpu:   nodeGPU{label: "dom_box", attrsSize: boxAttrsBindSize},
	}
	b.state.Style().SetSize(size)
	return b
}

// State exposes the node's layout/attribute record.
func (b *Box) State() *State[BoxAttrs] { return &b.state }

// Extent is the scaled authored size.
func (b *Box) Extent() Size {
	return b.state.ComputedStyle().Size
}

// Resize rederives the computed style.
func (b *Box) Resize(offset Location, scaleFactor float32) {
	b.state.Resize(offset, scaleFactor)
}

// Children returns nil; boxes are leaves.
func (b *Box) Children() []Node { return nil }

// Redraw uploads this frame's uniforms and records the box's render
// pass against the target.
func (b *Box) Redraw(ctx *Context, encoder hal.CommandEncoder, target *ColorTarget) error {
	vp := b.state.Box().ToViewport().Intersect(target.Viewport)
	if vp.Empty() {
		return nil
	}
	if err := b.gpu.ensure(ctx, target.Format, boxShaderSource); err != nil {
		return err
	}
	b.gpu.writeUniforms(ctx, b.state.ComputedStyle().BindContent(), b.bindAttrs())
	return b.gpu.draw(ctx, encoder, target, vp)
}

// Destroy releases the node's GPU resources.
func (b *Box) Destroy(ctx *Context) {
	b.gpu.destroy(ctx.Device)
}

func (b *Box) nodeState() *layoutState { return b.state.record() }

func (b *Box) bindAttrs() []byte {
	box := b.state.Box()
	buf := make([]byte, boxAttrsBindSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(box.X))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(box.Y))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(box.W))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(box.H))
	return buf
}
