// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

package dom

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/circle.wgsl
var circleShaderSource string

// circleAttrsBindSize is the byte size of the circle attrs uniform:
// center vec2<f32> + radius f32 + fill u32.
const circleAttrsBindSize = 16

// CircleAttrs are a circle node's shape attributes. Measurements are in
// pixels before scaling.
type CircleAttrs struct {
	Radius float32
	Fill   bool
}

// Transform2D scales the radius by the display scale factor.
func (a CircleAttrs) Transform2D(_ Location, scaleFactor float32) CircleAttrs {
	a.Radius = a.Radius * scaleFactor
	return a
}

// Circle is a drawable circle node: filled disc or one-pixel outline,
// painted with the style foreground color.
type Circle struct {
	state State[CircleAttrs]
	gpu   nodeGPU
}

// NewCircle creates a circle node. The authored style size defaults to
// the circle's bounding square so the flexbox solver reserves room for
// the diameter.
func NewCircle(attrs CircleAttrs) *Circle {
	c := &Circle{
		state: NewState(attrs),
		gpu:   nodeGPU{label: "dom_circle", attrsSize: circleAttrsBindSize},
	}
	diameter := attrs.Radius * 2
	c.state.Style().SetSize(Size{Width: diameter, Height: diameter})
	return c
}

// State exposes the node's layout/attribute record.
func (c *Circle) State() *State[CircleAttrs] { return &c.state }

// Extent is the scaled bounding square of the circle.
func (c *Circle) Extent() Size {
	diameter := c.state.ComputedAttrs().Radius * 2
	return Size{Width: diameter, Height: diameter}
}

// Resize rederives computed style and attributes.
func (c *Circle) Resize(offset Location, scaleFactor float32) {
	c.state.Resize(offset, scaleFactor)
}

// Children returns nil; circles are leaves.
func (c *Circle) Children() []Node { return nil }

// Redraw uploads this frame's uniforms and records the circle's render
// pass against the target.
func (c *Circle) Redraw(ctx *Context, encoder hal.CommandEncoder, target *ColorTarget) error {
	vp := c.state.Box().ToViewport().Intersect(target.Viewport)
	if vp.Empty() {
		return nil
	}
	if err := c.gpu.ensure(ctx, target.Format, circleShaderSource); err != nil {
		return err
	}
	c.gpu.writeUniforms(ctx, c.state.ComputedStyle().BindContent(), c.bindAttrs())
	return c.gpu.draw(ctx, encoder, target, vp)
}

// Destroy releases the node's GPU resources.
func (c *Circle) Destroy(ctx *Context) {
	c.gpu.destroy(ctx.Device)
}

func (c *Circle) nodeState() *layoutState { return c.state.record() }

// bindAttrs serializes the attrs uniform: the circle center sits one
// radius in from the box origin on both axes.
func (c *Circle) bindAttrs() []byte {
	attrs := c.state.ComputedAttrs()
	box := c.state.Box()

	buf := make([]byte, circleAttrsBindSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(box.X+attrs.Radius))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(box.Y+attrs.Radius))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(attrs.Radius))
	var fill uint32
	if attrs.Fill {
		fill = 1
	}
	binary.LittleEndian.PutUint32(buf[12:], fill)
	return buf
}
