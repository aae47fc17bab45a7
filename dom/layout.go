// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

package dom

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Location is a screen coordinate, in pixels.
type Location struct {
	X, Y float32
}

// Size is a screen extent, in pixels.
type Size struct {
	Width, Height float32
}

// AspectRatio is a box's shape with the longest side normalized to 1.
type AspectRatio struct {
	X, Y float32
}

// BoxLayout is the axis-aligned rectangle assigned to a node by the
// flexbox solver: origin in surface pixels, extent in pixels.
type BoxLayout struct {
	X, Y, W, H float32
}

func (b BoxLayout) String() string {
	return fmt.Sprintf("Box<%g,%g..%g,%g>", b.X, b.Y, b.W, b.H)
}

// AspectRatio returns the box shape with the longest side mapped to 1
// and the other side scaled proportionally. Degenerate boxes return the
// zero ratio.
func (b BoxLayout) AspectRatio() AspectRatio {
	if b.W <= 0 || b.H <= 0 {
		return AspectRatio{}
	}
	if b.W > b.H {
		return AspectRatio{X: 1, Y: b.H / b.W}
	}
	return AspectRatio{X: b.W / b.H, Y: 1}
}

// ToNCC converts a pixel point within the box into normalized clip
// coordinates: (p/size) * aspect.
func (b BoxLayout) ToNCC(p Location) Location {
	ar := b.AspectRatio()
	if ar == (AspectRatio{}) {
		return Location{}
	}
	return Location{
		X: (p.X / b.W) * ar.X,
		Y: (p.Y / b.H) * ar.Y,
	}
}

// ToNDC converts a pixel point within the box into normalized device
// coordinates: (p/size) / aspect.
func (b BoxLayout) ToNDC(p Location) Location {
	ar := b.AspectRatio()
	if ar == (AspectRatio{}) {
		return Location{}
	}
	return Location{
		X: (p.X / b.W) / ar.X,
		Y: (p.Y / b.H) / ar.Y,
	}
}

// ToViewport returns the box as a render-pass viewport. Depth is pinned
// to 1.0 on both ends; the toolkit renders flat 2D content.
func (b BoxLayout) ToViewport() Viewport {
	return Viewport{
		X: b.X, Y: b.Y, W: b.W, H: b.H,
		MinDepth: 1.0, MaxDepth: 1.0,
	}
}

// Origin returns the box origin in surface pixels.
func (b BoxLayout) Origin() Location {
	return Location{X: b.X, Y: b.Y}
}

// Viewport is a render-pass viewport in surface pixels.
type Viewport struct {
	X, Y, W, H         float32
	MinDepth, MaxDepth float32
}

// RootViewport covers the whole surface, depth pinned to 1.0.
func RootViewport(size Size) Viewport {
	return Viewport{
		X: 0, Y: 0,
		W: size.Width, H: size.Height,
		MinDepth: 1.0, MaxDepth: 1.0,
	}
}

// Empty reports whether the viewport has no area; empty viewports skip
// their draw.
func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0
}

// Intersect clips the viewport to o. An empty o leaves v unchanged;
// disjoint viewports produce an empty one. Depth stays with v.
func (v Viewport) Intersect(o Viewport) Viewport {
	if o.Empty() {
		return v
	}
	x0 := max(v.X, o.X)
	y0 := max(v.Y, o.Y)
	x1 := min(v.X+v.W, o.X+o.W)
	y1 := min(v.Y+v.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Viewport{}
	}
	return Viewport{
		X: x0, Y: y0, W: x1 - x0, H: y1 - y0,
		MinDepth: v.MinDepth, MaxDepth: v.MaxDepth,
	}
}

// Apply sets the viewport on a render pass.
func (v Viewport) Apply(rp hal.RenderPassEncoder) {
	rp.SetViewport(v.X, v.Y, v.W, v.H, v.MinDepth, v.MaxDepth)
}

// BoxVertex is one vertex of a node's bounding quad.
type BoxVertex struct {
	Position [4]float32
}

// boxVertexStride is the byte stride per vertex: one vec4<f32>.
const boxVertexStride = 16

// quadVertices is the 6-vertex (two triangle) quad spanning clip space.
func quadVertices() []BoxVertex {
	return []BoxVertex{
		{Position: [4]float32{-1, 1, 0, 1}},
		{Position: [4]float32{-1, -1, 0, 1}},
		{Position: [4]float32{1, 1, 0, 1}},
		{Position: [4]float32{1, 1, 0, 1}},
		{Position: [4]float32{-1, -1, 0, 1}},
		{Position: [4]float32{1, -1, 0, 1}},
	}
}

// packVertices serializes vertices as little-endian float32 words.
func packVertices(vertices []BoxVertex) []byte {
	buf := make([]byte, len(vertices)*boxVertexStride)
	off := 0
	for _, v := range vertices {
		for _, f := range v.Position {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}

// boxVertexLayout returns the vertex buffer layout shared by all node
// pipelines: a single vec4 position at location 0.
func boxVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: boxVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}
