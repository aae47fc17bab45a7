// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

package dom

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/prataprc/cgi/vgi"
)

// nodeGPU bundles the GPU resources every drawable node owns: the render
// pipeline over the shared quad vertex layout, and the three uniform
// buffers (transform, style, shape attributes) bound as group 0.
//
// Resources are created lazily on first redraw and recreated when the
// target format changes.
type nodeGPU struct {
	label     string
	attrsSize uint64

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	transformBuf hal.Buffer
	styleBuf     hal.Buffer
	attrsBuf     hal.Buffer
	bindGroup    hal.BindGroup
	vertexBuf    hal.Buffer

	format gputypes.TextureFormat
	ready  bool
}

// ensure creates the pipeline and buffers if needed. A format change
// tears everything down and rebuilds against the new target format.
func (g *nodeGPU) ensure(ctx *Context, format gputypes.TextureFormat, wgsl string) error {
	if g.ready && g.format == format {
		return nil
	}
	if g.ready {
		g.destroy(ctx.Device)
	}

	shader, err := vgi.NewShaderModule(ctx.Device, g.label+"_shader", wgsl)
	if err != nil {
		return err
	}
	g.shader = shader

	bindLayout, err := ctx.Device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: g.label + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			TransformBindGroupLayoutEntry(0),
			StyleBindGroupLayoutEntry(1),
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		g.destroy(ctx.Device)
		return fmt.Errorf("dom: create bind group layout: %w", err)
	}
	g.bindLayout = bindLayout

	pipeLayout, err := ctx.Device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            g.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{g.bindLayout},
	})
	if err != nil {
		g.destroy(ctx.Device)
		return fmt.Errorf("dom: create pipeline layout: %w", err)
	}
	g.pipeLayout = pipeLayout

	pipeline, err := ctx.Device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  g.label + "_pipeline",
		Layout: g.pipeLayout,
		Vertex: hal.VertexState{
			Module:     g.shader,
			EntryPoint: "vs_main",
			Buffers:    boxVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     g.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		g.destroy(ctx.Device)
		return fmt.Errorf("dom: create render pipeline: %w", err)
	}
	g.pipeline = pipeline

	if g.transformBuf, err = g.createUniform(ctx, "_transform", transformBindSize); err != nil {
		g.destroy(ctx.Device)
		return err
	}
	if g.styleBuf, err = g.createUniform(ctx, "_style", styleBindSize); err != nil {
		g.destroy(ctx.Device)
		return err
	}
	if g.attrsBuf, err = g.createUniform(ctx, "_attrs", g.attrsSize); err != nil {
		g.destroy(ctx.Device)
		return err
	}

	bindGroup, err := ctx.Device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  g.label + "_bind",
		Layout: g.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: g.transformBuf.NativeHandle(), Offset: 0, Size: transformBindSize,
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: g.styleBuf.NativeHandle(), Offset: 0, Size: styleBindSize,
			}},
			{Binding: 2, Resource: gputypes.BufferBinding{
				Buffer: g.attrsBuf.NativeHandle(), Offset: 0, Size: g.attrsSize,
			}},
		},
	})
	if err != nil {
		g.destroy(ctx.Device)
		return fmt.Errorf("dom: create bind group: %w", err)
	}
	g.bindGroup = bindGroup

	// The quad is constant, so the vertex buffer is uploaded once and
	// lives as long as the pipeline. It must outlive command-buffer
	// execution; the frame is submitted after redraw recording returns.
	verts := packVertices(quadVertices())
	vertexBuf, err := ctx.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: g.label + "_verts",
		Size:  uint64(len(verts)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		g.destroy(ctx.Device)
		return fmt.Errorf("dom: create vertex buffer: %w", err)
	}
	ctx.Queue.WriteBuffer(vertexBuf, 0, verts)
	g.vertexBuf = vertexBuf

	g.format = format
	g.ready = true
	return nil
}

// createUniform allocates a zeroed uniform buffer.
func (g *nodeGPU) createUniform(ctx *Context, suffix string, size uint64) (hal.Buffer, error) {
	buf, err := ctx.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: g.label + suffix,
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("dom: create %s%s buffer: %w", g.label, suffix, err)
	}
	ctx.Queue.WriteBuffer(buf, 0, make([]byte, size))
	return buf, nil
}

// writeUniforms overwrites the three uniform buffers for this frame.
func (g *nodeGPU) writeUniforms(ctx *Context, style, attrs []byte) {
	ctx.Queue.WriteBuffer(g.transformBuf, 0, ctx.Transforms.BindContent())
	ctx.Queue.WriteBuffer(g.styleBuf, 0, style)
	ctx.Queue.WriteBuffer(g.attrsBuf, 0, attrs)
}

// draw records the node's render pass: load the existing target contents,
// clip to the node viewport, draw the quad.
func (g *nodeGPU) draw(ctx *Context, encoder hal.CommandEncoder, target *ColorTarget, vp Viewport) error {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: g.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    target.View,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	})
	vp.Apply(rp)
	rp.SetPipeline(g.pipeline)
	rp.SetBindGroup(0, g.bindGroup, nil)
	rp.SetVertexBuffer(0, g.vertexBuf, 0)
	rp.Draw(6, 1, 0, 0)
	rp.End()
	return nil
}

// destroy releases everything in reverse creation order. Safe to call
// on partially created state and multiple times.
func (g *nodeGPU) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if g.vertexBuf != nil {
		device.DestroyBuffer(g.vertexBuf)
		g.vertexBuf = nil
	}
	if g.bindGroup != nil {
		device.DestroyBindGroup(g.bindGroup)
		g.bindGroup = nil
	}
	if g.attrsBuf != nil {
		device.DestroyBuffer(g.attrsBuf)
		g.attrsBuf = nil
	}
	if g.styleBuf != nil {
		device.DestroyBuffer(g.styleBuf)
		g.styleBuf = nil
	}
	if g.transformBuf != nil {
		device.DestroyBuffer(g.transformBuf)
		g.transformBuf = nil
	}
	if g.pipeline != nil {
		device.DestroyRenderPipeline(g.pipeline)
		g.pipeline = nil
	}
	if g.pipeLayout != nil {
		device.DestroyPipelineLayout(g.pipeLayout)
		g.pipeLayout = nil
	}
	if g.bindLayout != nil {
		device.DestroyBindGroupLayout(g.bindLayout)
		g.bindLayout = nil
	}
	if g.shader != nil {
		device.DestroyShaderModule(g.shader)
		g.shader = nil
	}
	g.ready = false
}
