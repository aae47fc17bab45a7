// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

package dom

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/prataprc/cgi"
	"github.com/prataprc/cgi/vgi"
)

// Context carries what a redraw pass needs: the device and queue the
// node pipelines live on, the shared transform stack and the display
// scale factor.
type Context struct {
	Device      hal.Device
	Queue       hal.Queue
	Transforms  *Transforms
	ScaleFactor float32
}

// NewContext builds a redraw context over a device and queue.
func NewContext(device hal.Device, queue hal.Queue) *Context {
	return &Context{
		Device:      device,
		Queue:       queue,
		Transforms:  NewTransforms(),
		ScaleFactor: 1.0,
	}
}

// ContextFrom builds a redraw context from a device provider (the
// windowing layer's HalDevice/HalQueue handshake).
func ContextFrom(provider any) (*Context, error) {
	gc, err := vgi.FromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewContext(gc.Device(), gc.Queue()), nil
}

// ColorTarget is the color attachment a redraw pass renders into, plus
// the viewport covering it. Node viewports are clipped to it so draws
// never address pixels outside the attachment.
type ColorTarget struct {
	View     hal.TextureView
	Format   gputypes.TextureFormat
	Viewport Viewport
}

// Node is a drawable element of the scene graph. The node set is closed:
// layout assignment needs access to each node's internal state.
type Node interface {
	// Extent reports the node's natural size in scaled pixels, used when
	// the authored style leaves the size auto.
	Extent() Size

	// Resize rederives computed style and attributes for the given
	// parent-box origin and scale factor, recursing into children.
	Resize(offset Location, scaleFactor float32)

	// Redraw records the node's render pass against the target and
	// recurses into children. GPU resources are created on first use.
	Redraw(ctx *Context, encoder hal.CommandEncoder, target *ColorTarget) error

	// Children returns the node's children, nil for leaves.
	Children() []Node

	// Destroy releases the node's GPU resources, recursing into children.
	Destroy(ctx *Context)

	nodeState() *layoutState
}

// Walk visits n and all its descendants depth-first.
func Walk(n Node, visit func(Node)) {
	visit(n)
	for _, child := range n.Children() {
		Walk(child, visit)
	}
}

// PrintTree logs the tree with box layouts, one line per node, for
// debugging layout passes.
func PrintTree(n Node, prefix string) {
	cgi.Logger().Debug("dom: node", "prefix", prefix, "box", n.nodeState().box.String())
	for _, child := range n.Children() {
		PrintTree(child, prefix+"  ")
	}
}
