// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

// Package win is a thin single-window shim over the gogpu event loop.
// It owns the application object, builds the dom redraw context from
// the window's GPU device, and applies the surface error policy to
// redraw errors: lost surfaces are retried after a relayout, GPU
// out-of-memory stops rendering.
package win

import (
	"fmt"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/prataprc/cgi"
	"github.com/prataprc/cgi/dom"
)

// Frame is handed to the redraw callback once per draw: the dom context
// over the window's device, the command encoder for this frame's passes,
// the surface target, and the surface size in pixels.
//
// The window owns the encoder; the callback only records into it.
type Frame struct {
	Context *dom.Context
	Encoder hal.CommandEncoder
	Target  *dom.ColorTarget
	Width   int
	Height  int

	// Resized is true when the surface size changed since the last frame
	// (including the first frame). Callers relayout their tree on it.
	Resized bool
}

// Size returns the surface size as a dom extent.
func (f *Frame) Size() dom.Size {
	return dom.Size{Width: float32(f.Width), Height: float32(f.Height)}
}

// Window wraps a gogpu application with the toolkit's frame plumbing.
type Window struct {
	cfg cgi.Config
	app *gogpu.App

	ctx       *dom.Context
	format    gputypes.TextureFormat
	animToken *gogpu.AnimationToken

	onRedraw func(*Frame) error
	onClose  func()

	lastW, lastH int
	stopped      bool
}

// Option customizes a Window at construction time.
type Option func(*Window)

// WithSurfaceFormat overrides the texture format node pipelines are
// built against. The default is BGRA8Unorm, the format gogpu surfaces
// use on the Vulkan backend; set it when the surface differs.
func WithSurfaceFormat(format gputypes.TextureFormat) Option {
	return func(w *Window) { w.format = format }
}

// New creates a window from the toolkit configuration. The window opens
// when Run is called.
func New(cfg cgi.Config, opts ...Option) *Window {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(cfg.ContinuousRender))

	w := &Window{
		cfg:    cfg,
		app:    app,
		format: gputypes.TextureFormatBGRA8Unorm,
	}
	for _, opt := range opts {
		opt(w)
	}
	app.OnDraw(w.draw)
	app.OnClose(func() {
		w.stopAnimation()
		if w.onClose != nil {
			w.onClose()
		}
	})
	return w
}

// OnRedraw registers the per-frame callback.
func (w *Window) OnRedraw(fn func(*Frame) error) { w.onRedraw = fn }

// OnKeyPress registers a key handler on the window's event source.
func (w *Window) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	w.app.EventSource().OnKeyPress(fn)
}

// OnClose registers a shutdown hook, called before the GPU device goes
// away.
func (w *Window) OnClose(fn func()) { w.onClose = fn }

// StartAnimation requests VSync-driven redraws until StopAnimation.
func (w *Window) StartAnimation() {
	if w.animToken == nil {
		w.animToken = w.app.StartAnimation()
	}
}

// StopAnimation returns the window to on-demand rendering.
func (w *Window) StopAnimation() { w.stopAnimation() }

func (w *Window) stopAnimation() {
	if w.animToken != nil {
		w.animToken.Stop()
		w.animToken = nil
	}
}

// ScaleFactor returns the configured display scale factor.
func (w *Window) ScaleFactor() float32 { return w.cfg.Scale() }

// Run opens the window and blocks in the event loop until close.
func (w *Window) Run() error {
	if err := w.app.Run(); err != nil {
		return fmt.Errorf("win: event loop: %w", err)
	}
	return nil
}

// draw adapts one gogpu draw callback into a Frame.
func (w *Window) draw(dc *gogpu.Context) {
	if w.stopped || w.onRedraw == nil {
		return
	}
	width, height := dc.Width(), dc.Height()
	if width <= 0 || height <= 0 {
		return
	}

	if w.ctx == nil {
		provider := w.app.GPUContextProvider()
		if provider == nil {
			return
		}
		ctx, err := dom.ContextFrom(provider)
		if err != nil {
			cgi.Logger().Warn("win: no usable GPU device", "err", err)
			return
		}
		ctx.ScaleFactor = w.cfg.Scale()
		w.ctx = ctx
	}

	sv := dc.SurfaceView()
	if sv == nil {
		return
	}
	view := sv.HalTextureView()
	if view == nil {
		return
	}
	sw, sh := dc.SurfaceSize()

	frame := &Frame{
		Context: w.ctx,
		Target: &dom.ColorTarget{
			View:   view,
			Format: w.format,
		},
		Width:   int(sw),
		Height:  int(sh),
		Resized: int(sw) != w.lastW || int(sh) != w.lastH,
	}
	w.lastW, w.lastH = int(sw), int(sh)

	err := cgi.Submit(w.ctx.Device, w.ctx.Queue, "win_frame", func(encoder hal.CommandEncoder) error {
		frame.Encoder = encoder
		return w.onRedraw(frame)
	})
	switch cgi.ActionFor(err) {
	case cgi.RenderReconfigure:
		// Surface went away mid-frame; force a relayout next frame and
		// let the windowing layer reconfigure the swapchain.
		cgi.Logger().Warn("win: surface lost, reconfiguring")
		w.lastW, w.lastH = 0, 0
	case cgi.RenderStop:
		cgi.Logger().Warn("win: stopping renderer", "err", err)
		w.stopAnimation()
		w.stopped = true
	default:
		if err != nil {
			cgi.Logger().Warn("win: redraw", "err", err)
		}
	}
}
