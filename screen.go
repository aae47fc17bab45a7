// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

package cgi

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Screen manages an offscreen render target: the color texture drawable
// nodes render into, plus the submit/fence machinery around it. Windowed
// applications render into the surface view owned by the windowing layer
// instead and use Screen only for headless or snapshot rendering.
//
// Screen is NOT safe for concurrent use.
type Screen struct {
	device hal.Device
	queue  hal.Queue

	format gputypes.TextureFormat
	clear  RGBA

	tex  hal.Texture
	view hal.TextureView

	width, height uint32
	closed        bool
}

// ScreenOption customizes a Screen at construction time.
type ScreenOption func(*Screen)

// WithFormat sets the color texture format. Default is BGRA8Unorm.
func WithFormat(format gputypes.TextureFormat) ScreenOption {
	return func(s *Screen) { s.format = format }
}

// WithClear sets the color the screen clears to. Default is white.
func WithClear(c RGBA) ScreenOption {
	return func(s *Screen) { s.clear = c }
}

// NewScreen creates a screen with a color texture of the given size.
func NewScreen(device hal.Device, queue hal.Queue, width, height int, opts ...ScreenOption) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	s := &Screen{
		device: device,
		queue:  queue,
		format: gputypes.TextureFormatBGRA8Unorm,
		clear:  White,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize recreates the color texture when the dimensions change.
// Resizing to the current size is a no-op. Resize is also the recovery
// path after ErrSurfaceLost.
func (s *Screen) Resize(width, height int) error {
	if s.closed {
		return ErrScreenClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	w, h := uint32(width), uint32(height)
	if s.tex != nil && s.width == w && s.height == h {
		return nil
	}
	s.destroyTexture()

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "cgi_screen_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("cgi: create screen texture: %w", err)
	}
	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "cgi_screen_color_view",
		Format:        s.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return fmt.Errorf("cgi: create screen view: %w", err)
	}

	s.tex = tex
	s.view = view
	s.width, s.height = w, h
	Logger().Debug("cgi: screen resized", "width", width, "height", height)
	return nil
}

// View returns the color texture view nodes render into.
func (s *Screen) View() hal.TextureView { return s.view }

// Format returns the color texture format.
func (s *Screen) Format() gputypes.TextureFormat { return s.format }

// Size returns the current dimensions in pixels.
func (s *Screen) Size() (width, height int) {
	return int(s.width), int(s.height)
}

// SetClear changes the clear color for subsequent frames.
func (s *Screen) SetClear(c RGBA) { s.clear = c }

// Clear encodes and submits a render pass that clears the color texture
// to the screen's clear color.
func (s *Screen) Clear() error {
	return s.Encode(func(encoder hal.CommandEncoder) error {
		rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "cgi_screen_clear",
			ColorAttachments: []hal.RenderPassColorAttachment{
				{
					View:       s.view,
					LoadOp:     gputypes.LoadOpClear,
					StoreOp:    gputypes.StoreOpStore,
					ClearValue: gputypes.Color{R: s.clear.R, G: s.clear.G, B: s.clear.B, A: s.clear.A},
				},
			},
		})
		rp.End()
		return nil
	})
}

// Encode runs record against a fresh command encoder, then submits the
// command buffer and blocks until the GPU signals the frame fence.
// On error from record the encoding is discarded and nothing is submitted.
func (s *Screen) Encode(record func(encoder hal.CommandEncoder) error) error {
	if s.closed {
		return ErrScreenClosed
	}
	return Submit(s.device, s.queue, "cgi_screen_frame", record)
}

// ReadPixels copies the color texture into a staging buffer and reads it
// back as tightly packed 4-byte pixels in the screen's texture format.
func (s *Screen) ReadPixels() ([]byte, error) {
	if s.closed {
		return nil, ErrScreenClosed
	}
	size := uint64(s.width) * uint64(s.height) * 4
	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "cgi_screen_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("cgi: create staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(staging)

	err = s.Encode(func(encoder hal.CommandEncoder) error {
		// The texture sits in COLOR_ATTACHMENT layout after rendering;
		// the copy needs TRANSFER_SRC. No-op on non-Vulkan backends.
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: s.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		encoder.CopyTextureToBuffer(s.tex, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: s.width * 4, RowsPerImage: s.height},
			TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
			Size:         hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
		}})
		return nil
	})
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, size)
	if err := s.queue.ReadBuffer(staging, 0, pixels); err != nil {
		return nil, fmt.Errorf("cgi: readback: %w", err)
	}
	return pixels, nil
}

// Close releases the screen's GPU resources. Safe to call multiple times.
// The device and queue are owned by the caller and are left alone.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.destroyTexture()
	s.closed = true
}

func (s *Screen) destroyTexture() {
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		s.device.DestroyTexture(s.tex)
		s.tex = nil
	}
	s.width, s.height = 0, 0
}
