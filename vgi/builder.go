// Copyright 2026 prataprc
// SPDX-License-Identifier: MIT

package vgi

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/prataprc/cgi"
)

// Common errors returned by vgi operations.
var (
	ErrBackendUnavailable = errors.New("vgi: backend not available")
	ErrNoAdapters         = errors.New("vgi: no GPU adapters found")
	ErrBadAdapterIndex    = errors.New("vgi: adapter index out of range")
	ErrBadProvider        = errors.New("vgi: provider does not expose HAL types")
)

// Builder accumulates GPU bring-up options and produces a Context.
// The zero value is not useful; start from NewBuilder.
type Builder struct {
	backend      gputypes.Backend
	adapterIndex int
	preference   []gputypes.DeviceType
	features     gputypes.Features
	limits       gputypes.Limits
	label        string
}

// NewBuilder returns a builder with the defaults the toolkit uses:
// the Vulkan backend, automatic adapter selection preferring discrete
// then integrated GPUs, no optional features, default limits.
func NewBuilder() *Builder {
	return &Builder{
		backend:      gputypes.BackendVulkan,
		adapterIndex: -1,
		preference: []gputypes.DeviceType{
			gputypes.DeviceTypeDiscreteGPU,
			gputypes.DeviceTypeIntegratedGPU,
		},
		features: gputypes.Features(0),
		limits:   gputypes.DefaultLimits(),
		label:    "vgi",
	}
}

// WithBackend selects the hal backend to create the instance on.
func (b *Builder) WithBackend(backend gputypes.Backend) *Builder {
	b.backend = backend
	return b
}

// WithAdapter pins adapter selection to an explicit index into the
// enumerated adapter list, bypassing the device-type preference.
func (b *Builder) WithAdapter(index int) *Builder {
	b.adapterIndex = index
	return b
}

// WithDeviceTypePreference replaces the ordered list of device types
// tried during automatic adapter selection.
func (b *Builder) WithDeviceTypePreference(types ...gputypes.DeviceType) *Builder {
	b.preference = types
	return b
}

// WithFeatures requests optional device features.
func (b *Builder) WithFeatures(features gputypes.Features) *Builder {
	b.features = features
	return b
}

// WithLimits overrides the device limits requested at open time.
func (b *Builder) WithLimits(limits gputypes.Limits) *Builder {
	b.limits = limits
	return b
}

// WithLabel tags the context in log output.
func (b *Builder) WithLabel(label string) *Builder {
	b.label = label
	return b
}

// Build creates the instance, enumerates adapters, selects one and opens
// a device and queue on it. The returned Context owns everything it
// created and releases it on Close.
func (b *Builder) Build() (*Context, error) {
	backend, ok := hal.GetBackend(b.backend)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, b.backend)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("vgi: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapters
	}

	selected, err := b.selectAdapter(adapters)
	if err != nil {
		instance.Destroy()
		return nil, err
	}

	openDev, err := adapters[selected].Adapter.Open(b.features, b.limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("vgi: open device: %w", err)
	}

	ctx := &Context{
		label:    b.label,
		instance: instance,
		adapters: adapters,
		selected: selected,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}
	cgi.Logger().Info("vgi: GPU context ready",
		"label", b.label,
		"adapter", adapters[selected].Info.Name,
		"type", adapters[selected].Info.DeviceType,
	)
	return ctx, nil
}

// selectAdapter applies the explicit index if set, otherwise walks the
// device-type preference list, otherwise falls back to adapter 0.
func (b *Builder) selectAdapter(adapters []hal.ExposedAdapter) (int, error) {
	types := make([]gputypes.DeviceType, len(adapters))
	for i := range adapters {
		types[i] = adapters[i].Info.DeviceType
	}
	return selectIndex(types, b.adapterIndex, b.preference)
}

// selectIndex is the pure selection rule: explicit index wins, then the
// first adapter matching the preference order, then adapter 0.
func selectIndex(types []gputypes.DeviceType, explicit int, preference []gputypes.DeviceType) (int, error) {
	if explicit >= 0 {
		if explicit >= len(types) {
			return 0, fmt.Errorf("%w: %d of %d", ErrBadAdapterIndex, explicit, len(types))
		}
		return explicit, nil
	}
	for _, want := range preference {
		for i, got := range types {
			if got == want {
				return i, nil
			}
		}
	}
	return 0, nil
}
