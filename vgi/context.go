package vgi

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/prataprc/cgi"
)

// AdapterInfo describes one enumerated GPU adapter.
type AdapterInfo struct {
	Index      int
	Name       string
	DeviceType gputypes.DeviceType
}

// Context holds a live GPU bring-up: instance, the enumerated adapters,
// and the opened device and queue. Build one with Builder, or borrow a
// window's device with FromProvider.
type Context struct {
	label    string
	instance hal.Instance
	adapters []hal.ExposedAdapter
	selected int

	device hal.Device
	queue  hal.Queue

	// external marks device/queue as borrowed; Close leaves them alone.
	external bool
	closed   bool
}

// FromProvider wraps a device and queue owned by someone else, typically
// the windowing layer's GPU context provider. The provider must expose
// HalDevice() any and HalQueue() any returning hal types. The returned
// context never destroys the borrowed device.
func FromProvider(provider any) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrBadProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrBadProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrBadProvider)
	}
	return &Context{
		label:    "vgi/provider",
		device:   device,
		queue:    queue,
		selected: -1,
		external: true,
	}, nil
}

// Device returns the opened hal device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the device's queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// HalDevice implements the device-provider handshake used across the
// gogpu ecosystem.
func (c *Context) HalDevice() any { return c.device }

// HalQueue implements the device-provider handshake.
func (c *Context) HalQueue() any { return c.queue }

// Adapters lists the adapters enumerated at build time. Empty for
// borrowed contexts.
func (c *Context) Adapters() []AdapterInfo {
	infos := make([]AdapterInfo, 0, len(c.adapters))
	for i := range c.adapters {
		infos = append(infos, AdapterInfo{
			Index:      i,
			Name:       c.adapters[i].Info.Name,
			DeviceType: c.adapters[i].Info.DeviceType,
		})
	}
	return infos
}

// AdapterInfo describes the adapter the device was opened on.
func (c *Context) AdapterInfo() AdapterInfo {
	if c.selected < 0 || c.selected >= len(c.adapters) {
		return AdapterInfo{Index: -1, Name: "external"}
	}
	return AdapterInfo{
		Index:      c.selected,
		Name:       c.adapters[c.selected].Info.Name,
		DeviceType: c.adapters[c.selected].Info.DeviceType,
	}
}

// Close destroys the device and instance in reverse creation order.
// Borrowed devices are not destroyed. Close is idempotent.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.external {
		c.device = nil
		c.queue = nil
		return
	}
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}
	c.queue = nil
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
	cgi.Logger().Debug("vgi: context closed", "label", c.label)
}
