package vgi

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestSelectIndexExplicit(t *testing.T) {
	types := []gputypes.DeviceType{
		gputypes.DeviceTypeIntegratedGPU,
		gputypes.DeviceTypeDiscreteGPU,
	}
	got, err := selectIndex(types, 1, nil)
	if err != nil || got != 1 {
		t.Errorf("explicit index: got %d, err %v", got, err)
	}

	if _, err := selectIndex(types, 5, nil); !errors.Is(err, ErrBadAdapterIndex) {
		t.Errorf("out-of-range index: want ErrBadAdapterIndex, got %v", err)
	}
}

func TestSelectIndexPreference(t *testing.T) {
	types := []gputypes.DeviceType{
		gputypes.DeviceTypeIntegratedGPU,
		gputypes.DeviceTypeDiscreteGPU,
	}
	pref := []gputypes.DeviceType{
		gputypes.DeviceTypeDiscreteGPU,
		gputypes.DeviceTypeIntegratedGPU,
	}
	got, err := selectIndex(types, -1, pref)
	if err != nil || got != 1 {
		t.Errorf("preference should pick the discrete GPU at 1, got %d err %v", got, err)
	}

	// Preference order matters: integrated first picks index 0.
	got, _ = selectIndex(types, -1, []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU})
	if got != 0 {
		t.Errorf("integrated-first preference picked %d", got)
	}
}

func TestSelectIndexFallback(t *testing.T) {
	types := []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU}
	pref := []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU}
	got, err := selectIndex(types, -1, pref)
	if err != nil || got != 0 {
		t.Errorf("no preferred match should fall back to 0, got %d err %v", got, err)
	}
}

func TestPickFormat(t *testing.T) {
	supported := []gputypes.TextureFormat{
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatRGBA8Unorm,
	}

	// Default preference is RGBA8 first.
	got, err := PickFormat(supported)
	if err != nil || got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("default preference picked %v, err %v", got, err)
	}

	got, err = PickFormat(supported, gputypes.TextureFormatBGRA8Unorm)
	if err != nil || got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("explicit preference picked %v, err %v", got, err)
	}

	// No preferred match falls back to the first supported format.
	got, err = PickFormat(supported, gputypes.TextureFormatR8Unorm)
	if err != nil || got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("fallback picked %v, err %v", got, err)
	}

	if _, err := PickFormat(nil); err == nil {
		t.Error("empty supported list should error")
	}
}

func TestBuilderOptions(t *testing.T) {
	b := NewBuilder().
		WithBackend(gputypes.BackendVulkan).
		WithAdapter(2).
		WithDeviceTypePreference(gputypes.DeviceTypeDiscreteGPU).
		WithLabel("test")

	if b.backend != gputypes.BackendVulkan {
		t.Errorf("backend = %v", b.backend)
	}
	if b.adapterIndex != 2 {
		t.Errorf("adapter index = %d", b.adapterIndex)
	}
	if len(b.preference) != 1 || b.preference[0] != gputypes.DeviceTypeDiscreteGPU {
		t.Errorf("preference = %v", b.preference)
	}
	if b.label != "test" {
		t.Errorf("label = %q", b.label)
	}
}

func TestFromProviderRejectsBadProvider(t *testing.T) {
	if _, err := FromProvider(struct{}{}); !errors.Is(err, ErrBadProvider) {
		t.Errorf("want ErrBadProvider, got %v", err)
	}
	if _, err := FromProvider(nil); !errors.Is(err, ErrBadProvider) {
		t.Errorf("nil provider: want ErrBadProvider, got %v", err)
	}
}
