package vgi

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileShader compiles WGSL source to SPIR-V words. Compiling up front
// surfaces shader errors at node construction instead of deep inside the
// backend.
func CompileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("vgi: compile shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// NewShaderModule compiles WGSL and creates a hal shader module from the
// resulting SPIR-V.
func NewShaderModule(device hal.Device, label, wgsl string) (hal.ShaderModule, error) {
	words, err := CompileShader(wgsl)
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("vgi: create shader module %q: %w", label, err)
	}
	return module, nil
}

// PickFormat returns the first supported format from the preference
// list, falling back to the first supported format. The toolkit prefers
// RGBA8/BGRA8 color targets.
func PickFormat(supported []gputypes.TextureFormat, preferred ...gputypes.TextureFormat) (gputypes.TextureFormat, error) {
	if len(supported) == 0 {
		var zero gputypes.TextureFormat
		return zero, fmt.Errorf("vgi: no supported texture formats")
	}
	if len(preferred) == 0 {
		preferred = []gputypes.TextureFormat{
			gputypes.TextureFormatRGBA8Unorm,
			gputypes.TextureFormatBGRA8Unorm,
		}
	}
	for _, want := range preferred {
		for _, got := range supported {
			if got == want {
				return got, nil
			}
		}
	}
	return supported[0], nil
}
