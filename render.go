package cgi

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// Submit runs record against a fresh command encoder on device, submits
// the encoded commands to queue and blocks until the GPU signals the
// fence. When record fails, the encoding is discarded and nothing is
// submitted.
func Submit(device hal.Device, queue hal.Queue, label string, record func(hal.CommandEncoder) error) error {
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("cgi: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("cgi: begin encoding: %w", err)
	}
	if err := record(encoder); err != nil {
		encoder.DiscardEncoding()
		return err
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("cgi: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("cgi: create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("cgi: submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, submitFenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("cgi: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// submitFenceTimeout bounds how long Submit waits for the GPU.
const submitFenceTimeout = 5 * time.Second
