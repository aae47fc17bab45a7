package cgi

import (
	"errors"
	"fmt"
	"testing"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		err  error
		want RenderAction
	}{
		{nil, RenderContinue},
		{ErrSurfaceLost, RenderReconfigure},
		{fmt.Errorf("frame: %w", ErrSurfaceLost), RenderReconfigure},
		{ErrSurfaceOutOfMemory, RenderStop},
		{fmt.Errorf("frame: %w", ErrSurfaceOutOfMemory), RenderStop},
		{errors.New("transient"), RenderContinue},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.err); got != tt.want {
			t.Errorf("ActionFor(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
