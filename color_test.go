package cgi

import (
	"errors"
	"math"
	"testing"
)

func colorNear(a, b RGBA) bool {
	const eps = 1e-3
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}

func TestParseColorHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#000", RGBA{0, 0, 0, 1}},
		{"#fff", RGBA{1, 1, 1, 1}},
		{"#f00", RGBA{1, 0, 0, 1}},
		{"#f00f", RGBA{1, 0, 0, 1}},
		{"#0f08", RGBA{0, 1, 0, 136.0 / 255}},
		{"#FF0000", RGBA{1, 0, 0, 1}},
		{"#00FF00FF", RGBA{0, 1, 0, 1}},
		{"#80808080", RGBA{128.0 / 255, 128.0 / 255, 128.0 / 255, 128.0 / 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !colorNear(got, tt.want) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorNamed(t *testing.T) {
	got, err := ParseColor("red")
	if err != nil {
		t.Fatalf("ParseColor(red): %v", err)
	}
	if !colorNear(got, RGBA{1, 0, 0, 1}) {
		t.Errorf("ParseColor(red) = %+v", got)
	}

	// Named lookup is case-insensitive.
	if _, err := ParseColor("CornflowerBlue"); err != nil {
		t.Errorf("ParseColor(CornflowerBlue): %v", err)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "#12345", "#xyz", "nosuchcolor"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseColor(%q): want ErrBadColor, got %v", in, err)
		}
	}
}

func TestPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0, A: 0.5}
	got := c.Premultiply()
	want := RGBA{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if !colorNear(got, want) {
		t.Errorf("Premultiply = %+v, want %+v", got, want)
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := RGBA{0.5, 0.5, 0.5, 1}
	if !colorNear(got, want) {
		t.Errorf("Lerp = %+v, want %+v", got, want)
	}
}
