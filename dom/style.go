package dom

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/kjk/flex"

	"github.com/prataprc/cgi"
)

// Style carries a node's authored layout and paint properties. Layout
// properties feed the flexbox solver; paint properties feed the style
// uniform buffer. All measurements are in pixels before scaling.
type Style struct {
	// Size is the authored node extent. Zero components mean "auto".
	Size Size

	// Flexbox properties, in the solver's vocabulary.
	Direction flex.FlexDirection
	Justify   flex.Justify
	Align     flex.Align
	Position  flex.PositionType
	Margin    float32 // all edges
	Padding   float32 // all edges
	Grow      float32
	Shrink    float32

	// Paint.
	FG cgi.RGBA
	BG cgi.RGBA
}

// DefaultStyle is what nodes start with: auto size, row direction,
// black foreground on a transparent background.
func DefaultStyle() Style {
	return Style{
		Direction: flex.FlexDirectionRow,
		Justify:   flex.JustifyFlexStart,
		Align:     flex.AlignFlexStart,
		Position:  flex.PositionTypeRelative,
		FG:        cgi.Black,
		BG:        cgi.Transparent,
	}
}

// SetSize sets the authored extent.
func (s *Style) SetSize(size Size) { s.Size = size }

// Transform2D derives the computed style for a given scale factor:
// lengths multiply by the scale, paint and flex enums pass through.
// The receiver is never mutated.
func (s Style) Transform2D(_ Location, scaleFactor float32) Style {
	out := s
	out.Size = Size{
		Width:  s.Size.Width * scaleFactor,
		Height: s.Size.Height * scaleFactor,
	}
	out.Margin = s.Margin * scaleFactor
	out.Padding = s.Padding * scaleFactor
	return out
}

// styleBindSize is the byte size of the style uniform: fg and bg as
// vec4<f32>.
const styleBindSize = 32

// BindContent serializes the paint properties for uniform upload.
func (s Style) BindContent() []byte {
	buf := make([]byte, styleBindSize)
	fr, fg, fb, fa := s.FG.Components32()
	br, bg, bb, ba := s.BG.Components32()
	for i, f := range []float32{fr, fg, fb, fa, br, bg, bb, ba} {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// StyleBindGroupLayoutEntry returns the bind group layout entry for the
// style uniform at the given binding.
func StyleBindGroupLayoutEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
}

// applyFlex copies the style onto a solver node. Zero sizes are left
// unset so the solver treats them as auto.
func (s Style) applyFlex(n *flex.Node) {
	if s.Size.Width > 0 {
		n.StyleSetWidth(s.Size.Width)
	}
	if s.Size.Height > 0 {
		n.StyleSetHeight(s.Size.Height)
	}
	n.StyleSetFlexDirection(s.Direction)
	n.StyleSetJustifyContent(s.Justify)
	n.StyleSetAlignItems(s.Align)
	n.StyleSetPositionType(s.Position)
	if s.Margin != 0 {
		n.StyleSetMargin(flex.EdgeAll, s.Margin)
	}
	if s.Padding != 0 {
		n.StyleSetPadding(flex.EdgeAll, s.Padding)
	}
	if s.Grow != 0 {
		n.StyleSetFlexGrow(s.Grow)
	}
	if s.Shrink != 0 {
		n.StyleSetFlexShrink(s.Shrink)
	}
}
