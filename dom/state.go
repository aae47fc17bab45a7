package dom

import "github.com/kjk/flex"

// Transform2D derives scaled, offset values from authored ones. Node
// attribute types implement it so a resize can recompute their computed
// form without touching what the user authored.
type Transform2D[T any] interface {
	Transform2D(offset Location, scaleFactor float32) T
}

// layoutState is the layout bookkeeping every node carries: authored
// and computed style, the solver handle, and the box assigned by the
// last layout pass.
type layoutState struct {
	style         Style
	computedStyle Style
	flexNode      *flex.Node
	box           BoxLayout
}

// State is the per-node record common to all drawable nodes: layout
// bookkeeping plus the node's authored and computed attributes.
type State[T Transform2D[T]] struct {
	layoutState
	attrs         T
	computedAttrs T
}

// NewState returns a state with default style and the computed values
// initialized to the authored ones.
func NewState[T Transform2D[T]](attrs T) State[T] {
	return State[T]{
		layoutState: layoutState{
			style:         DefaultStyle(),
			computedStyle: DefaultStyle(),
		},
		attrs:         attrs,
		computedAttrs: attrs,
	}
}

// Style returns the authored style for mutation.
func (s *State[T]) Style() *Style { return &s.style }

// ComputedStyle returns the style derived by the last resize.
func (s *State[T]) ComputedStyle() Style { return s.computedStyle }

// Attrs returns the authored attributes for mutation.
func (s *State[T]) Attrs() *T { return &s.attrs }

// ComputedAttrs returns the attributes derived by the last resize.
func (s *State[T]) ComputedAttrs() T { return s.computedAttrs }

// Box returns the rectangle assigned by the last layout pass.
func (s *State[T]) Box() BoxLayout { return s.box }

// Resize rederives the computed style and attributes from the authored
// ones. Authored values are never mutated, so repeated resizes with
// different scale factors do not compound.
func (s *State[T]) Resize(offset Location, scaleFactor float32) {
	s.computedStyle = s.style.Transform2D(offset, scaleFactor)
	s.computedAttrs = s.attrs.Transform2D(offset, scaleFactor)
}

// record exposes the embedded layout state to the package walkers.
func (s *State[T]) record() *layoutState { return &s.layoutState }
