package dom

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// winAttrs: the root node has no shape attributes.
type winAttrs struct{}

func (a winAttrs) Transform2D(Location, float32) winAttrs { return a }

// Win is the scene-graph root. It owns the surface-sized box, runs the
// flexbox layout over its children on resize, and fans redraws out.
type Win struct {
	state    State[winAttrs]
	children []Node

	size  Size
	scale float32
}

// NewWin creates the root node over the given children.
func NewWin(children ...Node) *Win {
	return &Win{
		state:    NewState(winAttrs{}),
		children: children,
		scale:    1.0,
	}
}

// Append adds a child to the end of the child list. The change takes
// effect on the next Resize.
func (w *Win) Append(n Node) {
	w.children = append(w.children, n)
}

// Size returns the surface size of the last resize.
func (w *Win) Size() Size { return w.size }

// ScaleFactor returns the scale factor of the last relayout.
func (w *Win) ScaleFactor() float32 { return w.scale }

// Extent is the surface size.
func (w *Win) Extent() Size { return w.size }

// Children returns the root's children.
func (w *Win) Children() []Node { return w.children }

// Resize implements Node; the root only rederives its own computed
// values. Use Relayout to run the solver over the whole tree.
func (w *Win) Resize(offset Location, scaleFactor float32) {
	w.state.Resize(offset, scaleFactor)
}

// Relayout recomputes the whole tree for a new surface size and scale
// factor: computed styles and attributes are rederived first (the
// solver consumes scaled sizes), then the solver assigns every node's
// BoxLayout in absolute surface pixels.
func (w *Win) Relayout(size Size, scaleFactor float32) {
	if scaleFactor <= 0 {
		scaleFactor = 1.0
	}
	w.size = size
	w.scale = scaleFactor
	w.state.Resize(Location{}, scaleFactor)

	for _, child := range w.children {
		resizeTree(child, Location{}, scaleFactor)
	}
	computeLayout(w, size)

	// Second pass with real box origins, now that layout assigned them.
	for _, child := range w.children {
		resizeTree(child, child.nodeState().box.Origin(), scaleFactor)
	}
}

// resizeTree recursively rederives computed values.
func resizeTree(n Node, offset Location, scaleFactor float32) {
	n.Resize(offset, scaleFactor)
	for _, child := range n.Children() {
		resizeTree(child, child.nodeState().box.Origin(), scaleFactor)
	}
}

// Redraw walks the children and records their render passes. The target
// viewport defaults to the root viewport when unset.
func (w *Win) Redraw(ctx *Context, encoder hal.CommandEncoder, target *ColorTarget) error {
	if target.Viewport.Empty() {
		target.Viewport = RootViewport(w.size)
	}
	for i, child := range w.children {
		if err := child.Redraw(ctx, encoder, target); err != nil {
			return fmt.Errorf("dom: redraw child %d: %w", i, err)
		}
	}
	return nil
}

// Destroy releases GPU resources across the tree.
func (w *Win) Destroy(ctx *Context) {
	for _, child := range w.children {
		child.Destroy(ctx)
	}
}

func (w *Win) nodeState() *layoutState { return w.state.record() }
