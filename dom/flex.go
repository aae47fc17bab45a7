package dom

import "github.com/kjk/flex"

// computeLayout runs the flexbox solver over the tree rooted at root
// and assigns every node's BoxLayout in absolute surface pixels.
//
// The solver consumes computed (scale-adjusted) styles, so callers must
// derive them first by resizing the tree with the target scale factor.
// Nodes whose computed style leaves the size auto contribute their
// Extent instead.
func computeLayout(root Node, size Size) {
	cfg := flex.NewConfig()
	froot := buildFlexTree(root, cfg)
	froot.StyleSetWidth(size.Width)
	froot.StyleSetHeight(size.Height)

	flex.CalculateLayout(froot, size.Width, size.Height, flex.DirectionLTR)

	assignBoxes(root, Location{})
}

// buildFlexTree mirrors the node tree as solver nodes, remembering each
// handle in the node's layout state.
func buildFlexTree(n Node, cfg *flex.Config) *flex.Node {
	fn := flex.NewNodeWithConfig(cfg)
	st := n.nodeState()
	style := st.computedStyle
	if style.Size.Width <= 0 && style.Size.Height <= 0 {
		style.Size = n.Extent()
	}
	style.applyFlex(fn)
	st.flexNode = fn

	for i, child := range n.Children() {
		fn.InsertChild(buildFlexTree(child, cfg), i)
	}
	return fn
}

// assignBoxes reads the solver output back into each node. Solver
// locations are parent-relative; boxes accumulate them into absolute
// surface pixels so uniform contents (circle centers, box origins) can
// be compared against fragment coordinates directly.
func assignBoxes(n Node, parent Location) {
	st := n.nodeState()
	fn := st.flexNode
	if fn == nil {
		return
	}
	origin := Location{
		X: parent.X + fn.LayoutGetLeft(),
		Y: parent.Y + fn.LayoutGetTop(),
	}
	st.box = BoxLayout{
		X: origin.X,
		Y: origin.Y,
		W: fn.LayoutGetWidth(),
		H: fn.LayoutGetHeight(),
	}
	for _, child := range n.Children() {
		assignBoxes(child, origin)
	}
}
