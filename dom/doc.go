// Package dom implements a retained scene graph of drawable nodes.
//
// Nodes (circles, boxes) carry an authored Style and shape attributes.
// On every window resize the tree is laid out by a CSS flexbox solver,
// each node's BoxLayout is assigned from the solver output, and the
// computed style/attributes are rederived from the authored ones using
// the display scale factor. Redraw walks the tree, writing per-node
// uniform buffers and recording one small render pass per drawable.
//
// Coordinate spaces: layout runs in surface pixels; BoxLayout converts
// pixel points into normalized clip coordinates (ToNCC) or normalized
// device coordinates (ToNDC) using the box's aspect ratio, where the
// longest box side maps to 1.
package dom
