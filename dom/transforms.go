package dom

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// Matrix4 is a 4x4 float32 matrix in column-major order, matching the
// uniform layout of mat4x4<f32>.
type Matrix4 [16]float32

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Matrix4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scaling matrix.
func Scale(x, y, z float32) Matrix4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateZ returns a rotation around the Z axis by rad radians.
func RotateZ(rad float32) Matrix4 {
	s, c := math32.Sin(rad), math32.Cos(rad)
	m := Identity()
	m[0], m[4] = c, -s
	m[1], m[5] = s, c
	return m
}

// Ortho returns an orthographic projection mapping the given pixel
// bounds onto clip space.
func Ortho(left, right, bottom, top, near, far float32) Matrix4 {
	m := Identity()
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	return m
}

// transformBindSize is the byte size of the transform uniform: one
// mat4x4<f32>.
const transformBindSize = 64

// Transforms is the model-view matrix stack shared by a redraw pass.
// The product of the stack, top applied last, is the matrix nodes
// multiply their quad vertices with.
type Transforms struct {
	stack []Matrix4
}

// NewTransforms returns a stack holding only the identity matrix.
func NewTransforms() *Transforms {
	return &Transforms{stack: []Matrix4{Identity()}}
}

// Push appends a matrix to the stack.
func (t *Transforms) Push(m Matrix4) {
	t.stack = append(t.stack, m)
}

// Pop removes the top matrix. The identity base is never popped.
func (t *Transforms) Pop() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Model folds the stack into a single matrix.
func (t *Transforms) Model() Matrix4 {
	m := t.stack[0]
	for _, n := range t.stack[1:] {
		m = m.Mul(n)
	}
	return m
}

// BindContent serializes the folded matrix for uniform upload.
func (t *Transforms) BindContent() []byte {
	m := t.Model()
	buf := make([]byte, transformBindSize)
	for i, f := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// TransformBindGroupLayoutEntry returns the bind group layout entry for
// the transform uniform at the given binding.
func TransformBindGroupLayoutEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
}
