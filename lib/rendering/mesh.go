package rendering

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	f32 = 4
	u32 = 4
)

var QuadVertices = []mgl32.Vec3{
	{-0.5, -0.5, 0}, // left
	{0.5, -0.5, 0},  // right
	{0.5, 0.5, 0},   // top
	{-0.5, 0.5, 0},  // top left
}

var QuadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// Quad owns the GL objects of the static quad.
type Quad struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// flatten lays vertices out as consecutive x, y, z floats.
func flatten(vertices []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// NewQuad uploads QuadVertices and QuadIndices and records the layout in a VAO.
func NewQuad() *Quad {
	q := &Quad{IndexCount: int32(len(QuadIndices))}
	vertices := flatten(QuadVertices)

	gl.GenVertexArrays(1, &q.VAO)
	gl.GenBuffers(1, &q.VBO)
	gl.GenBuffers(1, &q.EBO)

	gl.BindVertexArray(q.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, q.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*f32, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(QuadIndices)*u32, gl.Ptr(QuadIndices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*f32, 0)
	gl.EnableVertexAttribArray(0)

	// the attribute already captured the VBO; the EBO binding must stay in the VAO
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return q
}

func (q *Quad) Draw() {
	gl.BindVertexArray(q.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, q.IndexCount, gl.UNSIGNED_INT, 0)
}

func (q *Quad) Delete() {
	gl.DeleteVertexArrays(1, &q.VAO)
	gl.DeleteBuffers(1, &q.VBO)
	gl.DeleteBuffers(1, &q.EBO)
	q.VAO, q.VBO, q.EBO = 0, 0, 0
}
