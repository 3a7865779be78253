package shape

import "github.com/go-gl/mathgl/mgl64"

// SimpleMesh owns generated vertex and index data. It is used to cache the
// unit templates that composite generators instance many times.
type SimpleMesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
}

// NewSimpleMesh allocates every stream for the given counts.
func NewSimpleMesh(vertexCount, indexCount int) *SimpleMesh {
	b := NewBuffers(vertexCount, indexCount, true, true)
	return &SimpleMesh{
		Positions: b.Positions,
		Normals:   b.Normals,
		UVs:       b.UVs,
		Indices:   b.Indices,
	}
}

// NewSphereMesh returns a unit sphere template.
func NewSphereMesh(segmentsX, segmentsY int) *SimpleMesh {
	m := NewSimpleMesh(SphereSize(segmentsX, segmentsY))
	GenerateSphere(segmentsX, segmentsY, mgl64.Ident4(), m.Buffers(), 0)
	return m
}

// NewCylinderMesh returns a unit open cylinder template.
func NewCylinderMesh(segmentsX, segmentsY int) *SimpleMesh {
	m := NewSimpleMesh(CylinderSize(segmentsX, segmentsY))
	GenerateCylinder(segmentsX, segmentsY, mgl64.Ident4(), m.Buffers(), 0)
	return m
}

func (m *SimpleMesh) VertexCount() int {
	return len(m.Positions)
}

func (m *SimpleMesh) IndexCount() int {
	return len(m.Indices)
}

// Buffers exposes the mesh storage as generator output.
func (m *SimpleMesh) Buffers() Buffers {
	return Buffers{
		Positions: m.Positions,
		Normals:   m.Normals,
		UVs:       m.UVs,
		Indices:   m.Indices,
	}
}
