// Package shape generates the triangulated unit sphere and the open unit
// cylinder used as templates for collision visualization.
//
// Generators never allocate: the caller sizes the output with the matching
// *Size function, allocates Buffers and passes them in. Normals and UVs are
// optional, a nil slice skips them.
package shape

import (
	"github.com/akmonengine/collisionviz/internal/assert"
	"github.com/go-gl/mathgl/mgl64"
)

// Buffers is a caller-allocated destination for generated vertices and
// triangle indices. Positions and Indices are mandatory; Normals and UVs are
// written only when non-nil, and must then be as long as Positions.
type Buffers struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
}

// NewBuffers allocates buffers for vertexCount vertices and indexCount
// indices. withNormals and withUVs select the optional streams.
func NewBuffers(vertexCount, indexCount int, withNormals, withUVs bool) Buffers {
	b := Buffers{
		Positions: make([]mgl64.Vec3, vertexCount),
		Indices:   make([]uint32, indexCount),
	}
	if withNormals {
		b.Normals = make([]mgl64.Vec3, vertexCount)
	}
	if withUVs {
		b.UVs = make([]mgl64.Vec2, vertexCount)
	}
	return b
}

// Slice returns the buffers starting at vertex firstVertex and index
// firstIndex, so a generator can write a sub-shape into a shared buffer.
// Absent optional streams stay absent.
func (b Buffers) Slice(firstVertex, firstIndex int) Buffers {
	out := Buffers{
		Positions: b.Positions[firstVertex:],
		Indices:   b.Indices[firstIndex:],
	}
	if b.Normals != nil {
		out.Normals = b.Normals[firstVertex:]
	}
	if b.UVs != nil {
		out.UVs = b.UVs[firstVertex:]
	}
	return out
}

// checkCapacity asserts, in debug builds, that b can hold the given counts.
func (b Buffers) checkCapacity(vertexCount, indexCount int) {
	if !assert.Enabled {
		return
	}
	assert.That(len(b.Positions) >= vertexCount, "positions: have %d, need %d", len(b.Positions), vertexCount)
	assert.That(len(b.Indices) >= indexCount, "indices: have %d, need %d", len(b.Indices), indexCount)
	assert.That(b.Normals == nil || len(b.Normals) >= vertexCount, "normals: have %d, need %d", len(b.Normals), vertexCount)
	assert.That(b.UVs == nil || len(b.UVs) >= vertexCount, "uvs: have %d, need %d", len(b.UVs), vertexCount)
}

// vertexWriter appends vertices to Buffers, skipping absent streams.
type vertexWriter struct {
	out       Buffers
	transform mgl64.Mat4
	n         int
}

// put writes one vertex from its template position, normal and uv.
func (w *vertexWriter) put(pos, normal mgl64.Vec3, uv mgl64.Vec2) {
	w.out.Positions[w.n] = mgl64.TransformCoordinate(pos, w.transform)
	if w.out.Normals != nil {
		w.out.Normals[w.n] = mgl64.TransformNormal(normal, w.transform)
	}
	if w.out.UVs != nil {
		w.out.UVs[w.n] = uv
	}
	w.n++
}

// indexWriter appends offset triangle indices to a slice.
type indexWriter struct {
	out    []uint32
	offset uint32
	n      int
}

func (w *indexWriter) triangle(a, b, c int) {
	w.out[w.n] = uint32(a) + w.offset
	w.out[w.n+1] = uint32(b) + w.offset
	w.out[w.n+2] = uint32(c) + w.offset
	w.n += 3
}
