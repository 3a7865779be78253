package convex

import (
	"math"

	"github.com/akmonengine/collisionviz/geom"
	"github.com/akmonengine/collisionviz/shape"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// seedExtent is the half size of the quad each face starts from. Shapes
	// larger than this are cut off at the quad border.
	seedExtent = 200.0

	// WeldDistanceSq is the squared distance under which SmoothRenderBuffers
	// merges two corners into one vertex.
	WeldDistanceSq = 0.001
)

// Mesh is a polygon soup. Faces keep their own points; nothing is shared
// between polygons until the mesh is converted to render buffers.
type Mesh struct {
	Polygons []Polygon
}

// AddConvexPolygon appends the face lying in plane, clipped by every plane of
// planes selected by mask. The face starts as a seed quad centered on the
// point of plane closest to the origin, wound counter-clockwise around the
// plane normal.
func (m *Mesh) AddConvexPolygon(plane geom.Plane, planes []geom.Plane, mask uint32, flip bool) {
	t1, t2 := geom.ComputeBasis(plane.Normal)
	origin := plane.Point()

	xTable := [4]float64{-1, 1, 1, -1}
	yTable := [4]float64{-1, -1, 1, 1}

	poly := Polygon{Points: make([]mgl64.Vec3, 4, 8)}
	for i := range poly.Points {
		poly.Points[i] = origin.
			Add(t1.Mul(seedExtent * xTable[i])).
			Add(t2.Mul(seedExtent * yTable[i]))
	}

	forEachBit(mask, func(i int) {
		poly.Clip(planes[i], flip)
	})

	m.Polygons = append(m.Polygons, poly)
}

// TriangleCount returns the number of fan triangles over all faces.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, p := range m.Polygons {
		if len(p.Points) >= 3 {
			n += len(p.Points) - 2
		}
	}
	return n
}

// IsTriangleMesh reports whether every polygon is a triangle.
func (m *Mesh) IsTriangleMesh() bool {
	for _, p := range m.Polygons {
		if !p.IsTriangle() {
			return false
		}
	}
	return true
}

// RenderBuffers triangulates the mesh for flat shading: every triangle corner
// gets its own vertex carrying the normal of its polygon.
func (m *Mesh) RenderBuffers() shape.Buffers {
	corners := 3 * m.TriangleCount()
	out := shape.NewBuffers(corners, corners, true, false)

	n := 0
	for _, p := range m.Polygons {
		normal := p.Normal()
		p.fan(func(a, b, c mgl64.Vec3) {
			for _, v := range [3]mgl64.Vec3{a, b, c} {
				out.Positions[n] = v
				out.Normals[n] = normal
				out.Indices[n] = uint32(n)
				n++
			}
		})
	}

	return out
}

// SmoothRenderBuffers triangulates the mesh with shared vertices. Corners
// closer than WeldDistanceSq (squared) are merged into the first vertex
// emitted at that place. Vertex normals are the sum of the polygon normals
// weighted by polygon area, normalized.
func (m *Mesh) SmoothRenderBuffers() shape.Buffers {
	corners := 3 * m.TriangleCount()
	out := shape.Buffers{
		Positions: make([]mgl64.Vec3, 0, corners),
		Normals:   make([]mgl64.Vec3, 0, corners),
		Indices:   make([]uint32, 0, corners),
	}

	grid := newWeldGrid(math.Sqrt(WeldDistanceSq), corners)
	addVertex := func(p, weightedNormal mgl64.Vec3) uint32 {
		if i := grid.find(p, out.Positions); i >= 0 {
			out.Normals[i] = out.Normals[i].Add(weightedNormal)
			return uint32(i)
		}
		i := len(out.Positions)
		out.Positions = append(out.Positions, p)
		out.Normals = append(out.Normals, weightedNormal)
		grid.insert(i, p)
		return uint32(i)
	}

	for _, p := range m.Polygons {
		weighted := p.Normal().Mul(p.Area())
		p.fan(func(a, b, c mgl64.Vec3) {
			out.Indices = append(out.Indices,
				addVertex(a, weighted),
				addVertex(b, weighted),
				addVertex(c, weighted),
			)
		})
	}

	for i, n := range out.Normals {
		if l := n.Len(); l > 0 {
			out.Normals[i] = n.Mul(1.0 / l)
		}
	}

	return out
}

// TriangleList returns the fan triangles as a flat list of corners, three
// per triangle.
func (m *Mesh) TriangleList() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, 3*m.TriangleCount())
	for _, p := range m.Polygons {
		p.fan(func(a, b, c mgl64.Vec3) {
			out = append(out, a, b, c)
		})
	}
	return out
}

// Transform moves every point of the mesh by transform.
func (m *Mesh) Transform(transform mgl64.Mat4) {
	for i := range m.Polygons {
		points := m.Polygons[i].Points
		for j := range points {
			points[j] = mgl64.TransformCoordinate(points[j], transform)
		}
	}
}

// Merge appends the polygons of other. Points are shared with other.
func (m *Mesh) Merge(other Mesh) {
	m.Polygons = append(m.Polygons, other.Polygons...)
}

// forEachBit calls fn with the index of every set bit of mask, lowest first.
func forEachBit(mask uint32, fn func(i int)) {
	for i := 0; i < geom.MaxPlanes; i++ {
		if mask&(1<<i) != 0 {
			fn(i)
		}
	}
}
