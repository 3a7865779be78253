// Package capsule composes cached sphere and cylinder templates into the
// render mesh of a set of collision spheres and the capsules joining them.
//
// Spheres are packed as (x, y, z, radius). Capsules are a flat array of
// sphere index pairs, consumed two entries at a time. When the two radii of a
// capsule differ, the joining cone is moved and resized so that its surface
// meets both spheres tangentially.
package capsule

import (
	"github.com/akmonengine/collisionviz/geom"
	"github.com/akmonengine/collisionviz/internal/assert"
	"github.com/akmonengine/collisionviz/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Size returns the vertex and index counts needed by Generate for
// sphereCount spheres and pairCount capsule index entries.
func Size(sphereCount, pairCount int, sphere, cylinder *shape.SimpleMesh) (vertexCount, indexCount int) {
	segmentCount := pairCount / 2
	vertexCount = sphere.VertexCount()*sphereCount + cylinder.VertexCount()*segmentCount
	indexCount = sphere.IndexCount()*sphereCount + cylinder.IndexCount()*segmentCount
	return
}

// Cone is the frustum joining the two spheres of a capsule: a ring of
// RadiusA around A and a ring of RadiusB around B. A always belongs to the
// larger sphere.
type Cone struct {
	A, B             mgl64.Vec3
	RadiusA, RadiusB float64
}

// NewCone returns the cone joining spheres a and b, both grown by grow.
//
// For unequal radii the rings are placed where the common external tangent
// touches each sphere: the tangent point is found by intersecting the circle
// of radius rA-rB around A with the circle whose diameter is AB. Nested
// spheres have no external tangent and keep their uncorrected rings.
func NewCone(a, b mgl64.Vec4, grow float64) Cone {
	cone := Cone{
		A:       a.Vec3(),
		B:       b.Vec3(),
		RadiusA: a.W() + grow,
		RadiusB: b.W() + grow,
	}
	if cone.RadiusA < cone.RadiusB {
		cone.A, cone.B = cone.B, cone.A
		cone.RadiusA, cone.RadiusB = cone.RadiusB, cone.RadiusA
	}

	cRadius := cone.RadiusA - cone.RadiusB
	if cRadius <= geom.RadiusEpsilon {
		return cone
	}

	length := cone.B.Sub(cone.A).Len()
	if length <= cRadius {
		return cone
	}

	axis := cone.B.Sub(cone.A).Mul(1.0 / length)
	t1, _ := geom.ComputeBasis(axis)

	// circle around the segment midpoint through A and B
	dCenter := cone.A.Add(cone.B).Mul(0.5)
	dRadius := length * 0.5

	iCenter, iRadius := geom.IntersectSpheres(dCenter, dRadius, cone.A, cRadius)
	iPoint := iCenter.Add(t1.Mul(iRadius))
	offset := iPoint.Sub(cone.A).Normalize()

	aPoint := cone.A.Add(offset.Mul(cone.RadiusA))
	bPoint := cone.B.Add(offset.Mul(cone.RadiusB))

	start := cone.A
	cone.A = axis.Mul(aPoint.Sub(start).Dot(axis)).Add(start)
	cone.RadiusA = aPoint.Sub(cone.A).Len()
	cone.B = axis.Mul(bPoint.Sub(cone.A).Dot(axis)).Add(cone.A)
	cone.RadiusB = bPoint.Sub(cone.B).Len()

	return cone
}

// Transforms returns the matrices mapping the unit cylinder template onto the
// cone: the first one for the ring at A, the second for the ring at B. Both
// share the translation to A and the orientation, only the radial scale
// differs.
func (c Cone) Transforms() (mgl64.Mat4, mgl64.Mat4) {
	direction := c.B.Sub(c.A)
	length := direction.Len()

	rotation := mgl64.QuatIdent()
	if length > 0 {
		rotation = geom.RotationFromUp(direction.Mul(1.0 / length))
	}

	// the template spans [-1, 1]; lift it to [0, 2] so it starts at A
	anchor := mgl64.Translate3D(c.A.X(), c.A.Y(), c.A.Z()).Mul4(rotation.Mat4())
	lift := mgl64.Translate3D(0, 1, 0)

	scaleA := mgl64.Scale3D(c.RadiusA, length/2.0, c.RadiusA)
	scaleB := mgl64.Scale3D(c.RadiusB, length/2.0, c.RadiusB)

	return anchor.Mul4(scaleA).Mul4(lift), anchor.Mul4(scaleB).Mul4(lift)
}

// Generate writes one sphere mesh per sphere, then one cone per capsule, to
// out. pairs holds sphere indices two by two; grow is added to every radius.
// out must be sized with Size. indexOffset is added to every emitted index.
//
// Normals are the template normals through each instance transform,
// renormalized.
func Generate(spheres []mgl64.Vec4, pairs []uint32, grow float64, sphere, cylinder *shape.SimpleMesh, out shape.Buffers, indexOffset uint32) {
	if assert.Enabled {
		vertexCount, indexCount := Size(len(spheres), len(pairs), sphere, cylinder)
		assert.That(len(out.Positions) >= vertexCount && len(out.Indices) >= indexCount,
			"capsule buffers %d/%d, need %d/%d", len(out.Positions), len(out.Indices), vertexCount, indexCount)
		assert.That(len(pairs)%2 == 0, "odd capsule index count %d", len(pairs))
	}

	b := builder{out: out, indexOffset: indexOffset}

	for _, s := range spheres {
		r := s.W() + grow
		transform := mgl64.Translate3D(s.X(), s.Y(), s.Z()).Mul4(mgl64.Scale3D(r, r, r))

		base := b.nextVertex
		b.vertices(sphere, 0, sphere.VertexCount(), transform)
		b.indices(sphere, base)
	}

	for i := 0; i+1 < len(pairs); i += 2 {
		cone := NewCone(spheres[pairs[i]], spheres[pairs[i+1]], grow)
		transformA, transformB := cone.Transforms()

		base := b.nextVertex
		firstRing := cylinder.VertexCount() / 2
		b.vertices(cylinder, 0, firstRing, transformA)
		b.vertices(cylinder, firstRing, cylinder.VertexCount(), transformB)
		b.indices(cylinder, base)
	}
}

// SubmeshOffsets writes, for each sphere then each capsule, the position of
// its first index in the buffer filled by Generate. out must hold
// sphereCount + pairCount/2 entries.
func SubmeshOffsets(sphereCount, pairCount int, sphere, cylinder *shape.SimpleMesh, out []uint32) {
	next := uint32(0)
	n := 0
	for i := 0; i < sphereCount; i++ {
		out[n] = next
		n++
		next += uint32(sphere.IndexCount())
	}
	for i := 0; i+1 < pairCount; i += 2 {
		out[n] = next
		n++
		next += uint32(cylinder.IndexCount())
	}
}

// builder tracks the write position while instancing templates.
type builder struct {
	out         shape.Buffers
	indexOffset uint32
	nextVertex  int
	nextIndex   int
}

// vertices instances template vertices [from, to) through transform.
func (b *builder) vertices(template *shape.SimpleMesh, from, to int, transform mgl64.Mat4) {
	for vi := from; vi < to; vi++ {
		b.out.Positions[b.nextVertex] = mgl64.TransformCoordinate(template.Positions[vi], transform)
		if b.out.Normals != nil {
			b.out.Normals[b.nextVertex] = mgl64.TransformNormal(template.Normals[vi], transform).Normalize()
		}
		if b.out.UVs != nil {
			b.out.UVs[b.nextVertex] = template.UVs[vi]
		}
		b.nextVertex++
	}
}

// indices copies the template triangles, remapped to start at base.
func (b *builder) indices(template *shape.SimpleMesh, base int) {
	for _, idx := range template.Indices {
		b.out.Indices[b.nextIndex] = idx + uint32(base) + b.indexOffset
		b.nextIndex++
	}
}
