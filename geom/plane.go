package geom

import (
	"github.com/akmonengine/collisionviz/internal/assert"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxPlanes is the number of plane slots addressable by a uint32 mask.
const MaxPlanes = 32

// Plane is a half-space defined by the equation: Normal · p + Distance = 0
// where Normal is the plane's unit normal and Distance the signed distance
// from the origin. A convex shape is the set of points with
// Normal · p + Distance <= 0 for all its planes; Inside uses the strict test.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// NewPlaneFromPointNormal normalizes n and returns the plane through p.
func NewPlaneFromPointNormal(p, n mgl64.Vec3) Plane {
	n = n.Normalize()
	return Plane{Normal: n, Distance: -p.Dot(n)}
}

// PlaneFromVec4 unpacks a (nx, ny, nz, d) plane.
func PlaneFromVec4(v mgl64.Vec4) Plane {
	return Plane{Normal: v.Vec3(), Distance: v.W()}
}

// Vec4 packs the plane as (nx, ny, nz, d).
func (p Plane) Vec4() mgl64.Vec4 {
	return p.Normal.Vec4(p.Distance)
}

// SignedDistance returns Normal · point + Distance.
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// Inside reports whether point lies strictly on the inner side of the plane.
func (p Plane) Inside(point mgl64.Vec3) bool {
	return p.SignedDistance(point) < 0
}

// Grow returns the plane pushed outward by amount (Distance -= amount).
func (p Plane) Grow(amount float64) Plane {
	p.Distance -= amount
	return p
}

// Point returns the point of the plane closest to the origin.
func (p Plane) Point() mgl64.Vec3 {
	return p.Normal.Mul(-p.Distance)
}

// IntersectLinePlane returns t such that a + (b-a)*t lies on the plane.
// The caller guarantees the line is not parallel to the plane. Endpoints on
// opposite sides always satisfy this, however short the segment.
func IntersectLinePlane(a, b mgl64.Vec3, plane Plane) float64 {
	aprj := plane.Normal.Dot(a)
	bprj := plane.Normal.Dot(b)

	if assert.Enabled {
		assert.That(bprj != aprj, "line %v-%v parallel to plane %v", a, b, plane)
	}

	return (-plane.Distance - aprj) / (bprj - aprj)
}
