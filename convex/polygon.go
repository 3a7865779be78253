// Package convex builds polygon meshes of convex collision shapes.
//
// A convex shape is the intersection of up to 32 half-spaces, addressed by a
// uint32 mask over a plane slice. Each face is produced by seeding a large
// quad in its plane and clipping it against every other active plane. The
// package also provides the reference polyhedra (tetrahedron, icosphere,
// tangent cones) used to preview sphere and capsule shapes as polygons.
package convex

import (
	"github.com/akmonengine/collisionviz/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is a planar loop of points. The last point connects back to the
// first. A polygon with fewer than 3 points has been clipped away.
type Polygon struct {
	Points []mgl64.Vec3
}

func NewPolygon(points ...mgl64.Vec3) Polygon {
	return Polygon{Points: points}
}

func (p Polygon) IsTriangle() bool {
	return len(p.Points) == 3
}

// Empty reports whether the polygon was fully clipped away.
func (p Polygon) Empty() bool {
	return len(p.Points) < 3
}

// Clip keeps the part of the polygon on the inner side of plane, or on the
// outer side when flip is set. Edges crossing the plane get the exact
// intersection point inserted. Polygons with fewer than 3 points are left
// untouched.
func (p *Polygon) Clip(plane geom.Plane, flip bool) {
	if len(p.Points) < 3 {
		return
	}

	input := p.Points
	output := make([]mgl64.Vec3, 0, len(input)+1)

	s := input[len(input)-1]
	sKept := plane.Inside(s) != flip
	for _, e := range input {
		eKept := plane.Inside(e) != flip
		if eKept != sKept {
			t := geom.IntersectLinePlane(s, e, plane)
			output = append(output, geom.Lerp(s, e, t))
		}
		if eKept {
			output = append(output, e)
		}
		s, sKept = e, eKept
	}

	p.Points = output
}

// Triangulate appends the fan triangles (0, i-1, i) of the polygon to out.
func (p Polygon) Triangulate(out []Polygon) []Polygon {
	for i := 2; i < len(p.Points); i++ {
		out = append(out, NewPolygon(p.Points[0], p.Points[i-1], p.Points[i]))
	}
	return out
}

// Normal returns the unit normal of the polygon, following its winding. The
// fan cross products are summed, so larger triangles weigh more. Empty
// polygons give the zero vector.
func (p Polygon) Normal() mgl64.Vec3 {
	var normal mgl64.Vec3
	p.fan(func(a, b, c mgl64.Vec3) {
		normal = normal.Add(b.Sub(a).Cross(c.Sub(a)))
	})

	if l := normal.Len(); l > 0 {
		return normal.Mul(1.0 / l)
	}
	return normal
}

func (p Polygon) Area() float64 {
	doubleArea := 0.0
	p.fan(func(a, b, c mgl64.Vec3) {
		doubleArea += b.Sub(a).Cross(c.Sub(a)).Len()
	})
	return doubleArea * 0.5
}

// SubdivideTriangle appends the four triangles obtained by splitting each
// edge at its midpoint: one per corner, then the middle one. Polygons that
// are not triangles append nothing.
func (p Polygon) SubdivideTriangle(out []Polygon) []Polygon {
	if !p.IsTriangle() {
		return out
	}

	pts := p.Points
	for i := 0; i < 3; i++ {
		out = append(out, NewPolygon(
			pts[i],
			pts[(i+1)%3].Add(pts[i]).Mul(0.5),
			pts[(i+2)%3].Add(pts[i]).Mul(0.5),
		))
	}
	return append(out, NewPolygon(
		pts[0].Add(pts[1]).Mul(0.5),
		pts[1].Add(pts[2]).Mul(0.5),
		pts[2].Add(pts[0]).Mul(0.5),
	))
}

func (p Polygon) fan(fn func(a, b, c mgl64.Vec3)) {
	for i := 2; i < len(p.Points); i++ {
		fn(p.Points[0], p.Points[i-1], p.Points[i])
	}
}
