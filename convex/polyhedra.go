package convex

import (
	"math"

	"github.com/akmonengine/collisionviz/geom"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// CapsuleSphereSubdivisions is the icosphere level of capsule end spheres.
	CapsuleSphereSubdivisions = 4
	// CapsuleConeSegments is the number of side quads of a capsule cone.
	CapsuleConeSegments = 32
)

// icosahedronTriangles lists the 20 faces of the icosahedron, outward wound.
var icosahedronTriangles = [20][3]int{
	{0, 7, 9}, {0, 9, 1}, {0, 1, 11}, {0, 11, 6}, {0, 6, 7},
	{1, 9, 5}, {9, 7, 8}, {7, 6, 2}, {6, 11, 10}, {11, 1, 4},
	{3, 5, 8}, {3, 8, 2}, {3, 2, 10}, {3, 10, 4}, {3, 4, 5},
	{8, 5, 9}, {2, 8, 7}, {10, 2, 6}, {4, 10, 11}, {5, 4, 1},
}

// GenerateTetrahedron returns a regular tetrahedron inscribed in a sphere of
// radius around the origin, apex on +Y.
func GenerateTetrahedron(radius float64) Mesh {
	var p [4]mgl64.Vec3
	ring := math.Sqrt(8.0/9.0) * radius
	for i := 0; i < 3; i++ {
		angle := float64(i) / 3.0 * 2 * math.Pi
		p[i] = mgl64.Vec3{ring * math.Cos(angle), -radius / 3.0, ring * math.Sin(angle)}
	}
	p[3] = mgl64.Vec3{0, radius, 0}

	return Mesh{Polygons: []Polygon{
		NewPolygon(p[0], p[1], p[2]),
		NewPolygon(p[3], p[1], p[0]),
		NewPolygon(p[3], p[2], p[1]),
		NewPolygon(p[3], p[0], p[2]),
	}}
}

// GenerateIcosahedron returns an icosahedron inscribed in a sphere of radius
// around the origin. Each subdivision splits every triangle in four; when
// subdivided, the points are projected back onto the sphere.
func GenerateIcosahedron(radius float64, subdivisions int) Mesh {
	goldenRatio := (1.0 + math.Sqrt(5.0)) * 0.5
	scale := radius / mgl64.Vec2{goldenRatio, 1}.Len()

	// three orthogonal golden rectangles
	var p [12]mgl64.Vec3
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			signA, signB := -1.0, 1.0
			if i&1 != 0 {
				signA = 1
			}
			if i&2 != 0 {
				signB = -1
			}
			point := mgl64.Vec3{signA, signB * goldenRatio, 0}
			p[i+4*j] = mgl64.Vec3{point[j%3], point[(j+1)%3], point[(j+2)%3]}.Mul(scale)
		}
	}

	mesh := Mesh{Polygons: make([]Polygon, 0, len(icosahedronTriangles))}
	for _, t := range icosahedronTriangles {
		mesh.Polygons = append(mesh.Polygons, NewPolygon(p[t[0]], p[t[1]], p[t[2]]))
	}

	if subdivisions <= 0 {
		return mesh
	}

	for ; subdivisions > 0; subdivisions-- {
		sub := make([]Polygon, 0, 4*len(mesh.Polygons))
		for _, tri := range mesh.Polygons {
			sub = tri.SubdivideTriangle(sub)
		}
		mesh.Polygons = sub
	}

	for _, tri := range mesh.Polygons {
		for k, point := range tri.Points {
			tri.Points[k] = point.Normalize().Mul(radius)
		}
	}

	return mesh
}

// GenerateCone returns the side of the frustum joining spheres a and b
// (x, y, z, radius), both grown by grow, as segments quads. When correct is
// set and the radii differ, each end ring is moved to where the cone touches
// its sphere tangentially. Otherwise the rings are the great circles
// perpendicular to the axis.
func GenerateCone(a, b mgl64.Vec4, segments int, grow float64, correct bool) Mesh {
	if a.W() < b.W() {
		a, b = b, a
	}

	aCenter, bCenter := a.Vec3(), b.Vec3()
	aRadius, bRadius := a.W()+grow, b.W()+grow

	axis := bCenter.Sub(aCenter).Normalize()
	b0, b1 := geom.ComputeBasis(axis)

	if correct && aRadius-bRadius > geom.RadiusEpsilon && bCenter.Sub(aCenter).Len() > aRadius-bRadius {
		focus := coneApex(aCenter, aRadius, bCenter, bRadius, axis, b0)
		aCenter, aRadius = tangentRing(aCenter, aRadius, focus)
		bCenter, bRadius = tangentRing(bCenter, bRadius, focus)
	}

	ringPoint := func(center mgl64.Vec3, radius, angle float64) mgl64.Vec3 {
		dir := b0.Mul(math.Cos(angle)).Add(b1.Mul(math.Sin(angle)))
		return center.Add(dir.Mul(radius))
	}

	mesh := Mesh{Polygons: make([]Polygon, 0, segments)}
	for i := 0; i < segments; i++ {
		angle1 := float64(i) / float64(segments) * 2 * math.Pi
		angle2 := float64(i+1) / float64(segments) * 2 * math.Pi

		mesh.Polygons = append(mesh.Polygons, NewPolygon(
			ringPoint(aCenter, aRadius, angle1),
			ringPoint(aCenter, aRadius, angle2),
			ringPoint(bCenter, bRadius, angle2),
			ringPoint(bCenter, bRadius, angle1),
		))
	}

	return mesh
}

// coneApex returns the point of the axis where the line through the two
// sphere silhouettes (offset along b0) meets it.
func coneApex(aCenter mgl64.Vec3, aRadius float64, bCenter mgl64.Vec3, bRadius float64, axis, b0 mgl64.Vec3) mgl64.Vec3 {
	pa := aCenter.Add(b0.Mul(aRadius))
	pb := bCenter.Add(b0.Mul(bRadius))
	dir := pb.Sub(pa)

	n := axis.Cross(dir)
	n2 := dir.Cross(n)
	return aCenter.Add(axis.Mul(pa.Sub(aCenter).Dot(n2) / axis.Dot(n2)))
}

// tangentRing returns the circle where the tangents from focus touch the
// sphere: the intersection of the sphere with the sphere of diameter
// [center, focus].
func tangentRing(center mgl64.Vec3, radius float64, focus mgl64.Vec3) (mgl64.Vec3, float64) {
	thalesCenter := focus.Add(center).Mul(0.5)
	thalesRadius := focus.Sub(center).Len() * 0.5
	return geom.IntersectSpheres(center, radius, thalesCenter, thalesRadius)
}

// GenerateCollisionCapsules returns the polygon version of a capsule set:
// one subdivided icosahedron per sphere and one tangent cone per index pair.
func GenerateCollisionCapsules(spheres []mgl64.Vec4, pairs []uint32, grow float64) Mesh {
	var mesh Mesh
	for _, s := range spheres {
		sphere := GenerateIcosahedron(s.W()+grow, CapsuleSphereSubdivisions)
		sphere.Transform(mgl64.Translate3D(s.X(), s.Y(), s.Z()))
		mesh.Merge(sphere)
	}

	for i := 0; i+1 < len(pairs); i += 2 {
		mesh.Merge(GenerateCone(spheres[pairs[i]], spheres[pairs[i+1]], CapsuleConeSegments, grow, true))
	}

	return mesh
}
