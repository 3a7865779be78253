package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CylinderSize returns the vertex and index counts of GenerateCylinder.
func CylinderSize(segmentsX, segmentsY int) (vertexCount, indexCount int) {
	vertexCount = segmentsX * (segmentsY + 1)
	indexCount = segmentsX * segmentsY * 6
	return
}

// GenerateCylinder writes an open tube of radius 1 spanning [-1, 1] on the
// local Y axis, mapped through transform. There are segmentsY+1 rings of
// segmentsX vertices, without caps.
//
// Normals are radial and carry no Y component. They are only exact when
// transform scales X and Z uniformly.
func GenerateCylinder(segmentsX, segmentsY int, transform mgl64.Mat4, out Buffers, indexOffset uint32) {
	vertexCount, indexCount := CylinderSize(segmentsX, segmentsY)
	out.checkCapacity(vertexCount, indexCount)

	vw := vertexWriter{out: out, transform: transform}

	for y := 0; y < segmentsY+1; y++ {
		yf := float64(y)/float64(segmentsY)*2.0 - 1.0
		for x := 0; x < segmentsX; x++ {
			xf := float64(x) / float64(segmentsX)
			yaw := xf * 2 * math.Pi

			radial := mgl64.Vec3{math.Cos(yaw), 0, math.Sin(yaw)}
			vw.put(mgl64.Vec3{radial.X(), yf, radial.Z()}, radial, mgl64.Vec2{xf, yf})
		}
	}

	ringVertex := func(x, y int) int {
		return y*segmentsX + x%segmentsX
	}

	iw := indexWriter{out: out.Indices, offset: indexOffset}
	for y := 0; y < segmentsY; y++ {
		for x := 0; x < segmentsX; x++ {
			iw.triangle(ringVertex(x, y), ringVertex(x, y+1), ringVertex(x+1, y))
			iw.triangle(ringVertex(x+1, y), ringVertex(x, y+1), ringVertex(x+1, y+1))
		}
	}
}
