package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphereSize returns the vertex and index counts of GenerateSphere.
//
// The sphere has a south pole, segmentsY-1 rings of segmentsX vertices and a
// north pole. Each pole is a fan of segmentsX triangles and each of the
// segmentsY-2 bands between rings holds 2*segmentsX triangles.
func SphereSize(segmentsX, segmentsY int) (vertexCount, indexCount int) {
	vertexCount = 1 + segmentsX*(segmentsY-1) + 1
	indexCount = segmentsX*3 + 6*segmentsX*(segmentsY-2) + segmentsX*3
	return
}

// GenerateSphere writes a unit sphere, mapped through transform, to out.
// indexOffset is added to every emitted index so the sphere can be placed
// anywhere in a larger vertex buffer. Requires segmentsX >= 3, segmentsY >= 2.
//
// Normals are the unit positions through the linear part of transform,
// without normalization. Triangles are counter-clockwise seen from outside.
func GenerateSphere(segmentsX, segmentsY int, transform mgl64.Mat4, out Buffers, indexOffset uint32) {
	vertexCount, indexCount := SphereSize(segmentsX, segmentsY)
	out.checkCapacity(vertexCount, indexCount)

	vw := vertexWriter{out: out, transform: transform}

	south := mgl64.Vec3{0, -1, 0}
	vw.put(south, south, mgl64.Vec2{0, 0})

	for y := 1; y < segmentsY; y++ {
		yf := float64(y) / float64(segmentsY)
		pitch := (yf - 0.5) * math.Pi
		for x := 0; x < segmentsX; x++ {
			xf := float64(x) / float64(segmentsX)
			yaw := xf * 2 * math.Pi

			pos := mgl64.Vec3{math.Cos(yaw) * math.Cos(pitch), math.Sin(pitch), math.Sin(yaw) * math.Cos(pitch)}
			vw.put(pos, pos, mgl64.Vec2{xf, yf})
		}
	}

	north := mgl64.Vec3{0, 1, 0}
	vw.put(north, north, mgl64.Vec2{0, 0})

	ringVertex := func(x, y int) int {
		return 1 + y*segmentsX + x%segmentsX
	}

	iw := indexWriter{out: out.Indices, offset: indexOffset}

	for x := 0; x < segmentsX; x++ {
		iw.triangle(0, ringVertex(x, 0), ringVertex(x+1, 0))
	}

	for y := 0; y < segmentsY-2; y++ {
		for x := 0; x < segmentsX; x++ {
			iw.triangle(ringVertex(x, y), ringVertex(x, y+1), ringVertex(x+1, y))
			iw.triangle(ringVertex(x+1, y), ringVertex(x, y+1), ringVertex(x+1, y+1))
		}
	}

	last := vw.n - 1
	for x := 0; x < segmentsX; x++ {
		iw.triangle(last, ringVertex(x+1, segmentsY-2), ringVertex(x, segmentsY-2))
	}
}
