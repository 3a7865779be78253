package convex

import (
	"math"

	"github.com/akmonengine/collisionviz/geom"
	"github.com/akmonengine/collisionviz/internal/assert"
	"github.com/go-gl/mathgl/mgl64"
)

// GenerateCollisionConvex returns one face per plane selected by mask, each
// clipped by all the other selected planes. grow pushes every selected plane
// outward by that amount on a private copy; the caller's planes are never
// written. flip keeps the outer side of every clip plane instead of the inner
// one.
//
// Faces clipped away entirely are kept as empty polygons so that face i
// always matches the i-th set bit of mask.
func GenerateCollisionConvex(planes []geom.Plane, mask uint32, grow float64, flip bool) Mesh {
	if assert.Enabled {
		assert.That(len(planes) >= geom.MaxPlanes || mask>>uint(len(planes)) == 0,
			"mask %#x addresses planes past %d", mask, len(planes))
	}

	if grow != 0 {
		grown := make([]geom.Plane, len(planes))
		copy(grown, planes)
		forEachBit(mask, func(i int) {
			grown[i] = grown[i].Grow(grow)
		})
		planes = grown
	}

	var mesh Mesh
	forEachBit(mask, func(i int) {
		mesh.AddConvexPolygon(planes[i], planes, mask^(1<<i), flip)
	})

	return mesh
}

// GenerateConvexPolyhedronPlanes appends to planes the tangent planes of a
// sphere of radius around center, arranged in segmentsY latitude bands of
// segmentsX planes each. The poles are left open. It returns the mask of the
// appended slots, offset by the number of planes already present, so several
// shapes can share one 32-slot plane array.
//
// planes may be nil; the mask is then computed as if the array were empty.
// Slots past 32 are dropped from the mask.
func GenerateConvexPolyhedronPlanes(segmentsX, segmentsY int, center mgl64.Vec3, radius float64, planes *[]geom.Plane) uint32 {
	offset := 0
	if planes != nil {
		offset = len(*planes)
		if cap(*planes)-offset < segmentsX*segmentsY {
			grown := make([]geom.Plane, offset, offset+segmentsX*segmentsY)
			copy(grown, *planes)
			*planes = grown
		}
	}

	if assert.Enabled {
		assert.That(offset+segmentsX*segmentsY <= geom.MaxPlanes,
			"%d planes do not fit a %d-bit mask", offset+segmentsX*segmentsY, geom.MaxPlanes)
	}

	bands := segmentsY + 1
	for i := 1; i < bands; i++ {
		angleY := float64(i)/float64(bands)*math.Pi + math.Pi/2
		for j := 0; j < segmentsX; j++ {
			angleX := float64(j) / float64(segmentsX) * 2 * math.Pi

			nx := mgl64.Vec3{math.Cos(angleX), 0, math.Sin(angleX)}
			n := nx.Mul(math.Cos(angleY)).Add(geom.Up.Mul(math.Sin(angleY)))
			p := n.Mul(radius).Add(center)

			if planes != nil {
				*planes = append(*planes, geom.NewPlaneFromPointNormal(p, n))
			}
		}
	}

	return slotMask(offset, segmentsX*segmentsY)
}

// slotMask returns the bits [offset, offset+count) truncated to 32 bits.
func slotMask(offset, count int) uint32 {
	// shifts of 64 or more give 0, so the subtraction saturates to all ones
	all := (uint64(1) << uint(offset+count)) - 1
	exclude := (uint64(1) << uint(offset)) - 1
	return uint32(all &^ exclude)
}
