package convex

import (
	"fmt"
	"math"
	"testing"

	"github.com/akmonengine/collisionviz/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// cubePlanes returns the six half-spaces of the axis-aligned cube of side
// 2*half centered on the origin: +X, -X, +Y, -Y, +Z, -Z.
func cubePlanes(half float64) []geom.Plane {
	axes := []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	planes := make([]geom.Plane, len(axes))
	for i, n := range axes {
		planes[i] = geom.NewPlaneFromPointNormal(n.Mul(half), n)
	}
	return planes
}

type pointKey [3]int64

func keyOf(p mgl64.Vec3) pointKey {
	return pointKey{
		int64(math.Round(p.X() * 1e6)),
		int64(math.Round(p.Y() * 1e6)),
		int64(math.Round(p.Z() * 1e6)),
	}
}

func TestUnitCubeClosure(t *testing.T) {
	planes := cubePlanes(0.5)
	mesh := GenerateCollisionConvex(planes, 0x3F, 0, false)

	if len(mesh.Polygons) != 6 {
		t.Fatalf("got %d faces, want 6", len(mesh.Polygons))
	}

	for i, face := range mesh.Polygons {
		if len(face.Points) != 4 {
			t.Fatalf("face %d has %d points, want a quad", i, len(face.Points))
		}
		n := planes[i].Normal
		for _, p := range face.Points {
			for k := 0; k < 3; k++ {
				if !floatEqual(math.Abs(p[k]), 0.5, 1e-9) {
					t.Errorf("face %d point %v is not a cube corner", i, p)
				}
			}
			// planar and axis aligned
			if !floatEqual(p.Dot(n), 0.5, 1e-9) {
				t.Errorf("face %d point %v off its plane", i, p)
			}
		}
		if !vec3Equal(face.Normal(), n, 1e-9) {
			t.Errorf("face %d normal = %v, want %v", i, face.Normal(), n)
		}
		if !floatEqual(face.Area(), 1, 1e-9) {
			t.Errorf("face %d area = %v, want 1", i, face.Area())
		}
	}

	// every directed edge is matched by its reverse in a neighbour face
	edges := make(map[[2]pointKey]int)
	for _, face := range mesh.Polygons {
		for k := range face.Points {
			a, b := keyOf(face.Points[k]), keyOf(face.Points[(k+1)%len(face.Points)])
			edges[[2]pointKey{a, b}]++
		}
	}
	if len(edges) != 24 {
		t.Errorf("got %d directed edges, want 24", len(edges))
	}
	for e, n := range edges {
		if n != 1 || edges[[2]pointKey{e[1], e[0]}] != 1 {
			t.Errorf("edge %v is not shared by exactly two faces", e)
		}
	}

	if got := mesh.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d, want 12", got)
	}
}

func TestConvexGrow(t *testing.T) {
	planes := cubePlanes(0.5)
	mesh := GenerateCollisionConvex(planes, 0x3F, 0.25, false)

	for i, face := range mesh.Polygons {
		for _, p := range face.Points {
			for k := 0; k < 3; k++ {
				if !floatEqual(math.Abs(p[k]), 0.75, 1e-9) {
					t.Errorf("face %d point %v not on the grown cube", i, p)
				}
			}
		}
	}

	for i, p := range planes {
		if p.Distance != -0.5 {
			t.Errorf("caller plane %d modified: %v", i, p)
		}
	}
}

func TestConvexFlip(t *testing.T) {
	planes := cubePlanes(0.5)[:4:4]
	// +X and +Y only
	mask := uint32(1<<0 | 1<<2)

	tests := []struct {
		name string
		flip bool
		keep func(y float64) bool
	}{
		{name: "inside", flip: false, keep: func(y float64) bool { return y <= 0.5+1e-9 }},
		{name: "flipped", flip: true, keep: func(y float64) bool { return y >= 0.5-1e-9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := GenerateCollisionConvex(planes, mask, 0, tt.flip)
			if len(mesh.Polygons) != 2 {
				t.Fatalf("got %d faces, want 2", len(mesh.Polygons))
			}

			face := mesh.Polygons[0]
			if face.Empty() {
				t.Fatal("+X face clipped away")
			}
			for _, p := range face.Points {
				if !floatEqual(p.X(), 0.5, 1e-9) || !tt.keep(p.Y()) {
					t.Errorf("+X face point %v on the wrong side", p)
				}
			}
		})
	}
}

func TestConvexFlipClosedShapeVanishes(t *testing.T) {
	mesh := GenerateCollisionConvex(cubePlanes(0.5), 0x3F, 0, true)
	for i, face := range mesh.Polygons {
		if !face.Empty() {
			t.Errorf("face %d kept %d points", i, len(face.Points))
		}
	}
	if mesh.TriangleCount() != 0 {
		t.Errorf("TriangleCount() = %d, want 0", mesh.TriangleCount())
	}
}

func TestConvexPolyhedronPlanes(t *testing.T) {
	center := mgl64.Vec3{1, 2, 3}
	radius := 2.0

	var planes []geom.Plane
	mask := GenerateConvexPolyhedronPlanes(4, 2, center, radius, &planes)
	if mask != 0xFF || len(planes) != 8 {
		t.Fatalf("first shape: mask %#x, %d planes", mask, len(planes))
	}

	for i, p := range planes {
		if !floatEqual(p.Normal.Len(), 1, 1e-12) {
			t.Errorf("plane %d normal not unit", i)
		}
		if !floatEqual(p.SignedDistance(center), -radius, 1e-12) {
			t.Errorf("plane %d at distance %v from center, want %v", i, p.SignedDistance(center), -radius)
		}
		wantY := 0.5
		if i >= 4 {
			wantY = -0.5
		}
		if !floatEqual(p.Normal.Y(), wantY, 1e-12) {
			t.Errorf("plane %d normal Y = %v, want %v", i, p.Normal.Y(), wantY)
		}
	}

	mask = GenerateConvexPolyhedronPlanes(4, 2, mgl64.Vec3{}, 1, &planes)
	if mask != 0xFF00 || len(planes) != 16 {
		t.Errorf("second shape: mask %#x, %d planes", mask, len(planes))
	}

	if got := GenerateConvexPolyhedronPlanes(4, 2, center, radius, nil); got != 0xFF {
		t.Errorf("mask without planes = %#x, want 0xff", got)
	}
}

func TestSlotMask(t *testing.T) {
	tests := []struct {
		offset, count int
		want          uint32
	}{
		{0, 0, 0},
		{0, 8, 0xFF},
		{8, 8, 0xFF00},
		{0, 32, 0xFFFFFFFF},
		{28, 4, 0xF0000000},
		{30, 4, 0xC0000000},
		{32, 4, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d+%d", tt.offset, tt.count), func(t *testing.T) {
			if got := slotMask(tt.offset, tt.count); got != tt.want {
				t.Errorf("slotMask(%d, %d) = %#x, want %#x", tt.offset, tt.count, got, tt.want)
			}
		})
	}
}

func TestConvexFromSpherePlanes(t *testing.T) {
	center := mgl64.Vec3{1, 2, 3}
	var planes []geom.Plane
	mask := GenerateConvexPolyhedronPlanes(8, 3, center, 2, &planes)

	mesh := GenerateCollisionConvex(planes, mask, 0, false)
	if len(mesh.Polygons) != 24 {
		t.Fatalf("got %d faces, want 24", len(mesh.Polygons))
	}

	for i, face := range mesh.Polygons {
		if face.Empty() {
			t.Errorf("face %d clipped away", i)
			continue
		}
		for _, p := range face.Points {
			if d := planes[i].SignedDistance(p); !floatEqual(d, 0, 1e-9) {
				t.Errorf("face %d point off its plane by %v", i, d)
			}
			for j, other := range planes {
				if d := other.SignedDistance(p); d > 1e-9 {
					t.Errorf("face %d point outside plane %d by %v", i, j, d)
				}
			}
		}
		if !vec3Equal(face.Normal(), planes[i].Normal, 1e-9) {
			t.Errorf("face %d wound against its plane", i)
		}
	}
}
