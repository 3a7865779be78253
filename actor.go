package collisionviz

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/collisionviz/capsule"
	"github.com/akmonengine/collisionviz/convex"
	"github.com/akmonengine/collisionviz/geom"
	"github.com/akmonengine/collisionviz/shape"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrOddPairs      = errors.New("capsule index count is odd")
	ErrSphereIndex   = errors.New("capsule references a missing sphere")
	ErrRadius        = errors.New("sphere radius is not positive")
	ErrTooManyPlanes = errors.New("too many planes")
	ErrPlaneMask     = errors.New("convex mask references a missing plane")
	ErrPlaneNormal   = errors.New("plane normal is not unit length")
)

// normalTolerance bounds | |n| - 1 | for plane normals.
const normalTolerance = 1e-6

// Convex selects the planes of one convex shape in Actor.Planes.
type Convex struct {
	Mask uint32
	// Flip keeps the outer side of every plane.
	Flip bool
}

// Actor is the set of collision primitives attached to one cloth: spheres
// (x, y, z, radius), capsules as sphere index pairs, and convex shapes over a
// shared plane array. Grow inflates every primitive by the same amount.
type Actor struct {
	Name     string
	Spheres  []mgl64.Vec4
	Pairs    []uint32
	Planes   []geom.Plane
	Convexes []Convex
	Grow     float64
	// Smooth welds convex corners and averages their normals.
	Smooth bool
}

// Validate checks the invariants the generators rely on. The generators
// themselves never check their input.
func (a *Actor) Validate() error {
	if len(a.Pairs)%2 != 0 {
		return fmt.Errorf("%w: %d entries", ErrOddPairs, len(a.Pairs))
	}
	for i, s := range a.Spheres {
		if s.W()+a.Grow <= 0 {
			return fmt.Errorf("%w: sphere %d has radius %g after growing by %g", ErrRadius, i, s.W(), a.Grow)
		}
	}
	for i, idx := range a.Pairs {
		if int(idx) >= len(a.Spheres) {
			return fmt.Errorf("%w: entry %d is %d, only %d spheres", ErrSphereIndex, i, idx, len(a.Spheres))
		}
	}
	if len(a.Planes) > geom.MaxPlanes {
		return fmt.Errorf("%w: %d, at most %d", ErrTooManyPlanes, len(a.Planes), geom.MaxPlanes)
	}
	for i, p := range a.Planes {
		if l := p.Normal.Len(); math.Abs(l-1) > normalTolerance {
			return fmt.Errorf("%w: plane %d has |n| = %g", ErrPlaneNormal, i, l)
		}
	}
	for i, c := range a.Convexes {
		if len(a.Planes) < geom.MaxPlanes && c.Mask>>uint(len(a.Planes)) != 0 {
			return fmt.Errorf("%w: convex %d mask %#x with %d planes", ErrPlaneMask, i, c.Mask, len(a.Planes))
		}
	}
	return nil
}

// convexBuffers generates the render buffers of every convex shape.
func (a *Actor) convexBuffers() []shape.Buffers {
	out := make([]shape.Buffers, len(a.Convexes))
	for i, c := range a.Convexes {
		mesh := convex.GenerateCollisionConvex(a.Planes, c.Mask, a.Grow, c.Flip)
		if a.Smooth {
			out[i] = mesh.SmoothRenderBuffers()
		} else {
			out[i] = mesh.RenderBuffers()
		}
	}
	return out
}

// Size returns the vertex and index counts of the actor's render mesh. Convex
// shapes are clipped to know their size.
func (a *Actor) Size(templates *capsule.Templates) (vertexCount, indexCount int) {
	vertexCount, indexCount = templates.Size(len(a.Spheres), len(a.Pairs))
	for _, b := range a.convexBuffers() {
		vertexCount += len(b.Positions)
		indexCount += len(b.Indices)
	}
	return
}

// submeshCount returns the number of spheres, capsules and convex shapes.
func (a *Actor) submeshCount() int {
	return len(a.Spheres) + len(a.Pairs)/2 + len(a.Convexes)
}
