package capsule

import (
	"sync"

	"github.com/akmonengine/collisionviz/shape"
)

const (
	// DefaultSphereSegmentsX and DefaultSphereSegmentsY set the resolution of
	// the cached sphere template.
	DefaultSphereSegmentsX = 32
	DefaultSphereSegmentsY = 16
	// DefaultCylinderSegmentsX sets the resolution of the cached cone template.
	DefaultCylinderSegmentsX = 32
)

// Templates is the pair of unit meshes instanced by Generate. Once built it
// is never written, so one value can serve concurrent generations.
type Templates struct {
	Sphere   *shape.SimpleMesh
	Cylinder *shape.SimpleMesh
}

// NewTemplates builds uncached templates at a custom resolution. The
// cylinder always has a single band: Generate scales its two end rings
// independently to form a cone.
func NewTemplates(sphereSegmentsX, sphereSegmentsY, cylinderSegmentsX int) *Templates {
	return &Templates{
		Sphere:   shape.NewSphereMesh(sphereSegmentsX, sphereSegmentsY),
		Cylinder: shape.NewCylinderMesh(cylinderSegmentsX, 1),
	}
}

var defaultTemplates = sync.OnceValue(func() *Templates {
	return NewTemplates(DefaultSphereSegmentsX, DefaultSphereSegmentsY, DefaultCylinderSegmentsX)
})

// DefaultTemplates returns the process-wide templates, building them on first
// use. Concurrent first calls are safe.
func DefaultTemplates() *Templates {
	return defaultTemplates()
}

// Size returns the vertex and index counts of one composite capsule mesh.
func (t *Templates) Size(sphereCount, pairCount int) (vertexCount, indexCount int) {
	return Size(sphereCount, pairCount, t.Sphere, t.Cylinder)
}
