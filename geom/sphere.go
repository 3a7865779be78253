package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RadiusEpsilon is the radius difference below which two spheres are joined
// by a plain cylinder between their centers, without tangent correction.
const RadiusEpsilon = 1e-5

// IntersectSpheres intersects two spheres and returns the center and radius
// of their intersection circle. The circle lies in the plane perpendicular to
// the line joining both centers.
//
// Concentric spheres, or spheres that do not touch, give NaN.
func IntersectSpheres(aCenter mgl64.Vec3, aRadius float64, bCenter mgl64.Vec3, bRadius float64) (mgl64.Vec3, float64) {
	d := aCenter.Sub(bCenter).Len()
	a := (aRadius*aRadius - bRadius*bRadius + d*d) / (2.0 * d)
	h := math.Sqrt(aRadius*aRadius - a*a)

	center := aCenter.Add(bCenter.Sub(aCenter).Mul(a / d))
	return center, h
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}
