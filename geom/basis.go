// Package geom holds the small vector helpers shared by the mesh generators:
// orthonormal bases, half-space planes, circle intersection and the rotation
// that aligns the local Y axis of a template mesh with a segment.
package geom

import (
	"math"

	"github.com/akmonengine/collisionviz/internal/assert"
	"github.com/go-gl/mathgl/mgl64"
)

// invSqrt3 is the threshold above which |a.x| is large enough to build the
// second basis vector from the XY plane without losing precision.
const invSqrt3 = 0.57735

// Up is the local axis of the sphere poles and of the cylinder shell.
var Up = mgl64.Vec3{0, 1, 0}

// ComputeBasis returns b and c such that {a, b, c} is a right-handed
// orthonormal basis. a must be a unit vector, it is not normalized here.
func ComputeBasis(a mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	if assert.Enabled {
		assert.That(a.Dot(a) > 1e-12, "ComputeBasis on zero vector")
	}

	var b mgl64.Vec3
	if math.Abs(a.X()) >= invSqrt3 {
		b = mgl64.Vec3{a.Y(), -a.X(), 0}
	} else {
		b = mgl64.Vec3{0, a.Z(), -a.Y()}
	}

	b = b.Mul(1.0 / b.Len())
	c := a.Cross(b)

	return b, c
}

// RotationFromUp returns the rotation taking Up onto the unit vector v.
//
// Nearly parallel vectors give the identity. Nearly opposite vectors have no
// unique half vector, so a half turn around an axis perpendicular to Up is
// used instead.
func RotationFromUp(v mgl64.Vec3) mgl64.Quat {
	const parallelEpsilon = 1e-4

	d := Up.Dot(v)
	if d > 1-parallelEpsilon {
		return mgl64.QuatIdent()
	}
	if d < -1+parallelEpsilon {
		orth, _ := ComputeBasis(Up)
		return mgl64.Quat{W: 0, V: orth}
	}

	half := Up.Add(v).Normalize()
	return mgl64.Quat{W: Up.Dot(half), V: Up.Cross(half)}
}
