package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestComputeBasis(t *testing.T) {
	tests := []struct {
		name string
		a    mgl64.Vec3
	}{
		{name: "x axis", a: mgl64.Vec3{1, 0, 0}},
		{name: "y axis", a: mgl64.Vec3{0, 1, 0}},
		{name: "z axis", a: mgl64.Vec3{0, 0, 1}},
		{name: "negative x", a: mgl64.Vec3{-1, 0, 0}},
		{name: "diagonal", a: mgl64.Vec3{1, 1, 1}.Normalize()},
		{name: "threshold branch", a: mgl64.Vec3{0.57735, 0.8, 0.1}.Normalize()},
		{name: "mostly z", a: mgl64.Vec3{0.1, -0.2, 0.97}.Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := ComputeBasis(tt.a)

			if !floatEqual(b.Len(), 1, 1e-9) || !floatEqual(c.Len(), 1, 1e-9) {
				t.Fatalf("basis not unit: |b|=%v |c|=%v", b.Len(), c.Len())
			}
			if !floatEqual(tt.a.Dot(b), 0, 1e-9) || !floatEqual(tt.a.Dot(c), 0, 1e-9) || !floatEqual(b.Dot(c), 0, 1e-9) {
				t.Errorf("basis not orthogonal: a=%v b=%v c=%v", tt.a, b, c)
			}
			// right-handed: a × b == c
			if !vec3Equal(tt.a.Cross(b), c, 1e-9) {
				t.Errorf("basis not right-handed: a×b=%v, c=%v", tt.a.Cross(b), c)
			}
		})
	}
}

func TestComputeBasisBranch(t *testing.T) {
	b, _ := ComputeBasis(mgl64.Vec3{1, 0, 0})
	if !vec3Equal(b, mgl64.Vec3{0, -1, 0}, 1e-12) {
		t.Errorf("x branch b = %v, want (0,-1,0)", b)
	}

	b, _ = ComputeBasis(mgl64.Vec3{0, 1, 0})
	if !vec3Equal(b, mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Errorf("yz branch b = %v, want (0,0,-1)", b)
	}
}

func TestNewPlaneFromPointNormal(t *testing.T) {
	plane := NewPlaneFromPointNormal(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 5, 0})

	if !vec3Equal(plane.Normal, mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("Normal = %v, want (0,1,0)", plane.Normal)
	}
	if !floatEqual(plane.Distance, -2, 1e-12) {
		t.Errorf("Distance = %v, want -2", plane.Distance)
	}
	if !plane.Inside(mgl64.Vec3{0, 0, 0}) {
		t.Error("origin should be inside the plane y <= 2")
	}
	if plane.Inside(mgl64.Vec3{0, 3, 0}) {
		t.Error("(0,3,0) should be outside the plane y <= 2")
	}
	if plane.Inside(mgl64.Vec3{4, 2, 1}) {
		t.Error("points on the plane are not strictly inside")
	}
	if !vec3Equal(plane.Point(), mgl64.Vec3{0, 2, 0}, 1e-12) {
		t.Errorf("Point() = %v, want (0,2,0)", plane.Point())
	}
}

func TestPlaneVec4RoundTrip(t *testing.T) {
	plane := Plane{Normal: mgl64.Vec3{0, 0, -1}, Distance: 3}
	if got := PlaneFromVec4(plane.Vec4()); got != plane {
		t.Errorf("PlaneFromVec4(Vec4()) = %v, want %v", got, plane)
	}
}

func TestPlaneGrow(t *testing.T) {
	plane := Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: -0.5}
	grown := plane.Grow(0.25)

	if !floatEqual(grown.Distance, -0.75, 1e-12) {
		t.Errorf("grown Distance = %v, want -0.75", grown.Distance)
	}
	if plane.Distance != -0.5 {
		t.Error("Grow must not modify the receiver")
	}
	if !grown.Inside(mgl64.Vec3{0.6, 0, 0}) {
		t.Error("grown plane should contain x = 0.6")
	}
}

func TestIntersectLinePlane(t *testing.T) {
	plane := Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: -1}

	tests := []struct {
		name string
		a, b mgl64.Vec3
		want float64
	}{
		{name: "midpoint", a: mgl64.Vec3{0, 0, 0}, b: mgl64.Vec3{0, 2, 0}, want: 0.5},
		{name: "at start", a: mgl64.Vec3{3, 1, 0}, b: mgl64.Vec3{3, 5, 0}, want: 0},
		{name: "at end", a: mgl64.Vec3{0, -3, 0}, b: mgl64.Vec3{1, 1, 1}, want: 1},
		{name: "beyond segment", a: mgl64.Vec3{0, 2, 0}, b: mgl64.Vec3{0, 3, 0}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntersectLinePlane(tt.a, tt.b, plane)
			if !floatEqual(got, tt.want, 1e-12) {
				t.Fatalf("IntersectLinePlane() = %v, want %v", got, tt.want)
			}
			p := Lerp(tt.a, tt.b, got)
			if !floatEqual(plane.SignedDistance(p), 0, 1e-9) {
				t.Errorf("lerp point %v not on plane", p)
			}
		})
	}
}

// Clip hands IntersectLinePlane any edge whose endpoints straddle the plane,
// including edges far shorter than the scene scale.
func TestIntersectLinePlaneShortEdge(t *testing.T) {
	plane := Plane{Normal: mgl64.Vec3{1, 0, 0}, Distance: -0.5}
	a := mgl64.Vec3{0.5 + 1e-13, 4.828, 3}
	b := mgl64.Vec3{0.5 - 1e-13, 4.828, 3}

	if plane.Inside(a) || !plane.Inside(b) {
		t.Fatal("endpoints must straddle the plane")
	}

	got := IntersectLinePlane(a, b, plane)
	if got < 0 || got > 1 {
		t.Fatalf("IntersectLinePlane() = %v, want t in [0, 1]", got)
	}
	if !floatEqual(got, 0.5, 1e-2) {
		t.Errorf("IntersectLinePlane() = %v, want about 0.5", got)
	}
	if p := Lerp(a, b, got); !floatEqual(plane.SignedDistance(p), 0, 1e-15) {
		t.Errorf("lerp point %v not on plane", p)
	}
}

func TestIntersectSpheres(t *testing.T) {
	// two unit spheres one unit apart meet on a circle of radius sqrt(3)/2
	center, radius := IntersectSpheres(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{1, 0, 0}, 1)

	if !vec3Equal(center, mgl64.Vec3{0.5, 0, 0}, 1e-12) {
		t.Errorf("center = %v, want (0.5,0,0)", center)
	}
	if !floatEqual(radius, math.Sqrt(3)/2, 1e-12) {
		t.Errorf("radius = %v, want %v", radius, math.Sqrt(3)/2)
	}

	// Thales: the circle on the diameter AB meets the circle around A with
	// radius r on points where the tangent from B touches.
	center, radius = IntersectSpheres(mgl64.Vec3{0, 0, 2.5}, 2.5, mgl64.Vec3{0, 0, 0}, 2)
	point := center.Add(mgl64.Vec3{radius, 0, 0})
	if !floatEqual(point.Len(), 2, 1e-9) {
		t.Errorf("tangent point %v not on the small circle", point)
	}
	if !floatEqual(point.Dot(point.Sub(mgl64.Vec3{0, 0, 5})), 0, 1e-9) {
		t.Errorf("tangent point %v: radius is not perpendicular to the tangent", point)
	}
}

func TestIntersectSpheresConcentric(t *testing.T) {
	_, radius := IntersectSpheres(mgl64.Vec3{1, 1, 1}, 2, mgl64.Vec3{1, 1, 1}, 1)
	if !math.IsNaN(radius) {
		t.Errorf("concentric spheres radius = %v, want NaN", radius)
	}
}

func TestRotationFromUp(t *testing.T) {
	tests := []struct {
		name string
		v    mgl64.Vec3
	}{
		{name: "parallel", v: mgl64.Vec3{0, 1, 0}},
		{name: "nearly parallel", v: mgl64.Vec3{1e-5, 1, 0}.Normalize()},
		{name: "anti-parallel", v: mgl64.Vec3{0, -1, 0}},
		{name: "x axis", v: mgl64.Vec3{1, 0, 0}},
		{name: "z axis", v: mgl64.Vec3{0, 0, 1}},
		{name: "negative z", v: mgl64.Vec3{0, 0, -1}},
		{name: "oblique", v: mgl64.Vec3{1, -2, 3}.Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := RotationFromUp(tt.v)

			if !floatEqual(q.Len(), 1, 1e-9) {
				t.Errorf("quaternion not unit: %v", q.Len())
			}
			if got := q.Rotate(Up); !vec3Equal(got, tt.v, 1e-4) {
				t.Errorf("Rotate(Up) = %v, want %v", got, tt.v)
			}
		})
	}

	if q := RotationFromUp(Up); q != mgl64.QuatIdent() {
		t.Errorf("RotationFromUp(Up) = %v, want identity", q)
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 4, 6}, 0.25)
	if !vec3Equal(got, mgl64.Vec3{0.5, 1, 1.5}, 1e-12) {
		t.Errorf("Lerp = %v", got)
	}
}
