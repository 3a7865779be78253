package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/collisionviz"
	"github.com/akmonengine/collisionviz/capsule"
	"github.com/akmonengine/collisionviz/convex"
	"github.com/akmonengine/collisionviz/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a tapered capsule and a box next to it
func SetupScene() (*collisionviz.Scene, *collisionviz.Actor) {
	scene := collisionviz.NewScene(2, nil)

	arm := &collisionviz.Actor{
		Name: "arm",
		Spheres: []mgl64.Vec4{
			{0, 10, -2, 3},
			{0, 10, 2, 1},
		},
		Pairs: []uint32{0, 1},
		Grow:  -0.05,
	}
	scene.AddActor(arm)

	var planes []geom.Plane
	for _, n := range []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
		planes = append(planes, geom.NewPlaneFromPointNormal(n.Add(mgl64.Vec3{5, 10, 0}), n))
	}
	scene.AddActor(&collisionviz.Actor{
		Name:     "box",
		Planes:   planes,
		Convexes: []collisionviz.Convex{{Mask: 0x3F}},
	})

	return scene, arm
}

// CheckTangency measures how far the cone rings sit from their spheres.
// The first sphere is the larger one, so ring A belongs to it.
func CheckTangency(arm *collisionviz.Actor, mesh *collisionviz.RenderMesh) {
	templates := capsule.DefaultTemplates()
	first := len(arm.Spheres) * templates.Sphere.VertexCount()
	ring := templates.Cylinder.VertexCount() / 2

	var worstA, worstB float64
	a, b := arm.Spheres[0], arm.Spheres[1]
	for k := 0; k < ring; k++ {
		pa := mesh.Positions[first+k]
		pb := mesh.Positions[first+ring+k]
		worstA = math.Max(worstA, math.Abs(pa.Sub(a.Vec3()).Len()-(a.W()+arm.Grow)))
		worstB = math.Max(worstB, math.Abs(pb.Sub(b.Vec3()).Len()-(b.W()+arm.Grow)))
	}
	fmt.Printf("  Ring A max deviation: %.2e\n", worstA)
	fmt.Printf("  Ring B max deviation: %.2e\n", worstB)
}

func main() {
	fmt.Println("Capsule scene")
	fmt.Println("=============")

	scene, arm := SetupScene()
	scene.Events.Subscribe(collisionviz.ACTOR_BUILT, func(event collisionviz.Event) {
		built := event.(collisionviz.ActorBuiltEvent)
		fmt.Printf("%s: %d vertices, %d triangles\n", built.Actor.Name, built.Mesh.VertexCount(), built.Mesh.TriangleCount())
		for _, sm := range built.Mesh.Submeshes {
			fmt.Printf("  %-12s offset=%6d count=%6d\n", sm.Name, sm.IndexOffset, sm.IndexCount)
		}
	})

	meshes := scene.Build()
	fmt.Println()
	fmt.Println("Tangency:")
	CheckTangency(arm, meshes[0])

	capsules := convex.GenerateCollisionCapsules(arm.Spheres, arm.Pairs, arm.Grow)
	fmt.Printf("\nConvex capsule hull: %d triangles\n", capsules.TriangleCount())
}
