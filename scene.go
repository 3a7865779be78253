// Package collisionviz turns the collision primitives of cloth actors into
// render meshes: spheres, tapered capsules and convex shapes, packed in one
// vertex/index buffer per actor with a submesh per primitive.
package collisionviz

import (
	"fmt"

	"github.com/akmonengine/collisionviz/capsule"
	"github.com/akmonengine/collisionviz/shape"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// Submesh is the index range of one primitive inside a RenderMesh.
type Submesh struct {
	Name        string
	IndexOffset uint32
	IndexCount  uint32
}

// RenderMesh is the packed mesh of one actor. Positions, Normals and UVs are
// parallel; convex vertices have zero UVs.
type RenderMesh struct {
	Name      string
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
	Submeshes []Submesh
}

func (m *RenderMesh) VertexCount() int {
	return len(m.Positions)
}

func (m *RenderMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

type Scene struct {
	Actors  []*Actor
	Workers int
	// Templates defaults to capsule.DefaultTemplates.
	Templates *capsule.Templates
	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	Events Events
}

func NewScene(workers int, logger *zap.Logger) *Scene {
	return &Scene{
		Workers: workers,
		Logger:  logger,
		Events:  NewEvents(),
	}
}

// AddActor adds an actor to the scene
func (s *Scene) AddActor(actor *Actor) {
	s.Actors = append(s.Actors, actor)
}

// RemoveActor removes an actor from the scene
func (s *Scene) RemoveActor(actor *Actor) {
	k := -1
	for i, a := range s.Actors {
		if a == actor {
			k = i
			break
		}
	}

	if k != -1 {
		s.Actors = append(s.Actors[:k], s.Actors[k+1:]...)
		s.Events.record(ActorRemovedEvent{Actor: actor})
		s.Events.flush()
	}
}

// Build generates the mesh of every actor, in actor order. Actors failing
// Validate get a nil mesh and an ActorRejectedEvent. Actors are built
// concurrently by s.Workers goroutines, each into its own buffers; the
// templates are only read.
func (s *Scene) Build() []*RenderMesh {
	workers := max(DEFAULT_WORKERS, s.Workers)
	templates := s.Templates
	if templates == nil {
		templates = capsule.DefaultTemplates()
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	meshes := make([]*RenderMesh, len(s.Actors))
	errs := make([]error, len(s.Actors))

	task(workers, s.Actors, func(i int, actor *Actor) {
		if err := actor.Validate(); err != nil {
			errs[i] = err
			return
		}
		meshes[i] = buildActor(actor, templates)
	})

	for i, actor := range s.Actors {
		if errs[i] != nil {
			logger.Warn("actor rejected", zap.String("actor", actor.Name), zap.Error(errs[i]))
			s.Events.record(ActorRejectedEvent{Actor: actor, Err: errs[i]})
			continue
		}
		logger.Debug("actor built",
			zap.String("actor", actor.Name),
			zap.Int("vertices", meshes[i].VertexCount()),
			zap.Int("triangles", meshes[i].TriangleCount()),
			zap.Int("submeshes", len(meshes[i].Submeshes)),
		)
		s.Events.record(ActorBuiltEvent{Actor: actor, Mesh: meshes[i]})
	}
	s.Events.flush()

	return meshes
}

// buildActor packs the capsule set first, then every convex shape.
func buildActor(actor *Actor, templates *capsule.Templates) *RenderMesh {
	convexes := actor.convexBuffers()

	capsuleVertices, capsuleIndices := templates.Size(len(actor.Spheres), len(actor.Pairs))
	vertexCount, indexCount := capsuleVertices, capsuleIndices
	for _, b := range convexes {
		vertexCount += len(b.Positions)
		indexCount += len(b.Indices)
	}

	out := shape.NewBuffers(vertexCount, indexCount, true, true)
	mesh := &RenderMesh{
		Name:      actor.Name,
		Positions: out.Positions,
		Normals:   out.Normals,
		UVs:       out.UVs,
		Indices:   out.Indices,
		Submeshes: make([]Submesh, 0, actor.submeshCount()),
	}

	capsule.Generate(actor.Spheres, actor.Pairs, actor.Grow, templates.Sphere, templates.Cylinder, out, 0)

	offsets := make([]uint32, len(actor.Spheres)+len(actor.Pairs)/2)
	capsule.SubmeshOffsets(len(actor.Spheres), len(actor.Pairs), templates.Sphere, templates.Cylinder, offsets)
	for i, offset := range offsets {
		if i < len(actor.Spheres) {
			mesh.addSubmesh(fmt.Sprintf("sphere%d", i), offset, templates.Sphere.IndexCount())
			continue
		}
		pair := 2 * (i - len(actor.Spheres))
		name := fmt.Sprintf("capsule%d-%d", actor.Pairs[pair], actor.Pairs[pair+1])
		mesh.addSubmesh(name, offset, templates.Cylinder.IndexCount())
	}

	vertex, index := capsuleVertices, capsuleIndices
	for i, b := range convexes {
		copy(out.Positions[vertex:], b.Positions)
		copy(out.Normals[vertex:], b.Normals)
		for k, idx := range b.Indices {
			out.Indices[index+k] = idx + uint32(vertex)
		}

		mesh.addSubmesh(fmt.Sprintf("convex%d", i), uint32(index), len(b.Indices))
		vertex += len(b.Positions)
		index += len(b.Indices)
	}

	return mesh
}

func (m *RenderMesh) addSubmesh(name string, offset uint32, count int) {
	m.Submeshes = append(m.Submeshes, Submesh{Name: name, IndexOffset: offset, IndexCount: uint32(count)})
}
