// Package config handles meshgen configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/akmonengine/collisionviz"
	"github.com/akmonengine/collisionviz/capsule"
	"github.com/akmonengine/collisionviz/convex"
	"github.com/akmonengine/collisionviz/export"
	"github.com/akmonengine/collisionviz/geom"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrSegments  = errors.New("invalid segment count")
	ErrActorName = errors.New("invalid actor name")
)

// Config holds all meshgen settings and the actors to generate.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Output  OutputConfig  `yaml:"output"`
	Actors  []ActorConfig `yaml:"actors"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MeshConfig holds template tessellation and build settings.
type MeshConfig struct {
	SphereSegmentsX   int `yaml:"sphere_segments_x"`
	SphereSegmentsY   int `yaml:"sphere_segments_y"`
	CylinderSegmentsX int `yaml:"cylinder_segments_x"`
	Workers           int `yaml:"workers"`
}

// OutputConfig holds where generated meshes are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ActorConfig describes one actor. Spheres are (x, y, z, radius), capsules
// are sphere index pairs and planes are (nx, ny, nz, d) with any non-zero
// normal length.
type ActorConfig struct {
	Name     string         `yaml:"name"`
	Spheres  [][4]float64   `yaml:"spheres"`
	Capsules [][2]uint32    `yaml:"capsules"`
	Planes   [][4]float64   `yaml:"planes"`
	Convexes []ConvexConfig `yaml:"convexes"`
	Domes    []DomeConfig   `yaml:"domes"`
	Grow     float64        `yaml:"grow"`
	Smooth   bool           `yaml:"smooth"`
}

// ConvexConfig selects planes by index.
type ConvexConfig struct {
	Planes []int `yaml:"planes"`
	Flip   bool  `yaml:"flip"`
}

// DomeConfig is a convex shape bounded by the tangent planes of a sphere.
// Its planes are appended after ActorConfig.Planes.
type DomeConfig struct {
	SegmentsX int        `yaml:"segments_x"`
	SegmentsY int        `yaml:"segments_y"`
	Center    [3]float64 `yaml:"center"`
	Radius    float64    `yaml:"radius"`
	Flip      bool       `yaml:"flip"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Mesh: MeshConfig{
			SphereSegmentsX:   capsule.DefaultSphereSegmentsX,
			SphereSegmentsY:   capsule.DefaultSphereSegmentsY,
			CylinderSegmentsX: capsule.DefaultCylinderSegmentsX,
			Workers:           runtime.NumCPU(),
		},
		Output: OutputConfig{
			Dir: "out",
		},
	}
}

// Validate rejects tessellations the generators cannot build.
func (m MeshConfig) Validate() error {
	if m.SphereSegmentsX < 3 {
		return fmt.Errorf("%w: sphere_segments_x is %d, need at least 3", ErrSegments, m.SphereSegmentsX)
	}
	if m.SphereSegmentsY < 2 {
		return fmt.Errorf("%w: sphere_segments_y is %d, need at least 2", ErrSegments, m.SphereSegmentsY)
	}
	if m.CylinderSegmentsX < 3 {
		return fmt.Errorf("%w: cylinder_segments_x is %d, need at least 3", ErrSegments, m.CylinderSegmentsX)
	}
	return nil
}

// Templates builds the sphere and cylinder templates. The default
// tessellation reuses the shared templates. m must pass Validate.
func (m MeshConfig) Templates() *capsule.Templates {
	if m.SphereSegmentsX == capsule.DefaultSphereSegmentsX &&
		m.SphereSegmentsY == capsule.DefaultSphereSegmentsY &&
		m.CylinderSegmentsX == capsule.DefaultCylinderSegmentsX {
		return capsule.DefaultTemplates()
	}
	return capsule.NewTemplates(m.SphereSegmentsX, m.SphereSegmentsY, m.CylinderSegmentsX)
}

// Actor converts the description into a collisionviz.Actor. The result is
// not validated beyond plane indices and tessellation counts.
func (a ActorConfig) Actor() (*collisionviz.Actor, error) {
	actor := &collisionviz.Actor{
		Name:   a.Name,
		Grow:   a.Grow,
		Smooth: a.Smooth,
	}

	for _, s := range a.Spheres {
		actor.Spheres = append(actor.Spheres, mgl64.Vec4(s))
	}
	for _, c := range a.Capsules {
		actor.Pairs = append(actor.Pairs, c[0], c[1])
	}
	for i, p := range a.Planes {
		plane, err := unitPlane(mgl64.Vec4(p))
		if err != nil {
			return nil, fmt.Errorf("actor %s: plane %d: %w", a.Name, i, err)
		}
		actor.Planes = append(actor.Planes, plane)
	}

	for i, c := range a.Convexes {
		var mask uint32
		for _, idx := range c.Planes {
			if idx < 0 || idx >= len(a.Planes) {
				return nil, fmt.Errorf("actor %s: convex %d references plane %d of %d", a.Name, i, idx, len(a.Planes))
			}
			if idx >= geom.MaxPlanes {
				return nil, fmt.Errorf("actor %s: convex %d plane %d: %w", a.Name, i, idx, collisionviz.ErrTooManyPlanes)
			}
			mask |= 1 << uint(idx)
		}
		actor.Convexes = append(actor.Convexes, collisionviz.Convex{Mask: mask, Flip: c.Flip})
	}

	for i, d := range a.Domes {
		if d.SegmentsX < 1 || d.SegmentsY < 1 {
			return nil, fmt.Errorf("actor %s: dome %d needs at least one segment each way, got %dx%d", a.Name, i, d.SegmentsX, d.SegmentsY)
		}
		if len(actor.Planes)+d.SegmentsX*d.SegmentsY > geom.MaxPlanes {
			return nil, fmt.Errorf("actor %s: dome %d: %w: %d planes", a.Name, i,
				collisionviz.ErrTooManyPlanes, len(actor.Planes)+d.SegmentsX*d.SegmentsY)
		}
		mask := convex.GenerateConvexPolyhedronPlanes(d.SegmentsX, d.SegmentsY, mgl64.Vec3(d.Center), d.Radius, &actor.Planes)
		actor.Convexes = append(actor.Convexes, collisionviz.Convex{Mask: mask, Flip: d.Flip})
	}

	return actor, nil
}

// unitPlane scales a packed (nx, ny, nz, d) half-space so its normal has unit
// length. The half-space itself is unchanged.
func unitPlane(v mgl64.Vec4) (geom.Plane, error) {
	plane := geom.PlaneFromVec4(v)
	l := plane.Normal.Len()
	if l < minNormalLength {
		return geom.Plane{}, fmt.Errorf("%w: zero normal %v", collisionviz.ErrPlaneNormal, v)
	}
	return geom.Plane{Normal: plane.Normal.Mul(1 / l), Distance: plane.Distance / l}, nil
}

const minNormalLength = 1e-9

// BuildActors converts every actor description, stopping at the first error.
// Actor names become output file names, so they must be unique, non-empty
// and free of path separators.
func (c *Config) BuildActors() ([]*collisionviz.Actor, error) {
	actors := make([]*collisionviz.Actor, 0, len(c.Actors))
	seen := make(map[string]int, len(c.Actors))
	for i, ac := range c.Actors {
		if !export.ValidName(ac.Name) {
			return nil, fmt.Errorf("actor %d: %w: %q", i, ErrActorName, ac.Name)
		}
		if first, ok := seen[ac.Name]; ok {
			return nil, fmt.Errorf("actor %d: %w: %q already used by actor %d", i, ErrActorName, ac.Name, first)
		}
		seen[ac.Name] = i

		actor, err := ac.Actor()
		if err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	return actors, nil
}
