// meshgen generates render meshes for cloth collision actors.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/collisionviz"
	"github.com/akmonengine/collisionviz/convex"
	"github.com/akmonengine/collisionviz/export"
	"github.com/akmonengine/collisionviz/geom"
	"github.com/akmonengine/collisionviz/internal/config"
	"github.com/akmonengine/collisionviz/internal/logger"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		cmdBuild(args)
	case "sizes":
		cmdSizes(args)
	case "planes":
		cmdPlanes(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshgen - collision proxy mesh generator

Usage:
  meshgen <command> [options]

Commands:
  build   [-config file] [-out dir]      Write one OBJ file per actor
  sizes   [-config file]                 Show vertex and index counts per actor
  planes  -sx n -sy n [-radius r]        Print the tangent planes of a sphere

Common options:
  -config       Path to meshgen.yaml (default: ./meshgen.yaml, then the user config dir)
  -debug        Enable debug logging
  -segments-x   Sphere and cylinder segments around the axis
  -segments-y   Sphere segments from pole to pole
  -smooth       Weld convex corners and smooth their normals
  -workers      Number of build workers

Examples:
  meshgen build -config arm.yaml -out ./meshes
  meshgen sizes -segments-x 16 -segments-y 8
  meshgen planes -sx 8 -sy 3 -radius 0.5`)
}

// loadConfig parses the common flags, loads the config and initializes the
// logger.
func loadConfig(name string, args []string) *config.Config {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(os.Stderr, cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return cfg
}

func loadActors(cfg *config.Config) []*collisionviz.Actor {
	actors, err := cfg.BuildActors()
	if err != nil {
		logger.Error("invalid actor", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	if len(actors) == 0 {
		logger.Warn("no actors configured")
	}
	return actors
}

func cmdBuild(args []string) {
	cfg := loadConfig("build", args)
	defer logger.Sync()

	scene := collisionviz.NewScene(cfg.Mesh.Workers, logger.Log)
	scene.Templates = cfg.Mesh.Templates()
	for _, actor := range loadActors(cfg) {
		scene.AddActor(actor)
	}

	var written, failed int
	scene.Events.Subscribe(collisionviz.ACTOR_BUILT, func(event collisionviz.Event) {
		built := event.(collisionviz.ActorBuiltEvent)
		path, err := export.SaveOBJ(cfg.Output.Dir, built.Mesh)
		if err != nil {
			logger.Error("write failed", zap.String("actor", built.Actor.Name), zap.Error(err))
			failed++
			return
		}
		logger.Info("mesh written",
			zap.String("actor", built.Actor.Name),
			zap.String("path", path),
			zap.Int("vertices", built.Mesh.VertexCount()),
			zap.Int("triangles", built.Mesh.TriangleCount()),
		)
		written++
	})
	scene.Events.Subscribe(collisionviz.ACTOR_REJECTED, func(event collisionviz.Event) {
		failed++
	})

	scene.Build()

	logger.Sugar.Infof("%d meshes written to %s, %d failed", written, cfg.Output.Dir, failed)
	if failed > 0 {
		logger.Sync()
		os.Exit(1)
	}
}

func cmdSizes(args []string) {
	cfg := loadConfig("sizes", args)
	defer logger.Sync()

	templates := cfg.Mesh.Templates()
	fmt.Printf("Templates: sphere %d vertices / %d indices, cone %d vertices / %d indices\n",
		templates.Sphere.VertexCount(), templates.Sphere.IndexCount(),
		templates.Cylinder.VertexCount(), templates.Cylinder.IndexCount())
	fmt.Println()

	var totalVertices, totalIndices int
	for _, actor := range loadActors(cfg) {
		if err := actor.Validate(); err != nil {
			fmt.Printf("  %-20s invalid: %v\n", actor.Name, err)
			continue
		}
		v, i := actor.Size(templates)
		totalVertices += v
		totalIndices += i
		fmt.Printf("  %-20s %8d vertices %8d indices\n", actor.Name, v, i)
	}
	fmt.Printf("  %-20s %8d vertices %8d indices\n", "total", totalVertices, totalIndices)
}

func cmdPlanes(args []string) {
	fs := flag.NewFlagSet("planes", flag.ExitOnError)
	sx := fs.Int("sx", 8, "Planes per latitude band")
	sy := fs.Int("sy", 2, "Latitude bands")
	radius := fs.Float64("radius", 1, "Sphere radius")
	cx := fs.Float64("cx", 0, "Center x")
	cy := fs.Float64("cy", 0, "Center y")
	cz := fs.Float64("cz", 0, "Center z")
	fs.Parse(args)

	if *sx < 1 || *sy < 1 || *sx**sy > geom.MaxPlanes {
		fmt.Fprintf(os.Stderr, "Error: need 1 <= sx*sy <= %d, got %d*%d\n", geom.MaxPlanes, *sx, *sy)
		os.Exit(1)
	}

	var planes []geom.Plane
	mask := convex.GenerateConvexPolyhedronPlanes(*sx, *sy, mgl64.Vec3{*cx, *cy, *cz}, *radius, &planes)

	fmt.Printf("Mask: %#08x\n", mask)
	fmt.Println("Planes (nx ny nz d):")
	for i, p := range planes {
		fmt.Printf("  %2d: [%.6f, %.6f, %.6f, %.6f]\n", i, p.Normal.X(), p.Normal.Y(), p.Normal.Z(), p.Distance)
	}
}
