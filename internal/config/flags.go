package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config as is.
type Flags struct {
	config    *string
	debug     *bool
	out       *string
	smooth    *bool
	segmentsX *int
	segmentsY *int
	workers   *int
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:    fs.String("config", "", "Path to config file"),
		debug:     fs.Bool("debug", false, "Enable debug logging"),
		out:       fs.String("out", "", "Output directory"),
		smooth:    fs.Bool("smooth", false, "Weld convex corners and smooth their normals"),
		segmentsX: fs.Int("segments-x", 0, "Sphere and cylinder segments around the axis"),
		segmentsY: fs.Int("segments-y", 0, "Sphere segments from pole to pole"),
		workers:   fs.Int("workers", 0, "Number of build workers"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.out != "" {
		cfg.Output.Dir = *f.out
	}
	if *f.smooth {
		for i := range cfg.Actors {
			cfg.Actors[i].Smooth = true
		}
	}
	if *f.segmentsX > 0 {
		cfg.Mesh.SphereSegmentsX = *f.segmentsX
		cfg.Mesh.CylinderSegmentsX = *f.segmentsX
	}
	if *f.segmentsY > 0 {
		cfg.Mesh.SphereSegmentsY = *f.segmentsY
	}
	if *f.workers > 0 {
		cfg.Mesh.Workers = *f.workers
	}
}
