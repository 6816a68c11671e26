package main

import (
	"flag"
	"fmt"
	"os"

	"wireframe-renderer/internal/camera"
	"wireframe-renderer/internal/cli"
	"wireframe-renderer/internal/config"
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/raster"
	"wireframe-renderer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	model := flag.String("model", "", "Path to an .obj model")
	prim := flag.String("primitive", "", "Procedural shape when no model is given")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	workers := flag.Int("workers", 0, "Triangle workers per frame (default: 1)")
	verbose := flag.Bool("v", false, "Log per-frame statistics")

	flag.Parse()
	log := cli.SetupLogger(*verbose)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *prim == "" && *model == "" && cfg.Model == "" && cfg.Primitive == "" {
		*prim = "sphere"
	}
	cfg.Resolve(config.Flags{
		Model:     *model,
		Primitive: *prim,
		Width:     *width,
		Height:    *height,
	})
	if *workers > 0 {
		cfg.RasterWorkers = *workers
	}

	fg, bg, err := cfg.Colors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	models, names, err := cli.Models(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	m, err := models.Resolve(names[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	cam := camera.New(cfg.Width, cfg.Height)
	cam.FOV, cam.Near, cam.Far = cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far
	cam.SetViewport(cfg.Width, cfg.Height)

	lo, hi, _ := m.Bounds()
	center := lo.Add(hi).Scale(0.5)
	if cfg.Camera.Target != nil {
		center = mathutil.Vec3(*cfg.Camera.Target)
	}
	if cfg.Camera.Position != nil {
		cam.Position = mathutil.Vec3(*cfg.Camera.Position)
		cam.LookAt(center)
		cam.Update()
	} else {
		extent := max(hi.Sub(lo).Len()/2, 1e-3)
		cam.Orbit(center, cam.Frame(extent), 30, 20)
	}

	opts := viewer.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Foreground: fg,
		Background: bg,
		Render: raster.Options{
			Workers:       cfg.RasterWorkers,
			PiercingEdges: cfg.PiercingEdges,
		},
		Logger: log,
	}
	if err := viewer.Run(viewer.New(m, cam, opts), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
