package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wireframe-renderer/internal/batch"
	"wireframe-renderer/internal/cli"
	"wireframe-renderer/internal/config"
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/overlay"
	"wireframe-renderer/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	model := flag.String("model", "", "Path to a single .obj model")
	modelsDir := flag.String("models", "", "Directory of .obj models to render")
	prim := flag.String("primitive", "", "Procedural shape(s), comma separated: box, capsule, cylinder, sphere")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Image format: webp, png, tga (default: webp)")
	width := flag.Int("width", 0, "Frame width (default: 800)")
	height := flag.Int("height", 0, "Frame height (default: 600)")
	frames := flag.Int("frames", 0, "Turntable frames per model (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log per-frame statistics")

	flag.Parse()
	log := cli.SetupLogger(*verbose)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Model:     *model,
		ModelsDir: *modelsDir,
		Primitive: *prim,
		OutputDir: *outputDir,
		Format:    *format,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Frames:    *frames,
	})

	fg, bg, err := cfg.Colors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	models, names, err := cli.Models(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading models: %v\n", err)
		os.Exit(1)
	}

	var hud *overlay.Overlay
	if cfg.Overlay {
		hud, err = overlay.New(14, fg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	jobs := batch.Turntable(names, cfg.Frames)

	fmt.Printf("Wireframe renderer → %s\n", cfg.Format)
	fmt.Printf("Models: %d, Frames: %d, Workers: %d\n", len(names), len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Models:     models,
		OutputDir:  cfg.OutputDir,
		Format:     cfg.Format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Foreground: fg,
		Background: bg,
		Elevation:  cfg.Elevation,
		Thumbnail:  cfg.Thumbnail,
		Overlay:    hud,
		Camera: batch.CameraSpec{
			Position: vec(cfg.Camera.Position),
			Target:   vec(cfg.Camera.Target),
			FOV:      cfg.Camera.FOV,
			Near:     cfg.Camera.Near,
			Far:      cfg.Camera.Far,
		},
		Render: raster.Options{
			Workers:       cfg.RasterWorkers,
			PiercingEdges: cfg.PiercingEdges,
		},
		Workers:  cfg.Workers,
		Progress: !*verbose,
		Logger:   log,
	}

	results := batch.Run(batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s #%d: %s\n", e.Model, e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func vec(p *[3]float64) *mathutil.Vec3 {
	if p == nil {
		return nil
	}
	v := mathutil.Vec3(*p)
	return &v
}
