package batch

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"

	"wireframe-renderer/internal/camera"
	"wireframe-renderer/internal/imageio"
	"wireframe-renderer/internal/library"
	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/mesh"
	"wireframe-renderer/internal/overlay"
	"wireframe-renderer/internal/postprocess"
	"wireframe-renderer/internal/raster"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Models     library.Resolver
	OutputDir  string
	Format     string
	Width      int
	Height     int
	Foreground color.NRGBA
	Background color.NRGBA
	Elevation  float64 // degrees above the horizon
	Thumbnail  int     // longest side of an extra thumbnail; 0 disables
	Overlay    *overlay.Overlay
	Camera     CameraSpec
	Render     raster.Options
	Workers    int
	Progress   bool
	Logger     *slog.Logger
}

// CameraSpec fixes the camera instead of orbiting the model. Nil Position
// keeps the turntable orbit.
type CameraSpec struct {
	Position *mathutil.Vec3
	Target   *mathutil.Vec3 // defaults to the model center
	FOV      float64
	Near     float64
	Far      float64
}

// Job is one frame of one model.
type Job struct {
	Model  string
	Frame  int
	Frames int
}

// Result holds the outcome of rendering one job.
type Result struct {
	Model      string
	Frame      int
	Image      string
	Stats      raster.Stats
	Pixels     int
	Components int
	Success    bool
	Error      string
}

// Turntable returns frames evenly spaced jobs around each model.
func Turntable(models []string, frames int) []Job {
	if frames <= 0 {
		frames = 1
	}
	jobs := make([]Job, 0, len(models)*frames)
	for _, m := range models {
		for f := 0; f < frames; f++ {
			jobs = append(jobs, Job{Model: m, Frame: f, Frames: frames})
		}
	}
	return jobs
}

// Run renders all jobs using a worker pool. Each worker owns one renderer.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed, failed atomic.Int64

	log := cfg.Logger
	if log == nil {
		log = raster.Logger()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.Default(int64(total), "rendering")
	} else {
		bar = progressbar.DefaultSilent(int64(total), "rendering")
	}

	start := time.Now()
	log.Info("batch start", "jobs", total, "workers", workers, "format", cfg.Format)

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := raster.NewRenderer(cfg.Width, cfg.Height, cfg.Foreground, cfg.Background, cfg.Render)
			for idx := range jobChan {
				res := processJob(cfg, r, jobs[idx])
				if !res.Success {
					failed.Add(1)
					log.Warn("job failed", "model", res.Model, "frame", res.Frame, "err", res.Error)
				}
				results[idx] = res
				processed.Add(1)
				bar.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	bar.Finish()

	elapsed := time.Since(start)
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(processed.Load()) / s
	}
	log.Info("batch done",
		"jobs", processed.Load(),
		"failed", failed.Load(),
		"elapsed", elapsed.Round(time.Millisecond),
		"frames_per_sec", fmt.Sprintf("%.1f", rate),
	)
	return results
}

func processJob(cfg Config, r *raster.Renderer, job Job) Result {
	res := Result{Model: job.Model, Frame: job.Frame}

	m, err := cfg.Models.Resolve(job.Model)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	cam, err := frameCamera(cfg, m, job)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Stats = r.Frame(m, cam.Transform())
	img := r.Buffer().Image()
	res.Pixels = r.Buffer().Count()
	res.Components = len(postprocess.Components(img, cfg.Background))

	if cfg.Overlay != nil {
		lines := []string{
			fmt.Sprintf("%s  frame %d/%d", m.Name, job.Frame+1, max(job.Frames, 1)),
			fmt.Sprintf("tri %d  drawn %d  culled %d  clipped %d",
				res.Stats.Triangles, res.Stats.Drawn(), res.Stats.Culled, res.Stats.Single+res.Stats.Quad),
		}
		if img, err = cfg.Overlay.Draw(img, lines); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	name := fmt.Sprintf("%03d.%s", job.Frame, cfg.Format)
	outPath := filepath.Join(cfg.OutputDir, job.Model, name)
	if err := imageio.Save(outPath, img); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Image = filepath.ToSlash(filepath.Join(job.Model, name))

	if cfg.Thumbnail > 0 {
		thumb := postprocess.Thumbnail(img, cfg.Thumbnail)
		thumbPath := filepath.Join(cfg.OutputDir, job.Model, "thumb_"+name)
		if err := imageio.Save(thumbPath, thumb); err != nil {
			res.Error = fmt.Sprintf("thumbnail: %v", err)
			return res
		}
	}

	res.Success = true
	return res
}

// frameCamera places the camera for one turntable frame. The orbit radius
// fits the model's bounding sphere into the vertical field of view.
func frameCamera(cfg Config, m *mesh.Mesh, job Job) (*camera.Camera, error) {
	lo, hi, ok := m.Bounds()
	if !ok {
		return nil, fmt.Errorf("model %q has no vertices", m.Name)
	}
	center := lo.Add(hi).Scale(0.5)
	extent := hi.Sub(lo).Len() / 2
	if extent == 0 || math.IsInf(extent, 0) || math.IsNaN(extent) {
		extent = 1
	}

	cam := camera.New(cfg.Width, cfg.Height)
	if cfg.Camera.FOV > 0 {
		cam.FOV = cfg.Camera.FOV
	}
	if cfg.Camera.Near > 0 {
		cam.Near = cfg.Camera.Near
	}
	if cfg.Camera.Far > cam.Near {
		cam.Far = cfg.Camera.Far
	}
	cam.SetViewport(cfg.Width, cfg.Height)

	target := center
	if cfg.Camera.Target != nil {
		target = *cfg.Camera.Target
	}
	if cfg.Camera.Position != nil {
		cam.Position = *cfg.Camera.Position
		cam.LookAt(target)
		cam.Update()
		return cam, nil
	}

	azimuth := 360 * float64(job.Frame) / float64(max(job.Frames, 1))
	cam.Orbit(target, cam.Frame(extent), azimuth, cfg.Elevation)
	return cam, nil
}
