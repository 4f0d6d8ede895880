package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/config"
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/photonmap"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/df07/go-photon-raytracer/pkg/scene"
	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// photonHitBytes approximates the memory one stored photon takes, index included
const photonHitBytes = 256

func main() {
	logger := log.New(os.Stdout, "", log.Ltime)
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders the selected scene and writes the images
func run(args []string, stdout io.Writer, logger core.Logger) error {
	flags := flag.NewFlagSet("krt", flag.ContinueOnError)
	flags.SetOutput(stdout)
	configPath := flags.String("config", "", "YAML configuration file")
	sceneName := flags.String("scene", "", "Scene name (see -list)")
	meshPath := flags.String("mesh", "", "PLY file for the mesh scene")
	smooth := flags.Bool("smooth", false, "Smooth mesh normals")
	width := flags.Int("width", 0, "Image width")
	height := flags.Int("height", 0, "Image height")
	samples := flags.Int("samples", 0, "Rays per pixel")
	recurse := flags.Int("recurse", 0, "Bounce budget per primary ray")
	workers := flags.Int("workers", -1, "Worker goroutines (0 = one per CPU)")
	seed := flags.Int64("seed", 0, "Random seed")
	photons := flags.Bool("photons", false, "Build a photon map for indirect light")
	perLight := flags.Int("photons-per-light", 0, "Photons emitted by each light")
	visualise := flags.Bool("visualise", false, "Also write the photon map debug image")
	output := flags.String("output", "", "Output image; the format follows the extension")
	depthOutput := flags.String("depth", "", "Depth image output")
	scale := flags.Float64("scale", 0, "Resize factor applied to the saved images")
	list := flags.Bool("list", false, "List the built-in scenes and exit")

	flags.Usage = func() {
		fmt.Fprintln(stdout, "Photon Mapping Raytracer")
		fmt.Fprintln(stdout, "Usage: krt [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		flags.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Settings are read from -config, then KRT_* variables (also from .env), then flags.")
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *list {
		fmt.Fprintln(stdout, "Available scenes:")
		for _, info := range scene.List() {
			fmt.Fprintf(stdout, "  %-10s %s\n", info.Name, info.Description)
		}
		return nil
	}

	// .env is optional
	_ = godotenv.Load()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	// Only flags given on the command line override the file and environment
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene.Name = *sceneName
		case "mesh":
			cfg.Scene.MeshPath = *meshPath
		case "smooth":
			cfg.Scene.Smoothing = *smooth
		case "width":
			cfg.Render.Width = *width
		case "height":
			cfg.Render.Height = *height
		case "samples":
			cfg.Render.Samples = *samples
		case "recurse":
			cfg.Render.Recurse = *recurse
		case "workers":
			cfg.Render.Workers = *workers
		case "seed":
			cfg.Render.Seed = *seed
		case "photons":
			cfg.Photons.Enabled = *photons
		case "photons-per-light":
			cfg.Photons.PerLight = *perLight
		case "visualise":
			cfg.Photons.Visualise = *visualise
		case "output":
			cfg.Output.Path = *output
		case "depth":
			cfg.Output.DepthPath = *depthOutput
		case "scale":
			cfg.Output.Scale = *scale
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	return render(cfg, logger)
}

// createScene builds the scene the configuration names
func createScene(cfg *config.Config) (*scene.Scene, error) {
	return scene.Load(cfg.Scene.Name, scene.Options{
		MeshPath:  cfg.Scene.MeshPath,
		Smoothing: cfg.Scene.Smoothing,
	})
}

func render(cfg *config.Config, logger core.Logger) error {
	s, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger.Printf("Scene %s: %d objects, %d lights", cfg.Scene.Name, len(s.Objects), len(s.Lights()))
	for _, object := range s.Objects {
		if mesh, ok := object.(*geometry.PolyMesh); ok {
			stats := mesh.Stats()
			logger.Printf("Mesh: %d triangles, BVH %d nodes (%d leaves, depth %d, avg leaf depth %.1f)",
				len(mesh.Triangles), stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgDepth)
		}
	}

	camera := renderer.NewCamera(s.CameraConfig, cfg.Render.Width, cfg.Render.Height)
	camera.Samples = cfg.Render.Samples
	renderOpts := renderer.Options{
		Workers: cfg.Render.Workers,
		Recurse: cfg.Render.Recurse,
		Seed:    cfg.Render.Seed,
		Logger:  logger,
	}

	var pm *photonmap.PhotonMap
	if cfg.Photons.Enabled || cfg.Photons.Visualise {
		checkResources(cfg, len(s.Lights()), logger)

		start := time.Now()
		pm = photonmap.Build(s, photonmap.Options{
			PhotonsPerLight: cfg.Photons.PerLight,
			MaxBounces:      cfg.Photons.MaxBounces,
			K:               cfg.Photons.K,
			Radius:          cfg.Photons.Radius,
			Workers:         cfg.Render.Workers,
			Seed:            cfg.Render.Seed,
			Logger:          logger,
		})
		logger.Printf("Photon map built in %v", time.Since(start))
		if cfg.Photons.Enabled {
			s.SetPhotonMap(pm)
		}
	}

	fb := renderer.NewFrameBuffer(cfg.Render.Width, cfg.Render.Height)
	stats, err := renderer.Render(s, camera, fb, renderOpts)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v (%.1f samples per pixel)", stats.Duration, stats.AverageSamples)

	if err := saveImage(fb.Image(), cfg.Output.Path, cfg.Output.Scale); err != nil {
		return err
	}
	logger.Printf("Render saved as %s", cfg.Output.Path)

	if cfg.Output.DepthPath != "" {
		if err := saveImage(fb.DepthImage(), cfg.Output.DepthPath, cfg.Output.Scale); err != nil {
			return err
		}
		logger.Printf("Depth saved as %s", cfg.Output.DepthPath)
	}

	if cfg.Photons.Visualise {
		photonFB := renderer.NewFrameBuffer(cfg.Render.Width, cfg.Render.Height)
		if _, err := renderer.VisualisePhotons(camera, s, pm, photonFB, renderOpts); err != nil {
			return err
		}
		path := suffixed(cfg.Output.Path, "_photons")
		if err := saveImage(photonFB.Image(), path, cfg.Output.Scale); err != nil {
			return err
		}
		logger.Printf("Photon map saved as %s", path)
	}
	return nil
}

// checkResources warns when the photon map might not fit in free memory
func checkResources(cfg *config.Config, lights int, logger core.Logger) {
	if cores, err := cpu.Counts(true); err == nil {
		logger.Printf("Tracing photons on %d logical CPUs", cores)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Printf("Could not read memory statistics: %v", err)
		return
	}
	need := estimatePhotonBytes(cfg.Photons.PerLight, cfg.Photons.MaxBounces, lights)
	if need > vm.Available/2 {
		logger.Printf("Warning: photon map may need %d MiB, only %d MiB available",
			need>>20, vm.Available>>20)
	}
}

// estimatePhotonBytes bounds the stored photons: one direct hit plus up to
// maxBounces indirect and shadow hits per emitted photon
func estimatePhotonBytes(perLight, maxBounces, lights int) uint64 {
	hits := float64(perLight) * float64(lights) * float64(1+2*maxBounces)
	return uint64(math.Max(0, hits)) * photonHitBytes
}

// saveImage resizes img by scale and writes it, creating the directory
func saveImage(img *image.NRGBA, path string, scale float64) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	var out image.Image = img
	if scale > 0 && scale != 1 {
		w := int(math.Round(float64(img.Bounds().Dx()) * scale))
		h := int(math.Round(float64(img.Bounds().Dy()) * scale))
		out = imaging.Resize(img, max(1, w), max(1, h), imaging.Lanczos)
	}

	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}

// suffixed inserts suffix before the extension of path
func suffixed(path, suffix string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + suffix + ext
}
