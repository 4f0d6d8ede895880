package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config represents the main configuration
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Photons PhotonsConfig `yaml:"photons"`
	Output  OutputConfig  `yaml:"output"`
}

// SceneConfig selects what to render
type SceneConfig struct {
	Name      string `yaml:"name"`      // Built-in scene name
	MeshPath  string `yaml:"mesh_path"` // PLY file for the mesh scene
	Smoothing bool   `yaml:"smoothing"` // Smooth mesh normals
}

// RenderConfig contains camera and tracing settings
type RenderConfig struct {
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
	Samples int   `yaml:"samples"` // Rays per pixel
	Recurse int   `yaml:"recurse"` // Bounce budget per primary ray
	Workers int   `yaml:"workers"` // 0 means one per CPU
	Seed    int64 `yaml:"seed"`
}

// PhotonsConfig contains photon map settings
type PhotonsConfig struct {
	Enabled    bool    `yaml:"enabled"`
	PerLight   int     `yaml:"per_light"`
	MaxBounces int     `yaml:"max_bounces"`
	K          int     `yaml:"k"`
	Radius     float64 `yaml:"radius"`
	Visualise  bool    `yaml:"visualise"` // Also write the photon map debug image
}

// OutputConfig controls the written images
type OutputConfig struct {
	Path      string  `yaml:"path"`       // Colour image; the format follows the extension
	DepthPath string  `yaml:"depth_path"` // Depth image, empty to skip
	Scale     float64 `yaml:"scale"`      // Resize factor applied before saving
}

// Default creates the default configuration
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Name: "cornell",
		},
		Render: RenderConfig{
			Width:   512,
			Height:  512,
			Samples: 1,
			Recurse: 5,
			Workers: 0,
			Seed:    42,
		},
		Photons: PhotonsConfig{
			Enabled:    false,
			PerLight:   50000,
			MaxBounces: 5,
			K:          1000,
			Radius:     0.5,
		},
		Output: OutputConfig{
			Path:  "output/render.png",
			Scale: 1,
		},
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Scene.Name != "", "scene.name is empty")
	check(c.Render.Width > 0, "render.width must be positive, got %d", c.Render.Width)
	check(c.Render.Height > 0, "render.height must be positive, got %d", c.Render.Height)
	check(c.Render.Samples > 0, "render.samples must be positive, got %d", c.Render.Samples)
	check(c.Render.Recurse > 0, "render.recurse must be positive, got %d", c.Render.Recurse)
	check(c.Render.Workers >= 0, "render.workers must not be negative, got %d", c.Render.Workers)
	check(c.Output.Path != "", "output.path is empty")
	check(c.Output.Scale > 0, "output.scale must be positive, got %g", c.Output.Scale)

	if c.Photons.Enabled || c.Photons.Visualise {
		check(c.Photons.PerLight > 0, "photons.per_light must be positive, got %d", c.Photons.PerLight)
		check(c.Photons.MaxBounces >= 0, "photons.max_bounces must not be negative, got %d", c.Photons.MaxBounces)
		check(c.Photons.K > 0, "photons.k must be positive, got %d", c.Photons.K)
		check(c.Photons.Radius > 0, "photons.radius must be positive, got %g", c.Photons.Radius)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ApplyEnv overrides settings from KRT_* environment variables
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	texts := []struct {
		key    string
		target *string
	}{
		{"KRT_SCENE", &c.Scene.Name},
		{"KRT_MESH", &c.Scene.MeshPath},
		{"KRT_OUTPUT", &c.Output.Path},
		{"KRT_DEPTH_OUTPUT", &c.Output.DepthPath},
	}
	for _, s := range texts {
		if v := getenv(s.key); v != "" {
			*s.target = v
		}
	}

	ints := []struct {
		key    string
		target *int
	}{
		{"KRT_WIDTH", &c.Render.Width},
		{"KRT_HEIGHT", &c.Render.Height},
		{"KRT_SAMPLES", &c.Render.Samples},
		{"KRT_RECURSE", &c.Render.Recurse},
		{"KRT_WORKERS", &c.Render.Workers},
		{"KRT_PHOTONS", &c.Photons.PerLight},
	}
	for _, i := range ints {
		v := getenv(i.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, i.key, v)
		}
		*i.target = n
	}

	if v := getenv("KRT_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: KRT_SEED=%q is not an integer", ErrInvalid, v)
		}
		c.Render.Seed = n
	}
	if v := getenv("KRT_RADIUS"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: KRT_RADIUS=%q is not a number", ErrInvalid, v)
		}
		c.Photons.Radius = r
	}
	if v := getenv("KRT_PHOTON_MAP"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: KRT_PHOTON_MAP=%q is not a boolean", ErrInvalid, v)
		}
		c.Photons.Enabled = enabled
	}
	return nil
}
