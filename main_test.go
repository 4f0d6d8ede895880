package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/config"
	"github.com/disintegration/imaging"
)

type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"cornell scene", "cornell", false},
		{"material scene", "material", false},
		{"csg scene", "csg", false},
		{"case insensitive", "Cornell", false},
		{"mesh scene without a mesh", "mesh", true},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene.Name = tt.sceneName
			scene, err := createScene(cfg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.sceneName)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for '%s', got %T", tt.sceneName, scene)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneName, err)
			}
			if scene.CameraConfig.FOV <= 0 {
				t.Errorf("Scene camera FOV should be positive, got %f", scene.CameraConfig.FOV)
			}
		})
	}
}

func TestCreateScene_Mesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.kcply")
	data := "kcply\nelement vertex 3\nelement face 1\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Scene.Name = "mesh"
	cfg.Scene.MeshPath = path
	if _, err := createScene(cfg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-list"}, &out, testLogger{t}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range []string{"cornell", "csg", "material", "mesh"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Expected %s in the scene list:\n%s", name, out.String())
		}
	}
}

func TestRun_InvalidSettings(t *testing.T) {
	tests := [][]string{
		{"-width", "0"},
		{"-scene", "nonexistent", "-output", filepath.Join(t.TempDir(), "x.png")},
		{"-config", filepath.Join(t.TempDir(), "missing.yaml")},
		{"-no-such-flag"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var out bytes.Buffer
			if err := run(args, &out, testLogger{t}); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRun_RendersImages(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out", "render.png")
	depth := filepath.Join(dir, "out", "depth.png")

	args := []string{
		"-scene", "material",
		"-width", "16", "-height", "12",
		"-workers", "3",
		"-photons", "-photons-per-light", "500", "-visualise",
		"-output", output,
		"-depth", depth,
		"-scale", "2",
	}
	var out bytes.Buffer
	if err := run(args, &out, testLogger{t}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, path := range []string{output, depth, filepath.Join(dir, "out", "render_photons.png")} {
		img, err := imaging.Open(path)
		if err != nil {
			t.Fatalf("Could not open %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("%s: expected 32x24 after scaling, got %dx%d", path, b.Dx(), b.Dy())
		}
	}
}

func TestEstimatePhotonBytes(t *testing.T) {
	if got := estimatePhotonBytes(1000, 5, 2); got != 1000*2*11*photonHitBytes {
		t.Errorf("Unexpected estimate %d", got)
	}
	if got := estimatePhotonBytes(0, 5, 2); got != 0 {
		t.Errorf("Expected zero for no photons, got %d", got)
	}
}

func TestSuffixed(t *testing.T) {
	tests := map[string]string{
		"output/render.png": "output/render_photons.png",
		"render":            "render_photons",
		"a.b/c.jpg":         "a.b/c_photons.jpg",
	}
	for in, want := range tests {
		if got := suffixed(in, "_photons"); got != want {
			t.Errorf("suffixed(%q) = %q, want %q", in, got, want)
		}
	}
}
