package scene

import (
	"fmt"
	"sort"
	"strings"
)

// Options carries the inputs some scenes need
type Options struct {
	MeshPath  string // PLY file for the mesh scene
	Smoothing bool   // Smooth mesh normals
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func(Options) (*Scene, error)
}

var builtins = map[string]SceneInfo{
	"cornell": {
		Name:        "cornell",
		Description: "Phong Cornell box with diffuse, glass and metal spheres",
		build:       func(Options) (*Scene, error) { return NewCornellScene(), nil },
	},
	"material": {
		Name:        "material",
		Description: "Diffuse room with metal and tinted glass for photon mapping",
		build:       func(Options) (*Scene, error) { return NewMaterialScene(), nil },
	},
	"csg": {
		Name:        "csg",
		Description: "Boolean solids, a quadric cylinder and half-space planes",
		build:       func(Options) (*Scene, error) { return NewCSGScene(), nil },
	},
	"mesh": {
		Name:        "mesh",
		Description: "A PLY mesh in the diffuse room (needs a mesh path)",
		build: func(opts Options) (*Scene, error) {
			if opts.MeshPath == "" {
				return nil, fmt.Errorf("mesh scene needs a mesh path")
			}
			return NewMeshScene(opts.MeshPath, opts.Smoothing)
		},
	},
}

// List returns the built-in scenes sorted by name
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, info := range builtins {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Load builds the named scene
func Load(name string, opts Options) (*Scene, error) {
	info, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return info.build(opts)
}
