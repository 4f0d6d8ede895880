package renderer

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// CameraConfig places a camera in the scene
type CameraConfig struct {
	Position core.Vec3 // Eye position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Approximate up direction
	FOV      float64   // Distance from the eye to the image plane; larger is narrower
}

// Camera generates primary rays for the pixels of a width x height image
type Camera struct {
	Config  CameraConfig
	Width   int
	Height  int
	Samples int // Rays per pixel; values below 2 fire one ray through the pixel centre

	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
	aspect  float64
}

// NewCamera builds the camera basis for an image of the given size
func NewCamera(config CameraConfig, width, height int) *Camera {
	forward := config.LookAt.Subtract(config.Position).Normalize()
	right := config.Up.Cross(forward).Normalize()
	up := forward.Cross(right)

	return &Camera{
		Config:  config,
		Width:   width,
		Height:  height,
		Samples: 1,
		forward: forward,
		right:   right,
		up:      up,
		aspect:  float64(width) / float64(height),
	}
}

// RayPixel returns the ray through the centre of pixel (x, y); y grows downwards
func (c *Camera) RayPixel(x, y int) core.Ray {
	return c.RayOffset(x, y, 0.5, 0.5)
}

// RayOffset returns the ray through pixel (x, y) at offset (ox, oy) in [0, 1)
// from the pixel's top-left corner
func (c *Camera) RayOffset(x, y int, ox, oy float64) core.Ray {
	fx := (float64(x) + ox) / float64(c.Width)
	fy := (float64(y) + oy) / float64(c.Height)

	direction := c.right.Multiply((fx - 0.5) * c.aspect).
		Add(c.up.Multiply(0.5 - fy)).
		Add(c.forward.Multiply(c.Config.FOV))

	return core.NewRay(c.Config.Position, direction)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}
