package renderer

import (
	"time"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of rays traced from the camera
	AverageSamples float64       // Average samples per pixel
	Bands          int           // Number of row bands the image was split into
	Duration       time.Duration // Wall time of the render
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for the final result
	DepthAccum  float64   // Hit distance accumulator
	SampleCount int       // Number of samples taken
}

// AddSample adds a new colour and depth sample
func (ps *PixelStats) AddSample(color core.Vec3, depth float64) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.DepthAccum += depth
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// GetDepth returns the average hit distance for this pixel
func (ps *PixelStats) GetDepth() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return ps.DepthAccum / float64(ps.SampleCount)
}
