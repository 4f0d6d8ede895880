package renderer

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Band is a horizontal strip of image rows [MinY, MaxY)
type Band struct {
	MinY int
	MaxY int
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.MaxY - b.MinY
}

// SplitBands partitions height rows into at most n contiguous bands whose
// sizes differ by at most one row
func SplitBands(height, n int) []Band {
	if n > height {
		n = height
	}
	if n <= 0 {
		return nil
	}

	bands := make([]Band, n)
	for i := 0; i < n; i++ {
		bands[i] = Band{MinY: i * height / n, MaxY: (i + 1) * height / n}
	}
	return bands
}

// ShadeFunc computes the colour and depth seen along a primary ray
type ShadeFunc func(ray core.Ray, sampler core.Sampler) (core.Vec3, float64)

// BandRenderer renders the pixels of a band with a shading function
type BandRenderer struct {
	camera *Camera
	shade  ShadeFunc
}

// NewBandRenderer creates a band renderer for the given camera
func NewBandRenderer(camera *Camera, shade ShadeFunc) *BandRenderer {
	return &BandRenderer{camera: camera, shade: shade}
}

// RenderBand shades every pixel of the band and hands each one to emit.
// Multi-sample pixels average rays jittered across the pixel.
func (br *BandRenderer) RenderBand(band Band, sampler core.Sampler, emit func(PixelResult)) {
	for y := band.MinY; y < band.MaxY; y++ {
		for x := 0; x < br.camera.Width; x++ {
			emit(br.renderPixel(x, y, sampler))
		}
	}
}

func (br *BandRenderer) renderPixel(x, y int, sampler core.Sampler) PixelResult {
	if br.camera.Samples <= 1 {
		colour, depth := br.shade(br.camera.RayPixel(x, y), sampler)
		return PixelResult{Colour: colour, Depth: depth, X: x, Y: y, Samples: 1}
	}

	var ps PixelStats
	for s := 0; s < br.camera.Samples; s++ {
		offset := sampler.Get2D()
		colour, depth := br.shade(br.camera.RayOffset(x, y, offset.X, offset.Y), sampler)
		ps.AddSample(colour, depth)
	}
	return PixelResult{Colour: ps.GetColor(), Depth: ps.GetDepth(), X: x, Y: y, Samples: ps.SampleCount}
}
