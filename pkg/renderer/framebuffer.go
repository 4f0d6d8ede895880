package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

type pixel struct {
	colour core.Vec3
	depth  float64
}

// FrameBuffer holds the unclamped colour and depth of every pixel
type FrameBuffer struct {
	Width  int
	Height int
	buf    []pixel
}

// NewFrameBuffer creates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		buf:    make([]pixel, width*height),
	}
}

func (fb *FrameBuffer) index(x, y int) int {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		panic(fmt.Sprintf("pixel (%d,%d) outside %dx%d frame buffer", x, y, fb.Width, fb.Height))
	}
	return y*fb.Width + x
}

// PlotPixel sets the colour of pixel (x, y)
func (fb *FrameBuffer) PlotPixel(x, y int, colour core.Vec3) {
	fb.buf[fb.index(x, y)].colour = colour
}

// PlotDepth sets the depth of pixel (x, y)
func (fb *FrameBuffer) PlotDepth(x, y int, depth float64) {
	fb.buf[fb.index(x, y)].depth = depth
}

// Pixel returns the colour of pixel (x, y)
func (fb *FrameBuffer) Pixel(x, y int) core.Vec3 {
	return fb.buf[fb.index(x, y)].colour
}

// Depth returns the depth of pixel (x, y)
func (fb *FrameBuffer) Depth(x, y int) float64 {
	return fb.buf[fb.index(x, y)].depth
}

// Add sums another buffer of the same size into this one, colour by colour.
// Depth is kept from this buffer.
func (fb *FrameBuffer) Add(other *FrameBuffer) error {
	if other.Width != fb.Width || other.Height != fb.Height {
		return fmt.Errorf("cannot add %dx%d frame buffer to %dx%d", other.Width, other.Height, fb.Width, fb.Height)
	}
	for i := range fb.buf {
		fb.buf[i].colour = fb.buf[i].colour.Add(other.buf[i].colour)
	}
	return nil
}

// normaliser maps [min, max] onto [0, 255]. The range always includes zero;
// a flat buffer uses a range of one.
func normaliser(lo, hi float64) func(float64) uint8 {
	diff := hi - lo
	if diff == 0 {
		diff = 1
	}
	return func(v float64) uint8 {
		return uint8(255 * (v - lo) / diff)
	}
}

// Image returns the colours scaled so the smallest channel value maps to 0
// and the largest to 255
func (fb *FrameBuffer) Image() *image.NRGBA {
	lo, hi := 0.0, 0.0
	for _, p := range fb.buf {
		lo = math.Min(lo, p.colour.MinComponent())
		hi = math.Max(hi, p.colour.MaxComponent())
	}
	scale := normaliser(lo, hi)

	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.buf[y*fb.Width+x].colour
			img.SetNRGBA(x, y, color.NRGBA{R: scale(c.X), G: scale(c.Y), B: scale(c.Z), A: 255})
		}
	}
	return img
}

// DepthImage returns the depths as a grey image normalised like Image
func (fb *FrameBuffer) DepthImage() *image.NRGBA {
	lo, hi := 0.0, 0.0
	for _, p := range fb.buf {
		lo = math.Min(lo, p.depth)
		hi = math.Max(hi, p.depth)
	}
	scale := normaliser(lo, hi)

	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			g := scale(fb.buf[y*fb.Width+x].depth)
			img.SetNRGBA(x, y, color.NRGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}
