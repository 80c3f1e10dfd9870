package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

// Accumulator maintains the progressive running mean of all frames rendered
// so far. Two buffers alternate roles each frame: pixel tasks read the
// previous mean from one and write the updated mean to the other, so a frame
// in flight never observes its own partial writes.
type Accumulator struct {
	width, height int
	buffers       [2][]core.Vec3
	read          int // Index of the buffer holding the completed mean
	frameCount    int // Frames folded into the read buffer
}

// NewAccumulator creates an accumulator for the given image dimensions
func NewAccumulator(width, height int) *Accumulator {
	n := width * height
	return &Accumulator{
		width:  width,
		height: height,
		buffers: [2][]core.Vec3{
			make([]core.Vec3, n),
			make([]core.Vec3, n),
		},
	}
}

// FrameCount returns the number of frames accumulated so far
func (a *Accumulator) FrameCount() int {
	return a.frameCount
}

// Reset discards all accumulated frames
func (a *Accumulator) Reset() {
	for i := range a.buffers {
		for j := range a.buffers[i] {
			a.buffers[i][j] = core.Vec3{}
		}
	}
	a.read = 0
	a.frameCount = 0
}

// Accumulate folds one pixel sample into the running mean:
// mean' = (sample + mean*n) / (n+1) where n is the frame count so far.
// Non-finite samples are dropped so a single bad path cannot poison the
// pixel forever.
func (a *Accumulator) Accumulate(x, y int, sample core.Vec3) {
	if !sample.IsFinite() {
		sample = core.Vec3{}
	}
	idx := y*a.width + x
	prev := a.buffers[a.read][idx]
	n := float64(a.frameCount)
	a.buffers[1-a.read][idx] = sample.Add(prev.Multiply(n)).Multiply(1 / (n + 1))
}

// EndFrame swaps the buffers after all pixels of a frame have been
// accumulated, publishing the new mean for the next frame to read.
func (a *Accumulator) EndFrame() {
	a.read = 1 - a.read
	a.frameCount++
}

// Pixel returns the current mean radiance of a pixel
func (a *Accumulator) Pixel(x, y int) core.Vec3 {
	return a.buffers[a.read][y*a.width+x]
}

// Image converts the accumulated linear radiance to an 8-bit image,
// applying gamma at read-out only. The stored means stay linear so later
// frames keep averaging correctly.
func (a *Accumulator) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(a.buffers[a.read][y*a.width+x], gamma))
		}
	}
	return img
}

// vec3ToColor converts linear radiance to a display color
func vec3ToColor(v core.Vec3, gamma float64) color.RGBA {
	c := v.Clamp(0, 1)
	if gamma > 0 && gamma != 1 {
		c = c.GammaCorrect(gamma)
	}
	return color.RGBA{
		R: uint8(math.Round(c.X * 255)),
		G: uint8(math.Round(c.Y * 255)),
		B: uint8(math.Round(c.Z * 255)),
		A: 255,
	}
}

// Validate checks that coordinates address a pixel inside the image
func (a *Accumulator) Validate(x, y int) error {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return fmt.Errorf("pixel (%d,%d) outside %dx%d image", x, y, a.width, a.height)
	}
	return nil
}
