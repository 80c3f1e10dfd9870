// Package renderer drives progressive rendering: each frame traces one
// stochastic sample per pixel across a tile worker pool and folds it into a
// running per-pixel mean, so the image refines for as long as frames keep
// coming.
package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/integrator"
	"github.com/jkvist/go-bsp-pathtracer/pkg/log"
	"github.com/jkvist/go-bsp-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize   int // Size of each square tile in pixels
	MaxFrames  int // Frames to accumulate (0 = until cancelled)
	NumWorkers int // Parallel workers (0 = one per CPU)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:   64,
		MaxFrames:  64,
		NumWorkers: 0,
	}
}

// FrameResult reports one completed frame
type FrameResult struct {
	Frame   int // Zero-based frame index
	Image   *image.RGBA
	Elapsed time.Duration
	IsLast  bool
}

// ProgressiveRenderer accumulates frames of one-sample-per-pixel renders
// into a progressively refined image.
type ProgressiveRenderer struct {
	scene       *scene.Scene
	camera      *geometry.Camera
	tracer      *integrator.PathTracer
	accumulator *Accumulator
	config      ProgressiveConfig
	pool        *WorkerPool
	tiles       []TileTask
	stats       RenderStats
}

// NewProgressiveRenderer creates a renderer for a preprocessed scene
func NewProgressiveRenderer(sc *scene.Scene, config ProgressiveConfig) (*ProgressiveRenderer, error) {
	width, height := sc.Render.Width, sc.Render.Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}

	camera := geometry.NewCamera(sc.CameraConfig)

	pr := &ProgressiveRenderer{
		scene:       sc,
		camera:      camera,
		tracer:      integrator.NewPathTracer(sc),
		accumulator: NewAccumulator(width, height),
		config:      config,
		tiles:       tileGrid(width, height, config.TileSize),
		stats:       RenderStats{Width: width, Height: height},
	}
	pr.pool = NewWorkerPool(config.NumWorkers, len(pr.tiles), pr.renderTile)
	pr.pool.Start()
	return pr, nil
}

// Close shuts down the tile workers. The renderer cannot be used afterwards.
func (pr *ProgressiveRenderer) Close() {
	pr.pool.Stop()
}

// tileGrid covers the image with disjoint tiles of at most tileSize pixels
// per side.
func tileGrid(width, height, tileSize int) []TileTask {
	var tiles []TileTask
	id := 0
	for y0 := 0; y0 < height; y0 += tileSize {
		for x0 := 0; x0 < width; x0 += tileSize {
			tiles = append(tiles, TileTask{
				TaskID: id,
				X0:     x0,
				Y0:     y0,
				X1:     min(x0+tileSize, width),
				Y1:     min(y0+tileSize, height),
			})
			id++
		}
	}
	return tiles
}

// FrameCount returns the number of frames accumulated so far
func (pr *ProgressiveRenderer) FrameCount() int {
	return pr.accumulator.FrameCount()
}

// Image returns the current accumulated image with display gamma applied
func (pr *ProgressiveRenderer) Image() *image.RGBA {
	return pr.accumulator.Image(pr.scene.Render.Gamma)
}

// Reset discards all accumulated frames, restarting the progression
func (pr *ProgressiveRenderer) Reset() {
	pr.accumulator.Reset()
}

// renderTile traces every pixel of one tile for one frame. Each pixel gets
// an independent deterministic sampler derived from its index and the frame
// number, so results do not depend on tile scheduling order.
func (pr *ProgressiveRenderer) renderTile(task TileTask) TileResult {
	width := pr.scene.Render.Width
	spp := pr.scene.Render.SamplesPerFrame
	if spp <= 0 {
		spp = 1
	}

	samples := 0
	for y := task.Y0; y < task.Y1; y++ {
		for x := task.X0; x < task.X1; x++ {
			sampler := core.NewPixelSampler(uint32(y*width+x), uint32(task.Frame))
			radiance := core.Vec3{}
			for s := 0; s < spp; s++ {
				ray := pr.camera.GetRay(x, y, sampler)
				radiance = radiance.Add(pr.tracer.Sample(ray, sampler))
				samples++
			}
			pr.accumulator.Accumulate(x, y, radiance.Multiply(1/float64(spp)))
		}
	}
	return TileResult{TaskID: task.TaskID, Samples: samples}
}

// Stats returns aggregate statistics over the frames rendered so far
func (pr *ProgressiveRenderer) Stats() RenderStats {
	return pr.stats
}

// RenderFrame renders one full frame and folds it into the accumulator
func (pr *ProgressiveRenderer) RenderFrame() error {
	start := time.Now()
	frame := pr.accumulator.FrameCount()
	for _, tile := range pr.tiles {
		tile.Frame = frame
		pr.pool.SubmitTask(tile)
	}
	samples := 0
	for range pr.tiles {
		result, ok := pr.pool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return result.Error
		}
		samples += result.Samples
	}
	pr.accumulator.EndFrame()
	pr.stats.RecordFrame(samples, time.Since(start))
	return nil
}

// RenderProgressive renders frames until MaxFrames is reached or the context
// is cancelled, sending a FrameResult after each frame. The caller reads the
// returned channels until they close.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		logger.Noticef("rendering %dx%d, %d workers, tile size %d",
			pr.scene.Render.Width, pr.scene.Render.Height,
			pr.pool.NumWorkers(), pr.config.TileSize)

		for frame := 0; pr.config.MaxFrames <= 0 || frame < pr.config.MaxFrames; frame++ {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}

			start := time.Now()
			if err := pr.RenderFrame(); err != nil {
				errChan <- err
				return
			}
			elapsed := time.Since(start)

			logger.Debugf("frame %d done in %v", frame, elapsed)

			result := FrameResult{
				Frame:   frame,
				Image:   pr.Image(),
				Elapsed: elapsed,
				IsLast:  pr.config.MaxFrames > 0 && frame == pr.config.MaxFrames-1,
			}
			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}
