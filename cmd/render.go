package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/jkvist/go-bsp-pathtracer/pkg/renderer"
)

// Render progressively renders the selected scene and writes the
// accumulated image to a PNG file. Interrupting with Ctrl-C saves whatever
// has been accumulated so far.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxFrames = ctx.Int("frames")
	config.NumWorkers = ctx.Int("workers")
	if ctx.IsSet("tile-size") {
		config.TileSize = ctx.Int("tile-size")
	}

	pr, err := renderer.NewProgressiveRenderer(sc, config)
	if err != nil {
		return err
	}
	defer pr.Close()

	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	frameChan, errChan := pr.RenderProgressive(renderCtx)
	for result := range frameChan {
		if result.IsLast || (result.Frame+1)%10 == 0 {
			logger.Noticef("frame %d/%d accumulated (%v)",
				result.Frame+1, config.MaxFrames, result.Elapsed)
		}
	}
	if err := <-errChan; err != nil && renderCtx.Err() == nil {
		return err
	}

	if pr.FrameCount() == 0 {
		return fmt.Errorf("no frames rendered")
	}

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, pr.Image()); err != nil {
		return err
	}
	logger.Noticef("wrote %s after %d frames", out, pr.FrameCount())

	displayRenderStats(pr.Stats())
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteSummary(&buf)
	logger.Noticef("render statistics\n%s", buf.String())
}
