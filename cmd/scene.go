package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/loaders"
	"github.com/jkvist/go-bsp-pathtracer/pkg/scene"
)

// loadScene builds the scene selected by the CLI flags. A scene file
// argument (.obj, .gltf or .glb) replaces the mesh of the built-in scene;
// without one the built-in scene renders as-is.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	camera := geometry.CameraConfig{
		Width:         ctx.Int("width"),
		Height:        ctx.Int("height"),
		Aperture:      ctx.Float64("aperture"),
		FocusDistance: ctx.Float64("focus-dist"),
	}

	var sc *scene.Scene
	switch name := ctx.String("scene"); name {
	case "default":
		sc = scene.NewDefaultScene(camera)
	case "cornell":
		sc = scene.NewCornellScene(camera)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}

	if ctx.NArg() > 0 {
		path := ctx.Args().First()
		mesh, err := loaders.Load(path)
		if err != nil {
			return nil, err
		}
		sc.Mesh = mesh
		logger.Noticef("replaced scene mesh with %s", path)
	}

	sc.Render.Width = ctx.Int("width")
	sc.Render.Height = ctx.Int("height")
	if ctx.IsSet("max-bounces") {
		sc.Render.MaxDepth = ctx.Int("max-bounces")
	}
	if ctx.IsSet("gamma") {
		sc.Render.Gamma = ctx.Float64("gamma")
	}

	if err := sc.Preprocess(); err != nil {
		return nil, err
	}
	return sc, nil
}
