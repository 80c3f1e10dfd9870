package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/jkvist/go-bsp-pathtracer/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sceneFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "image width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "image height",
		},
		cli.StringFlag{
			Name:  "scene",
			Value: "default",
			Usage: "built-in scene to render (default, cornell)",
		},
		cli.IntFlag{
			Name:  "max-bounces",
			Value: 8,
			Usage: "path bounce cap",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Value: 2.2,
			Usage: "display gamma applied to the output image",
		},
		cli.Float64Flag{
			Name:  "aperture",
			Value: 0,
			Usage: "thin lens aperture diameter (0 for pinhole)",
		},
		cli.Float64Flag{
			Name:  "focus-dist",
			Value: 0,
			Usage: "distance to the sharp focal plane",
		},
	}

	app := cli.NewApp()
	app.Name = "bsp-pathtracer"
	app.Usage = "progressive path tracer with BSP-accelerated meshes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene progressively and save the result",
			Description: `
Render the selected scene with the progressive path tracer. Each frame adds
one sample per pixel to a running average; the accumulated image is written
out when all frames are done or on interrupt. An optional scene file argument
(.obj, .gltf or .glb) replaces the mesh of the built-in scene.`,
			ArgsUsage: "[scene_file]",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Value: 64,
					Usage: "number of frames to accumulate",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "parallel tile workers (0 = one per CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 64,
					Usage: "tile side length in pixels",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			}, sceneFlags...),
			Action: cmd.Render,
		},
		{
			Name:      "info",
			Usage:     "print scene and acceleration structure statistics",
			ArgsUsage: "[scene_file]",
			Flags:     sceneFlags,
			Action:    cmd.Info,
		},
	}

	app.Run(os.Args)
}
