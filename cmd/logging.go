package cmd

import (
	"github.com/urfave/cli"

	"github.com/jkvist/go-bsp-pathtracer/pkg/log"
)

var logger = log.New("bsp-pathtracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
