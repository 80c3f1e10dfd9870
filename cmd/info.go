package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Info loads a scene, builds its acceleration structure and prints the
// resulting statistics without rendering.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	leaves, refs := sc.BSP.LeafStats()
	avgTris := 0.0
	if leaves > 0 {
		avgTris = float64(refs) / float64(leaves)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Property", "Value"})
	table.SetBorder(false)
	table.AppendBulk([][]string{
		{"Triangles", fmt.Sprintf("%d", sc.TriangleCount())},
		{"Analytic surfaces", fmt.Sprintf("%d", len(sc.Surfaces))},
		{"Lights", fmt.Sprintf("%d", len(sc.Lights))},
		{"Tree nodes", fmt.Sprintf("%d", len(sc.BSP.Nodes))},
		{"Tree depth", fmt.Sprintf("%d", sc.BSP.MaxDepth())},
		{"Leaves", fmt.Sprintf("%d", leaves)},
		{"Leaf triangle refs", fmt.Sprintf("%d", refs)},
		{"Avg tris/leaf", fmt.Sprintf("%.1f", avgTris)},
	})
	table.Render()
	logger.Noticef("scene statistics\n%s", buf.String())
	return nil
}
